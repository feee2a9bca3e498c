// =============================================================================
// WizBang Client - Menu Domain Model
// =============================================================================
//
// This package contains the plain records the client maps WizBang XML
// payloads onto. The types here carry no behavior beyond derived fields;
// cross-references between them are expressed as opaque string IDs and are
// resolved by the catalog package, never by the records themselves.
//
// ID HANDLING:
//   All IDs are opaque strings. The upstream XML encodes them as text
//   attributes, and some schema revisions nest or omit them, so
//   numeric-looking IDs must never be treated as numbers.
//
// MONEY:
//   All currency values use shopspring/decimal. The server emits prices as
//   decimal text and the six price tiers are compared and summed by
//   consumers, so binary floats are not acceptable.
//
// =============================================================================

package model

import "github.com/shopspring/decimal"

// =============================================================================
// MENU ENTITIES
// =============================================================================

// Item is a single sellable menu item. An item belongs to exactly one
// ItemGroup, referenced by ItemGroupID. Its associated modifier groups are
// not stored on the item itself; the catalog owns that relation.
type Item struct {
	// ID is the server-wide identifier.
	ID string

	// LocalID is the identifier local to the owning outlet/terminal.
	LocalID string

	// Name is the display name of the item.
	Name string

	// Prices holds the six price tiers (price_1 .. price_6) in order.
	// Tiers the server omits are zero.
	Prices [6]decimal.Decimal

	// ItemGroupID is the back-reference to the owning ItemGroup.
	ItemGroupID string
}

// Price returns the price for a 1-indexed tier. Tier numbers outside 1..6
// return zero.
func (i *Item) Price(tier int) decimal.Decimal {
	if tier < 1 || tier > len(i.Prices) {
		return decimal.Zero
	}
	return i.Prices[tier-1]
}

// ItemGroup is a named grouping of items. Ownership is one-directional:
// the group holds its items, and each item carries ItemGroupID; there is
// no back-link collection on the item.
type ItemGroup struct {
	ID      string
	LocalID string
	Name    string

	// Forb is the food-or-beverage classification code.
	Forb string

	// Items are the items assigned to this group, in registration order.
	Items []*Item
}

// Modifier is a leaf entity with no outgoing references.
type Modifier struct {
	ID      string
	LocalID string
	Name    string
	Forb    string
	Price   decimal.Decimal
}

// ModifierGroup is a named set of modifiers applied to one or more items.
// The four behavioral flags control order-entry prompting on the terminal;
// the server emits them as raw text ("0"/"1" in observed payloads) and the
// client leaves coercion to the caller.
type ModifierGroup struct {
	ID      string
	LocalID string
	Name    string
	Forb    string

	// Force, Multi, Prompt, Proceed are the raw prompting flags.
	Force   string
	Multi   string
	Prompt  string
	Proceed string
}

// =============================================================================
// ORDER ENTITIES
// =============================================================================

// Order is an ordered sequence of lines to be placed against the server.
type Order struct {
	Lines []OrderLine
}

// OrderLine references one catalog item (shared, not owned) and a positive
// quantity.
type OrderLine struct {
	Item     *Item
	Quantity int
}

// Customer is a flat identity/contact record with no behavior.
type Customer struct {
	ID        string
	FirstName string
	LastName  string

	// AccountID is the on-account billing account, if the customer has one.
	AccountID string

	Phone      string
	Mobile     string
	Address1   string
	Address2   string
	City       string
	PostalCode string
	Notes      string
}
