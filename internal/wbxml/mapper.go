// =============================================================================
// WizBang Client - XML Mappers
// =============================================================================
//
// This module converts one parsed XML document per endpoint into domain
// model instances. It carries all of the upstream schema's irregularity
// handling:
//   - ID attributes found by name-substring scan (see document.go)
//   - Optional child elements with explicit present/absent semantics
//   - Implicit arrays with or without wrapper elements
//   - The invoice endpoint's redundant double wrapping
//
// MENU PARSE ORDER:
//   Order matters for reference resolution and must not be changed:
//     1. item groups
//     2. items        (each item is registered both in the catalog's flat
//                      list and in its owning group's collection)
//     3. modifiers
//     4. modifier groups (resolve member item/modifier IDs against the
//                      already-populated lists and wire the bidirectional
//                      links)
//   A modifier group referencing an unknown item or modifier ID is a
//   MappingError, never a silent skip: it indicates either a parse-order
//   violation or malformed source data.
//
// =============================================================================

package wbxml

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wizbangpos/wizbang-client/internal/catalog"
	"github.com/wizbangpos/wizbang-client/internal/model"
	"github.com/wizbangpos/wizbang-client/internal/wberr"
)

// InvoicePayloadIndex selects the invoice element holding the actual
// payload. Invoice payloads are double-wrapped: the server nests the real
// invoice inside a redundant outer invoice element, so the mapper consumes
// index 1 of the document's invoice-tagged elements, not index 0.
const InvoicePayloadIndex = 1

// timestampLayouts are the invoice timestamp formats observed across
// server revisions.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"02/01/2006 15:04:05",
}

// =============================================================================
// MENU MAPPING
// =============================================================================

// MapMenu maps a menu document onto a fully linked catalog. Any failure
// aborts the mapping; a partial catalog is never returned.
func MapMenu(root *Node) (*catalog.Catalog, error) {
	menu := root
	if !strings.EqualFold(root.Name(), "menu") {
		if menu = root.Find("menu"); menu == nil {
			return nil, &wberr.MappingError{
				Kind:    "menu",
				Field:   "menu",
				Message: "document contains no menu element",
			}
		}
	}

	cat := catalog.New()

	// Pass 1: item groups.
	for _, node := range menu.Collect("itemgroup") {
		group, err := mapItemGroup(node)
		if err != nil {
			return nil, err
		}
		cat.RegisterItemGroup(group)
	}

	// Pass 2: items. Registration also appends each item to its owning
	// group, so groups must already be in place.
	for _, node := range menu.Collect("item") {
		item, err := mapItem(node)
		if err != nil {
			return nil, err
		}
		if err := cat.RegisterItem(item); err != nil {
			return nil, err
		}
	}

	// Pass 3: modifiers.
	for _, node := range menu.Collect("modifier") {
		mod, err := mapModifier(node)
		if err != nil {
			return nil, err
		}
		cat.RegisterModifier(mod)
	}

	// Pass 4: modifier groups, resolving member IDs against passes 2-3.
	for _, node := range menu.Collect("modifiergroup") {
		group, itemIDs, modifierIDs, err := mapModifierGroup(node)
		if err != nil {
			return nil, err
		}
		if err := cat.RegisterModifierGroup(group, itemIDs, modifierIDs); err != nil {
			return nil, err
		}
	}

	return cat, nil
}

// mapItemGroup maps a single itemgroup element.
func mapItemGroup(node *Node) (*model.ItemGroup, error) {
	id, err := node.ExtractID("itemgroup")
	if err != nil {
		return nil, err
	}
	name, err := node.RequiredText("itemgroup", "name")
	if err != nil {
		return nil, err
	}

	localID, _ := node.OptionalText("localid")
	forb, _ := node.OptionalText("forb")

	return &model.ItemGroup{
		ID:      id,
		LocalID: localID,
		Name:    name,
		Forb:    forb,
	}, nil
}

// mapItem maps a single item element, including its six price tiers.
func mapItem(node *Node) (*model.Item, error) {
	id, err := node.ExtractID("item")
	if err != nil {
		return nil, err
	}
	name, err := node.RequiredText("item", "name")
	if err != nil {
		return nil, err
	}
	groupID, err := node.RequiredText("item", "itemgroupid")
	if err != nil {
		return nil, err
	}

	localID, _ := node.OptionalText("localid")

	item := &model.Item{
		ID:          id,
		LocalID:     localID,
		Name:        name,
		ItemGroupID: groupID,
	}

	// price1..price6; omitted tiers stay zero.
	for tier := 1; tier <= 6; tier++ {
		price, err := decimalField(node, "item", fmt.Sprintf("price%d", tier))
		if err != nil {
			return nil, err
		}
		item.Prices[tier-1] = price
	}

	return item, nil
}

// mapModifier maps a single modifier element.
func mapModifier(node *Node) (*model.Modifier, error) {
	id, err := node.ExtractID("modifier")
	if err != nil {
		return nil, err
	}
	name, err := node.RequiredText("modifier", "name")
	if err != nil {
		return nil, err
	}
	price, err := decimalField(node, "modifier", "price")
	if err != nil {
		return nil, err
	}

	localID, _ := node.OptionalText("localid")
	forb, _ := node.OptionalText("forb")

	return &model.Modifier{
		ID:      id,
		LocalID: localID,
		Name:    name,
		Forb:    forb,
		Price:   price,
	}, nil
}

// mapModifierGroup maps a modifiergroup element and collects its member
// item and modifier ID lists. Depending on the schema revision the ID
// lists arrive wrapped (<itemids><itemid>..</itemid></itemids>) or as
// bare repeated elements; Collect handles both.
func mapModifierGroup(node *Node) (*model.ModifierGroup, []string, []string, error) {
	id, err := node.ExtractID("modifiergroup")
	if err != nil {
		return nil, nil, nil, err
	}
	name, err := node.RequiredText("modifiergroup", "name")
	if err != nil {
		return nil, nil, nil, err
	}

	localID, _ := node.OptionalText("localid")
	forb, _ := node.OptionalText("forb")

	// The four prompting flags stay raw text for the caller to coerce.
	force, _ := node.OptionalText("force")
	multi, _ := node.OptionalText("multi")
	prompt, _ := node.OptionalText("prompt")
	proceed, _ := node.OptionalText("proceed")

	group := &model.ModifierGroup{
		ID:      id,
		LocalID: localID,
		Name:    name,
		Forb:    forb,
		Force:   force,
		Multi:   multi,
		Prompt:  prompt,
		Proceed: proceed,
	}

	var itemIDs []string
	for _, ref := range node.Collect("itemid") {
		itemIDs = append(itemIDs, strings.TrimSpace(ref.Text))
	}

	var modifierIDs []string
	for _, ref := range node.Collect("modifierid") {
		modifierIDs = append(modifierIDs, strings.TrimSpace(ref.Text))
	}

	return group, itemIDs, modifierIDs, nil
}

// =============================================================================
// INVOICE MAPPING
// =============================================================================

// MapInvoice maps an invoice document onto an Invoice. Invoice lines and
// tender lines are preserved in document order.
func MapInvoice(root *Node) (*model.Invoice, error) {
	wrapped := root.Collect("invoice")
	if len(wrapped) <= InvoicePayloadIndex {
		return nil, &wberr.MappingError{
			Kind:    "invoice",
			Field:   "invoice",
			Message: fmt.Sprintf("expected a double-wrapped invoice payload, found %d invoice element(s)", len(wrapped)),
		}
	}
	payload := wrapped[InvoicePayloadIndex]

	id, err := payload.ExtractID("invoice")
	if err != nil {
		return nil, err
	}

	inv := &model.Invoice{ID: id}

	inv.Number, _ = payload.OptionalText("invoicenumber")
	inv.Outlet, _ = payload.OptionalText("outletid")

	invType, _ := payload.OptionalText("invoicetype")
	inv.Type = model.InvoiceType(invType)

	// Schema-version-dependent fields keep present/absent semantics.
	if note, ok := payload.OptionalText("refundnote"); ok {
		inv.RefundNote = &note
	}
	if account, ok := payload.OptionalText("accountid"); ok {
		inv.AccountID = &account
	}

	// Group type uses the same permissive attribute scan as IDs. Older
	// revisions omit the attribute entirely.
	if groupType, err := payload.ExtractType("invoice"); err == nil {
		inv.GroupType = model.GroupType(groupType)
	}
	inv.GroupID, _ = payload.OptionalText("groupid")
	inv.TableNumber, _ = payload.OptionalText("tablenumber")
	inv.GroupName, _ = payload.OptionalText("groupname")

	if ts, ok := payload.OptionalText("timestamp"); ok && ts != "" {
		parsed, err := parseTimestamp(ts)
		if err != nil {
			return nil, err
		}
		inv.Timestamp = parsed
	}

	inv.StaffID, _ = payload.OptionalText("staffid")
	inv.StaffName, _ = payload.OptionalText("staffname")
	inv.Terminal, _ = payload.OptionalText("terminal")

	for _, node := range payload.Collect("invoiceline") {
		line, err := mapInvoiceLine(node)
		if err != nil {
			return nil, err
		}
		inv.Lines = append(inv.Lines, *line)
	}

	if inv.Subtotal, err = decimalField(payload, "invoice", "subtotal"); err != nil {
		return nil, err
	}
	if inv.Discount, err = decimalField(payload, "invoice", "discount"); err != nil {
		return nil, err
	}
	if inv.FoodSubtotal, err = decimalField(payload, "invoice", "foodtotal"); err != nil {
		return nil, err
	}
	if inv.BeverageSubtotal, err = decimalField(payload, "invoice", "beveragetotal"); err != nil {
		return nil, err
	}
	if inv.SalesTax, err = decimalField(payload, "invoice", "salestax"); err != nil {
		return nil, err
	}
	if inv.BalanceDue, err = decimalField(payload, "invoice", "balancedue"); err != nil {
		return nil, err
	}

	for _, node := range payload.Collect("tenderline") {
		tender, err := mapTenderLine(node)
		if err != nil {
			return nil, err
		}
		inv.Tenders = append(inv.Tenders, *tender)
	}

	if inv.Tendered, err = decimalField(payload, "invoice", "tendered"); err != nil {
		return nil, err
	}
	if inv.Change, err = decimalField(payload, "invoice", "change"); err != nil {
		return nil, err
	}
	onAccount, _ := payload.OptionalText("onaccount")
	inv.OnAccount = parseFlag(onAccount)

	return inv, nil
}

// mapInvoiceLine maps a single invoiceline element.
func mapInvoiceLine(node *Node) (*model.InvoiceLine, error) {
	id, err := node.ExtractID("invoiceline")
	if err != nil {
		return nil, err
	}

	line := &model.InvoiceLine{ID: id}

	line.ItemGroupID, _ = node.OptionalText("itemgroupid")
	line.ItemID, _ = node.OptionalText("itemid")
	line.Abbreviation, _ = node.OptionalText("abbreviation")

	// The unit price keeps present/absent semantics so that quantity
	// derivation can tell a zero price from a missing one.
	unitPrice, err := optionalDecimalField(node, "invoiceline", "unitprice")
	if err != nil {
		return nil, err
	}
	line.UnitPrice = unitPrice

	if line.Total, err = decimalField(node, "invoiceline", "total"); err != nil {
		return nil, err
	}
	if line.Discount, err = decimalField(node, "invoiceline", "discount"); err != nil {
		return nil, err
	}
	if line.SalesTax, err = decimalField(node, "invoiceline", "salestax"); err != nil {
		return nil, err
	}
	if line.Surcharge, err = decimalField(node, "invoiceline", "surcharge"); err != nil {
		return nil, err
	}

	weight, _ := node.OptionalText("weightitem")
	line.WeightItem = parseFlag(weight)

	return line, nil
}

// mapTenderLine maps a single tenderline element.
func mapTenderLine(node *Node) (*model.TenderLine, error) {
	id, err := node.ExtractID("tenderline")
	if err != nil {
		return nil, err
	}

	tender := &model.TenderLine{ID: id}
	tender.TenderType, _ = node.OptionalText("tendertype")

	if tender.Amount, err = decimalField(node, "tenderline", "amount"); err != nil {
		return nil, err
	}
	if tender.Tip, err = decimalField(node, "tenderline", "tip"); err != nil {
		return nil, err
	}
	if tender.Rounding, err = decimalField(node, "tenderline", "rounding"); err != nil {
		return nil, err
	}

	return tender, nil
}

// =============================================================================
// ACCOUNT TYPES MAPPING
// =============================================================================

// MapAccountTypes returns the account-types document as a generic node
// tree. The endpoint has no dedicated domain type.
func MapAccountTypes(root *Node) (*Node, error) {
	if len(root.Children) == 0 {
		return nil, &wberr.MappingError{
			Kind:    "accounttypes",
			Field:   root.Name(),
			Message: "document has no account type entries",
		}
	}
	return root, nil
}

// =============================================================================
// FIELD PARSING HELPERS
// =============================================================================

// decimalField reads a named child as a decimal. Absent or empty elements
// map to zero; malformed values are mapping errors.
func decimalField(node *Node, kind, name string) (decimal.Decimal, error) {
	text, ok := node.OptionalText(name)
	if !ok || text == "" {
		return decimal.Zero, nil
	}
	value, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, &wberr.MappingError{
			Kind:    kind,
			Field:   name,
			Message: fmt.Sprintf("not a decimal value: %q", text),
		}
	}
	return value, nil
}

// optionalDecimalField reads a named child as a decimal, preserving the
// present/absent distinction. An empty-but-present element maps to a
// present zero.
func optionalDecimalField(node *Node, kind, name string) (*decimal.Decimal, error) {
	text, ok := node.OptionalText(name)
	if !ok {
		return nil, nil
	}
	if text == "" {
		zero := decimal.Zero
		return &zero, nil
	}
	value, err := decimal.NewFromString(text)
	if err != nil {
		return nil, &wberr.MappingError{
			Kind:    kind,
			Field:   name,
			Message: fmt.Sprintf("not a decimal value: %q", text),
		}
	}
	return &value, nil
}

// parseFlag coerces the server's raw boolean text ("1"/"0", "true", "yes").
func parseFlag(text string) bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}

// parseTimestamp tries each observed timestamp layout in turn.
func parseTimestamp(text string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, text); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, &wberr.MappingError{
		Kind:    "invoice",
		Field:   "timestamp",
		Message: fmt.Sprintf("unrecognized timestamp format: %q", text),
	}
}
