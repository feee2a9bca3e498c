// =============================================================================
// WizBang Client - Menu Catalog
// =============================================================================
//
// The catalog owns all menu entities for one server snapshot and answers
// point lookups by ID. It is populated once, during client construction,
// and is immutable from the caller's perspective afterwards: concurrent
// reads are safe because registration fully completes before the catalog
// is exposed.
//
// LINK RESOLUTION:
//   The many-to-many item <-> modifier-group relation arrives in the XML as
//   flat ID lists on each modifier group. The catalog stores the relation
//   as adjacency maps keyed by ID rather than as mutable slices on the
//   entity values, so copying an Item can never alias or detach its links.
//   Linking is idempotent: registering the same (item, modifier group)
//   pair twice leaves exactly one entry.
//
// LOOKUPS:
//   Lookups are map-backed. The upstream contract only requires a linear
//   scan over catalogs of a few hundred entries, so an index keyed by ID
//   changes nothing observable.
//
// =============================================================================

package catalog

import (
	"fmt"
	"strings"

	"github.com/wizbangpos/wizbang-client/internal/model"
	"github.com/wizbangpos/wizbang-client/internal/wberr"
)

// =============================================================================
// CATALOG STRUCTURE
// =============================================================================

// Catalog holds one complete menu snapshot.
type Catalog struct {
	// Entities in registration order. Consumers traverse these directly
	// (for example the tree renderer), so order must match the source
	// document.
	items          []*model.Item
	itemGroups     []*model.ItemGroup
	modifiers      []*model.Modifier
	modifierGroups []*model.ModifierGroup

	// ID indexes for point lookups.
	itemsByID          map[string]*model.Item
	itemGroupsByID     map[string]*model.ItemGroup
	modifiersByID      map[string]*model.Modifier
	modifierGroupsByID map[string]*model.ModifierGroup

	// Item <-> modifier-group relation, both directions, in link order.
	groupsForItem map[string][]string
	itemsForGroup map[string][]string

	// Modifier membership per modifier group, in link order.
	modifiersForGroup map[string][]string

	// Idempotency guards for the relation maps.
	itemLinkSeen     map[string]bool
	modifierLinkSeen map[string]bool
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		itemsByID:          make(map[string]*model.Item),
		itemGroupsByID:     make(map[string]*model.ItemGroup),
		modifiersByID:      make(map[string]*model.Modifier),
		modifierGroupsByID: make(map[string]*model.ModifierGroup),
		groupsForItem:      make(map[string][]string),
		itemsForGroup:      make(map[string][]string),
		modifiersForGroup:  make(map[string][]string),
		itemLinkSeen:       make(map[string]bool),
		modifierLinkSeen:   make(map[string]bool),
	}
}

// =============================================================================
// REGISTRATION (construction-time mutators)
// =============================================================================

// RegisterItemGroup adds an item group to the catalog.
func (c *Catalog) RegisterItemGroup(g *model.ItemGroup) {
	c.itemGroups = append(c.itemGroups, g)
	c.itemGroupsByID[g.ID] = g
}

// RegisterItem adds an item to the catalog's flat item list and to its
// owning group's item collection. The double registration is deliberate:
// consumers index items both via flat lookup and via group traversal.
// Registering an item whose group is unknown fails, since every item must
// belong to exactly one registered group.
func (c *Catalog) RegisterItem(item *model.Item) error {
	group, ok := c.itemGroupsByID[item.ItemGroupID]
	if !ok {
		return &wberr.MappingError{
			Kind:    "item",
			Field:   "itemgroupid",
			Message: fmt.Sprintf("item %q references unknown item group %q", item.ID, item.ItemGroupID),
		}
	}

	c.items = append(c.items, item)
	c.itemsByID[item.ID] = item
	group.Items = append(group.Items, item)
	return nil
}

// RegisterModifier adds a modifier to the catalog.
func (c *Catalog) RegisterModifier(m *model.Modifier) {
	c.modifiers = append(c.modifiers, m)
	c.modifiersByID[m.ID] = m
}

// RegisterModifierGroup adds a modifier group and resolves its member item
// and modifier IDs against the already-registered entities, wiring the
// bidirectional relation. An ID that does not resolve is a mapping error:
// it means either the mandated parse order was violated or the source data
// is malformed, and it must surface rather than be skipped.
func (c *Catalog) RegisterModifierGroup(g *model.ModifierGroup, itemIDs, modifierIDs []string) error {
	for _, id := range itemIDs {
		if _, ok := c.itemsByID[id]; !ok {
			return &wberr.MappingError{
				Kind:    "modifiergroup",
				Field:   "itemid",
				Message: fmt.Sprintf("modifier group %q references unknown item %q", g.ID, id),
			}
		}
	}
	for _, id := range modifierIDs {
		if _, ok := c.modifiersByID[id]; !ok {
			return &wberr.MappingError{
				Kind:    "modifiergroup",
				Field:   "modifierid",
				Message: fmt.Sprintf("modifier group %q references unknown modifier %q", g.ID, id),
			}
		}
	}

	c.modifierGroups = append(c.modifierGroups, g)
	c.modifierGroupsByID[g.ID] = g

	for _, id := range itemIDs {
		c.linkItem(id, g.ID)
	}
	for _, id := range modifierIDs {
		c.linkModifier(g.ID, id)
	}
	return nil
}

// linkItem records the (item, modifier group) pair in both directions.
// Re-linking an existing pair is a no-op; the source data is known to
// repeat pairs across schema revisions.
func (c *Catalog) linkItem(itemID, groupID string) {
	key := itemID + "\x00" + groupID
	if c.itemLinkSeen[key] {
		return
	}
	c.itemLinkSeen[key] = true
	c.groupsForItem[itemID] = append(c.groupsForItem[itemID], groupID)
	c.itemsForGroup[groupID] = append(c.itemsForGroup[groupID], itemID)
}

// linkModifier records modifier membership in a modifier group, once.
func (c *Catalog) linkModifier(groupID, modifierID string) {
	key := groupID + "\x00" + modifierID
	if c.modifierLinkSeen[key] {
		return
	}
	c.modifierLinkSeen[key] = true
	c.modifiersForGroup[groupID] = append(c.modifiersForGroup[groupID], modifierID)
}

// =============================================================================
// LOOKUPS
// =============================================================================
// Absence is an expected, recoverable condition, so lookups return an
// explicit "found" flag instead of an error.

// FindItem returns the item with the given ID.
func (c *Catalog) FindItem(id string) (*model.Item, bool) {
	item, ok := c.itemsByID[id]
	return item, ok
}

// FindItemGroup returns the item group with the given ID.
func (c *Catalog) FindItemGroup(id string) (*model.ItemGroup, bool) {
	g, ok := c.itemGroupsByID[id]
	return g, ok
}

// FindModifier returns the modifier with the given ID.
func (c *Catalog) FindModifier(id string) (*model.Modifier, bool) {
	m, ok := c.modifiersByID[id]
	return m, ok
}

// FindModifierGroup returns the modifier group with the given ID.
func (c *Catalog) FindModifierGroup(id string) (*model.ModifierGroup, bool) {
	g, ok := c.modifierGroupsByID[id]
	return g, ok
}

// Items returns all items in registration order.
func (c *Catalog) Items() []*model.Item { return c.items }

// ItemGroups returns all item groups in registration order.
func (c *Catalog) ItemGroups() []*model.ItemGroup { return c.itemGroups }

// Modifiers returns all modifiers in registration order.
func (c *Catalog) Modifiers() []*model.Modifier { return c.modifiers }

// ModifierGroups returns all modifier groups in registration order.
func (c *Catalog) ModifierGroups() []*model.ModifierGroup { return c.modifierGroups }

// =============================================================================
// RELATION ACCESSORS
// =============================================================================

// ModifierGroupsForItem resolves the modifier groups linked to an item, in
// link order.
func (c *Catalog) ModifierGroupsForItem(itemID string) []*model.ModifierGroup {
	ids := c.groupsForItem[itemID]
	groups := make([]*model.ModifierGroup, 0, len(ids))
	for _, id := range ids {
		groups = append(groups, c.modifierGroupsByID[id])
	}
	return groups
}

// ItemsForModifierGroup resolves the items a modifier group applies to, in
// link order.
func (c *Catalog) ItemsForModifierGroup(groupID string) []*model.Item {
	ids := c.itemsForGroup[groupID]
	items := make([]*model.Item, 0, len(ids))
	for _, id := range ids {
		items = append(items, c.itemsByID[id])
	}
	return items
}

// ModifiersForGroup resolves the modifiers belonging to a modifier group,
// in link order.
func (c *Catalog) ModifiersForGroup(groupID string) []*model.Modifier {
	ids := c.modifiersForGroup[groupID]
	mods := make([]*model.Modifier, 0, len(ids))
	for _, id := range ids {
		mods = append(mods, c.modifiersByID[id])
	}
	return mods
}

// =============================================================================
// DIAGNOSTIC TREE RENDERER
// =============================================================================

// RenderTree produces a human-readable nested listing of the catalog:
// item groups in catalog order, items in group-registration order, and
// optionally each item's modifier groups and their modifiers in
// registration order. Purely for diagnostics; not part of the data
// contract.
func (c *Catalog) RenderTree(showModifierGroups, showModifiers bool) string {
	var b strings.Builder

	for _, group := range c.itemGroups {
		fmt.Fprintf(&b, "%s: %s (%d items)\n", group.ID, group.Name, len(group.Items))

		for _, item := range group.Items {
			fmt.Fprintf(&b, "  %s: %s ($%s)\n", item.ID, item.Name, item.Price(1).StringFixed(2))

			if !showModifierGroups {
				continue
			}
			for _, mg := range c.ModifierGroupsForItem(item.ID) {
				fmt.Fprintf(&b, "    %s: %s\n", mg.ID, mg.Name)

				if !showModifiers {
					continue
				}
				for _, mod := range c.ModifiersForGroup(mg.ID) {
					fmt.Fprintf(&b, "      %s: %s ($%s)\n", mod.ID, mod.Name, mod.Price.StringFixed(2))
				}
			}
		}
	}

	return b.String()
}
