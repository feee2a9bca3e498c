package catalog

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/wizbangpos/wizbang-client/internal/model"
	"github.com/wizbangpos/wizbang-client/internal/wberr"
)

// buildCatalog assembles a small two-group catalog by hand.
func buildCatalog(t *testing.T) *Catalog {
	t.Helper()
	cat := New()

	cat.RegisterItemGroup(&model.ItemGroup{ID: "10", Name: "Beverages", Forb: "b"})
	cat.RegisterItemGroup(&model.ItemGroup{ID: "20", Name: "Mains", Forb: "f"})

	items := []*model.Item{
		{ID: "7", Name: "Flat White", ItemGroupID: "10"},
		{ID: "8", Name: "Long Black", ItemGroupID: "10"},
		{ID: "9", Name: "Burger", ItemGroupID: "20"},
	}
	items[0].Prices[0] = decimal.RequireFromString("4.50")
	for _, item := range items {
		if err := cat.RegisterItem(item); err != nil {
			t.Fatalf("RegisterItem(%s) failed: %v", item.ID, err)
		}
	}

	cat.RegisterModifier(&model.Modifier{ID: "31", Name: "Soy Milk", Price: decimal.RequireFromString("0.50")})
	cat.RegisterModifier(&model.Modifier{ID: "32", Name: "Extra Shot", Price: decimal.RequireFromString("0.50")})

	return cat
}

func TestLookups(t *testing.T) {
	cat := buildCatalog(t)

	// Known ids return the exact registered instance.
	item, ok := cat.FindItem("7")
	if !ok || item.Name != "Flat White" {
		t.Fatalf("FindItem(7) = (%v, %v)", item, ok)
	}
	if group, ok := cat.FindItemGroup("20"); !ok || group.Name != "Mains" {
		t.Fatalf("FindItemGroup(20) = (%v, %v)", group, ok)
	}
	if mod, ok := cat.FindModifier("31"); !ok || mod.Name != "Soy Milk" {
		t.Fatalf("FindModifier(31) = (%v, %v)", mod, ok)
	}

	// Unknown ids report not-found, never panic or error.
	if _, ok := cat.FindItem("999"); ok {
		t.Error("FindItem(999) reported found")
	}
	if _, ok := cat.FindItemGroup("999"); ok {
		t.Error("FindItemGroup(999) reported found")
	}
	if _, ok := cat.FindModifier("999"); ok {
		t.Error("FindModifier(999) reported found")
	}
	if _, ok := cat.FindModifierGroup("999"); ok {
		t.Error("FindModifierGroup(999) reported found")
	}
}

// Registering an item adds it both to the flat list and to its owning
// group's collection.
func TestDoubleRegistration(t *testing.T) {
	cat := buildCatalog(t)

	if len(cat.Items()) != 3 {
		t.Fatalf("flat item list has %d entries, want 3", len(cat.Items()))
	}
	group, _ := cat.FindItemGroup("10")
	if len(group.Items) != 2 {
		t.Fatalf("group 10 has %d items, want 2", len(group.Items))
	}
	if group.Items[0].ID != "7" || group.Items[1].ID != "8" {
		t.Errorf("group order = %s, %s; want 7, 8", group.Items[0].ID, group.Items[1].ID)
	}
}

func TestRegisterItemUnknownGroup(t *testing.T) {
	cat := buildCatalog(t)

	err := cat.RegisterItem(&model.Item{ID: "99", Name: "Ghost", ItemGroupID: "404"})
	var mapErr *wberr.MappingError
	if !errors.As(err, &mapErr) {
		t.Fatalf("expected MappingError, got %v", err)
	}
}

func TestRegisterModifierGroupLinksBothDirections(t *testing.T) {
	cat := buildCatalog(t)

	group := &model.ModifierGroup{ID: "50", Name: "Milk Options"}
	if err := cat.RegisterModifierGroup(group, []string{"7", "8"}, []string{"31"}); err != nil {
		t.Fatalf("RegisterModifierGroup failed: %v", err)
	}

	if got := cat.ModifierGroupsForItem("7"); len(got) != 1 || got[0] != group {
		t.Errorf("ModifierGroupsForItem(7) = %v", got)
	}
	if got := cat.ItemsForModifierGroup("50"); len(got) != 2 {
		t.Errorf("ItemsForModifierGroup(50) has %d entries, want 2", len(got))
	}
	if got := cat.ModifiersForGroup("50"); len(got) != 1 || got[0].ID != "31" {
		t.Errorf("ModifiersForGroup(50) = %v", got)
	}
	// Item 9 was never linked.
	if got := cat.ModifierGroupsForItem("9"); len(got) != 0 {
		t.Errorf("ModifierGroupsForItem(9) = %v, want none", got)
	}
}

// Re-registering the same link leaves exactly one entry.
func TestIdempotentLinking(t *testing.T) {
	cat := buildCatalog(t)

	group := &model.ModifierGroup{ID: "50", Name: "Milk Options"}
	err := cat.RegisterModifierGroup(group, []string{"7", "7", "7"}, []string{"31", "31"})
	if err != nil {
		t.Fatalf("RegisterModifierGroup failed: %v", err)
	}

	if got := cat.ModifierGroupsForItem("7"); len(got) != 1 {
		t.Errorf("item link count = %d, want 1", len(got))
	}
	if got := cat.ItemsForModifierGroup("50"); len(got) != 1 {
		t.Errorf("group link count = %d, want 1", len(got))
	}
	if got := cat.ModifiersForGroup("50"); len(got) != 1 {
		t.Errorf("modifier link count = %d, want 1", len(got))
	}
}

func TestRegisterModifierGroupUnresolvedReference(t *testing.T) {
	cat := buildCatalog(t)

	group := &model.ModifierGroup{ID: "50", Name: "Milk Options"}
	err := cat.RegisterModifierGroup(group, []string{"404"}, nil)
	var mapErr *wberr.MappingError
	if !errors.As(err, &mapErr) {
		t.Fatalf("expected MappingError for unknown item, got %v", err)
	}

	// A failed registration must not leave the group behind.
	if _, ok := cat.FindModifierGroup("50"); ok {
		t.Error("failed registration left the modifier group in the catalog")
	}
}

func TestRenderTree(t *testing.T) {
	cat := buildCatalog(t)
	group := &model.ModifierGroup{ID: "50", Name: "Milk Options"}
	if err := cat.RegisterModifierGroup(group, []string{"7"}, []string{"31"}); err != nil {
		t.Fatalf("RegisterModifierGroup failed: %v", err)
	}

	// Groups only.
	tree := cat.RenderTree(false, false)
	if !strings.Contains(tree, "Beverages") || !strings.Contains(tree, "Flat White") {
		t.Errorf("tree missing groups/items:\n%s", tree)
	}
	if strings.Contains(tree, "Milk Options") {
		t.Errorf("tree shows modifier groups without the flag:\n%s", tree)
	}

	// Nesting order: group before its items, item before its modifier
	// groups, modifier group before its modifiers.
	tree = cat.RenderTree(true, true)
	posGroup := strings.Index(tree, "Beverages")
	posItem := strings.Index(tree, "Flat White")
	posModGroup := strings.Index(tree, "Milk Options")
	posMod := strings.Index(tree, "Soy Milk")
	if !(posGroup < posItem && posItem < posModGroup && posModGroup < posMod) {
		t.Errorf("unexpected nesting order:\n%s", tree)
	}
}
