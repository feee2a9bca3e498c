// =============================================================================
// WizBang Client - XLSX Report Exporter
// =============================================================================
//
// This module writes menu snapshots and invoices to XLSX workbooks. The
// venues running WizBang manage their menus and reconciliation in
// spreadsheets, so the client exports directly to that format rather than
// to CSV.
//
// WORKBOOK LAYOUT:
//   Menu workbook:
//     - "Item Groups"     : one row per group
//     - "Items"           : one row per item, price tiers 1-6, linked
//                           modifier groups
//     - "Modifiers"       : one row per modifier
//     - "Modifier Groups" : one row per group with prompting flags and
//                           member lists
//   Invoice workbook:
//     - "Invoice" : header fields as key/value rows
//     - "Lines"   : one row per invoice line, derived quantity included
//     - "Tenders" : one row per tender line
//
// =============================================================================

package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/wizbangpos/wizbang-client/internal/catalog"
	"github.com/wizbangpos/wizbang-client/internal/model"
)

// =============================================================================
// MENU EXPORT
// =============================================================================

// WriteMenu writes one catalog snapshot to an XLSX workbook at path.
func WriteMenu(cat *catalog.Catalog, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeItemGroupsSheet(f, cat); err != nil {
		return err
	}
	if err := writeItemsSheet(f, cat); err != nil {
		return err
	}
	if err := writeModifiersSheet(f, cat); err != nil {
		return err
	}
	if err := writeModifierGroupsSheet(f, cat); err != nil {
		return err
	}

	// Drop the default sheet excelize creates.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeItemGroupsSheet(f *excelize.File, cat *catalog.Catalog) error {
	const sheet = "Item Groups"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", sheet, err)
	}

	if err := writeRow(f, sheet, 1, []interface{}{"ID", "Local ID", "Name", "F/B", "Items"}); err != nil {
		return err
	}
	for i, group := range cat.ItemGroups() {
		row := []interface{}{group.ID, group.LocalID, group.Name, group.Forb, len(group.Items)}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeItemsSheet(f *excelize.File, cat *catalog.Catalog) error {
	const sheet = "Items"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", sheet, err)
	}

	header := []interface{}{
		"ID", "Local ID", "Name", "Item Group",
		"Price 1", "Price 2", "Price 3", "Price 4", "Price 5", "Price 6",
		"Modifier Groups",
	}
	if err := writeRow(f, sheet, 1, header); err != nil {
		return err
	}

	for i, item := range cat.Items() {
		groupName := item.ItemGroupID
		if group, ok := cat.FindItemGroup(item.ItemGroupID); ok {
			groupName = group.Name
		}

		var linkedGroups []string
		for _, mg := range cat.ModifierGroupsForItem(item.ID) {
			linkedGroups = append(linkedGroups, mg.Name)
		}

		row := []interface{}{item.ID, item.LocalID, item.Name, groupName}
		for tier := 1; tier <= 6; tier++ {
			row = append(row, item.Price(tier).StringFixed(2))
		}
		row = append(row, strings.Join(linkedGroups, ", "))

		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeModifiersSheet(f *excelize.File, cat *catalog.Catalog) error {
	const sheet = "Modifiers"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", sheet, err)
	}

	if err := writeRow(f, sheet, 1, []interface{}{"ID", "Local ID", "Name", "F/B", "Price"}); err != nil {
		return err
	}
	for i, mod := range cat.Modifiers() {
		row := []interface{}{mod.ID, mod.LocalID, mod.Name, mod.Forb, mod.Price.StringFixed(2)}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeModifierGroupsSheet(f *excelize.File, cat *catalog.Catalog) error {
	const sheet = "Modifier Groups"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", sheet, err)
	}

	header := []interface{}{
		"ID", "Local ID", "Name", "F/B",
		"Force", "Multi", "Prompt", "Proceed",
		"Items", "Modifiers",
	}
	if err := writeRow(f, sheet, 1, header); err != nil {
		return err
	}

	for i, group := range cat.ModifierGroups() {
		var itemNames []string
		for _, item := range cat.ItemsForModifierGroup(group.ID) {
			itemNames = append(itemNames, item.Name)
		}
		var modNames []string
		for _, mod := range cat.ModifiersForGroup(group.ID) {
			modNames = append(modNames, mod.Name)
		}

		row := []interface{}{
			group.ID, group.LocalID, group.Name, group.Forb,
			group.Force, group.Multi, group.Prompt, group.Proceed,
			strings.Join(itemNames, ", "), strings.Join(modNames, ", "),
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// INVOICE EXPORT
// =============================================================================

// WriteInvoice writes one invoice to an XLSX workbook at path.
func WriteInvoice(inv *model.Invoice, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeInvoiceSheet(f, inv); err != nil {
		return err
	}
	if err := writeInvoiceLinesSheet(f, inv); err != nil {
		return err
	}
	if err := writeTendersSheet(f, inv); err != nil {
		return err
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeInvoiceSheet(f *excelize.File, inv *model.Invoice) error {
	const sheet = "Invoice"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", sheet, err)
	}

	timestamp := ""
	if !inv.Timestamp.IsZero() {
		timestamp = inv.Timestamp.Format("2006-01-02 15:04:05")
	}

	fields := [][]interface{}{
		{"Invoice ID", inv.ID},
		{"Number", inv.Number},
		{"Outlet", inv.Outlet},
		{"Type", string(inv.Type)},
		{"Group Type", string(inv.GroupType)},
		{"Group", inv.GroupName},
		{"Table", inv.TableNumber},
		{"Timestamp", timestamp},
		{"Staff", inv.StaffName},
		{"Terminal", inv.Terminal},
		{"Subtotal", inv.Subtotal.StringFixed(2)},
		{"Discount", inv.Discount.StringFixed(2)},
		{"Food", inv.FoodSubtotal.StringFixed(2)},
		{"Beverage", inv.BeverageSubtotal.StringFixed(2)},
		{"Sales Tax", inv.SalesTax.StringFixed(2)},
		{"Balance Due", inv.BalanceDue.StringFixed(2)},
		{"Tendered", inv.Tendered.StringFixed(2)},
		{"Change", inv.Change.StringFixed(2)},
		{"On Account", inv.OnAccount},
	}
	if inv.RefundNote != nil {
		fields = append(fields, []interface{}{"Refund Note", *inv.RefundNote})
	}
	if inv.AccountID != nil {
		fields = append(fields, []interface{}{"Account", *inv.AccountID})
	}

	for i, row := range fields {
		if err := writeRow(f, sheet, i+1, row); err != nil {
			return err
		}
	}
	return nil
}

func writeInvoiceLinesSheet(f *excelize.File, inv *model.Invoice) error {
	const sheet = "Lines"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", sheet, err)
	}

	header := []interface{}{
		"ID", "Item", "Abbreviation", "Qty", "Unit Price",
		"Total", "Discount", "Sales Tax", "Surcharge", "Weight Item",
	}
	if err := writeRow(f, sheet, 1, header); err != nil {
		return err
	}

	for i, line := range inv.Lines {
		// A line with a zero or absent unit price has no derivable
		// quantity; the cell stays blank rather than guessing.
		qty := ""
		if q, err := line.Quantity(); err == nil {
			qty = q.String()
		}
		unitPrice := ""
		if line.UnitPrice != nil {
			unitPrice = line.UnitPrice.StringFixed(2)
		}

		row := []interface{}{
			line.ID, line.ItemID, line.Abbreviation, qty, unitPrice,
			line.Total.StringFixed(2), line.Discount.StringFixed(2),
			line.SalesTax.StringFixed(2), line.Surcharge.StringFixed(2),
			line.WeightItem,
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeTendersSheet(f *excelize.File, inv *model.Invoice) error {
	const sheet = "Tenders"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", sheet, err)
	}

	if err := writeRow(f, sheet, 1, []interface{}{"ID", "Type", "Amount", "Tip", "Rounding"}); err != nil {
		return err
	}
	for i, tender := range inv.Tenders {
		row := []interface{}{
			tender.ID, tender.TenderType,
			tender.Amount.StringFixed(2), tender.Tip.StringFixed(2), tender.Rounding.StringFixed(2),
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

// writeRow writes one row of values starting at column A.
func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("failed to build cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("failed to write cell %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}
