// =============================================================================
// WizBang Client - Invoice Command
// =============================================================================
//
// This file defines the 'invoice' command, which looks up a single invoice
// and prints a summary.
//
// COMMAND USAGE:
//   wizbang invoice [flags]
//
// SELECTORS (exactly one mode is honored, in this precedence):
//   --id                  : Invoice id
//   --number + --outlet   : Invoice number within an outlet
//   --txtcode             : Text code
//
// FLAGS:
//   --export : Also write the invoice to an XLSX workbook
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wizbangpos/wizbang-client/internal/client"
	"github.com/wizbangpos/wizbang-client/internal/export"
	"github.com/wizbangpos/wizbang-client/internal/model"
	"github.com/wizbangpos/wizbang-client/pkg/utils"
)

// Invoice selector flags.
var (
	invoiceID      string
	invoiceNumber  string
	invoiceOutlet  string
	invoiceTxtCode string
	exportInvoice  bool
)

// invoiceCmd represents the 'invoice' command.
var invoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Look up one invoice and print a summary",
	Long: `The invoice command fetches a single invoice from the server. Exactly one
selector mode is honored: --id first; else --number together with --outlet;
else --txtcode. Supplying no valid selector is an error, not an empty result.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runInvoice()
	},
}

// init registers the invoice command and its flags.
func init() {
	rootCmd.AddCommand(invoiceCmd)

	invoiceCmd.Flags().StringVar(&invoiceID, "id", "", "Invoice id")
	invoiceCmd.Flags().StringVar(&invoiceNumber, "number", "", "Invoice number (requires --outlet)")
	invoiceCmd.Flags().StringVar(&invoiceOutlet, "outlet", "", "Outlet id (requires --number)")
	invoiceCmd.Flags().StringVar(&invoiceTxtCode, "txtcode", "", "Text code")
	invoiceCmd.Flags().BoolVar(&exportInvoice, "export", false, "Write the invoice to an XLSX workbook")
}

// runInvoice fetches the invoice, prints it, and optionally exports it.
func runInvoice() error {
	wb, cfg, err := newClient()
	if err != nil {
		return err
	}

	inv, err := wb.GetInvoice(client.InvoiceQuery{
		ID:      invoiceID,
		Number:  invoiceNumber,
		Outlet:  invoiceOutlet,
		TxtCode: invoiceTxtCode,
	})
	if err != nil {
		return err
	}

	printInvoice(inv)

	if !exportInvoice {
		return nil
	}

	path, err := utils.BuildExportPath(cfg.ExportDir, cfg.ExportNameFormat, "invoice")
	if err != nil {
		return err
	}
	if err := export.WriteInvoice(inv, path); err != nil {
		return fmt.Errorf("failed to export invoice: %w", err)
	}

	fmt.Printf("Exported invoice to %s\n", path)
	return nil
}

// printInvoice prints a human-readable invoice summary.
func printInvoice(inv *model.Invoice) {
	fmt.Printf("Invoice %s (#%s, outlet %s) - %s\n", inv.ID, inv.Number, inv.Outlet, inv.Type)
	if inv.RefundNote != nil {
		fmt.Printf("  Refund note: %s\n", *inv.RefundNote)
	}
	if inv.GroupType != "" {
		fmt.Printf("  %s", inv.GroupType)
		if inv.TableNumber != "" {
			fmt.Printf(" %s", inv.TableNumber)
		}
		if inv.GroupName != "" {
			fmt.Printf(" (%s)", inv.GroupName)
		}
		fmt.Println()
	}
	if !inv.Timestamp.IsZero() {
		fmt.Printf("  %s, staff %s, terminal %s\n",
			inv.Timestamp.Format("2006-01-02 15:04:05"), inv.StaffName, inv.Terminal)
	}

	for _, line := range inv.Lines {
		qty := "?"
		if q, err := line.Quantity(); err == nil {
			qty = q.String()
		}
		fmt.Printf("  %s x %s  %s\n", qty, line.Abbreviation, line.Total.StringFixed(2))
	}

	fmt.Printf("  Subtotal: %s  Tax: %s  Balance: %s\n",
		inv.Subtotal.StringFixed(2), inv.SalesTax.StringFixed(2), inv.BalanceDue.StringFixed(2))

	for _, tender := range inv.Tenders {
		fmt.Printf("  Tender %s: %s\n", tender.TenderType, tender.Amount.StringFixed(2))
	}
	fmt.Printf("  Tendered: %s  Change: %s\n", inv.Tendered.StringFixed(2), inv.Change.StringFixed(2))
}
