// =============================================================================
// WizBang Client - Menu Command
// =============================================================================
//
// This file defines the 'menu' command, which connects to the server,
// loads the menu catalog, and prints the nested group/item listing.
//
// COMMAND USAGE:
//   wizbang menu [flags]
//
// FLAGS:
//   --modifier-groups : Include each item's modifier groups in the tree
//   --modifiers       : Include modifiers (implies --modifier-groups)
//   --export          : Also write the catalog to an XLSX workbook
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wizbangpos/wizbang-client/internal/export"
	"github.com/wizbangpos/wizbang-client/pkg/utils"
)

// showModifierGroups includes modifier groups in the tree output.
var showModifierGroups bool

// showModifiers includes modifiers in the tree output.
var showModifiers bool

// exportMenu writes the catalog to an XLSX workbook after printing.
var exportMenu bool

// menuCmd represents the 'menu' command.
var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Load the menu catalog and print it as a tree",
	Long: `The menu command performs the client's eager menu load and prints the
resulting catalog as a nested listing: item groups in catalog order, items in
group order, and optionally each item's modifier groups and their modifiers.

With --export, the catalog is also written to an XLSX workbook with one sheet
per entity kind, including the resolved item/modifier-group links.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runMenu()
	},
}

// init registers the menu command and its flags.
func init() {
	rootCmd.AddCommand(menuCmd)

	menuCmd.Flags().BoolVar(
		&showModifierGroups,
		"modifier-groups",
		false,
		"Include each item's modifier groups in the tree",
	)

	menuCmd.Flags().BoolVar(
		&showModifiers,
		"modifiers",
		false,
		"Include modifiers in the tree (implies --modifier-groups)",
	)

	menuCmd.Flags().BoolVar(
		&exportMenu,
		"export",
		false,
		"Write the catalog to an XLSX workbook in the export directory",
	)
}

// runMenu loads the catalog, prints the tree, and optionally exports it.
func runMenu() error {
	wb, cfg, err := newClient()
	if err != nil {
		return err
	}

	cat := wb.Catalog()
	fmt.Print(cat.RenderTree(showModifierGroups || showModifiers, showModifiers))

	if !exportMenu {
		return nil
	}

	path, err := utils.BuildExportPath(cfg.ExportDir, cfg.ExportNameFormat, "menu")
	if err != nil {
		return err
	}
	if err := export.WriteMenu(cat, path); err != nil {
		return fmt.Errorf("failed to export menu: %w", err)
	}

	fmt.Printf("Exported menu to %s\n", path)
	return nil
}
