// =============================================================================
// WizBang Client - Account Types Command
// =============================================================================
//
// This file defines the 'accounttypes' command, which fetches the account
// types document and prints it as an indented tree. The endpoint has no
// dedicated domain model; the raw element structure is the useful output.
//
// COMMAND USAGE:
//   wizbang accounttypes
//
// =============================================================================

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wizbangpos/wizbang-client/internal/wbxml"
)

// accountTypesCmd represents the 'accounttypes' command.
var accountTypesCmd = &cobra.Command{
	Use:   "accounttypes",
	Short: "Fetch and print the account types document",

	RunE: func(cmd *cobra.Command, args []string) error {
		wb, _, err := newClient()
		if err != nil {
			return err
		}

		doc, err := wb.AccountTypes()
		if err != nil {
			return err
		}

		printNode(doc, 0)
		return nil
	},
}

// init registers the accounttypes command.
func init() {
	rootCmd.AddCommand(accountTypesCmd)
}

// printNode prints one element and its subtree, two spaces per level.
func printNode(node *wbxml.Node, depth int) {
	indent := strings.Repeat("  ", depth)

	fmt.Printf("%s%s", indent, node.Name())
	for _, attr := range node.Attrs {
		fmt.Printf(" %s=%q", attr.Name.Local, attr.Value)
	}
	if text := strings.TrimSpace(node.Text); text != "" {
		fmt.Printf(": %s", text)
	}
	fmt.Println()

	for i := range node.Children {
		printNode(&node.Children[i], depth+1)
	}
}
