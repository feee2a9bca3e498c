// =============================================================================
// WizBang Client - Order Command
// =============================================================================
//
// This file defines the 'order' command, which builds a place-order payload
// and prints it. No order is sent: the server has never shipped an
// order-submission endpoint in any observed revision, so the payload is the
// whole deliverable.
//
// COMMAND USAGE:
//   wizbang order --customer 12 --item 7=2 --item 9=1 [--on-account]
//
// =============================================================================

package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wizbangpos/wizbang-client/internal/model"
)

// Order command flags.
var (
	orderCustomerID string
	orderAccountID  string
	orderItems      []string
	orderOnAccount  bool
)

// orderCmd represents the 'order' command.
var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Build a place-order payload from catalog items",
	Long: `The order command resolves the given item ids against the loaded menu
catalog, builds the flat key-value order payload, and prints it. The payload
is what a submission endpoint would receive; submission itself is not part of
any observed server revision.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runOrder()
	},
}

// init registers the order command and its flags.
func init() {
	rootCmd.AddCommand(orderCmd)

	orderCmd.Flags().StringVar(&orderCustomerID, "customer", "", "Customer id (required)")
	orderCmd.Flags().StringVar(&orderAccountID, "account", "", "Customer account id (used with --on-account)")
	orderCmd.Flags().StringArrayVar(&orderItems, "item", nil, "Order line as itemid=qty (repeatable)")
	orderCmd.Flags().BoolVar(&orderOnAccount, "on-account", false, "Charge the order to the customer's account")

	orderCmd.MarkFlagRequired("customer")
	orderCmd.MarkFlagRequired("item")
}

// runOrder resolves order lines against the catalog and prints the payload.
func runOrder() error {
	wb, _, err := newClient()
	if err != nil {
		return err
	}

	order := &model.Order{}
	for _, arg := range orderItems {
		itemID, qty, err := parseOrderItem(arg)
		if err != nil {
			return err
		}

		item, ok := wb.Catalog().FindItem(itemID)
		if !ok {
			return fmt.Errorf("item %q is not in the menu catalog", itemID)
		}
		order.Lines = append(order.Lines, model.OrderLine{Item: item, Quantity: qty})
	}

	customer := &model.Customer{ID: orderCustomerID, AccountID: orderAccountID}

	payload, err := wb.PlaceOrder(order, customer, orderOnAccount)
	if err != nil {
		return err
	}

	// Print sorted for stable, diffable output.
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("%s=%s\n", key, payload.Get(key))
	}
	return nil
}

// parseOrderItem splits an "itemid=qty" flag value.
func parseOrderItem(arg string) (string, int, error) {
	itemID, qtyText, found := strings.Cut(arg, "=")
	if !found || itemID == "" {
		return "", 0, fmt.Errorf("invalid --item value %q, expected itemid=qty", arg)
	}
	qty, err := strconv.Atoi(qtyText)
	if err != nil || qty < 1 {
		return "", 0, fmt.Errorf("invalid quantity in --item value %q", arg)
	}
	return itemID, qty, nil
}
