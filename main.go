// =============================================================================
// WizBang Client - Main Entry Point
// =============================================================================
//
// This is the main entry point for the WizBang POS client CLI. It
// initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   wizbang menu            - Load and print the menu catalog
//   wizbang invoice         - Look up an invoice
//   wizbang order           - Build a place-order payload
//   wizbang accounttypes    - Fetch the account types document
//   wizbang version         - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Client, mappers, catalog, and domain model
//   - pkg/           : Shared utilities
//
// =============================================================================

package main

import (
	"github.com/wizbangpos/wizbang-client/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
