// =============================================================================
// WizBang Client - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that the endpoint commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (wizbang)
//   ├── menuCmd         (wizbang menu)
//   ├── invoiceCmd      (wizbang invoice)
//   ├── orderCmd        (wizbang order)
//   ├── accountTypesCmd (wizbang accounttypes)
//   └── versionCmd      (wizbang version)
//
// CONFIGURATION:
//   The root command owns the global flags (--config, --host, --port,
//   --verbose) and the shared client construction used by the endpoint
//   commands. Flag values override the configuration file.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wizbangpos/wizbang-client/internal/client"
	"github.com/wizbangpos/wizbang-client/internal/config"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the client configuration file.
var cfgFile string

// hostFlag overrides the configured server host.
var hostFlag string

// portFlag overrides the configured server port.
var portFlag int

// verbose enables diagnostic logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "wizbang",
	Short: "WizBang POS client - Query menus, invoices, and account types over XML-HTTP",

	Long: `WizBang POS client is a CLI for the WizBang point-of-sale server's
XML-over-HTTP API. It loads the full menu catalog on connect, resolves the
item/modifier-group cross-references the server only expresses as IDs, and
exposes invoice and account-type lookups.

Example Usage:
  wizbang menu --host pos.local              # Print the menu tree
  wizbang menu --modifiers --export          # Include modifiers, export XLSX
  wizbang invoice --id 42                    # Look up invoice 42
  wizbang order --item 7=2 --customer 12     # Build an order payload`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"Path to the client configuration file",
	)

	rootCmd.PersistentFlags().StringVar(
		&hostFlag,
		"host",
		"",
		"WizBang server host (overrides the configuration file)",
	)

	rootCmd.PersistentFlags().IntVar(
		&portFlag,
		"port",
		0,
		"WizBang server port (overrides the configuration file)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// =============================================================================
// SHARED CLIENT CONSTRUCTION
// =============================================================================

// loadConfig resolves the effective client configuration from the config
// file and the override flags.
func loadConfig() (*config.ClientConfig, error) {
	var cfg *config.ClientConfig

	if cfgFile != "" {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		if hostFlag == "" {
			return nil, fmt.Errorf("either --config or --host is required")
		}
		cfg = config.Default(hostFlag, portFlag)
	}

	if hostFlag != "" {
		cfg.Host = hostFlag
	}
	if portFlag != 0 {
		cfg.Port = portFlag
	}
	return cfg, nil
}

// newClient builds a connected client (with its eagerly loaded catalog)
// from the effective configuration.
func newClient() (*client.WizBang, *config.ClientConfig, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	var logger client.Logger
	if verbose {
		logger = stderrLogger{}
	}

	wb, err := client.New(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return wb, cfg, nil
}

// stderrLogger prints client diagnostics to stderr when --verbose is set.
type stderrLogger struct{}

func (stderrLogger) Debug(msg string, args ...interface{}) { logLine("DEBUG", msg, args) }
func (stderrLogger) Info(msg string, args ...interface{})  { logLine("INFO", msg, args) }

func logLine(level, msg string, args []interface{}) {
	fmt.Fprintf(os.Stderr, "[%s] %s", level, msg)
	for i := 0; i+1 < len(args); i += 2 {
		fmt.Fprintf(os.Stderr, " %v=%v", args[i], args[i+1])
	}
	fmt.Fprintln(os.Stderr)
}
