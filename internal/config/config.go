// =============================================================================
// WizBang Client - Configuration Module
// =============================================================================
//
// This module loads the client configuration from a YAML file. The
// configuration covers two concerns:
//
//   1. Server connection: host, port, and request timeout.
//   2. Wire-contract revision: the WizBang server has shipped incompatible
//      schema revisions (the invoice endpoint is "invoice" on some servers
//      and "invoice.xml" on others, and the invoice id query parameter is
//      named "invoiceid" or "id" depending on revision). Rather than guess
//      a canonical value, both are configurable with the most common
//      revision as the default.
//
// ARCHITECTURE:
//   Loading follows a read -> parse -> defaults -> validate pipeline. A
//   malformed file is always an error; missing optional values fall back
//   to defaults.
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// CLIENT CONFIGURATION STRUCTURE
// =============================================================================

// ClientConfig holds the full client configuration.
type ClientConfig struct {
	// =========================================================================
	// SERVER CONNECTION
	// =========================================================================

	// Host is the WizBang server host name or address.
	Host string `yaml:"host"`

	// Port is the WizBang server port.
	// Default: 8080
	Port int `yaml:"port"`

	// TimeoutSeconds is the per-request HTTP timeout.
	// Default: 30
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// =========================================================================
	// ENDPOINT REVISION
	// =========================================================================

	// MenuEndpoint is the path of the menu endpoint.
	// Default: "menu.xml"
	MenuEndpoint string `yaml:"menu_endpoint"`

	// InvoiceEndpoint is the path of the invoice endpoint. Schema
	// revisions disagree: both "invoice" and "invoice.xml" are observed.
	// Default: "invoice"
	InvoiceEndpoint string `yaml:"invoice_endpoint"`

	// AccountTypesEndpoint is the path of the account types endpoint.
	// Default: "accounttypes.xml"
	AccountTypesEndpoint string `yaml:"account_types_endpoint"`

	// InvoiceIDParam is the query parameter name for invoice-by-id
	// lookups. Revisions disagree between "invoiceid" and "id".
	// Default: "invoiceid"
	InvoiceIDParam string `yaml:"invoice_id_param"`

	// =========================================================================
	// EXPORT SETTINGS
	// =========================================================================

	// ExportDir is the directory where exported XLSX reports are written.
	// Default: "./exports"
	ExportDir string `yaml:"export_dir"`

	// ExportNameFormat defines the export file name format.
	// Placeholders:
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {kind}      - Report kind ("menu", "invoice")
	// Default: "{kind}_{timestamp}.xlsx"
	ExportNameFormat string `yaml:"export_name_format"`
}

// =============================================================================
// CONFIGURATION LOADING
// =============================================================================

// Load reads the client configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file.
//
// RETURNS:
//   - A pointer to the ClientConfig struct.
//   - An error if the file cannot be read, parsed, or validated.
func Load(configPath string) (*ClientConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg ClientConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns a configuration with every default applied and the
// given server address. Useful for callers that configure the client
// programmatically instead of from a file.
func Default(host string, port int) *ClientConfig {
	cfg := &ClientConfig{Host: host, Port: port}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults sets default values for any unset options.
func applyDefaults(cfg *ClientConfig) {
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.TimeoutSeconds == 0 {
		cfg.TimeoutSeconds = 30
	}
	if cfg.MenuEndpoint == "" {
		cfg.MenuEndpoint = "menu.xml"
	}
	if cfg.InvoiceEndpoint == "" {
		cfg.InvoiceEndpoint = "invoice"
	}
	if cfg.AccountTypesEndpoint == "" {
		cfg.AccountTypesEndpoint = "accounttypes.xml"
	}
	if cfg.InvoiceIDParam == "" {
		cfg.InvoiceIDParam = "invoiceid"
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = "./exports"
	}
	if cfg.ExportNameFormat == "" {
		cfg.ExportNameFormat = "{kind}_{timestamp}.xlsx"
	}
}

// validate checks the configuration for values the client cannot work
// with.
func validate(cfg *ClientConfig) error {
	if cfg.Host == "" {
		return fmt.Errorf("host is required")
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("port %d is out of range", cfg.Port)
	}
	if cfg.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must not be negative")
	}
	return nil
}
