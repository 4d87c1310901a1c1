// Package config loads the engine's configuration. Secrets come from the
// environment (optionally a .env file); the ledger table layout comes from
// a yaml file so field identifiers can change without a deploy.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LedgerConfig describes the ledger base, table, and the mapping from the
// human field names used in code to storage field identifiers.
type LedgerConfig struct {
	BaseID string            `yaml:"base_id"`
	Table  string            `yaml:"table"`
	Schema map[string]string `yaml:"schema"`
}

// Config holds everything the webhook and the pipeline collaborators need.
type Config struct {
	Port string

	FundAddress    string
	AliasLocalPart string

	AirtableAPIKey string
	SendgridAPIKey string
	AlertFrom      string

	Ledger LedgerConfig
}

// Load reads the environment (after a best-effort .env load) and, when
// ledgerConfigPath is non-empty, the yaml ledger layout.
func Load(ledgerConfigPath string) (*Config, error) {
	// A missing .env is fine; deployed environments inject real env vars.
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getenv("PORT", "8080"),
		FundAddress:    getenv("FUND_EMAIL_ADDRESS", "fund@bedstuystrong.com"),
		AliasLocalPart: getenv("FUND_ALIAS_LOCAL_PART", "funds"),
		AirtableAPIKey: os.Getenv("AIRTABLE_API_KEY"),
		SendgridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		AlertFrom:      getenv("ALERT_FROM_ADDRESS", "finance-script@em9481.mail.bedstuystrong.com"),
		Ledger: LedgerConfig{
			BaseID: os.Getenv("AIRTABLE_BASE_ID"),
			Table:  getenv("AIRTABLE_TABLE", "transactions"),
		},
	}

	if ledgerConfigPath != "" {
		data, err := os.ReadFile(ledgerConfigPath)
		if err != nil {
			return nil, fmt.Errorf("reading ledger config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg.Ledger); err != nil {
			return nil, fmt.Errorf("parsing ledger config: %w", err)
		}
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
