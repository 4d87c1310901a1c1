package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("FUND_EMAIL_ADDRESS", "")
	t.Setenv("FUND_ALIAS_LOCAL_PART", "")
	t.Setenv("AIRTABLE_TABLE", "")
	t.Setenv("ALERT_FROM_ADDRESS", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.FundAddress != "fund@bedstuystrong.com" {
		t.Errorf("FundAddress = %q", cfg.FundAddress)
	}
	if cfg.AliasLocalPart != "funds" {
		t.Errorf("AliasLocalPart = %q", cfg.AliasLocalPart)
	}
	if cfg.Ledger.Table != "transactions" {
		t.Errorf("Ledger.Table = %q", cfg.Ledger.Table)
	}
	if cfg.AlertFrom != "finance-script@em9481.mail.bedstuystrong.com" {
		t.Errorf("AlertFrom = %q", cfg.AlertFrom)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("FUND_EMAIL_ADDRESS", "money@example.org")
	t.Setenv("AIRTABLE_API_KEY", "key-abc")
	t.Setenv("AIRTABLE_BASE_ID", "appXYZ")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.FundAddress != "money@example.org" {
		t.Errorf("FundAddress = %q", cfg.FundAddress)
	}
	if cfg.AirtableAPIKey != "key-abc" {
		t.Errorf("AirtableAPIKey = %q", cfg.AirtableAPIKey)
	}
	if cfg.Ledger.BaseID != "appXYZ" {
		t.Errorf("Ledger.BaseID = %q", cfg.Ledger.BaseID)
	}
}

func TestLoadLedgerYaml(t *testing.T) {
	t.Setenv("AIRTABLE_BASE_ID", "appFromEnv")

	path := filepath.Join(t.TempDir(), "ledger.yaml")
	doc := `base_id: appFromFile
table: finance_transactions
schema:
  notes: fldNotes01
  message_id: fldMsgID01
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// The yaml layout wins over the env defaults for the table shape.
	if cfg.Ledger.BaseID != "appFromFile" {
		t.Errorf("Ledger.BaseID = %q, want appFromFile", cfg.Ledger.BaseID)
	}
	if cfg.Ledger.Table != "finance_transactions" {
		t.Errorf("Ledger.Table = %q", cfg.Ledger.Table)
	}
	if cfg.Ledger.Schema["notes"] != "fldNotes01" {
		t.Errorf("Schema[notes] = %q", cfg.Ledger.Schema["notes"])
	}
}

func TestLoadLedgerYamlMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing ledger config file")
	}
}
