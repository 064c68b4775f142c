package migrations

import (
	"io/fs"
	"strings"
	"testing"
)

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := fs.ReadDir(FS(), ".")
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}

	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	if len(names) < 2 {
		t.Fatalf("expected at least 2 migrations, got %v", names)
	}

	for _, name := range names {
		body, err := fs.ReadFile(FS(), name)
		if err != nil {
			t.Fatalf("ReadFile(%s) error = %v", name, err)
		}
		text := string(body)
		if !strings.Contains(text, "-- +goose Up") || !strings.Contains(text, "-- +goose Down") {
			t.Errorf("%s is missing goose annotations", name)
		}
	}
}

func TestSchemaCarriesLedgerConstraints(t *testing.T) {
	body, err := fs.ReadFile(FS(), "00001_init_schema.sql")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	text := string(body)
	for _, want := range []string{
		"chk_amount_not_zero",
		"chk_currency_format",
		"chk_email_format",
		"account_reconciliations",
		"recurring_transactions",
		"update_updated_at_column",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("schema missing %q", want)
		}
	}
}
