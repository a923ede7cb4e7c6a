package google

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"famfin/internal/sheets"
)

const testClientJSON = `{"installed":{"client_id":"test","client_secret":"test","redirect_uris":["http://localhost"],"auth_uri":"https://accounts.google.com/o/oauth2/auth","token_uri":"https://oauth2.googleapis.com/token"}}`
const testTokenJSON = `{"access_token":"test-token","token_type":"Bearer","refresh_token":"test-refresh","expiry":"2099-01-01T00:00:00Z"}`

func TestNewClient_MissingSpreadsheetID(t *testing.T) {
	_, err := NewClient(context.Background(), Options{})
	if err == nil || !strings.Contains(err.Error(), "spreadsheet id") {
		t.Fatalf("expected missing spreadsheet id error, got %v", err)
	}
}

func TestNewClient_MissingCredentials(t *testing.T) {
	_, err := NewClient(context.Background(), Options{SpreadsheetID: "sheet-123"})
	if err == nil || !strings.Contains(err.Error(), "oauth client credentials") {
		t.Fatalf("expected credentials error, got %v", err)
	}
}

func TestNewClient_InlineCredentials(t *testing.T) {
	cli, err := NewClient(context.Background(), Options{
		SpreadsheetID:   "sheet-123",
		OAuthClientJSON: testClientJSON,
		OAuthTokenJSON:  testTokenJSON,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if cli.sheetName != defaultSheetName {
		t.Errorf("sheet name = %q, want default %q", cli.sheetName, defaultSheetName)
	}
}

func TestNewClient_TokenFromFile(t *testing.T) {
	dir := t.TempDir()
	tokenPath := filepath.Join(dir, "token.json")
	if err := os.WriteFile(tokenPath, []byte(testTokenJSON), 0600); err != nil {
		t.Fatal(err)
	}

	cli, err := NewClient(context.Background(), Options{
		SpreadsheetID:   "sheet-123",
		SheetName:       "Family Ledger",
		OAuthClientJSON: testClientJSON,
		OAuthTokenFile:  tokenPath,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if cli.sheetName != "Family Ledger" {
		t.Errorf("sheet name = %q", cli.sheetName)
	}
}

func TestNewClient_MalformedToken(t *testing.T) {
	_, err := NewClient(context.Background(), Options{
		SpreadsheetID:   "sheet-123",
		OAuthClientJSON: testClientJSON,
		OAuthTokenJSON:  `not json`,
	})
	if err == nil || !strings.Contains(err.Error(), "parse oauth token") {
		t.Fatalf("expected token parse error, got %v", err)
	}
}

func TestCredentialBytes_InlineWins(t *testing.T) {
	b, err := credentialBytes(`{"a":1}`, "/nonexistent/path.json")
	if err != nil {
		t.Fatalf("credentialBytes: %v", err)
	}
	if string(b) != `{"a":1}` {
		t.Errorf("got %q", b)
	}
}

func TestRowValues_ColumnOrder(t *testing.T) {
	row := sheets.Row{
		TransactionID: "tx-1",
		Date:          "2025-01-15",
		Type:          "expense",
		Description:   "groceries",
		Amount:        "42.50",
		Category:      "Food",
		Member:        "Family",
		Account:       "Checking",
	}
	got := rowValues(row)
	want := []any{"tx-1", "2025-01-15", "expense", "groceries", "42.50", "Food", "Family", "Checking"}
	if len(got) != len(want) {
		t.Fatalf("got %d columns, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("column %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFindRowIndex(t *testing.T) {
	values := [][]any{
		{"Transaction"},
		{"tx-1"},
		{},
		{" tx-2 "},
	}
	tests := []struct {
		id   string
		want int
	}{
		{"tx-1", 1},
		{"tx-2", 3}, // whitespace trimmed
		{"tx-9", -1},
	}
	for _, tt := range tests {
		if got := findRowIndex(values, tt.id); got != tt.want {
			t.Errorf("findRowIndex(%q) = %d, want %d", tt.id, got, tt.want)
		}
	}
}
