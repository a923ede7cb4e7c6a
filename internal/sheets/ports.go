package sheets

import "context"

// Row is one ledger line as it appears in the shared spreadsheet. Amounts
// are carried as already-formatted decimal strings; the spreadsheet is a
// read-only family view, not a source of truth.
type Row struct {
	TransactionID string
	Date          string // YYYY-MM-DD
	Type          string // income | expense
	Description   string
	Amount        string
	Category      string
	Member        string
	Account       string
}

// Ports for outbound ledger export adapters.
type (
	LedgerWriter interface {
		Append(ctx context.Context, row Row) (rowRef string, err error)
	}

	// LedgerDeleter removes a previously exported row by transaction id.
	LedgerDeleter interface {
		Delete(ctx context.Context, transactionID string) error
	}
)
