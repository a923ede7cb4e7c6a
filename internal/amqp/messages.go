package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// Sync actions. Upserts carry only the transaction id; the worker fetches
// the full record from the backend so the queue never holds stale copies.
const (
	ActionUpsert = "upsert"
	ActionDelete = "delete"
)

// TransactionSyncMessage is the lightweight queue payload for mirroring a
// ledger entry to the export spreadsheet.
type TransactionSyncMessage struct {
	TransactionID string    `json:"transaction_id"`
	Action        string    `json:"action"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewUpsertMessage creates a sync message for a created or updated entry.
func NewUpsertMessage(transactionID string) *TransactionSyncMessage {
	return &TransactionSyncMessage{
		TransactionID: transactionID,
		Action:        ActionUpsert,
		Timestamp:     time.Now(),
	}
}

// NewDeleteMessage creates a sync message for a removed entry.
func NewDeleteMessage(transactionID string) *TransactionSyncMessage {
	return &TransactionSyncMessage{
		TransactionID: transactionID,
		Action:        ActionDelete,
		Timestamp:     time.Now(),
	}
}

// Validate checks the message is routable before handling.
func (m *TransactionSyncMessage) Validate() error {
	if m.TransactionID == "" {
		return fmt.Errorf("empty transaction id")
	}
	if m.Action != ActionUpsert && m.Action != ActionDelete {
		return fmt.Errorf("unknown action %q", m.Action)
	}
	return nil
}

// ToJSON converts the message to JSON bytes
func (m *TransactionSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// FromJSON creates a message from JSON bytes
func TransactionSyncMessageFromJSON(data []byte) (*TransactionSyncMessage, error) {
	var msg TransactionSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
