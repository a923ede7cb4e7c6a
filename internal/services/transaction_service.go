package services

import (
	"context"
	"fmt"
	"log/slog"

	"famfin/internal/amqp"
	"famfin/internal/core"
	"famfin/internal/finance"
)

// SyncPublisher publishes ledger sync messages for the export worker.
type SyncPublisher interface {
	PublishTransactionSync(ctx context.Context, msg *amqp.TransactionSyncMessage) error
}

// TransactionService orchestrates ledger mutations across the store and the
// sync queue. The store write is authoritative; a failed publish is logged
// and the spreadsheet catches up on the next successful sync.
type TransactionService struct {
	store     *finance.Store
	publisher SyncPublisher
}

func NewTransactionService(store *finance.Store, publisher SyncPublisher) *TransactionService {
	return &TransactionService{
		store:     store,
		publisher: publisher,
	}
}

// Create saves a ledger entry and publishes an upsert sync message.
func (s *TransactionService) Create(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	created, err := s.store.AddTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("add transaction: %w", err)
	}

	s.publish(ctx, amqp.NewUpsertMessage(created.ID))
	return created, nil
}

// Update mutates a ledger entry and publishes an upsert sync message.
func (s *TransactionService) Update(ctx context.Context, id string, mutate func(*core.Transaction)) error {
	if err := s.store.UpdateTransaction(ctx, id, mutate); err != nil {
		return err
	}
	s.publish(ctx, amqp.NewUpsertMessage(id))
	return nil
}

// Delete removes a ledger entry and publishes a delete sync message.
func (s *TransactionService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, amqp.NewDeleteMessage(id))
	return nil
}

func (s *TransactionService) publish(ctx context.Context, msg *amqp.TransactionSyncMessage) {
	if s.publisher == nil {
		slog.WarnContext(ctx, "Sync publisher not available, skipping sync message",
			"transaction_id", msg.TransactionID,
			"action", msg.Action)
		return
	}
	if err := s.publisher.PublishTransactionSync(ctx, msg); err != nil {
		// Don't fail the request, the entry is saved locally.
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"transaction_id", msg.TransactionID,
			"action", msg.Action,
			"error", err)
	}
}
