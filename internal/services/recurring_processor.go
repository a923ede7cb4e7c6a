package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"famfin/internal/core"
	"famfin/internal/finance"
)

// RecurringProcessor materializes due recurring transaction templates into
// real ledger entries.
type RecurringProcessor struct {
	store   *finance.Store
	service *TransactionService
}

// NewRecurringProcessor creates a new recurring transaction processor
func NewRecurringProcessor(store *finance.Store, service *TransactionService) *RecurringProcessor {
	return &RecurringProcessor{
		store:   store,
		service: service,
	}
}

// ProcessDue materializes every active template that is due at now and
// stamps its last run time. Skipped or failing templates never stop the
// sweep.
func (p *RecurringProcessor) ProcessDue(ctx context.Context, now time.Time) (int, error) {
	if p.store == nil || p.service == nil {
		return 0, fmt.Errorf("processor not properly initialized")
	}

	templates := p.store.RecurringTransactions()

	slog.InfoContext(ctx, "Processing recurring transactions",
		"total_active", len(templates),
		"processing_date", now.Format("2006-01-02"))

	processedCount := 0

	for _, tmpl := range templates {
		if !tmpl.Active {
			continue
		}
		if tmpl.StartDate.After(now) {
			continue
		}
		if !tmpl.EndDate.IsZero() && now.After(tmpl.EndDate) {
			continue
		}

		checker, err := GetDuenessChecker(tmpl.Frequency)
		if err != nil {
			slog.ErrorContext(ctx, "Skipping template with unknown frequency",
				"recurring_id", tmpl.ID,
				"frequency", tmpl.Frequency)
			continue
		}
		if !checker.IsDue(tmpl.LastRunAt, now, tmpl.StartDate) {
			continue
		}

		entry := core.Transaction{
			Type:        tmpl.Type,
			Amount:      tmpl.Amount,
			Description: tmpl.Description,
			Date:        now,
			CategoryID:  tmpl.CategoryID,
			AccountID:   tmpl.AccountID,
			MemberID:    tmpl.MemberID,
			Recurring:   true,
			Status:      core.Completed,
		}

		created, err := p.service.Create(ctx, entry)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to create transaction from recurring template",
				"recurring_id", tmpl.ID,
				"description", tmpl.Description,
				"error", err)
			continue
		}

		err = p.store.UpdateRecurringTransaction(ctx, tmpl.ID, func(r *core.RecurringTransaction) {
			r.LastRunAt = now
		})
		if err != nil {
			// The entry exists; worst case the template fires again and the
			// duplicate is cleaned up by hand.
			slog.ErrorContext(ctx, "Failed to update last run time",
				"recurring_id", tmpl.ID,
				"error", err)
		}

		processedCount++
		slog.InfoContext(ctx, "Created transaction from recurring template",
			"recurring_id", tmpl.ID,
			"transaction_id", created.ID,
			"description", tmpl.Description,
			"amount", tmpl.Amount.String(),
			"frequency", tmpl.Frequency)
	}

	slog.InfoContext(ctx, "Recurring transaction processing complete",
		"processed", processedCount,
		"total_checked", len(templates))

	return processedCount, nil
}

// Run sweeps on the given interval until ctx is done.
func (p *RecurringProcessor) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Immediate first sweep so restarts don't delay due templates.
	if _, err := p.ProcessDue(ctx, time.Now()); err != nil {
		slog.ErrorContext(ctx, "Recurring sweep failed", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if _, err := p.ProcessDue(ctx, now); err != nil {
				slog.ErrorContext(ctx, "Recurring sweep failed", "error", err)
			}
		}
	}
}
