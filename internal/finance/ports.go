// Package finance is the state container and derived-metrics engine: entity
// collections loaded from a persistence backend, session filter state, the
// aggregation functions the dashboard reads, the ledger filter pipeline and
// the bill lifecycle.
package finance

import (
	"context"

	"famfin/internal/core"
)

// Ports for persistence backends. Every entity kind exposes the same shape:
// list (optionally active-only), insert, update, soft-delete. Mutations are
// applied to the in-memory collections only after the backend call succeeds.
type (
	MemberRepository interface {
		ListMembers(ctx context.Context, onlyActive bool) ([]core.FamilyMember, error)
		InsertMember(ctx context.Context, m core.FamilyMember) error
		UpdateMember(ctx context.Context, m core.FamilyMember) error
		SoftDeleteMember(ctx context.Context, id string) error
	}

	CategoryRepository interface {
		ListCategories(ctx context.Context, onlyActive bool) ([]core.Category, error)
		InsertCategory(ctx context.Context, c core.Category) error
		UpdateCategory(ctx context.Context, c core.Category) error
		SoftDeleteCategory(ctx context.Context, id string) error
	}

	AccountRepository interface {
		ListAccounts(ctx context.Context, onlyActive bool) ([]core.Account, error)
		InsertAccount(ctx context.Context, a core.Account) error
		UpdateAccount(ctx context.Context, a core.Account) error
		SoftDeleteAccount(ctx context.Context, id string) error
	}

	TransactionRepository interface {
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
		GetTransaction(ctx context.Context, id string) (core.Transaction, error)
		InsertTransaction(ctx context.Context, t core.Transaction) error
		UpdateTransaction(ctx context.Context, t core.Transaction) error
		DeleteTransaction(ctx context.Context, id string) error
	}

	RecurringRepository interface {
		ListRecurring(ctx context.Context, onlyActive bool) ([]core.RecurringTransaction, error)
		InsertRecurring(ctx context.Context, r core.RecurringTransaction) error
		UpdateRecurring(ctx context.Context, r core.RecurringTransaction) error
		SoftDeleteRecurring(ctx context.Context, id string) error
	}

	// BillRepository deletes hard: paying a bill replaces its identity, so the
	// lifecycle needs removal plus insert-successor, not a flag flip.
	BillRepository interface {
		ListBills(ctx context.Context) ([]core.Bill, error)
		InsertBill(ctx context.Context, b core.Bill) error
		DeleteBill(ctx context.Context, id string) error
	}

	GoalRepository interface {
		ListGoals(ctx context.Context, onlyActive bool) ([]core.Goal, error)
		InsertGoal(ctx context.Context, g core.Goal) error
		UpdateGoal(ctx context.Context, g core.Goal) error
		SoftDeleteGoal(ctx context.Context, id string) error
	}
)

// Repository is the full persistence contract the store depends on. Any
// backend satisfying it is substitutable; the store never sees SQL, files or
// the network.
type Repository interface {
	MemberRepository
	CategoryRepository
	AccountRepository
	TransactionRepository
	RecurringRepository
	BillRepository
	GoalRepository
}
