package repository

import (
	"context"
	"time"

	"github.com/JoelKishanX/payment/internal/models"
)

// Filter narrows transaction listings. Zero values mean "no constraint":
// an empty Status matches every state, nil bounds leave createdAt open.
// When both bounds are set they form the closed interval [Start, End].
type Filter struct {
	Status models.Status
	Start  *time.Time
	End    *time.Time
}

// TransactionStore is the durable collection of transaction records.
// Implementations must be safe for concurrent use.
type TransactionStore interface {
	// Insert persists a new record. Returns models.ErrDuplicateTransaction
	// if the transaction id is already taken.
	Insert(ctx context.Context, tx *models.Transaction) error

	// FindByID returns a record or models.ErrTransactionNotFound.
	FindByID(ctx context.Context, id string) (*models.Transaction, error)

	// UpdateStatus applies the terminal transition for a transaction.
	// settlementRef is nil for failed resolutions. Returns
	// models.ErrTransactionNotFound if the id does not exist.
	UpdateStatus(ctx context.Context, id string, status models.Status, settlementRef *string, settledAt time.Time) error

	// Find returns a page of records matching the filter, sorted by
	// createdAt descending, along with the total matching count.
	Find(ctx context.Context, filter Filter, offset, limit int) ([]models.Transaction, int64, error)

	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status models.Status) (int64, error)

	// SumAmountByStatus totals the amounts of records in the given state,
	// 0 when none match.
	SumAmountByStatus(ctx context.Context, status models.Status) (float64, error)

	// GroupByDay aggregates records created at or after since, grouped by
	// UTC calendar day of createdAt, ascending. Days without records are
	// omitted.
	GroupByDay(ctx context.Context, since time.Time) ([]models.DailyStat, error)
}
