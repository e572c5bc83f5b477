package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/JoelKishanX/payment/internal/models"
	rediscache "github.com/JoelKishanX/payment/internal/redis"
)

// uniqueViolation is the PostgreSQL error code for unique constraint breaches.
const uniqueViolation = "23505"

// PostgresStore implements TransactionStore against PostgreSQL, the source of
// truth. An optional Redis cache serves FindByID reads; it is refreshed on
// insert and evicted on status updates.
type PostgresStore struct {
	db    *sql.DB
	cache *rediscache.TransactionCache
}

// NewPostgresStore creates a store over the given database handle. cache may
// be nil to disable the read cache.
func NewPostgresStore(db *sql.DB, cache *rediscache.TransactionCache) *PostgresStore {
	return &PostgresStore{db: db, cache: cache}
}

func (s *PostgresStore) Insert(ctx context.Context, tx *models.Transaction) error {
	query := `
		INSERT INTO transactions (transaction_id, settlement_ref, amount, description, payee_address, status, created_at, settled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		tx.TransactionID, nullString(tx.SettlementRef), tx.Amount,
		tx.Description, tx.PayeeAddress, string(tx.Status),
		tx.CreatedAt, nullTime(tx.SettledAt),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return models.ErrDuplicateTransaction
		}
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	if s.cache != nil {
		s.cache.Set(ctx, tx)
	}
	return nil
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, id string, status models.Status, settlementRef *string, settledAt time.Time) error {
	query := `
		UPDATE transactions
		SET status = $2, settlement_ref = $3, settled_at = $4
		WHERE transaction_id = $1
	`
	result, err := s.db.ExecContext(ctx, query, id, string(status), nullString(settlementRef), settledAt)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", id, err)
	}
	if affected == 0 {
		return models.ErrTransactionNotFound
	}

	// Evict rather than rewrite so the next read warms the cache from the
	// row Postgres actually stored.
	if s.cache != nil {
		s.cache.Delete(ctx, id)
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
