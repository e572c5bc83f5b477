package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/JoelKishanX/payment/internal/models"
)

const transactionColumns = "transaction_id, settlement_ref, amount, description, payee_address, status, created_at, settled_at"

// FindByID attempts the Redis cache first, falling back to PostgreSQL and
// warming the cache on a hit.
func (s *PostgresStore) FindByID(ctx context.Context, id string) (*models.Transaction, error) {
	if s.cache != nil {
		if tx, ok := s.cache.Get(ctx, id); ok {
			return tx, nil
		}
	}

	query := fmt.Sprintf("SELECT %s FROM transactions WHERE transaction_id = $1", transactionColumns)
	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, models.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %s: %w", id, err)
	}

	if s.cache != nil {
		s.cache.Set(ctx, tx)
	}
	return tx, nil
}

func (s *PostgresStore) Find(ctx context.Context, filter Filter, offset, limit int) ([]models.Transaction, int64, error) {
	where, args := buildFilter(filter)

	var total int64
	countQuery := "SELECT COUNT(*) FROM transactions" + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	pageQuery := fmt.Sprintf(
		"SELECT %s FROM transactions%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		transactionColumns, where, len(args)+1, len(args)+2,
	)
	rows, err := s.db.QueryContext(ctx, pageQuery, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var records []models.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan transaction: %w", err)
		}
		records = append(records, *tx)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	return records, total, nil
}

func (s *PostgresStore) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) CountByStatus(ctx context.Context, status models.Status) (int64, error) {
	var count int64
	query := "SELECT COUNT(*) FROM transactions WHERE status = $1"
	if err := s.db.QueryRowContext(ctx, query, string(status)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s transactions: %w", status, err)
	}
	return count, nil
}

func (s *PostgresStore) SumAmountByStatus(ctx context.Context, status models.Status) (float64, error) {
	var sum float64
	query := "SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE status = $1"
	if err := s.db.QueryRowContext(ctx, query, string(status)).Scan(&sum); err != nil {
		return 0, fmt.Errorf("failed to sum %s transactions: %w", status, err)
	}
	return sum, nil
}

func (s *PostgresStore) GroupByDay(ctx context.Context, since time.Time) ([]models.DailyStat, error) {
	query := `
		SELECT to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day,
		       COUNT(*), COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE created_at >= $1
		GROUP BY day
		ORDER BY day ASC
	`
	rows, err := s.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate daily stats: %w", err)
	}
	defer rows.Close()

	var stats []models.DailyStat
	for rows.Next() {
		var stat models.DailyStat
		if err := rows.Scan(&stat.Day, &stat.Count, &stat.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan daily stat: %w", err)
		}
		stats = append(stats, stat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to aggregate daily stats: %w", err)
	}
	return stats, nil
}

// buildFilter renders the filter as a WHERE clause and its arguments.
func buildFilter(filter Filter) (string, []any) {
	var conds []string
	var args []any

	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Start != nil {
		args = append(args, *filter.Start)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.End != nil {
		args = append(args, *filter.End)
		conds = append(conds, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*models.Transaction, error) {
	var tx models.Transaction
	var settlementRef sql.NullString
	var status string
	var settledAt sql.NullTime

	err := row.Scan(
		&tx.TransactionID, &settlementRef, &tx.Amount,
		&tx.Description, &tx.PayeeAddress, &status,
		&tx.CreatedAt, &settledAt,
	)
	if err != nil {
		return nil, err
	}

	tx.Status = models.Status(status)
	if settlementRef.Valid {
		tx.SettlementRef = &settlementRef.String
	}
	if settledAt.Valid {
		t := settledAt.Time
		tx.SettledAt = &t
	}
	return &tx, nil
}
