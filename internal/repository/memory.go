package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/JoelKishanX/payment/internal/models"
)

// MemoryStore is an in-memory TransactionStore. It backs unit tests and the
// memory store driver for running without external infrastructure.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]models.Transaction
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]models.Transaction)}
}

func (s *MemoryStore) Insert(_ context.Context, tx *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[tx.TransactionID]; exists {
		return models.ErrDuplicateTransaction
	}
	s.records[tx.TransactionID] = *tx
	return nil
}

func (s *MemoryStore) FindByID(_ context.Context, id string) (*models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, ok := s.records[id]
	if !ok {
		return nil, models.ErrTransactionNotFound
	}
	return &tx, nil
}

func (s *MemoryStore) UpdateStatus(_ context.Context, id string, status models.Status, settlementRef *string, settledAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, ok := s.records[id]
	if !ok {
		return models.ErrTransactionNotFound
	}
	tx.Status = status
	tx.SettlementRef = settlementRef
	tx.SettledAt = &settledAt
	s.records[id] = tx
	return nil
}

func (s *MemoryStore) Find(_ context.Context, filter Filter, offset, limit int) ([]models.Transaction, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []models.Transaction
	for _, tx := range s.records {
		if matches(tx, filter) {
			matched = append(matched, tx)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (s *MemoryStore) CountAll(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.records)), nil
}

func (s *MemoryStore) CountByStatus(_ context.Context, status models.Status) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, tx := range s.records {
		if tx.Status == status {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) SumAmountByStatus(_ context.Context, status models.Status) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sum float64
	for _, tx := range s.records {
		if tx.Status == status {
			sum += tx.Amount
		}
	}
	return sum, nil
}

func (s *MemoryStore) GroupByDay(_ context.Context, since time.Time) ([]models.DailyStat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byDay := make(map[string]*models.DailyStat)
	for _, tx := range s.records {
		if tx.CreatedAt.Before(since) {
			continue
		}
		day := tx.CreatedAt.UTC().Format("2006-01-02")
		stat, ok := byDay[day]
		if !ok {
			stat = &models.DailyStat{Day: day}
			byDay[day] = stat
		}
		stat.Count++
		stat.Amount += tx.Amount
	}

	stats := make([]models.DailyStat, 0, len(byDay))
	for _, stat := range byDay {
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Day < stats[j].Day
	})
	return stats, nil
}

func matches(tx models.Transaction, filter Filter) bool {
	if filter.Status != "" && tx.Status != filter.Status {
		return false
	}
	if filter.Start != nil && tx.CreatedAt.Before(*filter.Start) {
		return false
	}
	if filter.End != nil && tx.CreatedAt.After(*filter.End) {
		return false
	}
	return true
}
