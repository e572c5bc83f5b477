package query

import (
	"context"
	"time"

	"github.com/JoelKishanX/payment/internal/models"
	"github.com/JoelKishanX/payment/internal/repository"
)

// StatusAll is the sentinel status filter value meaning "no status filter".
const StatusAll = "all"

// ListOptions carries client-supplied listing criteria. Zero values mean
// "unset"; non-positive Page and Limit fall back to 1 and the configured
// default respectively.
type ListOptions struct {
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

// Pagination describes the page of results returned by List.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int64 `json:"pages"`
}

// TransactionQueryService serves transaction reads: single lookups and
// filtered, paginated listings. It never coordinates with the lifecycle.
type TransactionQueryService struct {
	store        repository.TransactionStore
	defaultLimit int
}

func NewTransactionQueryService(store repository.TransactionStore, defaultLimit int) *TransactionQueryService {
	if defaultLimit < 1 {
		defaultLimit = 10
	}
	return &TransactionQueryService{store: store, defaultLimit: defaultLimit}
}

// Get returns a single transaction or models.ErrTransactionNotFound.
func (s *TransactionQueryService) Get(ctx context.Context, id string) (*models.Transaction, error) {
	return s.store.FindByID(ctx, id)
}

// List returns a page of transactions, newest first, with pagination
// metadata.
func (s *TransactionQueryService) List(ctx context.Context, opts ListOptions) ([]models.Transaction, Pagination, error) {
	page := opts.Page
	if page < 1 {
		page = 1
	}
	limit := opts.Limit
	if limit < 1 {
		limit = s.defaultLimit
	}

	filter := repository.Filter{
		Start: opts.StartDate,
		End:   opts.EndDate,
	}
	if opts.Status != "" && opts.Status != StatusAll {
		filter.Status = models.Status(opts.Status)
	}

	records, total, err := s.store.Find(ctx, filter, (page-1)*limit, limit)
	if err != nil {
		return nil, Pagination{}, err
	}
	if records == nil {
		records = []models.Transaction{}
	}

	pagination := Pagination{
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: (total + int64(limit) - 1) / int64(limit),
	}
	return records, pagination, nil
}
