package query

import (
	"context"
	"time"

	"github.com/JoelKishanX/payment/internal/clock"
	"github.com/JoelKishanX/payment/internal/models"
	"github.com/JoelKishanX/payment/internal/repository"
)

// dailyWindow is the span of the daily time series in the summary.
const dailyWindow = 7 * 24 * time.Hour

// Summary aggregates the state of the whole transaction store.
type Summary struct {
	TotalCount            int64              `json:"totalCount"`
	SuccessCount          int64              `json:"successCount"`
	PendingCount          int64              `json:"pendingCount"`
	FailedCount           int64              `json:"failedCount"`
	TotalSuccessfulAmount float64            `json:"totalSuccessfulAmount"`
	Daily                 []models.DailyStat `json:"daily"`
}

// StatsService computes aggregate counters and the 7-day daily series. The
// counts are read independently, so under concurrent writes they are
// best-effort snapshots.
type StatsService struct {
	store repository.TransactionStore
	clk   clock.Clock
}

func NewStatsService(store repository.TransactionStore, clk clock.Clock) *StatsService {
	return &StatsService{store: store, clk: clk}
}

func (s *StatsService) Summary(ctx context.Context) (*Summary, error) {
	summary := &Summary{}
	var err error

	if summary.TotalCount, err = s.store.CountAll(ctx); err != nil {
		return nil, err
	}
	if summary.SuccessCount, err = s.store.CountByStatus(ctx, models.StatusSuccess); err != nil {
		return nil, err
	}
	if summary.PendingCount, err = s.store.CountByStatus(ctx, models.StatusPending); err != nil {
		return nil, err
	}
	if summary.FailedCount, err = s.store.CountByStatus(ctx, models.StatusFailed); err != nil {
		return nil, err
	}
	if summary.TotalSuccessfulAmount, err = s.store.SumAmountByStatus(ctx, models.StatusSuccess); err != nil {
		return nil, err
	}

	if summary.Daily, err = s.store.GroupByDay(ctx, s.clk.Now().Add(-dailyWindow)); err != nil {
		return nil, err
	}
	if summary.Daily == nil {
		summary.Daily = []models.DailyStat{}
	}
	return summary, nil
}
