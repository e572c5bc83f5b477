package query

import (
	"context"
	"testing"
	"time"

	"github.com/JoelKishanX/payment/internal/clock"
	"github.com/JoelKishanX/payment/internal/models"
	"github.com/JoelKishanX/payment/internal/repository"
)

var statsNow = time.Date(2026, 8, 20, 18, 0, 0, 0, time.UTC)

func insertAt(t *testing.T, store *repository.MemoryStore, id string, status models.Status, amount float64, createdAt time.Time) {
	t.Helper()
	tx := &models.Transaction{
		TransactionID: id,
		Amount:        amount,
		Description:   models.DefaultDescription,
		PayeeAddress:  models.DefaultPayeeAddress,
		Status:        status,
		CreatedAt:     createdAt,
	}
	if err := store.Insert(context.Background(), tx); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
}

func TestSummaryEmptyStore(t *testing.T) {
	svc := NewStatsService(repository.NewMemoryStore(), clock.NewFixed(statsNow))

	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary.TotalCount != 0 || summary.TotalSuccessfulAmount != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.Daily == nil || len(summary.Daily) != 0 {
		t.Fatalf("daily series must be an empty slice, got %#v", summary.Daily)
	}
}

func TestSummaryCounts(t *testing.T) {
	store := repository.NewMemoryStore()
	insertAt(t, store, "TXN1", models.StatusSuccess, 100, statsNow.Add(-time.Hour))
	insertAt(t, store, "TXN2", models.StatusSuccess, 250, statsNow.Add(-2*time.Hour))
	insertAt(t, store, "TXN3", models.StatusFailed, 75, statsNow.Add(-3*time.Hour))
	insertAt(t, store, "TXN4", models.StatusPending, 60, statsNow.Add(-4*time.Hour))

	svc := NewStatsService(store, clock.NewFixed(statsNow))
	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}

	if summary.TotalCount != 4 || summary.SuccessCount != 2 || summary.PendingCount != 1 || summary.FailedCount != 1 {
		t.Fatalf("unexpected counts: %+v", summary)
	}
	if summary.TotalCount != summary.SuccessCount+summary.PendingCount+summary.FailedCount {
		t.Fatalf("count identity violated: %+v", summary)
	}
	if summary.TotalSuccessfulAmount != 350 {
		t.Fatalf("expected successful amount 350, got %v", summary.TotalSuccessfulAmount)
	}
}

func TestSummaryDailySeries(t *testing.T) {
	store := repository.NewMemoryStore()
	// Two on the same day inside the window, one on another day, one outside.
	insertAt(t, store, "TXN1", models.StatusSuccess, 100, statsNow.Add(-24*time.Hour))
	insertAt(t, store, "TXN2", models.StatusFailed, 50, statsNow.Add(-25*time.Hour))
	insertAt(t, store, "TXN3", models.StatusPending, 20, statsNow.Add(-3*24*time.Hour))
	insertAt(t, store, "TXN4", models.StatusSuccess, 999, statsNow.Add(-10*24*time.Hour))

	svc := NewStatsService(store, clock.NewFixed(statsNow))
	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}

	if len(summary.Daily) != 2 {
		t.Fatalf("expected 2 days inside the 7-day window, got %d: %+v", len(summary.Daily), summary.Daily)
	}
	if summary.Daily[0].Day >= summary.Daily[1].Day {
		t.Fatalf("daily series not ascending: %+v", summary.Daily)
	}
	if summary.Daily[1].Day != "2026-08-19" || summary.Daily[1].Count != 2 || summary.Daily[1].Amount != 150 {
		t.Fatalf("unexpected aggregate for 2026-08-19: %+v", summary.Daily[1])
	}
}
