package command

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/JoelKishanX/payment/internal/clock"
	"github.com/JoelKishanX/payment/internal/config"
	"github.com/JoelKishanX/payment/internal/models"
	"github.com/JoelKishanX/payment/internal/repository"
	"github.com/JoelKishanX/payment/internal/scheduler"
)

// Exercises the full lifecycle against the real scheduler: every created
// transaction must leave pending after the resolution delay, exactly once.
func TestLifecycleResolvesAfterDelay(t *testing.T) {
	store := repository.NewMemoryStore()
	logger := slog.Default()
	sched := scheduler.New(logger, 4)

	cfg := config.PaymentsConfig{
		ResolutionDelay: 20 * time.Millisecond,
		SuccessRate:     0.9,
	}
	svc := NewTransactionCommandService(store, sched, nil, clock.NewSystem(), logger, cfg)
	sched.Start(svc.Resolve)
	defer sched.Stop()

	const n = 10
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		tx, err := svc.Create(context.Background(), float64(10+i), "", "")
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if tx.Status != models.StatusPending {
			t.Fatalf("fresh transaction must be pending, got %s", tx.Status)
		}
		ids = append(ids, tx.TransactionID)
	}

	deadline := time.Now().Add(2 * time.Second)
	pending := make(map[string]bool, n)
	for _, id := range ids {
		pending[id] = true
	}
	for len(pending) > 0 {
		if time.Now().After(deadline) {
			t.Fatalf("%d transactions still pending after deadline", len(pending))
		}
		for id := range pending {
			tx, err := store.FindByID(context.Background(), id)
			if err != nil {
				t.Fatalf("find failed: %v", err)
			}
			if tx.Status == models.StatusPending {
				continue
			}
			if !tx.Status.Terminal() {
				t.Fatalf("unexpected status %s", tx.Status)
			}
			if (tx.SettlementRef != nil) != (tx.Status == models.StatusSuccess) {
				t.Fatalf("settlementRef presence must match success: %+v", tx)
			}
			if tx.SettledAt == nil {
				t.Fatalf("settledAt missing on resolved transaction: %+v", tx)
			}
			delete(pending, id)
		}
		time.Sleep(5 * time.Millisecond)
	}

	// Transitions are terminal: a later read observes the same state.
	first := make(map[string]models.Status, n)
	for _, id := range ids {
		tx, _ := store.FindByID(context.Background(), id)
		first[id] = tx.Status
	}
	time.Sleep(50 * time.Millisecond)
	for _, id := range ids {
		tx, _ := store.FindByID(context.Background(), id)
		if tx.Status != first[id] {
			t.Fatalf("status of %s changed after resolution: %s -> %s", id, first[id], tx.Status)
		}
	}
}
