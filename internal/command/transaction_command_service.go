package command

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/JoelKishanX/payment/internal/clock"
	"github.com/JoelKishanX/payment/internal/config"
	"github.com/JoelKishanX/payment/internal/events"
	"github.com/JoelKishanX/payment/internal/models"
	"github.com/JoelKishanX/payment/internal/repository"
	"github.com/JoelKishanX/payment/internal/utils"
)

// ResolutionScheduler schedules the deferred resolution of a transaction.
type ResolutionScheduler interface {
	Schedule(id string, fireAt time.Time)
}

// EventPublisher appends lifecycle events to the event stream.
type EventPublisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// TransactionCommandService owns the transaction lifecycle: Create persists a
// pending record and schedules its resolution; Resolve, fired later by the
// scheduler, applies the terminal outcome.
type TransactionCommandService struct {
	store     repository.TransactionStore
	scheduler ResolutionScheduler
	publisher EventPublisher // nil disables eventing
	clk       clock.Clock
	logger    *slog.Logger

	delay       time.Duration
	successRate float64
	draw        func() float64
}

func NewTransactionCommandService(
	store repository.TransactionStore,
	scheduler ResolutionScheduler,
	publisher EventPublisher,
	clk clock.Clock,
	logger *slog.Logger,
	cfg config.PaymentsConfig,
) *TransactionCommandService {
	return &TransactionCommandService{
		store:       store,
		scheduler:   scheduler,
		publisher:   publisher,
		clk:         clk,
		logger:      logger,
		delay:       cfg.ResolutionDelay,
		successRate: cfg.SuccessRate,
		draw:        rand.Float64,
	}
}

// Create validates the request, persists a pending transaction and schedules
// its resolution. The caller gets the record back immediately; the outcome
// arrives asynchronously.
func (s *TransactionCommandService) Create(ctx context.Context, amount float64, description, payeeAddress string) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, models.ErrInvalidAmount
	}
	if description == "" {
		description = models.DefaultDescription
	}
	if payeeAddress == "" {
		payeeAddress = models.DefaultPayeeAddress
	}

	now := s.clk.Now()
	tx := &models.Transaction{
		TransactionID: utils.GenerateTransactionID(),
		Amount:        amount,
		Description:   description,
		PayeeAddress:  payeeAddress,
		Status:        models.StatusPending,
		CreatedAt:     now,
	}

	if err := s.store.Insert(ctx, tx); err != nil {
		return nil, err
	}

	s.publish(ctx, events.TransactionCreated, events.TransactionCreatedEvent{
		TransactionID: tx.TransactionID,
		Amount:        tx.Amount,
		PayeeAddress:  tx.PayeeAddress,
	})

	// Scheduling strictly after the insert succeeded is what guarantees
	// Resolve always observes the persisted record.
	s.scheduler.Schedule(tx.TransactionID, now.Add(s.delay))

	return tx, nil
}

// Resolve decides the final outcome of a pending transaction. It is invoked
// by the scheduler; no caller is waiting, so every error is logged and
// swallowed. A transaction whose update never succeeds stays pending.
func (s *TransactionCommandService) Resolve(id string) {
	ctx := context.Background()
	now := s.clk.Now()

	if s.draw() < s.successRate {
		ref := utils.GenerateSettlementRef()
		if err := s.store.UpdateStatus(ctx, id, models.StatusSuccess, &ref, now); err != nil {
			s.logger.Error("failed to settle transaction", "transactionId", id, "error", err)
			return
		}
		s.logger.Info("transaction settled", "transactionId", id, "settlementRef", ref)
		s.publish(ctx, events.TransactionResolved, events.TransactionResolvedEvent{
			TransactionID: id,
			Status:        string(models.StatusSuccess),
			SettlementRef: &ref,
		})
		return
	}

	if err := s.store.UpdateStatus(ctx, id, models.StatusFailed, nil, now); err != nil {
		s.logger.Error("failed to mark transaction failed", "transactionId", id, "error", err)
		return
	}
	s.logger.Info("transaction failed", "transactionId", id)
	s.publish(ctx, events.TransactionResolved, events.TransactionResolvedEvent{
		TransactionID: id,
		Status:        string(models.StatusFailed),
	})
}

func (s *TransactionCommandService) publish(ctx context.Context, eventType string, data any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.PaymentEventsStream, eventType, data); err != nil {
		s.logger.Error("failed to publish event", "type", eventType, "error", err)
	}
}
