package events

import "time"

// Event types
const (
	TransactionCreated  = "transaction.created"
	TransactionResolved = "transaction.resolved"
)

// Stream names
const (
	PaymentEventsStream = "payment.events"
)

// Event is the envelope written to the stream.
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

type TransactionCreatedEvent struct {
	TransactionID string  `json:"transactionId"`
	Amount        float64 `json:"amount"`
	PayeeAddress  string  `json:"payeeAddress"`
}

type TransactionResolvedEvent struct {
	TransactionID string  `json:"transactionId"`
	Status        string  `json:"status"`
	SettlementRef *string `json:"settlementRef"`
}
