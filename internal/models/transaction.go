package models

import "time"

// Status is the lifecycle state of a transaction. A transaction starts
// pending and transitions exactly once to success or failed.
type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Terminal reports whether s is a final state.
func (s Status) Terminal() bool {
	return s == StatusSuccess || s == StatusFailed
}

// Defaults applied when the client omits optional fields.
const (
	DefaultDescription  = "Payment"
	DefaultPayeeAddress = "merchant@upi"
)

type Transaction struct {
	TransactionID string     `json:"transactionId"`
	SettlementRef *string    `json:"settlementRef"`
	Amount        float64    `json:"amount"`
	Description   string     `json:"description"`
	PayeeAddress  string     `json:"payeeAddress"`
	Status        Status     `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
	SettledAt     *time.Time `json:"settledAt"`
}
