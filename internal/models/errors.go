package models

import "errors"

var (
	ErrInvalidAmount        = errors.New("amount must be greater than zero")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrDuplicateTransaction = errors.New("transaction id already exists")
)
