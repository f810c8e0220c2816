package domain

import "time"

// EventKind distinguishes debit and credit alerts.
type EventKind string

// Alert kinds delivered to account owners.
const (
	CreditAlert EventKind = "CREDIT_ALERT"
	DebitAlert  EventKind = "DEBIT_ALERT"
)

// TransactionEvent describes a committed ledger operation for out-of-band
// notification delivery. Balance is the recipient account's post-transaction
// balance. Delivery is best effort and never affects ledger state.
type TransactionEvent struct {
	Kind            EventKind       `json:"kind"`
	Owner           string          `json:"owner"`
	AccountNumber   string          `json:"account_number"`
	TransactionType TransactionType `json:"transaction_type"`
	Amount          string          `json:"amount"`
	Balance         string          `json:"balance"`
	OccurredAt      time.Time       `json:"occurred_at"`
}
