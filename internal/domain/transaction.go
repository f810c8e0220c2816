package domain

import (
	"errors"
	"time"
)

var (
	// ErrTransactionNotFound indicates that the transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrInvalidTransactionType indicates an unsupported transaction type.
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	// ErrInvalidAmount indicates invalid amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNegativeAmount indicates non-positive amount.
	ErrNegativeAmount = errors.New("amount must be positive")
	// ErrInsufficientBalance indicates that the account does not have sufficient balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// TransactionType names a balance-affecting operation.
type TransactionType string

// Supported transaction types.
const (
	Deposit    TransactionType = "DEPOSIT"
	Withdrawal TransactionType = "WITHDRAWAL"
	Transfer   TransactionType = "TRANSFER"
)

// IsValidTransactionType returns true if the given type is supported.
func IsValidTransactionType(t TransactionType) bool {
	switch t {
	case Deposit, Withdrawal, Transfer:
		return true
	}

	return false
}

// TransactionStatus is the terminal state of a transaction record.
type TransactionStatus string

// Transaction states. Records are persisted only in a terminal state and are
// never updated afterwards.
const (
	StatusPending TransactionStatus = "PENDING"
	StatusSuccess TransactionStatus = "SUCCESS"
	StatusFailed  TransactionStatus = "FAILED"
)

// Transaction is an immutable record of a balance-affecting operation.
//
// AccountNumber is the primary account: debited for WITHDRAWAL and TRANSFER,
// credited for DEPOSIT. A transfer produces exactly one record that carries
// both the source and the destination account numbers.
type Transaction struct {
	ID                       int64             `json:"id"`
	Amount                   string            `json:"amount"`
	TransactionType          TransactionType   `json:"transaction_type"`
	Status                   TransactionStatus `json:"status"`
	Description              string            `json:"description"`
	AccountNumber            string            `json:"account_number"`
	SourceAccountNumber      string            `json:"source_account_number,omitempty"`
	DestinationAccountNumber string            `json:"destination_account_number,omitempty"`
	TransactionDate          time.Time         `json:"transaction_date"`
}

// CreateTransactionParams is the input data for executing a ledger operation.
type CreateTransactionParams struct {
	TransactionType          TransactionType `json:"transaction_type"`
	Amount                   string          `json:"amount"`
	AccountNumber            string          `json:"account_number"`
	Description              string          `json:"description"`
	DestinationAccountNumber string          `json:"destination_account_number,omitempty"`
}

// TransactionResult is the outcome of a successful ledger operation.
//
// Account carries the post-operation state of the primary account;
// DestinationAccount is set only for transfers.
type TransactionResult struct {
	Transaction        Transaction `json:"transaction"`
	Account            Account     `json:"account"`
	DestinationAccount *Account    `json:"destination_account,omitempty"`
}

// TransactionPage is one page of an account's transaction history.
type TransactionPage struct {
	Transactions []Transaction
	CurrentPage  int32
	PageSize     int32
	TotalItems   int64
	TotalPages   int32
}
