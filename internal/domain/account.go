// Package domain provides defenitions of all entities.
package domain

import (
	"errors"
	"time"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrDestinationNotFound indicates that the transfer destination account is not found.
	ErrDestinationNotFound = errors.New("destination account not found")
	// ErrAccountNumberTaken indicates that the generated account number is already in use.
	ErrAccountNumberTaken = errors.New("account number already in use")
	// ErrAccountOwnerMismatch indicates that the account does not belong to the requester.
	ErrAccountOwnerMismatch = errors.New("account does not belong to the requester")
	// ErrAccountClosed indicates that the account is closed and can no longer be used.
	ErrAccountClosed = errors.New("account is closed")
	// ErrBalanceNotZero indicates that the account balance must be zero before closing.
	ErrBalanceNotZero = errors.New("account balance must be zero before closing")
)

// AccountType is the product type of an account.
type AccountType string

// Supported account types.
const (
	Savings  AccountType = "SAVINGS"
	Checking AccountType = "CHECKING"
)

// IsValidAccountType returns true if the given type is supported.
func IsValidAccountType(t AccountType) bool {
	switch t {
	case Savings, Checking:
		return true
	}

	return false
}

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

// Account lifecycle states. The ACTIVE to CLOSED transition happens once and
// is irreversible.
const (
	AccountActive AccountStatus = "ACTIVE"
	AccountClosed AccountStatus = "CLOSED"
)

// Account holds the balance for a single account number.
//
// The balance is carried as an exact decimal string and is mutated only by the
// ledger service. The account number is public facing, globally unique and
// immutable once assigned; ID stays internal.
type Account struct {
	ID            int64         `json:"id"`
	AccountNumber string        `json:"account_number"`
	Owner         string        `json:"owner"`
	Balance       string        `json:"balance"`
	Currency      string        `json:"currency"`
	AccountType   AccountType   `json:"account_type"`
	Status        AccountStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	ClosedAt      *time.Time    `json:"closed_at,omitempty"`
}

// CreateAccountParams is the input data for creating an account.
type CreateAccountParams struct {
	AccountNumber string
	Owner         string
	AccountType   AccountType
	Currency      string
}
