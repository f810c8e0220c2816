// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/corebank/corebank/internal/domain"
	"github.com/corebank/corebank/pkg/dbpkg"
	"github.com/corebank/corebank/pkg/errorspkg"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    accounts (account_number, owner, balance, currency, account_type, status)
VALUES
    ($1, $2, 0, $3, $4, 'ACTIVE')
RETURNING id, account_number, owner, balance, currency, account_type, status, created_at, closed_at
`

// Create creates the account and then returns it.
//
// A unique constraint violation on the account number maps to
// domain.ErrAccountNumberTaken so that the caller can retry with a fresh
// candidate.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, arg.AccountNumber, arg.Owner, arg.Currency, arg.AccountType)

	a, err := scanAccount(row)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_account_number_key" {
				return a, domain.ErrAccountNumberTaken
			}
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getQuery = `
SELECT
	id, account_number, owner, balance, currency, account_type, status, created_at, closed_at
FROM accounts
WHERE account_number = $1
`

// GetByNumber returns the account with the given account number.
func (r *RepoPGS) GetByNumber(ctx context.Context, accountNumber string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, accountNumber)

	a, err := scanAccount(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const addBalanceQuery = `
UPDATE accounts
SET balance = balance + $1
WHERE account_number = $2 AND status = 'ACTIVE'
RETURNING id, account_number, owner, balance, currency, account_type, status, created_at, closed_at
`

// AddBalance changes the account's balance and returns the changed account.
// Only ACTIVE accounts are mutated; a closed account maps to
// domain.ErrAccountClosed even when a concurrent close lands mid-operation.
//
// The accounts_balance_check constraint is the non-negative backstop: a debit
// below zero maps to domain.ErrInsufficientBalance even when concurrent
// operations race on the same account.
func (r *RepoPGS) AddBalance(ctx context.Context, amount, accountNumber string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, addBalanceQuery, amount, accountNumber)

	a, err := scanAccount(row)
	if err != nil {
		if err == sql.ErrNoRows {
			account, getErr := r.GetByNumber(ctx, accountNumber)
			if getErr != nil {
				return a, getErr
			}

			if account.Status == domain.AccountClosed {
				return a, domain.ErrAccountClosed
			}

			return a, domain.ErrAccountNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_balance_check" {
				return a, domain.ErrInsufficientBalance
			}
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const closeQuery = `
UPDATE accounts
SET status = 'CLOSED', closed_at = $2
WHERE account_number = $1 AND status = 'ACTIVE'
RETURNING id, account_number, owner, balance, currency, account_type, status, created_at, closed_at
`

// Close marks the account closed and stamps the closure time.
// Closing an already closed account returns domain.ErrAccountClosed.
func (r *RepoPGS) Close(ctx context.Context, accountNumber string, closedAt time.Time) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, closeQuery, accountNumber, closedAt)

	a, err := scanAccount(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrAccountClosed
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const listForOwnerQuery = `
SELECT
	id, account_number, owner, balance, currency, account_type, status, created_at, closed_at
FROM accounts
WHERE owner = $1
ORDER BY id
`

// ListForOwner returns all accounts owned by the given owner.
func (r *RepoPGS) ListForOwner(ctx context.Context, owner string) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listForOwnerQuery, owner)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		var (
			a        domain.Account
			closedAt sql.NullTime
		)

		if err := rows.Scan(
			&a.ID,
			&a.AccountNumber,
			&a.Owner,
			&a.Balance,
			&a.Currency,
			&a.AccountType,
			&a.Status,
			&a.CreatedAt,
			&closedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		if closedAt.Valid {
			a.ClosedAt = &closedAt.Time
		}

		items = append(items, a)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const countQuery = `
SELECT count(*) FROM accounts
`

// Count returns the total number of accounts.
func (r *RepoPGS) Count(ctx context.Context) (int64, error) {
	l := zerolog.Ctx(ctx)

	var n int64

	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&n); err != nil {
		l.Error().Err(err).Send()
		return 0, errorspkg.ErrInternal
	}

	return n, nil
}

func scanAccount(row *sql.Row) (domain.Account, error) {
	var (
		a        domain.Account
		closedAt sql.NullTime
	)

	err := row.Scan(
		&a.ID,
		&a.AccountNumber,
		&a.Owner,
		&a.Balance,
		&a.Currency,
		&a.AccountType,
		&a.Status,
		&a.CreatedAt,
		&closedAt,
	)
	if err != nil {
		return a, err
	}

	if closedAt.Valid {
		a.ClosedAt = &closedAt.Time
	}

	return a, nil
}
