// Package transactionrepo manages the append-only repository layer of transactions.
//
// Besides plain reads it owns the transactional write path of the ledger:
// every deposit, withdrawal and transfer runs as a single database
// transaction that applies the balance change(s) and inserts exactly one
// transaction record, or nothing at all.
package transactionrepo

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/corebank/corebank/internal/accountrepo"
	"github.com/corebank/corebank/internal/domain"
	"github.com/corebank/corebank/pkg/dbpkg"
	"github.com/corebank/corebank/pkg/errorspkg"
)

// RepoPGS facilitates transaction repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns transaction RepoPGS bound to an existing transaction scope.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// NewRepoPGS returns transaction RepoPGS with a connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

const createQuery = `
INSERT INTO
    transactions (amount, transaction_type, status, description, account_number, source_account_number, destination_account_number)
VALUES
    ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, amount, transaction_type, status, description, account_number, source_account_number, destination_account_number, transaction_date
`

type insertParams struct {
	amount            string
	transactionType   domain.TransactionType
	status            domain.TransactionStatus
	description       string
	accountNumber     string
	sourceNumber      sql.NullString
	destinationNumber sql.NullString
}

// create inserts one transaction record in its terminal status.
// There is deliberately no update or delete counterpart.
func (r *RepoPGS) create(ctx context.Context, arg insertParams) (domain.Transaction, error) {
	row := r.db.QueryRowContext(ctx, createQuery,
		arg.amount,
		arg.transactionType,
		arg.status,
		arg.description,
		arg.accountNumber,
		arg.sourceNumber,
		arg.destinationNumber,
	)

	return scanTransaction(row)
}

// Deposit credits the account and records the transaction atomically.
func (r *RepoPGS) Deposit(ctx context.Context, arg domain.CreateTransactionParams) (domain.TransactionResult, error) {
	return r.execTx(ctx, func(accounts *accountrepo.RepoPGS, transactions *RepoPGS) (domain.TransactionResult, error) {
		var result domain.TransactionResult

		account, err := accounts.AddBalance(ctx, arg.Amount, arg.AccountNumber)
		if err != nil {
			return result, err
		}

		txn, err := transactions.create(ctx, insertParams{
			amount:          arg.Amount,
			transactionType: domain.Deposit,
			status:          domain.StatusSuccess,
			description:     arg.Description,
			accountNumber:   account.AccountNumber,
		})
		if err != nil {
			return result, err
		}

		result.Transaction = txn
		result.Account = account

		return result, nil
	})
}

// Withdraw debits the account and records the transaction atomically.
func (r *RepoPGS) Withdraw(ctx context.Context, arg domain.CreateTransactionParams) (domain.TransactionResult, error) {
	return r.execTx(ctx, func(accounts *accountrepo.RepoPGS, transactions *RepoPGS) (domain.TransactionResult, error) {
		var result domain.TransactionResult

		account, err := accounts.AddBalance(ctx, "-"+arg.Amount, arg.AccountNumber)
		if err != nil {
			return result, err
		}

		txn, err := transactions.create(ctx, insertParams{
			amount:          arg.Amount,
			transactionType: domain.Withdrawal,
			status:          domain.StatusSuccess,
			description:     arg.Description,
			accountNumber:   account.AccountNumber,
		})
		if err != nil {
			return result, err
		}

		result.Transaction = txn
		result.Account = account

		return result, nil
	})
}

// Transfer moves money between two accounts and records exactly one
// transaction referencing both account numbers.
//
// Balance updates always run in ascending account-number order, never in
// request order, so two opposite transfers on the same pair cannot deadlock.
func (r *RepoPGS) Transfer(ctx context.Context, arg domain.CreateTransactionParams) (domain.TransactionResult, error) {
	return r.execTx(ctx, func(accounts *accountrepo.RepoPGS, transactions *RepoPGS) (domain.TransactionResult, error) {
		var (
			result              domain.TransactionResult
			source, destination domain.Account
			err                 error
		)

		debit := func() (domain.Account, error) {
			return accounts.AddBalance(ctx, "-"+arg.Amount, arg.AccountNumber)
		}
		credit := func() (domain.Account, error) {
			a, err := accounts.AddBalance(ctx, arg.Amount, arg.DestinationAccountNumber)
			if err == domain.ErrAccountNotFound {
				err = domain.ErrDestinationNotFound
			}

			return a, err
		}

		if arg.AccountNumber < arg.DestinationAccountNumber {
			if source, err = debit(); err != nil {
				return result, err
			}

			if destination, err = credit(); err != nil {
				return result, err
			}
		} else {
			if destination, err = credit(); err != nil {
				return result, err
			}

			if source, err = debit(); err != nil {
				return result, err
			}
		}

		txn, err := transactions.create(ctx, insertParams{
			amount:            arg.Amount,
			transactionType:   domain.Transfer,
			status:            domain.StatusSuccess,
			description:       arg.Description,
			accountNumber:     source.AccountNumber,
			sourceNumber:      sql.NullString{String: source.AccountNumber, Valid: true},
			destinationNumber: sql.NullString{String: destination.AccountNumber, Valid: true},
		})
		if err != nil {
			return result, err
		}

		result.Transaction = txn
		result.Account = source
		result.DestinationAccount = &destination

		return result, nil
	})
}

// execTx runs fn inside one database transaction: commit on success,
// roll back on every error path.
func (r *RepoPGS) execTx(
	ctx context.Context,
	fn func(*accountrepo.RepoPGS, *RepoPGS) (domain.TransactionResult, error),
) (domain.TransactionResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.TransactionResult

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	result, err = fn(accountrepo.NewRepoPGS(tx), NewTxRepoPGS(tx))
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			l.Error().Err(rbErr).Send()
		}

		return domain.TransactionResult{}, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.TransactionResult{}, errorspkg.ErrInternal
	}

	return result, nil
}

const getQuery = `
SELECT
	id, amount, transaction_type, status, description, account_number, source_account_number, destination_account_number, transaction_date
FROM transactions
WHERE id = $1
`

// Get returns the transaction with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	t, err := scanTransaction(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return t, domain.ErrTransactionNotFound
		}

		l.Error().Err(err).Send()

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const listForAccountQuery = `
SELECT
	id, amount, transaction_type, status, description, account_number, source_account_number, destination_account_number, transaction_date
FROM transactions
WHERE
    account_number = $1
    OR (transaction_type = 'TRANSFER' AND destination_account_number = $1)
ORDER BY transaction_date DESC
LIMIT $2 OFFSET $3
`

// ListForAccount returns transactions where the account is the primary
// account or, for transfers, the named destination, newest first.
func (r *RepoPGS) ListForAccount(ctx context.Context, accountNumber string, limit, offset int32) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listForAccountQuery, accountNumber, limit, offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Transaction{}

	for rows.Next() {
		var (
			t           domain.Transaction
			source      sql.NullString
			destination sql.NullString
		)

		if err := rows.Scan(
			&t.ID,
			&t.Amount,
			&t.TransactionType,
			&t.Status,
			&t.Description,
			&t.AccountNumber,
			&source,
			&destination,
			&t.TransactionDate,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		t.SourceAccountNumber = source.String
		t.DestinationAccountNumber = destination.String

		items = append(items, t)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const countForAccountQuery = `
SELECT count(*)
FROM transactions
WHERE
    account_number = $1
    OR (transaction_type = 'TRANSFER' AND destination_account_number = $1)
`

// CountForAccount returns the total number of transactions visible to the account.
func (r *RepoPGS) CountForAccount(ctx context.Context, accountNumber string) (int64, error) {
	l := zerolog.Ctx(ctx)

	var n int64

	if err := r.db.QueryRowContext(ctx, countForAccountQuery, accountNumber).Scan(&n); err != nil {
		l.Error().Err(err).Send()
		return 0, errorspkg.ErrInternal
	}

	return n, nil
}

const countQuery = `
SELECT count(*) FROM transactions
`

// Count returns the total number of transactions.
func (r *RepoPGS) Count(ctx context.Context) (int64, error) {
	l := zerolog.Ctx(ctx)

	var n int64

	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&n); err != nil {
		l.Error().Err(err).Send()
		return 0, errorspkg.ErrInternal
	}

	return n, nil
}

func scanTransaction(row *sql.Row) (domain.Transaction, error) {
	var (
		t           domain.Transaction
		source      sql.NullString
		destination sql.NullString
	)

	err := row.Scan(
		&t.ID,
		&t.Amount,
		&t.TransactionType,
		&t.Status,
		&t.Description,
		&t.AccountNumber,
		&source,
		&destination,
		&t.TransactionDate,
	)
	if err != nil {
		return t, err
	}

	t.SourceAccountNumber = source.String
	t.DestinationAccountNumber = destination.String

	return t, nil
}
