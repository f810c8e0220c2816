// Package ledgerservice manages the business logic layer of the ledger:
// validation and execution of deposits, withdrawals and transfers.
package ledgerservice

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/corebank/corebank/internal/domain"
)

// Repo provides data access layer interface needed by the ledger service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package ledgerservice
type Repo interface {
	Deposit(ctx context.Context, arg domain.CreateTransactionParams) (domain.TransactionResult, error)
	Withdraw(ctx context.Context, arg domain.CreateTransactionParams) (domain.TransactionResult, error)
	Transfer(ctx context.Context, arg domain.CreateTransactionParams) (domain.TransactionResult, error)
	ListForAccount(ctx context.Context, accountNumber string, limit, offset int32) ([]domain.Transaction, error)
	CountForAccount(ctx context.Context, accountNumber string) (int64, error)
}

// AccountService provides the account lookups needed by the ledger service layer.
type AccountService interface {
	GetByNumber(ctx context.Context, accountNumber string) (domain.Account, error)
}

// Dispatcher receives fire-and-forget events describing committed
// transactions. Implementations must never block the caller for long and
// must never surface delivery failures.
type Dispatcher interface {
	Dispatch(event domain.TransactionEvent)
}

// Service facilitates ledger service layer logic.
type Service struct {
	repo           Repo
	accountService AccountService
	dispatcher     Dispatcher
}

// New returns ledger service struct to manage ledger bussines logic.
func New(tr Repo, as AccountService, nd Dispatcher) *Service {
	return &Service{
		repo:           tr,
		accountService: as,
		dispatcher:     nd,
	}
}

// Execute validates the requested operation, applies it atomically and
// returns the resulting transaction record together with the post-operation
// account state. Notification events are emitted after commit and never
// affect the outcome.
func (s *Service) Execute(ctx context.Context, arg domain.CreateTransactionParams) (domain.TransactionResult, error) {
	amount, err := s.validAmount(ctx, arg.Amount)
	if err != nil {
		return domain.TransactionResult{}, err
	}

	var result domain.TransactionResult

	switch arg.TransactionType {
	case domain.Deposit:
		result, err = s.deposit(ctx, arg)
	case domain.Withdrawal:
		result, err = s.withdraw(ctx, arg, amount)
	case domain.Transfer:
		result, err = s.transfer(ctx, arg, amount)
	default:
		return domain.TransactionResult{}, domain.ErrInvalidTransactionType
	}

	if err != nil {
		return domain.TransactionResult{}, err
	}

	s.notify(result)

	return result, nil
}

func (s *Service) validAmount(ctx context.Context, amount string) (decimal.Decimal, error) {
	l := zerolog.Ctx(ctx)

	amountDecimal, err := decimal.NewFromString(amount)
	if err != nil {
		l.Info().Err(err).Send()
		return decimal.Decimal{}, domain.ErrInvalidAmount
	}

	if amountDecimal.LessThanOrEqual(decimal.Zero) {
		return decimal.Decimal{}, domain.ErrNegativeAmount
	}

	return amountDecimal, nil
}

// mutableAccount looks the account up and rejects balance mutation on closed
// accounts, preserving the closed-implies-zero-balance invariant.
func (s *Service) mutableAccount(ctx context.Context, accountNumber string) (domain.Account, error) {
	account, err := s.accountService.GetByNumber(ctx, accountNumber)
	if err != nil {
		return account, err
	}

	if account.Status == domain.AccountClosed {
		return account, domain.ErrAccountClosed
	}

	return account, nil
}

func (s *Service) deposit(ctx context.Context, arg domain.CreateTransactionParams) (domain.TransactionResult, error) {
	if _, err := s.mutableAccount(ctx, arg.AccountNumber); err != nil {
		return domain.TransactionResult{}, err
	}

	return s.repo.Deposit(ctx, arg)
}

func (s *Service) withdraw(ctx context.Context, arg domain.CreateTransactionParams, amount decimal.Decimal) (domain.TransactionResult, error) {
	account, err := s.mutableAccount(ctx, arg.AccountNumber)
	if err != nil {
		return domain.TransactionResult{}, err
	}

	if err := checkBalance(account, amount); err != nil {
		return domain.TransactionResult{}, err
	}

	return s.repo.Withdraw(ctx, arg)
}

func (s *Service) transfer(ctx context.Context, arg domain.CreateTransactionParams, amount decimal.Decimal) (domain.TransactionResult, error) {
	source, err := s.mutableAccount(ctx, arg.AccountNumber)
	if err != nil {
		return domain.TransactionResult{}, err
	}

	if err := checkBalance(source, amount); err != nil {
		return domain.TransactionResult{}, err
	}

	if _, err := s.mutableAccount(ctx, arg.DestinationAccountNumber); err != nil {
		if err == domain.ErrAccountNotFound {
			err = domain.ErrDestinationNotFound
		}

		return domain.TransactionResult{}, err
	}

	return s.repo.Transfer(ctx, arg)
}

func checkBalance(account domain.Account, amount decimal.Decimal) error {
	balance, err := decimal.NewFromString(account.Balance)
	if err != nil {
		return err
	}

	if balance.LessThan(amount) {
		return domain.ErrInsufficientBalance
	}

	return nil
}

// notify emits the owner alert and, for transfers, the receiver credit alert
// carrying the receiver's own post-transaction balance.
func (s *Service) notify(result domain.TransactionResult) {
	txn := result.Transaction

	kind := domain.CreditAlert
	if txn.TransactionType != domain.Deposit {
		kind = domain.DebitAlert
	}

	s.dispatcher.Dispatch(domain.TransactionEvent{
		Kind:            kind,
		Owner:           result.Account.Owner,
		AccountNumber:   result.Account.AccountNumber,
		TransactionType: txn.TransactionType,
		Amount:          txn.Amount,
		Balance:         result.Account.Balance,
		OccurredAt:      txn.TransactionDate,
	})

	if txn.TransactionType == domain.Transfer && result.DestinationAccount != nil {
		s.dispatcher.Dispatch(domain.TransactionEvent{
			Kind:            domain.CreditAlert,
			Owner:           result.DestinationAccount.Owner,
			AccountNumber:   result.DestinationAccount.AccountNumber,
			TransactionType: txn.TransactionType,
			Amount:          txn.Amount,
			Balance:         result.DestinationAccount.Balance,
			OccurredAt:      txn.TransactionDate,
		})
	}
}

// ListForAccount returns one page of the account's transaction history,
// newest first. The requester must own the account.
func (s *Service) ListForAccount(ctx context.Context, requester, accountNumber string, page, size int32) (domain.TransactionPage, error) {
	l := zerolog.Ctx(ctx)

	account, err := s.accountService.GetByNumber(ctx, accountNumber)
	if err != nil {
		return domain.TransactionPage{}, err
	}

	if account.Owner != requester {
		l.Warn().Str("account_number", accountNumber).Msg("history request by non-owner")
		return domain.TransactionPage{}, domain.ErrAccountOwnerMismatch
	}

	transactions, err := s.repo.ListForAccount(ctx, accountNumber, size, page*size)
	if err != nil {
		return domain.TransactionPage{}, err
	}

	total, err := s.repo.CountForAccount(ctx, accountNumber)
	if err != nil {
		return domain.TransactionPage{}, err
	}

	totalPages := int32(total / int64(size))
	if total%int64(size) != 0 {
		totalPages++
	}

	return domain.TransactionPage{
		Transactions: transactions,
		CurrentPage:  page,
		PageSize:     size,
		TotalItems:   total,
		TotalPages:   totalPages,
	}, nil
}
