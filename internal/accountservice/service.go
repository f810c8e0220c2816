// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/corebank/corebank/internal/domain"
	"github.com/corebank/corebank/pkg/currencypkg"
	"github.com/corebank/corebank/pkg/randompkg"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	GetByNumber(ctx context.Context, accountNumber string) (domain.Account, error)
	ListForOwner(ctx context.Context, owner string) ([]domain.Account, error)
	Close(ctx context.Context, accountNumber string, closedAt time.Time) (domain.Account, error)
}

// Service facilitates account service layer logic.
//
// The account number generator is injectable so that tests can force
// collisions and fixed candidates.
type Service struct {
	repo     Repo
	generate func() string
}

// New returns account service struct to manage account bussines logic.
func New(ar Repo) *Service {
	return &Service{
		repo:     ar,
		generate: randompkg.AccountNumber,
	}
}

// NewWithGenerator returns account service with a custom account number source.
func NewWithGenerator(ar Repo, generate func() string) *Service {
	return &Service{
		repo:     ar,
		generate: generate,
	}
}

// Create creates and returns a zero-balance USD account for the given owner.
//
// Candidate account numbers are drawn until one is not already in use. The
// retry loop is unbounded, matching the low collision probability of the
// 8-digit candidate space.
func (s *Service) Create(ctx context.Context, owner string, accountType domain.AccountType) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	for {
		arg := domain.CreateAccountParams{
			AccountNumber: s.generate(),
			Owner:         owner,
			AccountType:   accountType,
			Currency:      currencypkg.USD,
		}

		account, err := s.repo.Create(ctx, arg)
		if err == domain.ErrAccountNumberTaken {
			l.Info().Str("account_number", arg.AccountNumber).Msg("account number collision, retrying")
			continue
		}

		if err != nil {
			return account, err
		}

		return account, nil
	}
}

// GetByNumber returns the account with the given account number.
func (s *Service) GetByNumber(ctx context.Context, accountNumber string) (domain.Account, error) {
	return s.repo.GetByNumber(ctx, accountNumber)
}

// ListForOwner returns accounts that are owned by the given owner.
func (s *Service) ListForOwner(ctx context.Context, owner string) ([]domain.Account, error) {
	return s.repo.ListForOwner(ctx, owner)
}

// Close closes the account with the given number on behalf of the owner.
//
// The account must exist, belong to the owner, be active and hold a zero
// balance. The transition is irreversible.
func (s *Service) Close(ctx context.Context, accountNumber, owner string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	account, err := s.repo.GetByNumber(ctx, accountNumber)
	if err != nil {
		return domain.Account{}, err
	}

	if account.Owner != owner {
		l.Warn().Str("account_number", accountNumber).Msg("close attempt by non-owner")
		return domain.Account{}, domain.ErrAccountOwnerMismatch
	}

	if account.Status == domain.AccountClosed {
		return domain.Account{}, domain.ErrAccountClosed
	}

	balance, err := decimal.NewFromString(account.Balance)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Account{}, err
	}

	if !balance.IsZero() {
		return domain.Account{}, domain.ErrBalanceNotZero
	}

	return s.repo.Close(ctx, accountNumber, time.Now())
}
