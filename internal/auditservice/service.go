// Package auditservice manages the read-only audit surface over accounts and
// the transaction trail. Every operation is guarded by an explicit capability
// check evaluated before any lookup.
package auditservice

import (
	"context"

	"github.com/corebank/corebank/internal/domain"
)

// AccountRepo provides the account reads needed by the audit service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package auditservice
type AccountRepo interface {
	GetByNumber(ctx context.Context, accountNumber string) (domain.Account, error)
	Count(ctx context.Context) (int64, error)
}

// TransactionRepo provides the transaction reads needed by the audit service layer.
type TransactionRepo interface {
	Get(ctx context.Context, id int64) (domain.Transaction, error)
	ListForAccount(ctx context.Context, accountNumber string, limit, offset int32) ([]domain.Transaction, error)
	Count(ctx context.Context) (int64, error)
}

// SystemTotals summarizes the size of the ledger.
type SystemTotals struct {
	TotalAccounts     int64 `json:"total_accounts"`
	TotalTransactions int64 `json:"total_transactions"`
}

// Service facilitates audit service layer logic.
type Service struct {
	accounts     AccountRepo
	transactions TransactionRepo
}

// New returns audit service struct.
func New(ar AccountRepo, tr TransactionRepo) *Service {
	return &Service{
		accounts:     ar,
		transactions: tr,
	}
}

// Totals returns system-wide account and transaction counts.
func (s *Service) Totals(ctx context.Context, requester domain.Role) (SystemTotals, error) {
	if !requester.CanAudit() {
		return SystemTotals{}, domain.ErrPermissionDenied
	}

	accounts, err := s.accounts.Count(ctx)
	if err != nil {
		return SystemTotals{}, err
	}

	transactions, err := s.transactions.Count(ctx)
	if err != nil {
		return SystemTotals{}, err
	}

	return SystemTotals{
		TotalAccounts:     accounts,
		TotalTransactions: transactions,
	}, nil
}

// AccountByNumber returns full account details for auditors.
func (s *Service) AccountByNumber(ctx context.Context, requester domain.Role, accountNumber string) (domain.Account, error) {
	if !requester.CanAudit() {
		return domain.Account{}, domain.ErrPermissionDenied
	}

	return s.accounts.GetByNumber(ctx, accountNumber)
}

// TransactionsForAccount returns the account's full transaction trail, newest first.
func (s *Service) TransactionsForAccount(ctx context.Context, requester domain.Role, accountNumber string, limit, offset int32) ([]domain.Transaction, error) {
	if !requester.CanAudit() {
		return nil, domain.ErrPermissionDenied
	}

	if _, err := s.accounts.GetByNumber(ctx, accountNumber); err != nil {
		return nil, err
	}

	return s.transactions.ListForAccount(ctx, accountNumber, limit, offset)
}

// TransactionByID returns a single transaction record.
func (s *Service) TransactionByID(ctx context.Context, requester domain.Role, id int64) (domain.Transaction, error) {
	if !requester.CanAudit() {
		return domain.Transaction{}, domain.ErrPermissionDenied
	}

	return s.transactions.Get(ctx, id)
}
