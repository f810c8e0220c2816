package ledgerservice

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/corebank/corebank/internal/domain"
	"github.com/corebank/corebank/pkg/currencypkg"
	"github.com/corebank/corebank/pkg/errorspkg"
	"github.com/corebank/corebank/pkg/randompkg"
)

func testAccount(number, balance string) domain.Account {
	return domain.Account{
		ID:            randompkg.Intn(1000) + 1,
		AccountNumber: number,
		Owner:         randompkg.Owner(),
		Balance:       balance,
		Currency:      currencypkg.USD,
		AccountType:   domain.Savings,
		Status:        domain.AccountActive,
		CreatedAt:     time.Now().Truncate(time.Second).UTC(),
	}
}

func TestExecute(t *testing.T) {
	sourceAccount := testAccount("6610000001", "1000")
	destinationAccount := testAccount("6610000002", "0")

	closedAccount := testAccount("6610000003", "0")
	closedAccount.Status = domain.AccountClosed

	depositResult := domain.TransactionResult{
		Transaction: domain.Transaction{
			ID:              1,
			Amount:          "100",
			TransactionType: domain.Deposit,
			Status:          domain.StatusSuccess,
			AccountNumber:   sourceAccount.AccountNumber,
		},
		Account: sourceAccount,
	}

	transferResult := domain.TransactionResult{
		Transaction: domain.Transaction{
			ID:                       2,
			Amount:                   "100",
			TransactionType:          domain.Transfer,
			Status:                   domain.StatusSuccess,
			AccountNumber:            sourceAccount.AccountNumber,
			SourceAccountNumber:      sourceAccount.AccountNumber,
			DestinationAccountNumber: destinationAccount.AccountNumber,
		},
		Account:            sourceAccount,
		DestinationAccount: &destinationAccount,
	}

	testCases := []struct {
		name          string
		arg           domain.CreateTransactionParams
		buildStubs    func(repo *MockRepo, accountService *MockAccountService, dispatcher *MockDispatcher)
		checkResponse func(res domain.TransactionResult, err error)
	}{
		{
			name: "Invalid amount",
			arg: domain.CreateTransactionParams{
				TransactionType: domain.Deposit,
				Amount:          "!@#$",
				AccountNumber:   sourceAccount.AccountNumber,
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService, dispatcher *MockDispatcher) {
				accountService.EXPECT().GetByNumber(gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().Deposit(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TransactionResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInvalidAmount.Error())
			},
		},
		{
			name: "Negative amount",
			arg: domain.CreateTransactionParams{
				TransactionType: domain.Withdrawal,
				Amount:          "-100",
				AccountNumber:   sourceAccount.AccountNumber,
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService, dispatcher *MockDispatcher) {
				accountService.EXPECT().GetByNumber(gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().Withdraw(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TransactionResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrNegativeAmount.Error())
			},
		},
		{
			name: "Unknown transaction type",
			arg: domain.CreateTransactionParams{
				TransactionType: domain.TransactionType("REVERSAL"),
				Amount:          "100",
				AccountNumber:   sourceAccount.AccountNumber,
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService, dispatcher *MockDispatcher) {
				accountService.EXPECT().GetByNumber(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TransactionResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInvalidTransactionType.Error())
			},
		},
		{
			name: "Deposit account not found",
			arg: domain.CreateTransactionParams{
				TransactionType: domain.Deposit,
				Amount:          "100",
				AccountNumber:   "6699999999",
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService, dispatcher *MockDispatcher) {
				accountService.EXPECT().GetByNumber(gomock.Any(), gomock.Eq("6699999999")).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
				repo.EXPECT().Deposit(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TransactionResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrAccountNotFound.Error())
			},
		},
		{
			name: "Deposit to closed account",
			arg: domain.CreateTransactionParams{
				TransactionType: domain.Deposit,
				Amount:          "100",
				AccountNumber:   closedAccount.AccountNumber,
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService, dispatcher *MockDispatcher) {
				accountService.EXPECT().GetByNumber(gomock.Any(), gomock.Eq(closedAccount.AccountNumber)).
					Times(1).
					Return(closedAccount, nil)
				repo.EXPECT().Deposit(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TransactionResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrAccountClosed.Error())
			},
		},
		{
			name: "Deposit OK",
			arg: domain.CreateTransactionParams{
				TransactionType: domain.Deposit,
				Amount:          "100",
				AccountNumber:   sourceAccount.AccountNumber,
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService, dispatcher *MockDispatcher) {
				accountService.EXPECT().GetByNumber(gomock.Any(), gomock.Eq(sourceAccount.AccountNumber)).
					Times(1).
					Return(sourceAccount, nil)
				repo.EXPECT().Deposit(gomock.Any(), gomock.Any()).
					Times(1).
					Return(depositResult, nil)
				dispatcher.EXPECT().Dispatch(gomock.Any()).Times(1)
			},
			checkResponse: func(res domain.TransactionResult, err error) {
				require.NoError(t, err)
				require.Equal(t, depositResult, res)
			},
		},
		{
			name: "Withdrawal insufficient balance",
			arg: domain.CreateTransactionParams{
				TransactionType: domain.Withdrawal,
				Amount:          "10000",
				AccountNumber:   sourceAccount.AccountNumber,
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService, dispatcher *MockDispatcher) {
				accountService.EXPECT().GetByNumber(gomock.Any(), gomock.Eq(sourceAccount.AccountNumber)).
					Times(1).
					Return(sourceAccount, nil)
				repo.EXPECT().Withdraw(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TransactionResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInsufficientBalance.Error())
			},
		},
		{
			name: "Transfer destination not found",
			arg: domain.CreateTransactionParams{
				TransactionType:          domain.Transfer,
				Amount:                   "100",
				AccountNumber:            sourceAccount.AccountNumber,
				DestinationAccountNumber: "6699999999",
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService, dispatcher *MockDispatcher) {
				accountService.EXPECT().GetByNumber(gomock.Any(), gomock.Eq(sourceAccount.AccountNumber)).
					Times(1).
					Return(sourceAccount, nil)
				accountService.EXPECT().GetByNumber(gomock.Any(), gomock.Eq("6699999999")).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TransactionResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrDestinationNotFound.Error())
			},
		},
		{
			name: "Transfer to closed destination",
			arg: domain.CreateTransactionParams{
				TransactionType:          domain.Transfer,
				Amount:                   "100",
				AccountNumber:            sourceAccount.AccountNumber,
				DestinationAccountNumber: closedAccount.AccountNumber,
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService, dispatcher *MockDispatcher) {
				accountService.EXPECT().GetByNumber(gomock.Any(), gomock.Eq(sourceAccount.AccountNumber)).
					Times(1).
					Return(sourceAccount, nil)
				accountService.EXPECT().GetByNumber(gomock.Any(), gomock.Eq(closedAccount.AccountNumber)).
					Times(1).
					Return(closedAccount, nil)
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
				dispatcher.EXPECT().Dispatch(gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TransactionResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrAccountClosed.Error())
			},
		},
		{
			name: "Transfer insufficient balance",
			arg: domain.CreateTransactionParams{
				TransactionType:          domain.Transfer,
				Amount:                   "2000",
				AccountNumber:            sourceAccount.AccountNumber,
				DestinationAccountNumber: destinationAccount.AccountNumber,
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService, dispatcher *MockDispatcher) {
				accountService.EXPECT().GetByNumber(gomock.Any(), gomock.Eq(sourceAccount.AccountNumber)).
					Times(1).
					Return(sourceAccount, nil)
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TransactionResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInsufficientBalance.Error())
			},
		},
		{
			name: "Transfer OK emits receiver credit alert",
			arg: domain.CreateTransactionParams{
				TransactionType:          domain.Transfer,
				Amount:                   "100",
				AccountNumber:            sourceAccount.AccountNumber,
				DestinationAccountNumber: destinationAccount.AccountNumber,
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService, dispatcher *MockDispatcher) {
				accountService.EXPECT().GetByNumber(gomock.Any(), gomock.Eq(sourceAccount.AccountNumber)).
					Times(1).
					Return(sourceAccount, nil)
				accountService.EXPECT().GetByNumber(gomock.Any(), gomock.Eq(destinationAccount.AccountNumber)).
					Times(1).
					Return(destinationAccount, nil)
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).
					Times(1).
					Return(transferResult, nil)

				debitEvent := domain.TransactionEvent{
					Kind:            domain.DebitAlert,
					Owner:           sourceAccount.Owner,
					AccountNumber:   sourceAccount.AccountNumber,
					TransactionType: domain.Transfer,
					Amount:          "100",
					Balance:         sourceAccount.Balance,
				}
				creditEvent := domain.TransactionEvent{
					Kind:            domain.CreditAlert,
					Owner:           destinationAccount.Owner,
					AccountNumber:   destinationAccount.AccountNumber,
					TransactionType: domain.Transfer,
					Amount:          "100",
					Balance:         destinationAccount.Balance,
				}
				dispatcher.EXPECT().Dispatch(gomock.Eq(debitEvent)).Times(1)
				dispatcher.EXPECT().Dispatch(gomock.Eq(creditEvent)).Times(1)
			},
			checkResponse: func(res domain.TransactionResult, err error) {
				require.NoError(t, err)
				require.Equal(t, transferResult, res)
			},
		},
		{
			name: "Repo internal error",
			arg: domain.CreateTransactionParams{
				TransactionType: domain.Deposit,
				Amount:          "100",
				AccountNumber:   sourceAccount.AccountNumber,
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService, dispatcher *MockDispatcher) {
				accountService.EXPECT().GetByNumber(gomock.Any(), gomock.Eq(sourceAccount.AccountNumber)).
					Times(1).
					Return(sourceAccount, nil)
				repo.EXPECT().Deposit(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.TransactionResult{}, errorspkg.ErrInternal)
				dispatcher.EXPECT().Dispatch(gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TransactionResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, errorspkg.ErrInternal.Error())
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			accountService := NewMockAccountService(ctrl)
			dispatcher := NewMockDispatcher(ctrl)
			service := New(repo, accountService, dispatcher)

			tc.buildStubs(repo, accountService, dispatcher)

			tc.checkResponse(service.Execute(context.Background(), tc.arg))
		})
	}
}

func TestListForAccount(t *testing.T) {
	account := testAccount("6610000001", "1000")

	transactions := []domain.Transaction{
		{ID: 3, TransactionType: domain.Deposit, Amount: "50", AccountNumber: account.AccountNumber},
		{ID: 2, TransactionType: domain.Withdrawal, Amount: "20", AccountNumber: account.AccountNumber},
	}

	testCases := []struct {
		name          string
		requester     string
		page, size    int32
		buildStubs    func(repo *MockRepo, accountService *MockAccountService)
		checkResponse func(res domain.TransactionPage, err error)
	}{
		{
			name:      "Account not found",
			requester: account.Owner,
			page:      0,
			size:      50,
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				accountService.EXPECT().GetByNumber(gomock.Any(), gomock.Eq(account.AccountNumber)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
			},
			checkResponse: func(res domain.TransactionPage, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrAccountNotFound.Error())
			},
		},
		{
			name:      "Requester does not own account",
			requester: "intruder",
			page:      0,
			size:      50,
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				accountService.EXPECT().GetByNumber(gomock.Any(), gomock.Eq(account.AccountNumber)).
					Times(1).
					Return(account, nil)
				repo.EXPECT().ListForAccount(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TransactionPage, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrAccountOwnerMismatch.Error())
			},
		},
		{
			name:      "OK",
			requester: account.Owner,
			page:      1,
			size:      2,
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				accountService.EXPECT().GetByNumber(gomock.Any(), gomock.Eq(account.AccountNumber)).
					Times(1).
					Return(account, nil)
				repo.EXPECT().ListForAccount(gomock.Any(), gomock.Eq(account.AccountNumber), gomock.Eq(int32(2)), gomock.Eq(int32(2))).
					Times(1).
					Return(transactions, nil)
				repo.EXPECT().CountForAccount(gomock.Any(), gomock.Eq(account.AccountNumber)).
					Times(1).
					Return(int64(5), nil)
			},
			checkResponse: func(res domain.TransactionPage, err error) {
				require.NoError(t, err)
				require.Equal(t, transactions, res.Transactions)
				require.Equal(t, int32(1), res.CurrentPage)
				require.Equal(t, int32(2), res.PageSize)
				require.Equal(t, int64(5), res.TotalItems)
				require.Equal(t, int32(3), res.TotalPages)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			accountService := NewMockAccountService(ctrl)
			dispatcher := NewMockDispatcher(ctrl)
			service := New(repo, accountService, dispatcher)

			tc.buildStubs(repo, accountService)

			tc.checkResponse(service.ListForAccount(
				context.Background(),
				tc.requester,
				account.AccountNumber,
				tc.page,
				tc.size,
			))
		})
	}
}
