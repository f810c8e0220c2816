package transactiondelivery

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/corebank/corebank/internal/domain"
	"github.com/corebank/corebank/internal/middleware"
	"github.com/corebank/corebank/pkg/currencypkg"
	"github.com/corebank/corebank/pkg/errorspkg"
	"github.com/corebank/corebank/pkg/jsonresponse"
	"github.com/corebank/corebank/pkg/randompkg"
	"github.com/corebank/corebank/pkg/tokenpkg"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("transactiontype", ValidTransactionType); err != nil {
			panic(err)
		}
	}

	os.Exit(m.Run())
}

func newTestServer(t *testing.T, service Service, tokenMaker tokenpkg.Maker) *gin.Engine {
	t.Helper()

	handler := NewHandler(service)

	server := gin.New()
	routes := server.Group("/transactions").Use(middleware.AuthMiddleware(tokenMaker))
	routes.POST("", handler.Create)
	routes.GET("/:account_number", handler.ListForAccount)

	return server
}

func TestCreateAPI(t *testing.T) {
	username := randompkg.Owner()

	account := domain.Account{
		ID:            1,
		AccountNumber: "6610000001",
		Owner:         username,
		Balance:       "1100",
		Currency:      currencypkg.USD,
		AccountType:   domain.Savings,
		Status:        domain.AccountActive,
		CreatedAt:     time.Now().Truncate(time.Second).UTC(),
	}

	result := domain.TransactionResult{
		Transaction: domain.Transaction{
			ID:              1,
			Amount:          "100",
			TransactionType: domain.Deposit,
			Status:          domain.StatusSuccess,
			AccountNumber:   account.AccountNumber,
			TransactionDate: time.Now().Truncate(time.Second).UTC(),
		},
		Account: account,
	}

	tokenMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	if err != nil {
		t.Fatalf("tokenpkg.NewPasetoMaker() returned error: %v", err)
	}

	duration := time.Minute

	type requestBody struct {
		TransactionType          string `json:"transaction_type"`
		Amount                   string `json:"amount"`
		AccountNumber            string `json:"account_number"`
		Description              string `json:"description,omitempty"`
		DestinationAccountNumber string `json:"destination_account_number,omitempty"`
	}

	okBody := requestBody{
		TransactionType: string(domain.Deposit),
		Amount:          "100",
		AccountNumber:   account.AccountNumber,
	}

	testCases := []struct {
		name           string
		requestBody    requestBody
		setupAuth      func(t *testing.T, r *http.Request) error
		buildStubs     func(service *MockService)
		wantStatusCode int
		checkData      func(data any)
	}{
		{
			name:        "OK",
			requestBody: okBody,
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, username, domain.RoleCustomer, duration)
			},
			buildStubs: func(service *MockService) {
				arg := domain.CreateTransactionParams{
					TransactionType: domain.Deposit,
					Amount:          "100",
					AccountNumber:   account.AccountNumber,
				}
				service.EXPECT().
					Execute(gomock.Any(), gomock.Eq(arg)).
					Times(1).
					Return(result, nil)
			},
			wantStatusCode: http.StatusOK,
			checkData: func(data any) {
				got, ok := data.(*domain.TransactionResult)
				if !ok {
					t.Fatalf(`res.Data=%v, failed type conversion`, data)
				}

				compareTime := cmpopts.EquateApproxTime(time.Second)
				if diff := cmp.Diff(result, *got, compareTime); diff != "" {
					t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name:        "NoAuthorization",
			requestBody: okBody,
			setupAuth: func(t *testing.T, r *http.Request) error {
				return nil
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().Execute(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name: "UnsupportedTransactionType",
			requestBody: requestBody{
				TransactionType: "REVERSAL",
				Amount:          "100",
				AccountNumber:   account.AccountNumber,
			},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, username, domain.RoleCustomer, duration)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().Execute(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "TransferMissingDestination",
			requestBody: requestBody{
				TransactionType: string(domain.Transfer),
				Amount:          "100",
				AccountNumber:   account.AccountNumber,
			},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, username, domain.RoleCustomer, duration)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().Execute(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "ErrAccountNotFound",
			requestBody: requestBody{
				TransactionType: string(domain.Deposit),
				Amount:          "100",
				AccountNumber:   "6699999999",
			},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, username, domain.RoleCustomer, duration)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Execute(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.TransactionResult{}, domain.ErrAccountNotFound)
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name: "ErrDestinationNotFound",
			requestBody: requestBody{
				TransactionType:          string(domain.Transfer),
				Amount:                   "100",
				AccountNumber:            account.AccountNumber,
				DestinationAccountNumber: "6699999999",
			},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, username, domain.RoleCustomer, duration)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Execute(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.TransactionResult{}, domain.ErrDestinationNotFound)
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name: "ErrInsufficientBalance",
			requestBody: requestBody{
				TransactionType: string(domain.Withdrawal),
				Amount:          "100000",
				AccountNumber:   account.AccountNumber,
			},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, username, domain.RoleCustomer, duration)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Execute(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.TransactionResult{}, domain.ErrInsufficientBalance)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "ErrAccountClosed",
			requestBody: requestBody{
				TransactionType: string(domain.Deposit),
				Amount:          "100",
				AccountNumber:   account.AccountNumber,
			},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, username, domain.RoleCustomer, duration)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Execute(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.TransactionResult{}, domain.ErrAccountClosed)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:        "InternalServerError",
			requestBody: okBody,
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, username, domain.RoleCustomer, duration)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Execute(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.TransactionResult{}, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			server := newTestServer(t, service, tokenMaker)

			tc.buildStubs(service)

			body, err := json.Marshal(tc.requestBody)
			if err != nil {
				t.Fatalf("Encoding request body error: %v", err)
			}

			req, err := http.NewRequest(http.MethodPost, "/transactions", bytes.NewReader(body))
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			if err = tc.setupAuth(t, req); err != nil {
				t.Fatalf("tc.setupAuth(t, req) returned error: %v", err)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			res := jsonresponse.Response{Data: &domain.TransactionResult{}}
			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Fatalf("Decoding response body error: %v", err)
			}

			if tc.checkData != nil {
				tc.checkData(res.Data)
			}
		})
	}
}

func TestListForAccountAPI(t *testing.T) {
	username := randompkg.Owner()
	accountNumber := "6610000001"

	page := domain.TransactionPage{
		Transactions: []domain.Transaction{
			{
				ID:              2,
				Amount:          "50",
				TransactionType: domain.Withdrawal,
				Status:          domain.StatusSuccess,
				AccountNumber:   accountNumber,
				TransactionDate: time.Now().Truncate(time.Second).UTC(),
			},
			{
				ID:              1,
				Amount:          "100",
				TransactionType: domain.Deposit,
				Status:          domain.StatusSuccess,
				AccountNumber:   accountNumber,
				TransactionDate: time.Now().Add(-time.Hour).Truncate(time.Second).UTC(),
			},
		},
		CurrentPage: 0,
		PageSize:    50,
		TotalItems:  2,
		TotalPages:  1,
	}

	tokenMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	if err != nil {
		t.Fatalf("tokenpkg.NewPasetoMaker() returned error: %v", err)
	}

	duration := time.Minute

	testCases := []struct {
		name           string
		url            string
		setupAuth      func(t *testing.T, r *http.Request) error
		buildStubs     func(service *MockService)
		wantStatusCode int
		checkResponse  func(res jsonresponse.Response)
	}{
		{
			name: "OK with default pagination",
			url:  fmt.Sprintf("/transactions/%s", accountNumber),
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, username, domain.RoleCustomer, duration)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					ListForAccount(gomock.Any(), gomock.Eq(username), gomock.Eq(accountNumber), gomock.Eq(int32(0)), gomock.Eq(int32(50))).
					Times(1).
					Return(page, nil)
			},
			wantStatusCode: http.StatusOK,
			checkResponse: func(res jsonresponse.Response) {
				got, ok := res.Data.(*[]domain.Transaction)
				if !ok {
					t.Fatalf(`res.Data=%v, failed type conversion`, res.Data)
				}

				compareTime := cmpopts.EquateApproxTime(time.Second)
				if diff := cmp.Diff(page.Transactions, *got, compareTime); diff != "" {
					t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
				}

				wantMeta := jsonresponse.Meta{
					CurrentPage: 0,
					TotalItems:  2,
					TotalPages:  1,
					PageSize:    50,
				}
				if res.Meta == nil {
					t.Fatal("res.Meta is nil")
				}
				if diff := cmp.Diff(wantMeta, *res.Meta); diff != "" {
					t.Errorf("res.Meta mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name: "Explicit pagination",
			url:  fmt.Sprintf("/transactions/%s?page=2&size=10", accountNumber),
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, username, domain.RoleCustomer, duration)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					ListForAccount(gomock.Any(), gomock.Eq(username), gomock.Eq(accountNumber), gomock.Eq(int32(2)), gomock.Eq(int32(10))).
					Times(1).
					Return(domain.TransactionPage{CurrentPage: 2, PageSize: 10, TotalItems: 2, TotalPages: 1}, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "NoAuthorization",
			url:  fmt.Sprintf("/transactions/%s", accountNumber),
			setupAuth: func(t *testing.T, r *http.Request) error {
				return nil
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					ListForAccount(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name: "InvalidAccountNumber",
			url:  "/transactions/abc",
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, username, domain.RoleCustomer, duration)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					ListForAccount(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "ExceededPageSize",
			url:  fmt.Sprintf("/transactions/%s?size=500", accountNumber),
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, username, domain.RoleCustomer, duration)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					ListForAccount(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "ErrAccountNotFound",
			url:  fmt.Sprintf("/transactions/%s", accountNumber),
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, username, domain.RoleCustomer, duration)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					ListForAccount(gomock.Any(), gomock.Eq(username), gomock.Eq(accountNumber), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.TransactionPage{}, domain.ErrAccountNotFound)
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name: "ErrAccountOwnerMismatch",
			url:  fmt.Sprintf("/transactions/%s", accountNumber),
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, username, domain.RoleCustomer, duration)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					ListForAccount(gomock.Any(), gomock.Eq(username), gomock.Eq(accountNumber), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.TransactionPage{}, domain.ErrAccountOwnerMismatch)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "InternalServerError",
			url:  fmt.Sprintf("/transactions/%s", accountNumber),
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, username, domain.RoleCustomer, duration)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					ListForAccount(gomock.Any(), gomock.Eq(username), gomock.Eq(accountNumber), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.TransactionPage{}, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			server := newTestServer(t, service, tokenMaker)

			tc.buildStubs(service)

			req, err := http.NewRequest(http.MethodGet, tc.url, nil)
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			if err = tc.setupAuth(t, req); err != nil {
				t.Fatalf("tc.setupAuth(t, req) returned error: %v", err)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			res := jsonresponse.Response{Data: &[]domain.Transaction{}}
			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Fatalf("Decoding response body error: %v", err)
			}

			if tc.checkResponse != nil {
				tc.checkResponse(res)
			}
		})
	}
}
