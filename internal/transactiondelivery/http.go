// Package transactiondelivery manages delivery layer of ledger transactions.
package transactiondelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/corebank/corebank/internal/domain"
	"github.com/corebank/corebank/internal/middleware"
	"github.com/corebank/corebank/pkg/errorspkg"
	"github.com/corebank/corebank/pkg/jsonresponse"
	"github.com/corebank/corebank/pkg/tokenpkg"
)

// Default pagination for transaction history.
const (
	DefaultPage = 0
	DefaultSize = 50
)

// Service provides service layer interface needed by transaction delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transactiondelivery
type Service interface {
	Execute(ctx context.Context, arg domain.CreateTransactionParams) (domain.TransactionResult, error)
	ListForAccount(ctx context.Context, requester, accountNumber string, page, size int32) (domain.TransactionPage, error)
}

// Handler facilitates transaction delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transaction handler.
func NewHandler(ts Service) *Handler {
	return &Handler{
		service: ts,
	}
}

type createRequest struct {
	TransactionType          domain.TransactionType `json:"transaction_type" binding:"required,transactiontype"`
	Amount                   string                 `json:"amount" binding:"required"`
	AccountNumber            string                 `json:"account_number" binding:"required,len=10,numeric"`
	Description              string                 `json:"description"`
	DestinationAccountNumber string                 `json:"destination_account_number" binding:"required_if=TransactionType TRANSFER,omitempty,len=10,numeric"`
}

// Create handles http request to execute a deposit, withdrawal or transfer.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(http.StatusBadRequest, err))

		return
	}

	arg := domain.CreateTransactionParams{
		TransactionType:          req.TransactionType,
		Amount:                   req.Amount,
		AccountNumber:            req.AccountNumber,
		Description:              req.Description,
		DestinationAccountNumber: req.DestinationAccountNumber,
	}

	result, err := h.service.Execute(ctx, arg)
	if err != nil {
		l.Info().Err(err).Send()

		switch err {
		case domain.ErrAccountNotFound, domain.ErrDestinationNotFound:
			gctx.JSON(http.StatusNotFound, jsonresponse.Error(http.StatusNotFound, err))

			return
		case
			domain.ErrInvalidTransactionType,
			domain.ErrInvalidAmount,
			domain.ErrNegativeAmount,
			domain.ErrInsufficientBalance,
			domain.ErrAccountClosed:
			gctx.JSON(http.StatusBadRequest, jsonresponse.Error(http.StatusBadRequest, err))

			return
		}

		gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(http.StatusInternalServerError, errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, jsonresponse.OK(http.StatusOK, "Transaction successful", result))
}

type listURI struct {
	AccountNumber string `uri:"account_number" binding:"required,len=10,numeric"`
}

type listQuery struct {
	Page int32 `form:"page,default=0" binding:"min=0"`
	Size int32 `form:"size,default=50" binding:"min=1,max=100"`
}

// ListForAccount handles http request to page through an account's history.
func (h *Handler) ListForAccount(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri listURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(http.StatusBadRequest, err))

		return
	}

	query := listQuery{Page: DefaultPage, Size: DefaultSize}
	if err := gctx.ShouldBindQuery(&query); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(http.StatusBadRequest, err))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	page, err := h.service.ListForAccount(ctx, authPayload.Username, uri.AccountNumber, query.Page, query.Size)
	if err != nil {
		switch err {
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, jsonresponse.Error(http.StatusNotFound, err))
			return
		case domain.ErrAccountOwnerMismatch:
			gctx.JSON(http.StatusBadRequest, jsonresponse.Error(http.StatusBadRequest, err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(http.StatusInternalServerError, errorspkg.ErrInternal))

		return
	}

	meta := jsonresponse.Meta{
		CurrentPage: page.CurrentPage,
		TotalItems:  page.TotalItems,
		TotalPages:  page.TotalPages,
		PageSize:    page.PageSize,
	}

	gctx.JSON(http.StatusOK, jsonresponse.Paged(http.StatusOK, "Transactions retrieved", page.Transactions, meta))
}
