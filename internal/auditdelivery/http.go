// Package auditdelivery manages delivery layer of the audit surface.
package auditdelivery

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/corebank/corebank/internal/auditservice"
	"github.com/corebank/corebank/internal/domain"
	"github.com/corebank/corebank/internal/middleware"
	"github.com/corebank/corebank/pkg/errorspkg"
	"github.com/corebank/corebank/pkg/jsonresponse"
	"github.com/corebank/corebank/pkg/tokenpkg"
)

const auditListLimit = 500

// Service provides service layer interface needed by audit delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package auditdelivery
type Service interface {
	Totals(ctx context.Context, requester domain.Role) (auditservice.SystemTotals, error)
	AccountByNumber(ctx context.Context, requester domain.Role, accountNumber string) (domain.Account, error)
	TransactionsForAccount(ctx context.Context, requester domain.Role, accountNumber string, limit, offset int32) ([]domain.Transaction, error)
	TransactionByID(ctx context.Context, requester domain.Role, id int64) (domain.Transaction, error)
}

// Handler facilitates audit delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns audit handler.
func NewHandler(as Service) *Handler {
	return &Handler{service: as}
}

// Totals handles http request for system-wide counts.
func (h *Handler) Totals(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	totals, err := h.service.Totals(ctx, authPayload.Role)
	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, jsonresponse.OK(http.StatusOK, "System totals retrieved", totals))
}

type accountURI struct {
	AccountNumber string `uri:"account_number" binding:"required,len=10,numeric"`
}

// AccountByNumber handles http request for account details by number.
func (h *Handler) AccountByNumber(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri accountURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(http.StatusBadRequest, err))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	account, err := h.service.AccountByNumber(ctx, authPayload.Role, uri.AccountNumber)
	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, jsonresponse.OK(http.StatusOK, "Account retrieved", account))
}

// TransactionsForAccount handles http request for an account's full trail.
func (h *Handler) TransactionsForAccount(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri accountURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(http.StatusBadRequest, err))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	transactions, err := h.service.TransactionsForAccount(ctx, authPayload.Role, uri.AccountNumber, auditListLimit, 0)
	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, jsonresponse.OK(http.StatusOK, "Transactions retrieved", transactions))
}

// TransactionByID handles http request for a single transaction record.
func (h *Handler) TransactionByID(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	id, err := strconv.ParseInt(gctx.Param("id"), 10, 64)
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(http.StatusBadRequest, err))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	transaction, err := h.service.TransactionByID(ctx, authPayload.Role, id)
	if err != nil {
		writeError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, jsonresponse.OK(http.StatusOK, "Transaction retrieved", transaction))
}

func writeError(gctx *gin.Context, err error) {
	switch err {
	case domain.ErrPermissionDenied:
		gctx.JSON(http.StatusForbidden, jsonresponse.Error(http.StatusForbidden, err))
	case domain.ErrAccountNotFound, domain.ErrTransactionNotFound:
		gctx.JSON(http.StatusNotFound, jsonresponse.Error(http.StatusNotFound, err))
	default:
		gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(http.StatusInternalServerError, errorspkg.ErrInternal))
	}
}
