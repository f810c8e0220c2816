// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

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

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Create(ctx context.Context, owner string, accountType domain.AccountType) (domain.Account, error)
	ListForOwner(ctx context.Context, owner string) ([]domain.Account, error)
	Close(ctx context.Context, accountNumber, owner string) (domain.Account, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(as Service) *Handler {
	return &Handler{service: as}
}

type createRequest struct {
	AccountType domain.AccountType `json:"account_type" binding:"required,accounttype"`
}

// Create handles http request to open a new account for the caller.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(http.StatusBadRequest, err))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	account, err := h.service.Create(ctx, authPayload.Username, req.AccountType)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(http.StatusInternalServerError, errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusCreated, jsonresponse.OK(http.StatusCreated, "Account created successfully", account))
}

// ListMine handles http request to list the caller's accounts.
func (h *Handler) ListMine(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	accounts, err := h.service.ListForOwner(ctx, authPayload.Username)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(http.StatusInternalServerError, errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, jsonresponse.OK(http.StatusOK, "User accounts fetched successfully", accounts))
}

type closeRequest struct {
	AccountNumber string `uri:"account_number" binding:"required,len=10,numeric"`
}

// Close handles http request to close an account by number.
func (h *Handler) Close(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req closeRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(http.StatusBadRequest, err))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	_, err := h.service.Close(ctx, req.AccountNumber, authPayload.Username)
	if err != nil {
		switch err {
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, jsonresponse.Error(http.StatusNotFound, err))
			return
		case domain.ErrAccountOwnerMismatch:
			gctx.JSON(http.StatusUnauthorized, jsonresponse.Error(http.StatusUnauthorized, err))
			return
		case domain.ErrBalanceNotZero, domain.ErrAccountClosed:
			gctx.JSON(http.StatusBadRequest, jsonresponse.Error(http.StatusBadRequest, err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(http.StatusInternalServerError, errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, jsonresponse.OK(http.StatusOK, "Account closed successfully", nil))
}
