// Package middleware provides cross-cutting gin middleware: caller
// resolution, role guards, request logging and idempotent replays.
package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/corebank/corebank/internal/domain"
	"github.com/corebank/corebank/pkg/jsonresponse"
	"github.com/corebank/corebank/pkg/tokenpkg"
)

// Keys and header constants for bearer authorization.
const (
	AuthorizationHeaderKey  = "authorization"
	AuthorizationTypeBearer = "bearer"
	AuthPayloadKey          = "authorization_payload"
)

// AuthMiddleware resolves the current caller from a bearer token and stores
// the verified payload in the request context.
func AuthMiddleware(tokenMaker tokenpkg.Maker) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authorizationHeader := ctx.GetHeader(AuthorizationHeaderKey)
		if len(authorizationHeader) == 0 {
			err := errors.New("authorization header is not provided")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, jsonresponse.Error(http.StatusUnauthorized, err))

			return
		}

		fields := strings.Fields(authorizationHeader)
		if len(fields) < 2 {
			err := errors.New("invalid authorization header format")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, jsonresponse.Error(http.StatusUnauthorized, err))

			return
		}

		authorizationType := strings.ToLower(fields[0])
		if authorizationType != AuthorizationTypeBearer {
			err := fmt.Errorf("unsupported authorization type %s", authorizationType)
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, jsonresponse.Error(http.StatusUnauthorized, err))

			return
		}

		accessToken := fields[1]

		payload, err := tokenMaker.VerifyToken(accessToken)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, jsonresponse.Error(http.StatusUnauthorized, err))
			return
		}

		ctx.Set(AuthPayloadKey, payload)
		ctx.Next()
	}
}

// AddAuthorization creates an access token for the given username and role
// and attaches it to the request as a bearer authorization header.
func AddAuthorization(r *http.Request, tokenMaker tokenpkg.Maker, username string, role domain.Role, duration time.Duration) error {
	token, _, err := tokenMaker.CreateToken(username, role, duration)
	if err != nil {
		return err
	}

	r.Header.Set(AuthorizationHeaderKey, fmt.Sprintf("%s %s", AuthorizationTypeBearer, token))

	return nil
}

// RequireAuditRole rejects callers whose role does not grant audit access.
// It must run after AuthMiddleware.
func RequireAuditRole() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		payload := ctx.MustGet(AuthPayloadKey).(*tokenpkg.Payload)

		if !payload.Role.CanAudit() {
			ctx.AbortWithStatusJSON(http.StatusForbidden, jsonresponse.Error(http.StatusForbidden, domain.ErrPermissionDenied))
			return
		}

		ctx.Next()
	}
}
