// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/corebank/corebank/internal/accountdelivery"
	"github.com/corebank/corebank/internal/accountrepo"
	"github.com/corebank/corebank/internal/accountservice"
	"github.com/corebank/corebank/internal/auditdelivery"
	"github.com/corebank/corebank/internal/auditservice"
	"github.com/corebank/corebank/internal/ledgerservice"
	"github.com/corebank/corebank/internal/middleware"
	"github.com/corebank/corebank/internal/notification"
	"github.com/corebank/corebank/internal/transactiondelivery"
	"github.com/corebank/corebank/internal/transactionrepo"
	"github.com/corebank/corebank/pkg/configpkg"
	"github.com/corebank/corebank/pkg/tokenpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB         *sql.DB
	Engine     *gin.Engine
	Config     configpkg.Config
	Dispatcher *notification.Dispatcher
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	accountRepo := accountrepo.NewRepoPGS(conn)
	transactionRepo := transactionrepo.NewRepoPGS(conn)

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	dispatcher := notification.New(config.NotificationURL, config.NotificationQueue, logger)
	dispatcher.Start(1)

	accountService := accountservice.New(accountRepo)
	ledgerService := ledgerservice.New(transactionRepo, accountService, dispatcher)
	auditService := auditservice.New(accountRepo, transactionRepo)

	accountHandler := accountdelivery.NewHandler(accountService)
	transactionHandler := transactiondelivery.NewHandler(ledgerService)
	auditHandler := auditdelivery.NewHandler(auditService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(tokenMaker))

	authRoutes.POST("/accounts", accountHandler.Create)
	authRoutes.GET("/accounts/me", accountHandler.ListMine)
	authRoutes.DELETE("/accounts/close/:account_number", accountHandler.Close)

	transactionRoutes := engine.Group("/transactions").Use(middleware.AuthMiddleware(tokenMaker))
	if config.RedisAddress != "" {
		rdb := redis.NewClient(&redis.Options{Addr: config.RedisAddress})
		transactionRoutes.Use(middleware.Idempotency(rdb, config.IdempotencyKeyTTL))
	}

	transactionRoutes.POST("", transactionHandler.Create)
	transactionRoutes.GET("/:account_number", transactionHandler.ListForAccount)

	auditRoutes := engine.Group("/audit").Use(
		middleware.AuthMiddleware(tokenMaker),
		middleware.RequireAuditRole(),
	)

	auditRoutes.GET("/totals", auditHandler.Totals)
	auditRoutes.GET("/accounts/:account_number", auditHandler.AccountByNumber)
	auditRoutes.GET("/transactions/:account_number", auditHandler.TransactionsForAccount)
	auditRoutes.GET("/transactions/id/:id", auditHandler.TransactionByID)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("accounttype", accountdelivery.ValidAccountType); err != nil {
			return nil, errors.New("cannot register account type validator")
		}

		if err := v.RegisterValidation("transactiontype", transactiondelivery.ValidTransactionType); err != nil {
			return nil, errors.New("cannot register transaction type validator")
		}
	}

	server := &Server{
		DB:         conn,
		Engine:     engine,
		Config:     config,
		Dispatcher: dispatcher,
	}

	return server, nil
}
