package main

import (
	"net/http"

	"github.com/rs/zerolog/log"

	_ "github.com/lib/pq"

	"github.com/corebank/corebank/internal/httpserver"
	"github.com/corebank/corebank/internal/middleware"
	"github.com/corebank/corebank/pkg/configpkg"
	"github.com/corebank/corebank/pkg/dbpkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.GetLogger(config)

	conn, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to db")
	}

	server, err := httpserver.New(conn, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	defer server.Dispatcher.Close()

	logger.Info().Str("address", config.ServerAddress).Msg("starting server")

	if err := http.ListenAndServe(config.ServerAddress, server); err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
