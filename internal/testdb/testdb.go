// Package testdb starts a throwaway embedded postgres for package tests.
package testdb

import (
	"context"
	"os"

	"github.com/blutspende/recipelab/config"
	"github.com/blutspende/recipelab/db"
	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type EmbeddedPostgres struct {
	postgres    *embeddedpostgres.EmbeddedPostgres
	runtimePath string
	Config      config.Configuration
}

// Start boots postgres on the given port. Every test package uses its own
// port and runtime directory because packages are tested in parallel.
func Start(port uint32) (*EmbeddedPostgres, error) {
	runtimePath, err := os.MkdirTemp("", "recipelab-postgres-")
	if err != nil {
		return nil, errors.Wrap(err, "create runtime path failed")
	}

	postgres := embeddedpostgres.NewDatabase(embeddedpostgres.DefaultConfig().
		Port(port).
		RuntimePath(runtimePath))
	err = postgres.Start()
	if err != nil {
		_ = os.RemoveAll(runtimePath)
		return nil, errors.Wrap(err, "starting embedded postgres failed")
	}

	configuration := config.Configuration{
		ApplicationName:        "recipelab-test",
		PermittedOrigin:        "*",
		LogLevel:               zerolog.DebugLevel,
		RequestTimeoutSeconds:  5,
		ShutdownTimeoutSeconds: 1,
	}
	configuration.PostgresDB.Driver = "pgx"
	configuration.PostgresDB.Host = "localhost"
	configuration.PostgresDB.Port = int(port)
	configuration.PostgresDB.User = "postgres"
	configuration.PostgresDB.Pass = "postgres"
	configuration.PostgresDB.Database = "postgres"
	configuration.PostgresDB.SSLMode = "disable"
	configuration.PostgresDB.MaxOpenConns = 10
	configuration.PostgresDB.MaxIdleConns = 10
	configuration.PostgresDB.ConnMaxLifetimeMinutes = 5

	return &EmbeddedPostgres{
		postgres:    postgres,
		runtimePath: runtimePath,
		Config:      configuration,
	}, nil
}

// Connect opens a pool against the embedded instance, the schema is set on the
// returned configuration copy.
func (e *EmbeddedPostgres) Connect(schemaName string) (db.Postgres, *sqlx.DB, config.Configuration, error) {
	configuration := e.Config
	configuration.PostgresDB.Schema = schemaName

	postgres := db.NewPostgres(context.Background(), &configuration)
	err := postgres.Connect()
	if err != nil {
		return nil, nil, configuration, err
	}
	sqlConn, err := postgres.GetSqlConnection()
	return postgres, sqlConn, configuration, err
}

func (e *EmbeddedPostgres) Stop() {
	err := e.postgres.Stop()
	if err != nil {
		log.Error().Err(err).Msg("stopping embedded postgres failed")
	}
	_ = os.RemoveAll(e.runtimePath)
}

func ConfigureLogger() {
	consoleWriter := zerolog.NewConsoleWriter()
	consoleWriter.TimeFormat = "2006-01-02T15:04:05Z07:00"
	log.Logger = zerolog.New(consoleWriter).With().Caller().Stack().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
}
