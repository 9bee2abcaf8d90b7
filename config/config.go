package config

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const MsgFailedToReadConfiguration = "failed to read configuration"

var ErrFailedToReadConfiguration = errors.New(MsgFailedToReadConfiguration)

type PostgresDB struct {
	Driver                 string `envconfig:"POSTGRES_DRIVER" default:"pgx"`
	Host                   string `envconfig:"POSTGRES_HOST" default:"localhost"`
	Port                   int    `envconfig:"POSTGRES_PORT" default:"5432"`
	User                   string `envconfig:"POSTGRES_USER" default:"postgres"`
	Pass                   string `envconfig:"POSTGRES_PASS" default:"postgres"`
	Database               string `envconfig:"POSTGRES_DB" default:"postgres"`
	SSLMode                string `envconfig:"POSTGRES_SSL_MODE" default:"disable"`
	Schema                 string `envconfig:"POSTGRES_SCHEMA" default:"recipelab"`
	MaxOpenConns           int    `envconfig:"POSTGRES_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns           int    `envconfig:"POSTGRES_MAX_IDLE_CONNS" default:"25"`
	ConnMaxLifetimeMinutes int    `envconfig:"POSTGRES_CONN_MAX_LIFETIME_MINUTES" default:"5"`
	PingIntervalSeconds    int    `envconfig:"POSTGRES_PING_INTERVAL_SECONDS" default:"30"`
}

type Configuration struct {
	APIPort                uint16        `envconfig:"API_PORT" default:"8080"`
	ApplicationName        string        `envconfig:"APPLICATION_NAME" default:"recipelab"`
	Development            bool          `envconfig:"DEVELOPMENT" default:"false"`
	PermittedOrigin        string        `envconfig:"PERMITTED_ORIGIN_URL" default:"*"`
	LogLevel               zerolog.Level `envconfig:"LOG_LEVEL" default:"1"`
	RequestTimeoutSeconds  int           `envconfig:"REQUEST_TIMEOUT_SECONDS" default:"10"`
	ShutdownTimeoutSeconds int           `envconfig:"SHUTDOWN_TIMEOUT_SECONDS" default:"5"`
	PostgresDB
}

func ReadConfiguration() (Configuration, error) {
	var config Configuration
	err := envconfig.Process("", &config)
	if err != nil {
		err = errors.Wrap(err, MsgFailedToReadConfiguration)
		log.Error().Err(err).Msgf("%s\n", ErrFailedToReadConfiguration)
		return config, err
	}
	return config, nil
}
