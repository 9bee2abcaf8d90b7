package db

import (
	"context"
	"fmt"
	"time"

	"github.com/blutspende/recipelab/config"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	// pgx is the default driver, lib/pq stays available as "postgres"
	_ "github.com/jackc/pgx/v4/stdlib"
	_ "github.com/lib/pq"
)

type Postgres interface {
	Connect() error
	GetSqlConnection() (*sqlx.DB, error)
	Close() error
}

type postgres struct {
	ctx    context.Context
	config *config.Configuration
	pgConn *sqlx.DB
}

func NewPostgres(ctx context.Context, config *config.Configuration) Postgres {
	return &postgres{
		ctx:    ctx,
		config: config,
		pgConn: nil,
	}
}

func (p *postgres) Connect() error {
	driver := p.config.PostgresDB.Driver
	if driver == "" {
		driver = "pgx"
	}
	pgDB, err := sqlx.ConnectContext(p.ctx, driver, DataSourceName(p.config))
	if err != nil {
		log.Error().Err(err).Msg(MsgConnectToPostgresFailed)
		return ErrConnectToPostgresFailed
	}

	pgDB.SetMaxOpenConns(p.config.PostgresDB.MaxOpenConns)
	pgDB.SetMaxIdleConns(p.config.PostgresDB.MaxIdleConns)
	pgDB.SetConnMaxLifetime(time.Duration(p.config.PostgresDB.ConnMaxLifetimeMinutes) * time.Minute)

	log.Info().Msgf("Postgres available, connected to %s / %s", p.config.PostgresDB.Host, p.config.PostgresDB.Database)
	p.pgConn = pgDB
	return nil
}

func (p *postgres) GetSqlConnection() (*sqlx.DB, error) {
	if p.pgConn == nil {
		return nil, ErrDbConnectionNotAvailable
	}
	return p.pgConn, nil
}

func (p *postgres) Close() error {
	if p.pgConn != nil {
		return p.pgConn.Close()
	}
	return nil
}

func DataSourceName(config *config.Configuration) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s application_name=%s",
		config.PostgresDB.Host, config.PostgresDB.Port, config.PostgresDB.User,
		config.PostgresDB.Pass, config.PostgresDB.Database, config.PostgresDB.SSLMode, config.ApplicationName)
}
