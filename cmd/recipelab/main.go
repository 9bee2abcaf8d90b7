package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blutspende/recipelab"
	"github.com/blutspende/recipelab/config"
	"github.com/blutspende/recipelab/db"
	"github.com/blutspende/recipelab/migrator"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

// overridden during build with ldflags
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recipelab.BuildVersion = version

	app := &cli.Command{
		Name:    "recipelab",
		Usage:   "REST API keeping track of recipes and of how cooking them went",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "schema",
				Usage: "Postgres schema to use, overrides POSTGRES_SCHEMA",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Migrate the database and serve the API until interrupted",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "Apply pending database migrations and exit",
				Action: migrate,
			},
			{
				Name:  "reset",
				Usage: "Drop the schema with all recipes and logs, then migrate it again",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "yes",
						Usage: "Confirm that all data may be deleted",
					},
				},
				Action: reset,
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(ctx, os.Args); err != nil {
		log.Error().Err(err).Msg("recipelab failed")
		os.Exit(1)
	}
}

func serve(ctx context.Context, cmd *cli.Command) error {
	configuration, postgres, dbConn, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer closePostgres(postgres)

	err = migrator.NewMigrator().Run(ctx, dbConn, configuration.PostgresDB.Schema)
	if err != nil {
		return errors.Wrap(err, "migrate database failed")
	}

	recipeService := recipelab.NewRecipeService(recipelab.NewRecipeRepository(dbConn, configuration.PostgresDB.Schema))
	logService := recipelab.NewLogService(recipelab.NewLogRepository(dbConn, configuration.PostgresDB.Schema))
	api := recipelab.NewAPI(&configuration, recipeService, logService, dbConn)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return api.Run(gctx)
	})
	if configuration.PostgresDB.PingIntervalSeconds > 0 {
		g.Go(func() error {
			return db.WatchConnection(gctx, dbConn, time.Duration(configuration.PostgresDB.PingIntervalSeconds)*time.Second)
		})
	}

	return g.Wait()
}

func migrate(ctx context.Context, cmd *cli.Command) error {
	configuration, postgres, dbConn, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer closePostgres(postgres)

	return migrator.NewMigrator().Run(ctx, dbConn, configuration.PostgresDB.Schema)
}

func reset(ctx context.Context, cmd *cli.Command) error {
	if !cmd.Bool("yes") {
		return errors.New("refusing to reset without --yes")
	}
	configuration, postgres, dbConn, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer closePostgres(postgres)

	return migrator.NewMigrator().Reset(ctx, dbConn, configuration.PostgresDB.Schema)
}

func setup(ctx context.Context, cmd *cli.Command) (config.Configuration, db.Postgres, db.DbConnector, error) {
	configuration, err := config.ReadConfiguration()
	if err != nil {
		return configuration, nil, nil, err
	}
	if schema := cmd.String("schema"); schema != "" {
		configuration.PostgresDB.Schema = schema
	}
	configureLogger(configuration)

	postgres := db.NewPostgres(ctx, &configuration)
	err = postgres.Connect()
	if err != nil {
		return configuration, nil, nil, err
	}
	sqlConn, err := postgres.GetSqlConnection()
	if err != nil {
		closePostgres(postgres)
		return configuration, nil, nil, err
	}

	err = prometheus.Register(collectors.NewDBStatsCollector(sqlConn.DB, configuration.PostgresDB.Database))
	if err != nil {
		var alreadyRegistered prometheus.AlreadyRegisteredError
		if !errors.As(err, &alreadyRegistered) {
			closePostgres(postgres)
			return configuration, nil, nil, errors.Wrap(err, "register db stats collector failed")
		}
	}

	return configuration, postgres, db.CreateDbConnector(sqlConn), nil
}

func configureLogger(configuration config.Configuration) {
	if configuration.Development {
		consoleWriter := zerolog.NewConsoleWriter()
		consoleWriter.TimeFormat = "2006-01-02T15:04:05Z07:00"
		log.Logger = zerolog.New(consoleWriter).With().Caller().Stack().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Str("service", configuration.ApplicationName).Logger()
	}
	zerolog.SetGlobalLevel(configuration.LogLevel)
	log.Debug().Msgf("log level set to %s", configuration.LogLevel)
}

func closePostgres(postgres db.Postgres) {
	if err := postgres.Close(); err != nil {
		log.Error().Err(err).Msg("close postgres failed")
	}
}
