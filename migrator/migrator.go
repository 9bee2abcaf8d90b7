package migrator

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/blutspende/recipelab/db"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// in order! do not skip any number
var migrations = []string{
	migration_1,
	migration_2,
}

type Migrator interface {
	// Run applies every migration newer than the recorded version.
	Run(ctx context.Context, dbConn db.DbConnector, schemaName string) error
	// Reset drops the schema with all its data and migrates it from scratch.
	Reset(ctx context.Context, dbConn db.DbConnector, schemaName string) error
	LatestVersion() int
}

type migrator struct {
}

func NewMigrator() Migrator {
	return &migrator{}
}

func (m *migrator) LatestVersion() int {
	return len(migrations)
}

func (m *migrator) Run(ctx context.Context, dbConn db.DbConnector, schemaName string) error {
	quotedSchema := pq.QuoteIdentifier(schemaName)

	tx, err := dbConn.CreateTransactionConnector(ctx)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %s;`, quotedSchema))
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	err = m.createMigrationsTableIfNotExists(ctx, tx, quotedSchema)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	currentVersion, err := m.getLastAppliedMigrationVersion(ctx, tx, quotedSchema)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	for i, query := range migrations {
		version := i + 1
		if version <= currentVersion {
			continue
		}
		query = strings.ReplaceAll(query, "<SCHEMA_PLACEHOLDER>", quotedSchema)
		_, err = tx.ExecContext(ctx, query)
		if err != nil {
			log.Error().Err(err).Int("version", version).Msg("apply migration failed")
			_ = tx.Rollback()
			return err
		}
		err = m.insertMigration(ctx, tx, quotedSchema, version)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
		log.Info().Str("schema", schemaName).Int("version", version).Msg("migration applied")
	}
	err = tx.Commit()
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	return nil
}

func (m *migrator) Reset(ctx context.Context, dbConn db.DbConnector, schemaName string) error {
	_, err := dbConn.ExecContext(ctx, fmt.Sprintf(`DROP SCHEMA IF EXISTS %s CASCADE;`, pq.QuoteIdentifier(schemaName)))
	if err != nil {
		log.Error().Err(err).Str("schema", schemaName).Msg("drop schema failed")
		return err
	}
	log.Warn().Str("schema", schemaName).Msg("schema dropped")
	return m.Run(ctx, dbConn, schemaName)
}

func (m *migrator) createMigrationsTableIfNotExists(ctx context.Context, tx db.DbConnector, quotedSchema string) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.rl_migrations(
		"version" int NOT NULL,
		applied_at timestamp NOT NULL DEFAULT now(),
		description varchar NOT NULL DEFAULT '',
		CONSTRAINT rl_pk_migrations PRIMARY KEY (version)
	);`, quotedSchema)
	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}
	return nil
}

func (m *migrator) insertMigration(ctx context.Context, tx db.DbConnector, quotedSchema string, version int) error {
	query := fmt.Sprintf(`INSERT INTO %s.rl_migrations(version)VALUES(:version);`, quotedSchema)
	_, err := tx.NamedExecContext(ctx, query, map[string]interface{}{"version": version})
	if err != nil {
		return err
	}
	return nil
}

func (m *migrator) getLastAppliedMigrationVersion(ctx context.Context, tx db.DbConnector, quotedSchema string) (int, error) {
	query := fmt.Sprintf(`SELECT COALESCE(MAX(version),0) FROM %s.rl_migrations;`, quotedSchema)
	row := tx.QueryRowxContext(ctx, query)
	if row != nil && row.Err() != nil {
		if row.Err() == sql.ErrNoRows {
			return 0, nil
		}
		return -1, row.Err()
	}
	version := 0
	err := row.Scan(&version)
	return version, err
}
