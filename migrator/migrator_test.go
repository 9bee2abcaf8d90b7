package migrator_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/blutspende/recipelab/db"
	"github.com/blutspende/recipelab/internal/testdb"
	"github.com/blutspende/recipelab/migrator"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var embedded *testdb.EmbeddedPostgres

func TestMain(m *testing.M) {
	testdb.ConfigureLogger()

	var err error
	embedded, err = testdb.Start(5552)
	if err != nil {
		log.Fatal().Err(err).Msg("starting embedded postgres failed")
	}

	code := m.Run()

	embedded.Stop()
	os.Exit(code)
}

func currentVersion(t *testing.T, dbConn db.DbConnector, schemaName string) int {
	row := dbConn.QueryRowxContext(context.Background(), fmt.Sprintf(`SELECT MAX(version) FROM "%s".rl_migrations`, schemaName))
	require.NotNil(t, row)
	require.Nil(t, row.Err())
	var version int
	require.Nil(t, row.Scan(&version))
	return version
}

func TestMigrations(t *testing.T) {
	postgres, sqlConn, _, err := embedded.Connect("migrator_test")
	require.Nil(t, err)
	defer postgres.Close()
	dbConn := db.CreateDbConnector(sqlConn)

	mig := migrator.NewMigrator()
	assert.NotNil(t, mig)
	err = mig.Reset(context.Background(), dbConn, "migrator_test")
	assert.Nil(t, err)

	//MODIFY THE EXPECTED VERSION AFTER ADDING A NEW MIGRATION!!!
	assert.Equal(t, 2, currentVersion(t, dbConn, "migrator_test"))
	assert.Equal(t, 2, mig.LatestVersion())
}

func TestMigrationsAreIdempotent(t *testing.T) {
	postgres, sqlConn, _, err := embedded.Connect("migrator_rerun")
	require.Nil(t, err)
	defer postgres.Close()
	dbConn := db.CreateDbConnector(sqlConn)

	mig := migrator.NewMigrator()
	require.Nil(t, mig.Reset(context.Background(), dbConn, "migrator_rerun"))
	require.Nil(t, mig.Run(context.Background(), dbConn, "migrator_rerun"))

	var count int
	err = sqlConn.Get(&count, `SELECT COUNT(*) FROM "migrator_rerun".rl_migrations`)
	assert.Nil(t, err)
	assert.Equal(t, mig.LatestVersion(), count)
}

func TestResetDropsData(t *testing.T) {
	postgres, sqlConn, _, err := embedded.Connect("migrator_reset")
	require.Nil(t, err)
	defer postgres.Close()
	dbConn := db.CreateDbConnector(sqlConn)

	mig := migrator.NewMigrator()
	require.Nil(t, mig.Reset(context.Background(), dbConn, "migrator_reset"))

	_, err = sqlConn.Exec(`INSERT INTO "migrator_reset".recipes(name) VALUES ('cookies');`)
	require.Nil(t, err)

	require.Nil(t, mig.Reset(context.Background(), dbConn, "migrator_reset"))

	var count int
	err = sqlConn.Get(&count, `SELECT COUNT(*) FROM "migrator_reset".recipes`)
	assert.Nil(t, err)
	assert.Equal(t, 0, count)
}

func TestEveryAppliedVersionIsRecorded(t *testing.T) {
	postgres, sqlConn, _, err := embedded.Connect("migrator_versions")
	require.Nil(t, err)
	defer postgres.Close()
	dbConn := db.CreateDbConnector(sqlConn)

	mig := migrator.NewMigrator()
	require.Nil(t, mig.Reset(context.Background(), dbConn, "migrator_versions"))

	var versions []int
	err = sqlConn.Select(&versions, `SELECT version FROM "migrator_versions".rl_migrations ORDER BY version`)
	require.Nil(t, err)
	assert.Equal(t, []int{1, 2}, versions)
}
