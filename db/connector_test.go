package db_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/blutspende/recipelab/db"
	"github.com/blutspende/recipelab/internal/testdb"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var embedded *testdb.EmbeddedPostgres

func TestMain(m *testing.M) {
	testdb.ConfigureLogger()

	var err error
	embedded, err = testdb.Start(5554)
	if err != nil {
		log.Fatal().Err(err).Msg("starting embedded postgres failed")
	}

	code := m.Run()

	embedded.Stop()
	os.Exit(code)
}

func TestPingAndPoolLimits(t *testing.T) {
	postgres, sqlConn, configuration, err := embedded.Connect("public")
	require.Nil(t, err)
	defer postgres.Close()

	assert.Nil(t, db.CreateDbConnector(sqlConn).Ping(context.Background()))
	assert.Equal(t, configuration.PostgresDB.MaxOpenConns, sqlConn.Stats().MaxOpenConnections)
}

func TestPingWithoutConnection(t *testing.T) {
	assert.ErrorIs(t, db.CreateDbConnector(nil).Ping(context.Background()), db.ErrDbConnectionNotAvailable)
}

func TestTransactionConnector(t *testing.T) {
	postgres, sqlConn, _, err := embedded.Connect("public")
	require.Nil(t, err)
	defer postgres.Close()
	ctx := context.Background()

	_, err = sqlConn.Exec(`CREATE TABLE IF NOT EXISTS connector_test(value text);`)
	require.Nil(t, err)
	dbConn := db.CreateDbConnector(sqlConn)

	tx, err := dbConn.CreateTransactionConnector(ctx)
	require.Nil(t, err)
	_, err = tx.CreateTransactionConnector(ctx)
	assert.ErrorIs(t, err, db.ErrTransactionAlreadyAssigned)

	rows, err := tx.NamedQueryContext(ctx, `INSERT INTO connector_test(value) VALUES (:value) RETURNING value;`, map[string]interface{}{"value": "committed"})
	require.Nil(t, err)
	require.True(t, rows.Next())
	var value string
	require.Nil(t, rows.Scan(&value))
	_ = rows.Close()
	assert.Equal(t, "committed", value)
	require.Nil(t, tx.Commit())

	tx, err = dbConn.CreateTransactionConnector(ctx)
	require.Nil(t, err)
	_, err = tx.ExecContext(ctx, `INSERT INTO connector_test(value) VALUES ($1);`, "rolled back")
	require.Nil(t, err)
	require.Nil(t, tx.Rollback())
	assert.Nil(t, tx.Rollback())

	var values []string
	require.Nil(t, sqlConn.Select(&values, `SELECT value FROM connector_test ORDER BY value;`))
	assert.Equal(t, []string{"committed"}, values)
}

func TestWatchConnectionPublishesDatabaseState(t *testing.T) {
	postgres, sqlConn, _, err := embedded.Connect("public")
	require.Nil(t, err)
	defer postgres.Close()

	for _, tc := range []struct {
		name   string
		dbConn db.DbConnector
		want   float64
	}{
		{"unavailable", db.CreateDbConnector(nil), 0},
		{"available", db.CreateDbConnector(sqlConn), 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() {
				done <- db.WatchConnection(ctx, tc.dbConn, 10*time.Millisecond)
			}()

			assert.Eventually(t, func() bool {
				return testutil.ToFloat64(db.DatabaseUp) == tc.want
			}, time.Second, 5*time.Millisecond)

			cancel()
			select {
			case err := <-done:
				assert.Nil(t, err)
			case <-time.After(time.Second):
				t.Fatal("watcher did not stop")
			}
		})
	}
}
