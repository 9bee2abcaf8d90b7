package recipelab

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogRepositoryCRUD(t *testing.T) {
	dbConn, _, _ := setupDbConnectorAndRunMigration(t, "log_repository_test")
	repository := NewLogRepository(dbConn, "log_repository_test")
	ctx := context.Background()

	recipeID := int64(2)
	created, err := repository.InsertLog(ctx, Log{RecipeID: &recipeID, DateOfEvent: "2021-01-02", Notes: "fud gud", Rating: "5"})
	require.Nil(t, err)
	assert.NotZero(t, created.ID)
	require.NotNil(t, created.RecipeID)
	assert.Equal(t, int64(2), *created.RecipeID)
	assert.Equal(t, "fud gud", created.Notes)

	loaded, err := repository.GetLogByID(ctx, created.ID)
	require.Nil(t, err)
	assert.Equal(t, created, loaded)

	updated, err := repository.UpdateLog(ctx, created.ID, Log{Notes: "needs salt"})
	require.Nil(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Nil(t, updated.RecipeID)
	assert.Equal(t, "needs salt", updated.Notes)
	assert.Equal(t, "", updated.Rating)

	logs, err := repository.GetLogs(ctx)
	require.Nil(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, updated, logs[0])

	deleted, err := repository.DeleteLog(ctx, created.ID)
	require.Nil(t, err)
	assert.Equal(t, updated, deleted)

	_, err = repository.GetLogByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrLogNotFound)
	_, err = repository.UpdateLog(ctx, created.ID, Log{})
	assert.ErrorIs(t, err, ErrLogNotFound)
	_, err = repository.DeleteLog(ctx, created.ID)
	assert.ErrorIs(t, err, ErrLogNotFound)
}

func TestLogRepositoryReadsNullColumnsAsEmpty(t *testing.T) {
	dbConn, sqlConn, _ := setupDbConnectorAndRunMigration(t, "log_repository_nulls")
	repository := NewLogRepository(dbConn, "log_repository_nulls")

	_, err := sqlConn.Exec(`INSERT INTO "log_repository_nulls".logs(recipe_id, date_of_event, notes, rating) VALUES (NULL, NULL, NULL, NULL);`)
	require.Nil(t, err)

	logs, err := repository.GetLogs(context.Background())
	require.Nil(t, err)
	require.Len(t, logs, 1)
	assert.Nil(t, logs[0].RecipeID)
	assert.Equal(t, "", logs[0].DateOfEvent)
	assert.Equal(t, "", logs[0].Notes)
	assert.Equal(t, "", logs[0].Rating)
}

func TestLogRepositoryAcceptsUnknownRecipe(t *testing.T) {
	dbConn, _, _ := setupDbConnectorAndRunMigration(t, "log_repository_orphan")
	repository := NewLogRepository(dbConn, "log_repository_orphan")

	recipeID := int64(424242)
	created, err := repository.InsertLog(context.Background(), Log{RecipeID: &recipeID})
	require.Nil(t, err)
	assert.Equal(t, int64(424242), *created.RecipeID)
}
