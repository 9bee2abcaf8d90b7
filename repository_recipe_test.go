package recipelab

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quantity(amount, measurement string) Quantity {
	return Quantity{
		"amount":      json.RawMessage(amount),
		"measurement": json.RawMessage(`"` + measurement + `"`),
	}
}

func cookiesRecipe() Recipe {
	return Recipe{
		Name:       "cookies",
		Directions: []string{"mix", "bake at 180 degrees"},
		Ingredients: []Ingredient{
			{"chocolate": quantity("1", "tsp")},
			{"flour": quantity("2.5", "cup")},
		},
	}
}

func TestRecipeRepositoryInsertAndGet(t *testing.T) {
	dbConn, _, _ := setupDbConnectorAndRunMigration(t, "recipe_repository_test")
	repository := NewRecipeRepository(dbConn, "recipe_repository_test")
	ctx := context.Background()

	created, err := repository.InsertRecipe(ctx, cookiesRecipe())
	require.Nil(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "cookies", created.Name)
	assert.Equal(t, []string{"mix", "bake at 180 degrees"}, created.Directions)
	require.Len(t, created.Ingredients, 2)
	amount, ok := created.Ingredients[1]["flour"].Amount()
	require.True(t, ok)
	assert.True(t, decimal.RequireFromString("2.5").Equal(amount))
	assert.Equal(t, "cup", created.Ingredients[1]["flour"].Measurement())

	loaded, err := repository.GetRecipeByID(ctx, created.ID)
	require.Nil(t, err)
	assert.Equal(t, created.ID, loaded.ID)
	assert.Equal(t, created.Directions, loaded.Directions)
	assert.Equal(t, created.Ingredients, loaded.Ingredients)
	assert.Equal(t, "tsp", loaded.Ingredients[0]["chocolate"].Measurement())
}

func TestRecipeRepositoryDefaultsEmptySequences(t *testing.T) {
	dbConn, _, _ := setupDbConnectorAndRunMigration(t, "recipe_repository_defaults")
	repository := NewRecipeRepository(dbConn, "recipe_repository_defaults")

	created, err := repository.InsertRecipe(context.Background(), Recipe{Name: "toast"})
	require.Nil(t, err)
	assert.NotNil(t, created.Directions)
	assert.Empty(t, created.Directions)
	assert.NotNil(t, created.Ingredients)
	assert.Empty(t, created.Ingredients)
}

func TestRecipeRepositoryGetRecipesIsOrderedAndEmptyWhenNone(t *testing.T) {
	dbConn, _, _ := setupDbConnectorAndRunMigration(t, "recipe_repository_list")
	repository := NewRecipeRepository(dbConn, "recipe_repository_list")
	ctx := context.Background()

	recipes, err := repository.GetRecipes(ctx)
	require.Nil(t, err)
	assert.NotNil(t, recipes)
	assert.Len(t, recipes, 0)

	first, err := repository.InsertRecipe(ctx, Recipe{Name: "first"})
	require.Nil(t, err)
	second, err := repository.InsertRecipe(ctx, Recipe{Name: "second"})
	require.Nil(t, err)

	recipes, err = repository.GetRecipes(ctx)
	require.Nil(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t, first.ID, recipes[0].ID)
	assert.Equal(t, second.ID, recipes[1].ID)
}

func TestRecipeRepositoryUpdateReplacesAllFields(t *testing.T) {
	dbConn, _, _ := setupDbConnectorAndRunMigration(t, "recipe_repository_update")
	repository := NewRecipeRepository(dbConn, "recipe_repository_update")
	ctx := context.Background()

	created, err := repository.InsertRecipe(ctx, cookiesRecipe())
	require.Nil(t, err)

	updated, err := repository.UpdateRecipe(ctx, created.ID, Recipe{Name: "plain cookies"})
	require.Nil(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "plain cookies", updated.Name)
	assert.Empty(t, updated.Directions)
	assert.Empty(t, updated.Ingredients)

	_, err = repository.UpdateRecipe(ctx, created.ID+1000, Recipe{Name: "ghost"})
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestRecipeRepositoryDeleteReturnsDeletedRecipe(t *testing.T) {
	dbConn, _, _ := setupDbConnectorAndRunMigration(t, "recipe_repository_delete")
	repository := NewRecipeRepository(dbConn, "recipe_repository_delete")
	ctx := context.Background()

	created, err := repository.InsertRecipe(ctx, cookiesRecipe())
	require.Nil(t, err)

	deleted, err := repository.DeleteRecipe(ctx, created.ID)
	require.Nil(t, err)
	assert.Equal(t, created.ID, deleted.ID)
	assert.Equal(t, "cookies", deleted.Name)

	_, err = repository.GetRecipeByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
	_, err = repository.DeleteRecipe(ctx, created.ID)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestRecipeRepositoryInsideTransaction(t *testing.T) {
	dbConn, _, _ := setupDbConnectorAndRunMigration(t, "recipe_repository_tx")
	ctx := context.Background()

	tx, err := dbConn.CreateTransactionConnector(ctx)
	require.Nil(t, err)
	_, err = NewRecipeRepository(tx, "recipe_repository_tx").InsertRecipe(ctx, Recipe{Name: "rolled back"})
	require.Nil(t, err)
	require.Nil(t, tx.Rollback())

	recipes, err := NewRecipeRepository(dbConn, "recipe_repository_tx").GetRecipes(ctx)
	require.Nil(t, err)
	assert.Len(t, recipes, 0)
}

func TestRecipeRepositoryKeepsQuantitiesVerbatim(t *testing.T) {
	dbConn, _, _ := setupDbConnectorAndRunMigration(t, "recipe_repository_verbatim")
	repository := NewRecipeRepository(dbConn, "recipe_repository_verbatim")

	ingredients := []Ingredient{
		{"flour": quantity(`"1/2"`, "cup")},
		{"salt": Quantity{"amount": json.RawMessage(`null`), "note": json.RawMessage(`"kosher"`)}},
	}
	created, err := repository.InsertRecipe(context.Background(), Recipe{Name: "bread", Ingredients: ingredients})
	require.Nil(t, err)

	loaded, err := repository.GetRecipeByID(context.Background(), created.ID)
	require.Nil(t, err)
	assert.Equal(t, ingredients, loaded.Ingredients)

	_, ok := loaded.Ingredients[0]["flour"].Amount()
	assert.False(t, ok)
	_, ok = loaded.Ingredients[1]["salt"].Amount()
	assert.False(t, ok)
}
