package recipelab

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/blutspende/recipelab/db"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type RecipeRepository interface {
	InsertRecipe(ctx context.Context, recipe Recipe) (Recipe, error)
	GetRecipes(ctx context.Context) ([]Recipe, error)
	GetRecipeByID(ctx context.Context, id int64) (Recipe, error)
	UpdateRecipe(ctx context.Context, id int64, recipe Recipe) (Recipe, error)
	DeleteRecipe(ctx context.Context, id int64) (Recipe, error)
}

type recipeRepository struct {
	db       db.DbConnector
	dbSchema string
}

func NewRecipeRepository(db db.DbConnector, dbSchema string) RecipeRepository {
	return &recipeRepository{
		db:       db,
		dbSchema: pq.QuoteIdentifier(dbSchema),
	}
}

func (r *recipeRepository) InsertRecipe(ctx context.Context, recipe Recipe) (Recipe, error) {
	dao, err := convertRecipeToDAO(recipe)
	if err != nil {
		log.Error().Err(err).Msg(msgCreateRecipeFailed)
		return Recipe{}, ErrCreateRecipeFailed
	}
	query := fmt.Sprintf(`INSERT INTO %s.recipes(name, directions, ingredients)
				VALUES (:name, :directions, :ingredients)
				RETURNING id, name, directions, ingredients;`, r.dbSchema)
	rows, err := r.db.NamedQueryContext(ctx, query, dao)
	if err != nil {
		log.Error().Err(err).Msg(msgCreateRecipeFailed)
		return Recipe{}, ErrCreateRecipeFailed
	}
	defer rows.Close()

	created, err := scanSingleRecipe(rows)
	if err != nil {
		log.Error().Err(err).Msg(msgCreateRecipeFailed)
		return Recipe{}, ErrCreateRecipeFailed
	}
	return created, nil
}

func (r *recipeRepository) GetRecipes(ctx context.Context) ([]Recipe, error) {
	query := fmt.Sprintf(`SELECT id, name, directions, ingredients FROM %s.recipes ORDER BY id;`, r.dbSchema)
	recipes := make([]Recipe, 0)
	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		log.Error().Err(err).Msg(msgGetRecipesFailed)
		return nil, ErrGetRecipesFailed
	}
	defer rows.Close()
	for rows.Next() {
		var dao recipeDAO
		err = rows.StructScan(&dao)
		if err != nil {
			log.Error().Err(err).Msg(msgGetRecipesFailed)
			return nil, ErrGetRecipesFailed
		}
		recipe, err := convertDAOToRecipe(dao)
		if err != nil {
			log.Error().Err(err).Int64("recipeId", dao.ID).Msg(msgGetRecipesFailed)
			return nil, ErrGetRecipesFailed
		}
		recipes = append(recipes, recipe)
	}
	if err = rows.Err(); err != nil {
		log.Error().Err(err).Msg(msgGetRecipesFailed)
		return nil, ErrGetRecipesFailed
	}

	return recipes, nil
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id int64) (Recipe, error) {
	query := fmt.Sprintf(`SELECT id, name, directions, ingredients FROM %s.recipes WHERE id = $1;`, r.dbSchema)
	rows, err := r.db.QueryxContext(ctx, query, id)
	if err != nil {
		log.Error().Err(err).Msg(msgGetRecipeFailed)
		return Recipe{}, ErrGetRecipeFailed
	}
	defer rows.Close()

	recipe, err := scanSingleRecipe(rows)
	if err != nil {
		if errors.Is(err, ErrRecipeNotFound) {
			return Recipe{}, ErrRecipeNotFound
		}
		log.Error().Err(err).Int64("recipeId", id).Msg(msgGetRecipeFailed)
		return Recipe{}, ErrGetRecipeFailed
	}
	return recipe, nil
}

func (r *recipeRepository) UpdateRecipe(ctx context.Context, id int64, recipe Recipe) (Recipe, error) {
	recipe.ID = id
	dao, err := convertRecipeToDAO(recipe)
	if err != nil {
		log.Error().Err(err).Msg(msgUpdateRecipeFailed)
		return Recipe{}, ErrUpdateRecipeFailed
	}
	query := fmt.Sprintf(`UPDATE %s.recipes SET name = :name, directions = :directions, ingredients = :ingredients
				WHERE id = :id
				RETURNING id, name, directions, ingredients;`, r.dbSchema)
	rows, err := r.db.NamedQueryContext(ctx, query, dao)
	if err != nil {
		log.Error().Err(err).Msg(msgUpdateRecipeFailed)
		return Recipe{}, ErrUpdateRecipeFailed
	}
	defer rows.Close()

	updated, err := scanSingleRecipe(rows)
	if err != nil {
		if errors.Is(err, ErrRecipeNotFound) {
			return Recipe{}, ErrRecipeNotFound
		}
		log.Error().Err(err).Int64("recipeId", id).Msg(msgUpdateRecipeFailed)
		return Recipe{}, ErrUpdateRecipeFailed
	}
	return updated, nil
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, id int64) (Recipe, error) {
	query := fmt.Sprintf(`DELETE FROM %s.recipes WHERE id = $1 RETURNING id, name, directions, ingredients;`, r.dbSchema)
	rows, err := r.db.QueryxContext(ctx, query, id)
	if err != nil {
		log.Error().Err(err).Msg(msgDeleteRecipeFailed)
		return Recipe{}, ErrDeleteRecipeFailed
	}
	defer rows.Close()

	deleted, err := scanSingleRecipe(rows)
	if err != nil {
		if errors.Is(err, ErrRecipeNotFound) {
			return Recipe{}, ErrRecipeNotFound
		}
		log.Error().Err(err).Int64("recipeId", id).Msg(msgDeleteRecipeFailed)
		return Recipe{}, ErrDeleteRecipeFailed
	}
	return deleted, nil
}

// scanSingleRecipe reads the first row, ErrRecipeNotFound if there is none.
func scanSingleRecipe(rows *sqlx.Rows) (Recipe, error) {
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return Recipe{}, err
		}
		return Recipe{}, ErrRecipeNotFound
	}
	var dao recipeDAO
	err := rows.StructScan(&dao)
	if err != nil {
		return Recipe{}, err
	}
	return convertDAOToRecipe(dao)
}

func convertRecipeToDAO(recipe Recipe) (recipeDAO, error) {
	recipe = withRecipeDefaults(recipe)
	directions, err := json.Marshal(recipe.Directions)
	if err != nil {
		return recipeDAO{}, err
	}
	ingredients, err := json.Marshal(recipe.Ingredients)
	if err != nil {
		return recipeDAO{}, err
	}
	return recipeDAO{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Directions:  string(directions),
		Ingredients: string(ingredients),
	}, nil
}

func convertDAOToRecipe(dao recipeDAO) (Recipe, error) {
	recipe := Recipe{
		ID:   dao.ID,
		Name: dao.Name,
	}
	if dao.Directions != "" {
		if err := json.Unmarshal([]byte(dao.Directions), &recipe.Directions); err != nil {
			return Recipe{}, err
		}
	}
	if dao.Ingredients != "" {
		if err := json.Unmarshal([]byte(dao.Ingredients), &recipe.Ingredients); err != nil {
			return Recipe{}, err
		}
	}
	return withRecipeDefaults(recipe), nil
}

const (
	msgCreateRecipeFailed = "create recipe failed"
	msgDeleteRecipeFailed = "delete recipe failed"
	msgGetRecipeFailed    = "get recipe failed"
	msgGetRecipesFailed   = "get recipes failed"
	msgRecipeNotFound     = "recipe not found"
	msgUpdateRecipeFailed = "update recipe failed"
)

var (
	ErrCreateRecipeFailed = errors.New(msgCreateRecipeFailed)
	ErrDeleteRecipeFailed = errors.New(msgDeleteRecipeFailed)
	ErrGetRecipeFailed    = errors.New(msgGetRecipeFailed)
	ErrGetRecipesFailed   = errors.New(msgGetRecipesFailed)
	ErrRecipeNotFound     = errors.New(msgRecipeNotFound)
	ErrUpdateRecipeFailed = errors.New(msgUpdateRecipeFailed)
)
