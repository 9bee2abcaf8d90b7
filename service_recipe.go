package recipelab

import (
	"context"

	"github.com/rs/zerolog/log"
)

type RecipeService interface {
	CreateRecipe(ctx context.Context, recipe Recipe) (Recipe, error)
	GetRecipes(ctx context.Context) ([]Recipe, error)
	GetRecipeByID(ctx context.Context, id int64) (Recipe, error)
	UpdateRecipe(ctx context.Context, id int64, recipe Recipe) (Recipe, error)
	DeleteRecipe(ctx context.Context, id int64) (Recipe, error)
}

type recipeService struct {
	recipeRepository RecipeRepository
}

func NewRecipeService(recipeRepository RecipeRepository) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
	}
}

func (s *recipeService) CreateRecipe(ctx context.Context, recipe Recipe) (Recipe, error) {
	created, err := s.recipeRepository.InsertRecipe(ctx, withRecipeDefaults(recipe))
	if err != nil {
		return Recipe{}, err
	}
	log.Debug().Int64("recipeId", created.ID).Str("name", created.Name).Msg("recipe created")
	return created, nil
}

func (s *recipeService) GetRecipes(ctx context.Context) ([]Recipe, error) {
	return s.recipeRepository.GetRecipes(ctx)
}

func (s *recipeService) GetRecipeByID(ctx context.Context, id int64) (Recipe, error) {
	return s.recipeRepository.GetRecipeByID(ctx, id)
}

// UpdateRecipe replaces every field, omitted sequences become empty.
func (s *recipeService) UpdateRecipe(ctx context.Context, id int64, recipe Recipe) (Recipe, error) {
	updated, err := s.recipeRepository.UpdateRecipe(ctx, id, withRecipeDefaults(recipe))
	if err != nil {
		return Recipe{}, err
	}
	log.Debug().Int64("recipeId", id).Msg("recipe updated")
	return updated, nil
}

func (s *recipeService) DeleteRecipe(ctx context.Context, id int64) (Recipe, error) {
	deleted, err := s.recipeRepository.DeleteRecipe(ctx, id)
	if err != nil {
		return Recipe{}, err
	}
	log.Debug().Int64("recipeId", id).Msg("recipe deleted")
	return deleted, nil
}
