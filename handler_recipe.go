package recipelab

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type recipeTO struct {
	ID          idString     `json:"id"`
	Name        string       `json:"name"`
	Directions  []string     `json:"directions"`
	Ingredients []Ingredient `json:"ingredients"`
}

// recipeRequestTO has no id, ids are assigned by the database.
type recipeRequestTO struct {
	Name        string       `json:"name"`
	Directions  []string     `json:"directions"`
	Ingredients []Ingredient `json:"ingredients"`
}

// Create recipe
// @Summary Create a recipe
// @Tags Recipe
// @Accept json
// @Produce json
// @Success 200 {object} recipeTO
// @Router /api/v1/recipes [POST]
func (api *api) CreateRecipe(c *gin.Context) {
	var to recipeRequestTO
	err := c.ShouldBindJSON(&to)
	if err != nil {
		log.Error().Err(err).Msg(InvalidBodyInRequest)
		abortWithInvalidBody(c, err)
		return
	}

	recipe, err := api.recipeService.CreateRecipe(c.Request.Context(), convertRecipeRequestTOToRecipe(to))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, convertRecipeToRecipeTO(recipe))
}

func (api *api) GetRecipes(c *gin.Context) {
	recipes, err := api.recipeService.GetRecipes(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	recipeTOs := make([]recipeTO, len(recipes))
	for i := range recipes {
		recipeTOs[i] = convertRecipeToRecipeTO(recipes[i])
	}

	c.JSON(http.StatusOK, recipeTOs)
}

func (api *api) GetRecipeByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	recipe, err := api.recipeService.GetRecipeByID(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, convertRecipeToRecipeTO(recipe))
}

// Update recipe
// @Summary Replace all fields of a recipe
// @Tags Recipe
// @Accept json
// @Produce json
// @Param id path int true "Recipe id"
// @Success 200 {object} recipeTO
// @Failure 404 {object} middleware.ClientError
// @Router /api/v1/recipes/{id} [PUT]
func (api *api) UpdateRecipe(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var to recipeRequestTO
	err := c.ShouldBindJSON(&to)
	if err != nil {
		log.Error().Err(err).Int64("recipeId", id).Msg(InvalidBodyInRequest)
		abortWithInvalidBody(c, err)
		return
	}

	recipe, err := api.recipeService.UpdateRecipe(c.Request.Context(), id, convertRecipeRequestTOToRecipe(to))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, convertRecipeToRecipeTO(recipe))
}

// Delete recipe
// @Summary Delete a recipe and return it as it was stored
// @Tags Recipe
// @Produce json
// @Param id path int true "Recipe id"
// @Success 200 {object} recipeTO
// @Failure 404 {object} middleware.ClientError
// @Router /api/v1/recipes/{id} [DELETE]
func (api *api) DeleteRecipe(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	recipe, err := api.recipeService.DeleteRecipe(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, convertRecipeToRecipeTO(recipe))
}

func convertRecipeRequestTOToRecipe(to recipeRequestTO) Recipe {
	return Recipe{
		Name:        to.Name,
		Directions:  to.Directions,
		Ingredients: to.Ingredients,
	}
}

func convertRecipeToRecipeTO(recipe Recipe) recipeTO {
	recipe = withRecipeDefaults(recipe)
	return recipeTO{
		ID:          newIDString(recipe.ID),
		Name:        recipe.Name,
		Directions:  recipe.Directions,
		Ingredients: recipe.Ingredients,
	}
}
