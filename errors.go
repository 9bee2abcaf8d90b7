package recipelab

import (
	"errors"
	"net/http"

	"github.com/blutspende/recipelab/middleware"
	"github.com/gin-gonic/gin"
)

const (
	ApiStartMsg           = "API server recipelab has been started on %s"
	ApiEndedGracefullyMsg = "API server recipelab ended gracefully"
	ApiFailedToStartMsg   = "Failed to start API server recipelab"

	InvalidBodyInRequest = "can not bind request body"
	InvalidIdParameter   = "invalid id parameter"
)

// abortWithError maps service errors to client errors. Not found sentinels
// become 404, everything else is an internal error.
func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, ErrRecipeNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, middleware.ErrNotFound.WithParam("resource", "recipe"))
	case errors.Is(err, ErrLogNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, middleware.ErrNotFound.WithParam("resource", "log"))
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, middleware.ErrInternalServerError)
	}
}

func abortWithInvalidBody(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, middleware.ErrInvalidRequestBody)
}

// pathID reads the :id route parameter, aborting with 400 when it is not an integer.
func pathID(c *gin.Context) (int64, bool) {
	id, err := idString(c.Param("id")).int64()
	if err != nil {
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusBadRequest, middleware.ErrInvalidOrMissingRequestParameter.WithParam("param", "id"))
		return 0, false
	}
	return id, true
}
