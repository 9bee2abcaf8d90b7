package recipelab

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// logTO is the response shape, a log without recipe has recipeId "".
type logTO struct {
	ID          idString `json:"id"`
	RecipeID    idString `json:"recipeId"`
	DateOfEvent string   `json:"dateOfEvent"`
	Notes       string   `json:"notes"`
	Rating      string   `json:"rating"`
}

type logRequestTO struct {
	RecipeID    *idString `json:"recipeId"`
	DateOfEvent string    `json:"dateOfEvent"`
	Notes       string    `json:"notes"`
	Rating      string    `json:"rating"`
}

// Create log
// @Summary Log that a recipe was cooked
// @Description recipeId may be sent as number or string, it is always returned as string
// @Tags Log
// @Accept json
// @Produce json
// @Success 200 {object} logTO
// @Router /api/v1/logs [POST]
func (api *api) CreateLog(c *gin.Context) {
	entry, ok := bindLog(c)
	if !ok {
		return
	}

	created, err := api.logService.CreateLog(c.Request.Context(), entry)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, convertLogToLogTO(created))
}

func (api *api) GetLogs(c *gin.Context) {
	logs, err := api.logService.GetLogs(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	logTOs := make([]logTO, len(logs))
	for i := range logs {
		logTOs[i] = convertLogToLogTO(logs[i])
	}

	c.JSON(http.StatusOK, logTOs)
}

func (api *api) GetLogByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	entry, err := api.logService.GetLogByID(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, convertLogToLogTO(entry))
}

func (api *api) UpdateLog(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	entry, ok := bindLog(c)
	if !ok {
		return
	}

	updated, err := api.logService.UpdateLog(c.Request.Context(), id, entry)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, convertLogToLogTO(updated))
}

func (api *api) DeleteLog(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	deleted, err := api.logService.DeleteLog(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, convertLogToLogTO(deleted))
}

func bindLog(c *gin.Context) (Log, bool) {
	var to logRequestTO
	err := c.ShouldBindJSON(&to)
	if err != nil {
		log.Error().Err(err).Msg(InvalidBodyInRequest)
		abortWithInvalidBody(c, err)
		return Log{}, false
	}

	entry, err := convertLogRequestTOToLog(to)
	if err != nil {
		log.Error().Err(err).Interface("recipeId", to.RecipeID).Msg(InvalidBodyInRequest)
		abortWithInvalidBody(c, err)
		return Log{}, false
	}
	return entry, true
}

func convertLogRequestTOToLog(to logRequestTO) (Log, error) {
	entry := Log{
		DateOfEvent: to.DateOfEvent,
		Notes:       to.Notes,
		Rating:      to.Rating,
	}
	// null, "" and a missing recipeId all mean no recipe
	if to.RecipeID != nil && strings.TrimSpace(string(*to.RecipeID)) != "" {
		recipeID, err := to.RecipeID.int64()
		if err != nil {
			return Log{}, err
		}
		entry.RecipeID = &recipeID
	}
	return entry, nil
}

func convertLogToLogTO(entry Log) logTO {
	to := logTO{
		ID:          newIDString(entry.ID),
		DateOfEvent: entry.DateOfEvent,
		Notes:       entry.Notes,
		Rating:      entry.Rating,
	}
	if entry.RecipeID != nil {
		to.RecipeID = newIDString(*entry.RecipeID)
	}
	return to
}
