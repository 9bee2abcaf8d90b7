// Package clients talks to a running recipelab API over HTTP.
package clients

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/blutspende/recipelab/middleware"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	MsgCallRecipeLabFailed = "call recipelab api failed"
	MsgMissingBaseURL      = "base url for recipelab must be set"
)

var (
	ErrCallRecipeLabFailed = errors.New(MsgCallRecipeLabFailed)
	ErrMissingBaseURL      = errors.New(MsgMissingBaseURL)
)

// QuantityTO keeps every field of an ingredient quantity as sent, e.g. amount and measurement.
type QuantityTO map[string]json.RawMessage

type RecipeTO struct {
	ID          string                  `json:"id,omitempty"`
	Name        string                  `json:"name"`
	Directions  []string                `json:"directions"`
	Ingredients []map[string]QuantityTO `json:"ingredients"`
}

type LogTO struct {
	ID          string  `json:"id,omitempty"`
	RecipeID    *string `json:"recipeId"`
	DateOfEvent string  `json:"dateOfEvent"`
	Notes       string  `json:"notes"`
	Rating      string  `json:"rating"`
}

// ResponseError is returned for every non 2xx answer of the API.
type ResponseError struct {
	StatusCode int
	Body       middleware.ClientError
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("recipelab responded %d: %s", e.StatusCode, e.Body.MessageKey)
}

func IsNotFound(err error) bool {
	var responseError *ResponseError
	return errors.As(err, &responseError) && responseError.StatusCode == http.StatusNotFound
}

type RecipeLab interface {
	CreateRecipe(recipe RecipeTO) (RecipeTO, error)
	GetRecipes() ([]RecipeTO, error)
	GetRecipe(id string) (RecipeTO, error)
	UpdateRecipe(id string, recipe RecipeTO) (RecipeTO, error)
	DeleteRecipe(id string) (RecipeTO, error)
	CreateLog(entry LogTO) (LogTO, error)
	GetLogs() ([]LogTO, error)
	GetLog(id string) (LogTO, error)
	UpdateLog(id string, entry LogTO) (LogTO, error)
	DeleteLog(id string) (LogTO, error)
}

type recipeLab struct {
	client  *resty.Client
	baseURL string
}

func NewRecipeLabClient(baseURL string, restyClient *resty.Client) (RecipeLab, error) {
	if baseURL == "" {
		return nil, ErrMissingBaseURL
	}

	return &recipeLab{
		client:  restyClient,
		baseURL: strings.TrimSuffix(baseURL, "/") + "/api/v1",
	}, nil
}

func (r *recipeLab) CreateRecipe(recipe RecipeTO) (RecipeTO, error) {
	var created RecipeTO
	err := r.do(r.client.R().SetBody(recipe).SetResult(&created), http.MethodPost, "/recipes")
	return created, err
}

func (r *recipeLab) GetRecipes() ([]RecipeTO, error) {
	recipes := make([]RecipeTO, 0)
	err := r.do(r.client.R().SetResult(&recipes), http.MethodGet, "/recipes")
	return recipes, err
}

func (r *recipeLab) GetRecipe(id string) (RecipeTO, error) {
	var recipe RecipeTO
	err := r.do(r.client.R().SetResult(&recipe), http.MethodGet, "/recipes/"+id)
	return recipe, err
}

func (r *recipeLab) UpdateRecipe(id string, recipe RecipeTO) (RecipeTO, error) {
	var updated RecipeTO
	err := r.do(r.client.R().SetBody(recipe).SetResult(&updated), http.MethodPut, "/recipes/"+id)
	return updated, err
}

func (r *recipeLab) DeleteRecipe(id string) (RecipeTO, error) {
	var deleted RecipeTO
	err := r.do(r.client.R().SetResult(&deleted), http.MethodDelete, "/recipes/"+id)
	return deleted, err
}

func (r *recipeLab) CreateLog(entry LogTO) (LogTO, error) {
	var created LogTO
	err := r.do(r.client.R().SetBody(entry).SetResult(&created), http.MethodPost, "/logs")
	return created, err
}

func (r *recipeLab) GetLogs() ([]LogTO, error) {
	logs := make([]LogTO, 0)
	err := r.do(r.client.R().SetResult(&logs), http.MethodGet, "/logs")
	return logs, err
}

func (r *recipeLab) GetLog(id string) (LogTO, error) {
	var entry LogTO
	err := r.do(r.client.R().SetResult(&entry), http.MethodGet, "/logs/"+id)
	return entry, err
}

func (r *recipeLab) UpdateLog(id string, entry LogTO) (LogTO, error) {
	var updated LogTO
	err := r.do(r.client.R().SetBody(entry).SetResult(&updated), http.MethodPut, "/logs/"+id)
	return updated, err
}

func (r *recipeLab) DeleteLog(id string) (LogTO, error) {
	var deleted LogTO
	err := r.do(r.client.R().SetResult(&deleted), http.MethodDelete, "/logs/"+id)
	return deleted, err
}

func (r *recipeLab) do(request *resty.Request, method, path string) error {
	var clientError middleware.ClientError
	resp, err := request.
		SetHeader("Content-Type", "application/json").
		SetError(&clientError).
		Execute(method, r.baseURL+path)
	if err != nil {
		log.Error().Err(err).Str("method", method).Str("path", path).Msg(MsgCallRecipeLabFailed)
		return errors.Wrap(ErrCallRecipeLabFailed, err.Error())
	}
	if resp.IsError() {
		return &ResponseError{
			StatusCode: resp.StatusCode(),
			Body:       clientError,
		}
	}
	return nil
}
