package recipelab

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Quantity is how much of an ingredient a recipe needs, e.g. {"amount": 1, "measurement": "tsp"}.
// Every field is kept exactly as the client sent it.
type Quantity map[string]json.RawMessage

// Amount returns the amount when it was sent as a JSON number.
func (q Quantity) Amount() (decimal.Decimal, bool) {
	raw := bytes.TrimSpace(q["amount"])
	if len(raw) == 0 || (raw[0] != '-' && (raw[0] < '0' || raw[0] > '9')) {
		return decimal.Decimal{}, false
	}
	amount, err := decimal.NewFromString(string(raw))
	if err != nil {
		return decimal.Decimal{}, false
	}
	return amount, true
}

// Measurement returns the unit when it was sent as a JSON string.
func (q Quantity) Measurement() string {
	var measurement string
	if err := json.Unmarshal(q["measurement"], &measurement); err != nil {
		return ""
	}
	return measurement
}

// Ingredient maps an ingredient name to its quantity, e.g. {"chocolate": {"amount": 1, "measurement": "tsp"}}.
type Ingredient map[string]Quantity

type Recipe struct {
	ID          int64
	Name        string
	Directions  []string
	Ingredients []Ingredient
}

type recipeDAO struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Directions  string `db:"directions"`
	Ingredients string `db:"ingredients"`
}

func withRecipeDefaults(recipe Recipe) Recipe {
	if recipe.Directions == nil {
		recipe.Directions = make([]string, 0)
	}
	if recipe.Ingredients == nil {
		recipe.Ingredients = make([]Ingredient, 0)
	}
	return recipe
}
