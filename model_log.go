package recipelab

import "database/sql"

// Log records one occasion a recipe was cooked.
type Log struct {
	ID          int64
	RecipeID    *int64
	DateOfEvent string
	Notes       string
	Rating      string
}

type logDAO struct {
	ID          int64          `db:"id"`
	RecipeID    sql.NullInt64  `db:"recipe_id"`
	DateOfEvent sql.NullString `db:"date_of_event"`
	Notes       sql.NullString `db:"notes"`
	Rating      sql.NullString `db:"rating"`
}
