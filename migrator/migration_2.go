package migrator

const migration_2 = `
CREATE INDEX idx_logs_recipe_id ON <SCHEMA_PLACEHOLDER>.logs(recipe_id);
`
