package migrator

const migration_1 = `
CREATE TABLE <SCHEMA_PLACEHOLDER>.recipes(
    id bigint generated by default as identity,
    name text not null default(''),
    directions jsonb not null default('[]'),
    ingredients jsonb not null default('[]'),
    constraint pk_recipes primary key (id)
);

CREATE TABLE <SCHEMA_PLACEHOLDER>.logs(
    id bigint generated by default as identity,
    recipe_id bigint,
    date_of_event text,
    notes text,
    rating text,
    constraint pk_logs primary key (id)
);
`
