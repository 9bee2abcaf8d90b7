package recipelab

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/blutspende/recipelab/db"
	"github.com/blutspende/recipelab/utils"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type LogRepository interface {
	InsertLog(ctx context.Context, entry Log) (Log, error)
	GetLogs(ctx context.Context) ([]Log, error)
	GetLogByID(ctx context.Context, id int64) (Log, error)
	UpdateLog(ctx context.Context, id int64, entry Log) (Log, error)
	DeleteLog(ctx context.Context, id int64) (Log, error)
}

type logRepository struct {
	db       db.DbConnector
	dbSchema string
}

func NewLogRepository(db db.DbConnector, dbSchema string) LogRepository {
	return &logRepository{
		db:       db,
		dbSchema: pq.QuoteIdentifier(dbSchema),
	}
}

func (r *logRepository) InsertLog(ctx context.Context, entry Log) (Log, error) {
	query := fmt.Sprintf(`INSERT INTO %s.logs(recipe_id, date_of_event, notes, rating)
				VALUES (:recipe_id, :date_of_event, :notes, :rating)
				RETURNING id, recipe_id, date_of_event, notes, rating;`, r.dbSchema)
	rows, err := r.db.NamedQueryContext(ctx, query, convertLogToDAO(entry))
	if err != nil {
		log.Error().Err(err).Msg(msgCreateLogFailed)
		return Log{}, ErrCreateLogFailed
	}
	defer rows.Close()

	created, err := scanSingleLog(rows)
	if err != nil {
		log.Error().Err(err).Msg(msgCreateLogFailed)
		return Log{}, ErrCreateLogFailed
	}
	return created, nil
}

func (r *logRepository) GetLogs(ctx context.Context) ([]Log, error) {
	query := fmt.Sprintf(`SELECT id, recipe_id, date_of_event, notes, rating FROM %s.logs ORDER BY id;`, r.dbSchema)
	logs := make([]Log, 0)
	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		log.Error().Err(err).Msg(msgGetLogsFailed)
		return nil, ErrGetLogsFailed
	}
	defer rows.Close()
	for rows.Next() {
		var dao logDAO
		err = rows.StructScan(&dao)
		if err != nil {
			log.Error().Err(err).Msg(msgGetLogsFailed)
			return nil, ErrGetLogsFailed
		}
		logs = append(logs, convertDAOToLog(dao))
	}
	if err = rows.Err(); err != nil {
		log.Error().Err(err).Msg(msgGetLogsFailed)
		return nil, ErrGetLogsFailed
	}

	return logs, nil
}

func (r *logRepository) GetLogByID(ctx context.Context, id int64) (Log, error) {
	query := fmt.Sprintf(`SELECT id, recipe_id, date_of_event, notes, rating FROM %s.logs WHERE id = $1;`, r.dbSchema)
	rows, err := r.db.QueryxContext(ctx, query, id)
	if err != nil {
		log.Error().Err(err).Msg(msgGetLogFailed)
		return Log{}, ErrGetLogFailed
	}
	defer rows.Close()

	entry, err := scanSingleLog(rows)
	if err != nil {
		if errors.Is(err, ErrLogNotFound) {
			return Log{}, ErrLogNotFound
		}
		log.Error().Err(err).Int64("logId", id).Msg(msgGetLogFailed)
		return Log{}, ErrGetLogFailed
	}
	return entry, nil
}

func (r *logRepository) UpdateLog(ctx context.Context, id int64, entry Log) (Log, error) {
	entry.ID = id
	query := fmt.Sprintf(`UPDATE %s.logs SET recipe_id = :recipe_id, date_of_event = :date_of_event, notes = :notes, rating = :rating
				WHERE id = :id
				RETURNING id, recipe_id, date_of_event, notes, rating;`, r.dbSchema)
	rows, err := r.db.NamedQueryContext(ctx, query, convertLogToDAO(entry))
	if err != nil {
		log.Error().Err(err).Msg(msgUpdateLogFailed)
		return Log{}, ErrUpdateLogFailed
	}
	defer rows.Close()

	updated, err := scanSingleLog(rows)
	if err != nil {
		if errors.Is(err, ErrLogNotFound) {
			return Log{}, ErrLogNotFound
		}
		log.Error().Err(err).Int64("logId", id).Msg(msgUpdateLogFailed)
		return Log{}, ErrUpdateLogFailed
	}
	return updated, nil
}

func (r *logRepository) DeleteLog(ctx context.Context, id int64) (Log, error) {
	query := fmt.Sprintf(`DELETE FROM %s.logs WHERE id = $1 RETURNING id, recipe_id, date_of_event, notes, rating;`, r.dbSchema)
	rows, err := r.db.QueryxContext(ctx, query, id)
	if err != nil {
		log.Error().Err(err).Msg(msgDeleteLogFailed)
		return Log{}, ErrDeleteLogFailed
	}
	defer rows.Close()

	deleted, err := scanSingleLog(rows)
	if err != nil {
		if errors.Is(err, ErrLogNotFound) {
			return Log{}, ErrLogNotFound
		}
		log.Error().Err(err).Int64("logId", id).Msg(msgDeleteLogFailed)
		return Log{}, ErrDeleteLogFailed
	}
	return deleted, nil
}

func scanSingleLog(rows *sqlx.Rows) (Log, error) {
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return Log{}, err
		}
		return Log{}, ErrLogNotFound
	}
	var dao logDAO
	err := rows.StructScan(&dao)
	if err != nil {
		return Log{}, err
	}
	return convertDAOToLog(dao), nil
}

func convertLogToDAO(entry Log) logDAO {
	return logDAO{
		ID:          entry.ID,
		RecipeID:    utils.Int64PointerToSqlNullInt64(entry.RecipeID),
		DateOfEvent: sql.NullString{String: entry.DateOfEvent, Valid: true},
		Notes:       sql.NullString{String: entry.Notes, Valid: true},
		Rating:      sql.NullString{String: entry.Rating, Valid: true},
	}
}

func convertDAOToLog(dao logDAO) Log {
	return Log{
		ID:          dao.ID,
		RecipeID:    utils.SqlNullInt64ToInt64Pointer(dao.RecipeID),
		DateOfEvent: utils.SqlNullStringToString(dao.DateOfEvent),
		Notes:       utils.SqlNullStringToString(dao.Notes),
		Rating:      utils.SqlNullStringToString(dao.Rating),
	}
}

const (
	msgCreateLogFailed = "create log failed"
	msgDeleteLogFailed = "delete log failed"
	msgGetLogFailed    = "get log failed"
	msgGetLogsFailed   = "get logs failed"
	msgLogNotFound     = "log not found"
	msgUpdateLogFailed = "update log failed"
)

var (
	ErrCreateLogFailed = errors.New(msgCreateLogFailed)
	ErrDeleteLogFailed = errors.New(msgDeleteLogFailed)
	ErrGetLogFailed    = errors.New(msgGetLogFailed)
	ErrGetLogsFailed   = errors.New(msgGetLogsFailed)
	ErrLogNotFound     = errors.New(msgLogNotFound)
	ErrUpdateLogFailed = errors.New(msgUpdateLogFailed)
)
