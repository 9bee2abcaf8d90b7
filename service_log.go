package recipelab

import (
	"context"

	"github.com/rs/zerolog/log"
)

type LogService interface {
	CreateLog(ctx context.Context, entry Log) (Log, error)
	GetLogs(ctx context.Context) ([]Log, error)
	GetLogByID(ctx context.Context, id int64) (Log, error)
	UpdateLog(ctx context.Context, id int64, entry Log) (Log, error)
	DeleteLog(ctx context.Context, id int64) (Log, error)
}

type logService struct {
	logRepository LogRepository
}

func NewLogService(logRepository LogRepository) LogService {
	return &logService{
		logRepository: logRepository,
	}
}

// CreateLog does not check that the referenced recipe exists.
func (s *logService) CreateLog(ctx context.Context, entry Log) (Log, error) {
	created, err := s.logRepository.InsertLog(ctx, entry)
	if err != nil {
		return Log{}, err
	}
	log.Debug().Int64("logId", created.ID).Msg("log created")
	return created, nil
}

func (s *logService) GetLogs(ctx context.Context) ([]Log, error) {
	return s.logRepository.GetLogs(ctx)
}

func (s *logService) GetLogByID(ctx context.Context, id int64) (Log, error) {
	return s.logRepository.GetLogByID(ctx, id)
}

func (s *logService) UpdateLog(ctx context.Context, id int64, entry Log) (Log, error) {
	updated, err := s.logRepository.UpdateLog(ctx, id, entry)
	if err != nil {
		return Log{}, err
	}
	log.Debug().Int64("logId", id).Msg("log updated")
	return updated, nil
}

func (s *logService) DeleteLog(ctx context.Context, id int64) (Log, error) {
	deleted, err := s.logRepository.DeleteLog(ctx, id)
	if err != nil {
		return Log{}, err
	}
	log.Debug().Int64("logId", id).Msg("log deleted")
	return deleted, nil
}
