package repositories

import (
	"context"
	"time"

	"github.com/s4ngl/iu-icems-website-sub000/internal/constants"
	"github.com/s4ngl/iu-icems-website-sub000/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

type TrainingRepository struct {
	db *sqlx.DB
}

func NewTrainingRepository(db *sqlx.DB) *TrainingRepository {
	return &TrainingRepository{db}
}

func (r *TrainingRepository) FindByID(ctx context.Context, id string) (*entities.TrainingSession, error) {

	var session entities.TrainingSession

	err := r.db.QueryRowxContext(ctx, constants.GetTrainingSessionById, id).StructScan(&session)
	if err != nil {
		return nil, err
	}

	return &session, nil
}

func (r *TrainingRepository) List(ctx context.Context, upcoming bool, now time.Time) ([]entities.TrainingSession, error) {

	var sessions []entities.TrainingSession

	if upcoming {
		today := now.Format("2006-01-02")
		if err := r.db.SelectContext(ctx, &sessions, constants.ListUpcomingTrainingSessions, today); err != nil {
			return nil, err
		}
		return sessions, nil
	}

	if err := r.db.SelectContext(ctx, &sessions, constants.ListTrainingSessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *TrainingRepository) ListRoster(ctx context.Context, sessionID string) ([]entities.TrainingRosterRow, error) {

	var rows []entities.TrainingRosterRow

	if err := r.db.SelectContext(ctx, &rows, constants.ListTrainingRoster, sessionID); err != nil {
		return nil, err
	}
	return rows, nil
}
