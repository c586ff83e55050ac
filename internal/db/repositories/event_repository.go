package repositories

import (
	"context"
	"time"

	"github.com/s4ngl/iu-icems-website-sub000/internal/constants"
	"github.com/s4ngl/iu-icems-website-sub000/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db}
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*entities.Event, error) {

	var event entities.Event

	err := r.db.QueryRowxContext(ctx, constants.GetEventById, id).StructScan(&event)
	if err != nil {
		return nil, err
	}

	return &event, nil
}

// List returns all events, or only those on/after today when upcoming is set.
func (r *EventRepository) List(ctx context.Context, upcoming bool, now time.Time) ([]entities.Event, error) {

	var events []entities.Event

	if upcoming {
		today := now.Format("2006-01-02")
		if err := r.db.SelectContext(ctx, &events, constants.ListUpcomingEvents, today); err != nil {
			return nil, err
		}
		return events, nil
	}

	if err := r.db.SelectContext(ctx, &events, constants.ListEvents); err != nil {
		return nil, err
	}
	return events, nil
}

// ListWaitlist returns the event's signups joined with member display fields
// and derived totals, ordered by signup time.
func (r *EventRepository) ListWaitlist(ctx context.Context, eventID string, now time.Time) ([]entities.WaitlistRow, error) {

	var rows []entities.WaitlistRow

	if err := r.db.SelectContext(ctx, &rows, constants.ListEventWaitlist, eventID, now); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *EventRepository) ListHours(ctx context.Context, eventID string) ([]entities.EventHours, error) {

	var hours []entities.EventHours

	if err := r.db.SelectContext(ctx, &hours, constants.ListEventHours, eventID); err != nil {
		return nil, err
	}
	return hours, nil
}

func (r *EventRepository) ListMemberHours(ctx context.Context, memberID string) ([]entities.EventHours, error) {

	var hours []entities.EventHours

	if err := r.db.SelectContext(ctx, &hours, constants.ListMemberHours, memberID); err != nil {
		return nil, err
	}
	return hours, nil
}
