package repositories

import (
	"context"
	"time"

	"github.com/s4ngl/iu-icems-website-sub000/internal/constants"
	"github.com/s4ngl/iu-icems-website-sub000/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

type MemberRepository struct {
	db *sqlx.DB
}

func NewMemberRepository(db *sqlx.DB) *MemberRepository {
	return &MemberRepository{db}
}

func (r *MemberRepository) FindByID(ctx context.Context, id string) (*entities.Member, error) {

	var member entities.Member

	err := r.db.QueryRowxContext(ctx, constants.GetMemberById, id).StructScan(&member)
	if err != nil {
		return nil, err
	}

	return &member, nil
}

func (r *MemberRepository) FindByEmail(ctx context.Context, email string) (*entities.Member, error) {

	var member entities.Member

	err := r.db.QueryRowxContext(ctx, constants.GetMemberByEmail, email).StructScan(&member)
	if err != nil {
		return nil, err
	}

	return &member, nil
}

func (r *MemberRepository) List(ctx context.Context) ([]entities.Member, error) {

	var members []entities.Member

	if err := r.db.SelectContext(ctx, &members, constants.ListMembers); err != nil {
		return nil, err
	}

	return members, nil
}

// TotalHours sums confirmed hours across the member's confirmed records.
func (r *MemberRepository) TotalHours(ctx context.Context, memberID string) (float64, error) {
	var total float64
	err := r.db.GetContext(ctx, &total, constants.MemberTotalHours, memberID)
	return total, err
}

// PendingHours sums calculated hours across records not yet confirmed.
func (r *MemberRepository) PendingHours(ctx context.Context, memberID string) (float64, error) {
	var total float64
	err := r.db.GetContext(ctx, &total, constants.MemberPendingHours, memberID)
	return total, err
}

// PenaltyTotal sums points over records still active at now (lazy expiry).
func (r *MemberRepository) PenaltyTotal(ctx context.Context, memberID string, now time.Time) (int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, constants.MemberPenaltyTotal, memberID, now)
	return total, err
}
