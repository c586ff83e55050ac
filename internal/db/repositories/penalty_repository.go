package repositories

import (
	"context"

	"github.com/s4ngl/iu-icems-website-sub000/internal/constants"
	"github.com/s4ngl/iu-icems-website-sub000/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

type PenaltyRepository struct {
	db *sqlx.DB
}

func NewPenaltyRepository(db *sqlx.DB) *PenaltyRepository {
	return &PenaltyRepository{db}
}

func (r *PenaltyRepository) ListByMember(ctx context.Context, memberID string) ([]entities.PenaltyPoint, error) {

	var penalties []entities.PenaltyPoint

	if err := r.db.SelectContext(ctx, &penalties, constants.ListMemberPenalties, memberID); err != nil {
		return nil, err
	}
	return penalties, nil
}
