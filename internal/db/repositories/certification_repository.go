package repositories

import (
	"context"

	"github.com/s4ngl/iu-icems-website-sub000/internal/constants"
	"github.com/s4ngl/iu-icems-website-sub000/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

type CertificationRepository struct {
	db *sqlx.DB
}

func NewCertificationRepository(db *sqlx.DB) *CertificationRepository {
	return &CertificationRepository{db}
}

func (r *CertificationRepository) ListByMember(ctx context.Context, memberID string) ([]entities.Certification, error) {

	var certs []entities.Certification

	if err := r.db.SelectContext(ctx, &certs, constants.ListMemberCertifications, memberID); err != nil {
		return nil, err
	}
	return certs, nil
}

func (r *CertificationRepository) ListPending(ctx context.Context) ([]entities.Certification, error) {

	var certs []entities.Certification

	if err := r.db.SelectContext(ctx, &certs, constants.ListPendingCertifications); err != nil {
		return nil, err
	}
	return certs, nil
}
