package repositories

import (
	"context"
	"fmt"

	gormModels "github.com/s4ngl/iu-icems-website-sub000/internal/models/gorm"

	"gorm.io/gorm"
)

type MemberRepositoryGORM struct {
	db *gorm.DB
}

// NewMemberRepositoryGORM creates a new GORM-based member repository
func NewMemberRepositoryGORM(db *gorm.DB) *MemberRepositoryGORM {
	return &MemberRepositoryGORM{db: db}
}

// GetByEmail retrieves a member by email without relationships
func (r *MemberRepositoryGORM) GetByEmail(ctx context.Context, email string) (*gormModels.Member, error) {
	var member gormModels.Member

	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&member).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("member not found")
		}
		return nil, fmt.Errorf("failed to fetch member: %w", err)
	}

	return &member, nil
}
