package db

import (
	"fmt"

	gormModels "github.com/s4ngl/iu-icems-website-sub000/internal/models/gorm"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// PgDB is the shared GORM handle for the write-path services.
var PgDB *gorm.DB

// InitPostgresORM connects GORM to the same database as the sqlx handle and
// migrates the domain tables.
func InitPostgresORM() (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsnFromEnv()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := db.AutoMigrate(
		&gormModels.Member{},
		&gormModels.Event{},
		&gormModels.EventSignup{},
		&gormModels.EventHours{},
		&gormModels.Certification{},
		&gormModels.PenaltyPoint{},
		&gormModels.TrainingSession{},
		&gormModels.TrainingSignup{},
	); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	PgDB = db
	return db, nil
}
