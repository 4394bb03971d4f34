package db

import (
	"fmt"

	types "github.com/casefolio/backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.User{},
		&types.CaseStudy{},
		&types.MarketingContent{},
	)
}

func EnsureCaseStudyIndexes(db *gorm.DB) error {
	// uuid-ossp is already enabled in NewPostgresService, but safe to re-run
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return fmt.Errorf("enable uuid-ossp: %w", err)
	}
	// Listing a user's studies newest-first.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_case_study_user_updated
		ON case_study (user_id, updated_at DESC);
	`).Error; err != nil {
		return fmt.Errorf("create idx_case_study_user_updated: %w", err)
	}
	// Public showcase scans only published rows.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_case_study_status_updated
		ON case_study (status, updated_at DESC);
	`).Error; err != nil {
		return fmt.Errorf("create idx_case_study_status_updated: %w", err)
	}
	return nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	if err := EnsureCaseStudyIndexes(s.db); err != nil {
		s.log.Error("Case study index migration failed", "error", err)
		return err
	}
	return nil
}
