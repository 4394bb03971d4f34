package marketing

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/casefolio/backend/internal/domain"
	"github.com/casefolio/backend/internal/platform/logger"
)

type MarketingRepo interface {
	GetByDesigner(ctx context.Context, tx *gorm.DB, designer string) (*types.MarketingContent, error)
	UpsertByDesigner(ctx context.Context, tx *gorm.DB, content *types.MarketingContent) (*types.MarketingContent, error)
}

type marketingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMarketingRepo(db *gorm.DB, baseLog *logger.Logger) MarketingRepo {
	repoLog := baseLog.With("repo", "MarketingRepo")
	return &marketingRepo{db: db, log: repoLog}
}

func (mr *marketingRepo) GetByDesigner(ctx context.Context, tx *gorm.DB, designer string) (*types.MarketingContent, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var result types.MarketingContent
	if err := transaction.WithContext(ctx).
		Where("designer = ?", designer).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (mr *marketingRepo) UpsertByDesigner(ctx context.Context, tx *gorm.DB, content *types.MarketingContent) (*types.MarketingContent, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "designer"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"hero_title",
				"hero_subtitle",
				"highlights",
				"tagline",
				"case_study_count",
				"updated_at",
			}),
		}).
		Create(content).Error; err != nil {
		return nil, err
	}

	return mr.GetByDesigner(ctx, transaction, content.Designer)
}
