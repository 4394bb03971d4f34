package casestudy

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/casefolio/backend/internal/domain"
	"github.com/casefolio/backend/internal/platform/logger"
)

type CaseStudyRepo interface {
	Create(ctx context.Context, tx *gorm.DB, cs *types.CaseStudy) (*types.CaseStudy, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.CaseStudy, error)
	GetByIDForUser(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID) (*types.CaseStudy, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID, updates map[string]any) (*types.CaseStudy, error)
	Delete(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID) error

	ListPublished(ctx context.Context, tx *gorm.DB) ([]*types.CaseStudy, error)
	GetPublishedByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.CaseStudy, error)
	ListPublishedByDesigner(ctx context.Context, tx *gorm.DB, designer string) ([]*types.CaseStudy, error)
}

type caseStudyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCaseStudyRepo(db *gorm.DB, baseLog *logger.Logger) CaseStudyRepo {
	repoLog := baseLog.With("repo", "CaseStudyRepo")
	return &caseStudyRepo{db: db, log: repoLog}
}

func (cr *caseStudyRepo) Create(ctx context.Context, tx *gorm.DB, cs *types.CaseStudy) (*types.CaseStudy, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if err := transaction.WithContext(ctx).Create(cs).Error; err != nil {
		return nil, err
	}
	return cs, nil
}

func (cr *caseStudyRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.CaseStudy, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.CaseStudy
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND sample = false", userID).
		Order("updated_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *caseStudyRepo) GetByIDForUser(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID) (*types.CaseStudy, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var result types.CaseStudy
	if err := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ? AND sample = false", id, userID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateFields applies a partial update and returns the fresh row. The caller
// builds the updates map from whichever request fields were present.
func (cr *caseStudyRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID, updates map[string]any) (*types.CaseStudy, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	existing, err := cr.GetByIDForUser(ctx, transaction, id, userID)
	if err != nil {
		return nil, err
	}

	if len(updates) > 0 {
		if err := transaction.WithContext(ctx).
			Model(&types.CaseStudy{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	var result types.CaseStudy
	if err := transaction.WithContext(ctx).
		Where("id = ?", existing.ID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (cr *caseStudyRepo) Delete(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	res := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ? AND sample = false", id, userID).
		Delete(&types.CaseStudy{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (cr *caseStudyRepo) ListPublished(ctx context.Context, tx *gorm.DB) ([]*types.CaseStudy, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.CaseStudy
	if err := transaction.WithContext(ctx).
		Preload("User").
		Where("status = ?", types.CaseStudyStatusPublished).
		Order("updated_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *caseStudyRepo) GetPublishedByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.CaseStudy, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var result types.CaseStudy
	if err := transaction.WithContext(ctx).
		Preload("User").
		Where("id = ? AND status = ?", id, types.CaseStudyStatusPublished).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

// ListPublishedByDesigner matches a designer key against ownership three
// ways: the owner's user id, the local part of the owner's email, or any
// substring of it. The loose matches exist because showcase URLs carry the
// email local part, not the user id.
func (cr *caseStudyRepo) ListPublishedByDesigner(ctx context.Context, tx *gorm.DB, designer string) ([]*types.CaseStudy, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	owner := transaction.
		Where(`"user".email LIKE ?`, designer+"@%").
		Or(`"user".email LIKE ?`, "%"+designer+"%")
	if designerID, err := uuid.Parse(designer); err == nil {
		owner = owner.Or("case_study.user_id = ?", designerID)
	}

	var results []*types.CaseStudy
	if err := transaction.WithContext(ctx).
		Preload("User").
		Joins(`JOIN "user" ON "user".id = case_study.user_id`).
		Where("case_study.status = ?", types.CaseStudyStatusPublished).
		Where(owner).
		Order("case_study.updated_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
