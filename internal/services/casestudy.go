package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/casefolio/backend/internal/assembly"
	"github.com/casefolio/backend/internal/casestudy"
	"github.com/casefolio/backend/internal/casestudy/template"
	csrepo "github.com/casefolio/backend/internal/data/repos/casestudy"
	userrepo "github.com/casefolio/backend/internal/data/repos/user"
	types "github.com/casefolio/backend/internal/domain"
	"github.com/casefolio/backend/internal/fallback"
	"github.com/casefolio/backend/internal/platform/logger"
	"github.com/casefolio/backend/internal/platform/openai"
)

var (
	ErrUnknownTemplate = errors.New("unknown template")
	ErrInvalidStatus   = errors.New("invalid status")
)

// CaseStudyUpdate carries a partial update. Nil pointers mean "leave as is";
// a non-nil Answers map replaces the stored answers after normalization.
type CaseStudyUpdate struct {
	Title   *string
	Status  *string
	Content *string
	Answers map[string]json.RawMessage
}

// DraftRequest tunes a single generation run. A non-empty Template or
// non-nil Answers overrides the stored row for this run only; the row keeps
// its persisted template and answers either way.
type DraftRequest struct {
	Mode     assembly.Mode
	Template string
	Answers  map[string]json.RawMessage
}

type CaseStudyService interface {
	List(ctx context.Context, userID uuid.UUID) ([]*types.CaseStudy, error)
	Create(ctx context.Context, title, templateID string, userID *uuid.UUID) (*types.CaseStudy, error)
	Get(ctx context.Context, id, userID uuid.UUID) (*types.CaseStudy, error)
	Update(ctx context.Context, id, userID uuid.UUID, upd CaseStudyUpdate) (*types.CaseStudy, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	GenerateDraft(ctx context.Context, id, userID uuid.UUID, req DraftRequest) (*types.CaseStudy, error)
	ResolveOwner(ctx context.Context, userID *uuid.UUID) (uuid.UUID, error)
}

type caseStudyService struct {
	db       *gorm.DB
	log      *logger.Logger
	repo     csrepo.CaseStudyRepo
	userRepo userrepo.UserRepo
	registry *template.Registry
	gateway  openai.Client
}

func NewCaseStudyService(
	db *gorm.DB,
	log *logger.Logger,
	repo csrepo.CaseStudyRepo,
	userRepo userrepo.UserRepo,
	registry *template.Registry,
	gateway openai.Client,
) CaseStudyService {
	return &caseStudyService{
		db:       db,
		log:      log.With("service", "CaseStudyService"),
		repo:     repo,
		userRepo: userRepo,
		registry: registry,
		gateway:  gateway,
	}
}

func (cs *caseStudyService) List(ctx context.Context, userID uuid.UUID) ([]*types.CaseStudy, error) {
	return cs.repo.ListByUser(ctx, nil, userID)
}

// ResolveOwner maps an optional authenticated user to the owning account,
// falling back to the shared anonymous user when no session is present.
func (cs *caseStudyService) ResolveOwner(ctx context.Context, userID *uuid.UUID) (uuid.UUID, error) {
	if userID != nil {
		return *userID, nil
	}
	anon, err := cs.userRepo.EnsureAnonUser(ctx, nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("ensure anon user: %w", err)
	}
	return anon.ID, nil
}

func (cs *caseStudyService) Create(ctx context.Context, title, templateID string, userID *uuid.UUID) (*types.CaseStudy, error) {
	if _, ok := cs.registry.Get(templateID); !ok {
		return nil, ErrUnknownTemplate
	}
	if title == "" {
		title = "Untitled"
	}

	ownerID, err := cs.ResolveOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	created, err := cs.repo.Create(ctx, nil, &types.CaseStudy{
		Title:    title,
		Template: templateID,
		Status:   types.CaseStudyStatusDraft,
		UserID:   ownerID,
	})
	if err != nil {
		return nil, fmt.Errorf("create case study: %w", err)
	}
	cs.log.Info("Created case study", "case_study_id", created.ID, "template", templateID)
	return created, nil
}

func (cs *caseStudyService) Get(ctx context.Context, id, userID uuid.UUID) (*types.CaseStudy, error) {
	return cs.repo.GetByIDForUser(ctx, nil, id, userID)
}

func (cs *caseStudyService) Update(ctx context.Context, id, userID uuid.UUID, upd CaseStudyUpdate) (*types.CaseStudy, error) {
	existing, err := cs.repo.GetByIDForUser(ctx, nil, id, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if upd.Title != nil {
		updates["title"] = *upd.Title
	}
	if upd.Status != nil {
		switch *upd.Status {
		case types.CaseStudyStatusDraft, types.CaseStudyStatusPublished:
			updates["status"] = *upd.Status
		default:
			return nil, ErrInvalidStatus
		}
	}
	if upd.Content != nil {
		updates["content"] = *upd.Content
	}
	if upd.Answers != nil {
		tpl, ok := cs.registry.Get(existing.Template)
		if !ok {
			return nil, ErrUnknownTemplate
		}
		accepted := casestudy.FilterRaw(tpl, upd.Answers)
		blob, mErr := json.Marshal(accepted)
		if mErr != nil {
			return nil, fmt.Errorf("encode answers: %w", mErr)
		}
		updates["answers"] = datatypes.JSON(blob)
	}

	return cs.repo.UpdateFields(ctx, nil, id, userID, updates)
}

func (cs *caseStudyService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	return cs.repo.Delete(ctx, nil, id, userID)
}

// GenerateDraft produces the Markdown content for a case study and persists
// it. Without a configured gateway it renders the deterministic document; with
// one, a failed upstream call is surfaced to the caller unchanged.
func (cs *caseStudyService) GenerateDraft(ctx context.Context, id, userID uuid.UUID, req DraftRequest) (*types.CaseStudy, error) {
	study, err := cs.repo.GetByIDForUser(ctx, nil, id, userID)
	if err != nil {
		return nil, err
	}

	templateID := study.Template
	if req.Template != "" {
		templateID = req.Template
	}
	tpl, ok := cs.registry.Get(templateID)
	if !ok {
		return nil, ErrUnknownTemplate
	}
	var answers casestudy.Answers
	if req.Answers != nil {
		answers = casestudy.NormalizeAnswers(tpl, req.Answers)
	} else {
		answers = casestudy.ParseAnswers(tpl, study.Answers)
	}

	var content string
	if cs.gateway == nil || !cs.gateway.Configured() {
		digest := fallback.BuildDigest(study.Title, templateID, answers)
		content = fallback.Document(digest)
		cs.log.Info("Generated fallback draft", "case_study_id", study.ID)
	} else {
		contract := assembly.Contract{
			Template: templateID,
			Mode:     req.Mode,
			Inputs:   answers,
		}
		content, err = cs.gateway.GenerateText(ctx,
			assembly.BuildSystemPrompt(),
			assembly.BuildTemplatePrompt(contract, tpl),
		)
		if err != nil {
			cs.log.Error("Draft generation failed", "case_study_id", study.ID, "error", err)
			return nil, err
		}
		cs.log.Info("Generated draft", "case_study_id", study.ID, "mode", req.Mode)
	}

	return cs.repo.UpdateFields(ctx, nil, id, userID, map[string]any{"content": content})
}
