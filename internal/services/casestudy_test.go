package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/casefolio/backend/internal/assembly"
	"github.com/casefolio/backend/internal/casestudy/template"
	types "github.com/casefolio/backend/internal/domain"
	"github.com/casefolio/backend/internal/platform/logger"
)

type fakeCaseStudyRepo struct {
	rows map[uuid.UUID]*types.CaseStudy
}

func newFakeCaseStudyRepo() *fakeCaseStudyRepo {
	return &fakeCaseStudyRepo{rows: map[uuid.UUID]*types.CaseStudy{}}
}

func (f *fakeCaseStudyRepo) Create(_ context.Context, _ *gorm.DB, cs *types.CaseStudy) (*types.CaseStudy, error) {
	if cs.ID == uuid.Nil {
		cs.ID = uuid.New()
	}
	f.rows[cs.ID] = cs
	return cs, nil
}

func (f *fakeCaseStudyRepo) ListByUser(_ context.Context, _ *gorm.DB, userID uuid.UUID) ([]*types.CaseStudy, error) {
	var out []*types.CaseStudy
	for _, row := range f.rows {
		if row.UserID == userID && !row.Sample {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeCaseStudyRepo) GetByIDForUser(_ context.Context, _ *gorm.DB, id, userID uuid.UUID) (*types.CaseStudy, error) {
	row, ok := f.rows[id]
	if !ok || row.UserID != userID || row.Sample {
		return nil, gorm.ErrRecordNotFound
	}
	return row, nil
}

func (f *fakeCaseStudyRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID, updates map[string]any) (*types.CaseStudy, error) {
	row, err := f.GetByIDForUser(ctx, tx, id, userID)
	if err != nil {
		return nil, err
	}
	for key, value := range updates {
		switch key {
		case "title":
			row.Title = value.(string)
		case "status":
			row.Status = value.(string)
		case "content":
			row.Content = value.(string)
		case "answers":
			row.Answers = value.(datatypes.JSON)
		}
	}
	return row, nil
}

func (f *fakeCaseStudyRepo) Delete(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID) error {
	if _, err := f.GetByIDForUser(ctx, tx, id, userID); err != nil {
		return err
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeCaseStudyRepo) ListPublished(_ context.Context, _ *gorm.DB) ([]*types.CaseStudy, error) {
	var out []*types.CaseStudy
	for _, row := range f.rows {
		if row.Status == types.CaseStudyStatusPublished {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeCaseStudyRepo) GetPublishedByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*types.CaseStudy, error) {
	row, ok := f.rows[id]
	if !ok || row.Status != types.CaseStudyStatusPublished {
		return nil, gorm.ErrRecordNotFound
	}
	return row, nil
}

func (f *fakeCaseStudyRepo) ListPublishedByDesigner(_ context.Context, _ *gorm.DB, designer string) ([]*types.CaseStudy, error) {
	var out []*types.CaseStudy
	for _, row := range f.rows {
		if row.Status != types.CaseStudyStatusPublished || row.User == nil {
			continue
		}
		if strings.Contains(row.User.Email, designer) {
			out = append(out, row)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	anon *types.User
}

func (f *fakeUserRepo) Create(_ context.Context, _ *gorm.DB, users []*types.User) ([]*types.User, error) {
	return users, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, _ *gorm.DB, _ uuid.UUID) (*types.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, _ *gorm.DB, _ string) (*types.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) EmailExists(_ context.Context, _ *gorm.DB, _ string) (bool, error) {
	return false, nil
}

func (f *fakeUserRepo) EnsureAnonUser(_ context.Context, _ *gorm.DB) (*types.User, error) {
	if f.anon == nil {
		f.anon = &types.User{ID: uuid.New(), Email: "anon@local"}
	}
	return f.anon, nil
}

type fakeGateway struct {
	configured bool
	response   string
	err        error
	calls      int
	lastUser   string
}

func (f *fakeGateway) Configured() bool { return f.configured }

func (f *fakeGateway) GenerateText(_ context.Context, _, user string) (string, error) {
	f.calls++
	f.lastUser = user
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeGateway) GenerateTextWithModel(ctx context.Context, system, user, _ string) (string, error) {
	return f.GenerateText(ctx, system, user)
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func newTestCaseStudyService(t *testing.T, repo *fakeCaseStudyRepo, gw *fakeGateway) CaseStudyService {
	t.Helper()
	return NewCaseStudyService(nil, testLogger(t), repo, &fakeUserRepo{}, template.Default(), gw)
}

func TestCreateRejectsUnknownTemplate(t *testing.T) {
	svc := newTestCaseStudyService(t, newFakeCaseStudyRepo(), &fakeGateway{})

	if _, err := svc.Create(context.Background(), "T", "print", nil); !errors.Is(err, ErrUnknownTemplate) {
		t.Fatalf("want ErrUnknownTemplate, got %v", err)
	}
}

func TestCreateAnonymousOwnerFallback(t *testing.T) {
	repo := newFakeCaseStudyRepo()
	svc := newTestCaseStudyService(t, repo, &fakeGateway{})

	created, err := svc.Create(context.Background(), "", "ui", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Title != "Untitled" {
		t.Errorf("empty title should default: %q", created.Title)
	}
	if created.Status != types.CaseStudyStatusDraft {
		t.Errorf("status = %q", created.Status)
	}
	if created.UserID == uuid.Nil {
		t.Error("anonymous create should resolve to the anon owner")
	}
}

func TestUpdateNormalizesAnswers(t *testing.T) {
	repo := newFakeCaseStudyRepo()
	svc := newTestCaseStudyService(t, repo, &fakeGateway{})
	ctx := context.Background()

	created, err := svc.Create(ctx, "T", "ui", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(ctx, created.ID, created.UserID, CaseStudyUpdate{
		Answers: map[string]json.RawMessage{
			"title":   json.RawMessage(`"Checkout redesign"`),
			"goal":    json.RawMessage(`42`),
			"unknown": json.RawMessage(`"x"`),
		},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	var stored map[string]json.RawMessage
	if err := json.Unmarshal(updated.Answers, &stored); err != nil {
		t.Fatalf("decode stored answers: %v", err)
	}
	if _, ok := stored["title"]; !ok {
		t.Error("valid answer dropped")
	}
	if _, ok := stored["goal"]; ok {
		t.Error("mistyped answer persisted")
	}
	if _, ok := stored["unknown"]; ok {
		t.Error("undeclared answer persisted")
	}
}

func TestUpdateRejectsInvalidStatus(t *testing.T) {
	repo := newFakeCaseStudyRepo()
	svc := newTestCaseStudyService(t, repo, &fakeGateway{})
	ctx := context.Background()

	created, _ := svc.Create(ctx, "T", "ui", nil)
	bad := "archived"
	if _, err := svc.Update(ctx, created.ID, created.UserID, CaseStudyUpdate{Status: &bad}); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("want ErrInvalidStatus, got %v", err)
	}
}

func TestGenerateDraftFallbackWithoutGateway(t *testing.T) {
	repo := newFakeCaseStudyRepo()
	gw := &fakeGateway{configured: false}
	svc := newTestCaseStudyService(t, repo, gw)
	ctx := context.Background()

	created, _ := svc.Create(ctx, "Checkout redesign", "ui", nil)

	updated, err := svc.GenerateDraft(ctx, created.ID, created.UserID, DraftRequest{Mode: assembly.ModeStandard})
	if err != nil {
		t.Fatalf("GenerateDraft: %v", err)
	}
	if gw.calls != 0 {
		t.Errorf("unconfigured gateway called %d times", gw.calls)
	}
	if !strings.HasPrefix(updated.Content, "# Checkout redesign") {
		t.Errorf("fallback document missing title heading:\n%s", updated.Content)
	}
	if !strings.Contains(updated.Content, "## TL;DR") {
		t.Errorf("fallback document missing TL;DR:\n%s", updated.Content)
	}
}

func TestGenerateDraftPersistsGatewayContent(t *testing.T) {
	repo := newFakeCaseStudyRepo()
	gw := &fakeGateway{configured: true, response: "## Generated"}
	svc := newTestCaseStudyService(t, repo, gw)
	ctx := context.Background()

	created, _ := svc.Create(ctx, "T", "ui", nil)

	updated, err := svc.GenerateDraft(ctx, created.ID, created.UserID, DraftRequest{Mode: assembly.ModeConcise})
	if err != nil {
		t.Fatalf("GenerateDraft: %v", err)
	}
	if gw.calls != 1 {
		t.Errorf("gateway calls = %d", gw.calls)
	}
	if updated.Content != "## Generated" {
		t.Errorf("content = %q", updated.Content)
	}
}

func TestGenerateDraftBodyOverrides(t *testing.T) {
	repo := newFakeCaseStudyRepo()
	gw := &fakeGateway{configured: true, response: "## Generated"}
	svc := newTestCaseStudyService(t, repo, gw)
	ctx := context.Background()

	created, _ := svc.Create(ctx, "Checkout redesign", "ui", nil)
	if _, err := svc.Update(ctx, created.ID, created.UserID, CaseStudyUpdate{
		Answers: map[string]json.RawMessage{"goal": json.RawMessage(`"Stored goal"`)},
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if _, err := svc.GenerateDraft(ctx, created.ID, created.UserID, DraftRequest{
		Answers: map[string]json.RawMessage{"goal": json.RawMessage(`"Override goal"`)},
	}); err != nil {
		t.Fatalf("GenerateDraft (answers override): %v", err)
	}
	if !strings.Contains(gw.lastUser, "Override goal") {
		t.Errorf("override answers not used in prompt:\n%s", gw.lastUser)
	}
	if strings.Contains(gw.lastUser, "Stored goal") {
		t.Errorf("stored answers used despite override:\n%s", gw.lastUser)
	}

	if _, err := svc.GenerateDraft(ctx, created.ID, created.UserID, DraftRequest{Template: "social"}); err != nil {
		t.Fatalf("GenerateDraft (template override): %v", err)
	}
	if !strings.Contains(gw.lastUser, "Social Case Study") {
		t.Errorf("template override not applied:\n%s", gw.lastUser)
	}
	row, err := repo.GetByIDForUser(ctx, nil, created.ID, created.UserID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if row.Template != "ui" {
		t.Errorf("template override persisted to the row: %q", row.Template)
	}

	if _, err := svc.GenerateDraft(ctx, created.ID, created.UserID, DraftRequest{Template: "print"}); !errors.Is(err, ErrUnknownTemplate) {
		t.Fatalf("unknown override template: want ErrUnknownTemplate, got %v", err)
	}
}

func TestGenerateDraftSurfacesGatewayError(t *testing.T) {
	repo := newFakeCaseStudyRepo()
	upstream := errors.New("rate limited")
	gw := &fakeGateway{configured: true, err: upstream}
	svc := newTestCaseStudyService(t, repo, gw)
	ctx := context.Background()

	created, _ := svc.Create(ctx, "T", "ui", nil)

	if _, err := svc.GenerateDraft(ctx, created.ID, created.UserID, DraftRequest{}); !errors.Is(err, upstream) {
		t.Fatalf("want upstream error, got %v", err)
	}
	if row, _ := repo.GetByIDForUser(ctx, nil, created.ID, created.UserID); row.Content != "" {
		t.Errorf("failed generation must not persist content: %q", row.Content)
	}
}
