package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/casefolio/backend/internal/casestudy/template"
	types "github.com/casefolio/backend/internal/domain"
	"github.com/casefolio/backend/internal/marketing"
)

type fakeMarketingRepo struct {
	rows    map[string]*types.MarketingContent
	upserts int
}

func newFakeMarketingRepo() *fakeMarketingRepo {
	return &fakeMarketingRepo{rows: map[string]*types.MarketingContent{}}
}

func (f *fakeMarketingRepo) GetByDesigner(_ context.Context, _ *gorm.DB, designer string) (*types.MarketingContent, error) {
	row, ok := f.rows[designer]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return row, nil
}

func (f *fakeMarketingRepo) UpsertByDesigner(_ context.Context, _ *gorm.DB, content *types.MarketingContent) (*types.MarketingContent, error) {
	f.upserts++
	if content.ID == uuid.Nil {
		content.ID = uuid.New()
	}
	f.rows[content.Designer] = content
	return content, nil
}

func seedPublished(repo *fakeCaseStudyRepo, email string, n int) {
	owner := &types.User{ID: uuid.New(), Email: email}
	for i := 0; i < n; i++ {
		id := uuid.New()
		repo.rows[id] = &types.CaseStudy{
			ID:       id,
			Title:    "Study",
			Template: "ui",
			Status:   types.CaseStudyStatusPublished,
			UserID:   owner.ID,
			User:     owner,
		}
	}
}

func newTestMarketingService(t *testing.T, csRepo *fakeCaseStudyRepo, mktRepo *fakeMarketingRepo) MarketingService {
	t.Helper()
	synth := marketing.NewSynthesizer(&fakeGateway{configured: false}, testLogger(t))
	return NewMarketingService(nil, testLogger(t), csRepo, mktRepo, template.Default(), synth, nil)
}

func TestForDesignerNoPublishedStudies(t *testing.T) {
	svc := newTestMarketingService(t, newFakeCaseStudyRepo(), newFakeMarketingRepo())

	if _, _, err := svc.ForDesigner(context.Background(), "jane"); !errors.Is(err, ErrNoPublishedStudies) {
		t.Fatalf("want ErrNoPublishedStudies, got %v", err)
	}
}

func TestForDesignerGeneratesAndCaches(t *testing.T) {
	csRepo := newFakeCaseStudyRepo()
	mktRepo := newFakeMarketingRepo()
	seedPublished(csRepo, "jane@example.com", 2)
	svc := newTestMarketingService(t, csRepo, mktRepo)
	ctx := context.Background()

	mc, count, err := svc.ForDesigner(ctx, "jane")
	if err != nil {
		t.Fatalf("ForDesigner: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d", count)
	}
	if mc.Tagline != "Design that delivers impact" {
		t.Errorf("tagline = %q", mc.Tagline)
	}
	if mktRepo.upserts != 1 {
		t.Errorf("upserts = %d", mktRepo.upserts)
	}

	// Same portfolio size: the cached row is fresh, no regeneration.
	if _, _, err := svc.ForDesigner(ctx, "jane"); err != nil {
		t.Fatalf("ForDesigner (cached): %v", err)
	}
	if mktRepo.upserts != 1 {
		t.Errorf("fresh cache regenerated, upserts = %d", mktRepo.upserts)
	}

	// New published study invalidates the cached row.
	seedPublished(csRepo, "jane@example.com", 1)
	if _, count, err = svc.ForDesigner(ctx, "jane"); err != nil {
		t.Fatalf("ForDesigner (stale): %v", err)
	}
	if count != 3 {
		t.Errorf("stale count = %d", count)
	}
	if mktRepo.upserts != 2 {
		t.Errorf("stale cache not regenerated, upserts = %d", mktRepo.upserts)
	}
}
