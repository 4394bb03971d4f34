package marketing

import (
	"context"
	"errors"
	"testing"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/casefolio/backend/internal/data/repos/testutil"
	types "github.com/casefolio/backend/internal/domain"
)

func TestMarketingRepoUpsert(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewMarketingRepo(db, testutil.Logger(t))
	ctx := context.Background()

	if _, err := repo.GetByDesigner(ctx, tx, "jane"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("GetByDesigner (missing): want ErrRecordNotFound, got %v", err)
	}

	first, err := repo.UpsertByDesigner(ctx, tx, &types.MarketingContent{
		Designer:       "jane",
		HeroTitle:      "UI Expert",
		HeroSubtitle:   "Designs that convert",
		Highlights:     datatypes.JSON(`[{"metric":"3","label":"Case Studies","icon":"🎨"}]`),
		Tagline:        "Design that delivers impact",
		CaseStudyCount: 3,
	})
	if err != nil {
		t.Fatalf("UpsertByDesigner (insert): %v", err)
	}
	if first.CaseStudyCount != 3 {
		t.Fatalf("insert: count = %d", first.CaseStudyCount)
	}

	second, err := repo.UpsertByDesigner(ctx, tx, &types.MarketingContent{
		Designer:       "jane",
		HeroTitle:      "Design Leader",
		HeroSubtitle:   "More projects now",
		Highlights:     datatypes.JSON(`[]`),
		Tagline:        "Design that delivers impact",
		CaseStudyCount: 4,
	})
	if err != nil {
		t.Fatalf("UpsertByDesigner (update): %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("upsert created a second row: %s != %s", second.ID, first.ID)
	}
	if second.HeroTitle != "Design Leader" || second.CaseStudyCount != 4 {
		t.Fatalf("update not applied: %+v", second)
	}
}
