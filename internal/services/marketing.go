package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/casefolio/backend/internal/casestudy"
	"github.com/casefolio/backend/internal/casestudy/template"
	csrepo "github.com/casefolio/backend/internal/data/repos/casestudy"
	mktrepo "github.com/casefolio/backend/internal/data/repos/marketing"
	types "github.com/casefolio/backend/internal/domain"
	"github.com/casefolio/backend/internal/fallback"
	"github.com/casefolio/backend/internal/marketing"
	"github.com/casefolio/backend/internal/platform/logger"
	"github.com/casefolio/backend/internal/platform/rediscache"
)

var ErrNoPublishedStudies = errors.New("no published case studies for designer")

type MarketingService interface {
	// ForDesigner returns showcase copy plus the published-study count that
	// backs it. The cached copy is fresh only while that count is unchanged.
	ForDesigner(ctx context.Context, designer string) (fallback.MarketingCopy, int, error)
}

type marketingService struct {
	db          *gorm.DB
	log         *logger.Logger
	csRepo      csrepo.CaseStudyRepo
	mktRepo     mktrepo.MarketingRepo
	registry    *template.Registry
	synthesizer *marketing.Synthesizer
	cache       *rediscache.Cache
}

func NewMarketingService(
	db *gorm.DB,
	log *logger.Logger,
	csRepo csrepo.CaseStudyRepo,
	mktRepo mktrepo.MarketingRepo,
	registry *template.Registry,
	synthesizer *marketing.Synthesizer,
	cache *rediscache.Cache,
) MarketingService {
	return &marketingService{
		db:          db,
		log:         log.With("service", "MarketingService"),
		csRepo:      csRepo,
		mktRepo:     mktRepo,
		registry:    registry,
		synthesizer: synthesizer,
		cache:       cache,
	}
}

type cachedMarketing struct {
	Copy  fallback.MarketingCopy `json:"copy"`
	Count int                    `json:"count"`
}

func marketingCacheKey(designer string) string { return "marketing:" + designer }

func (ms *marketingService) ForDesigner(ctx context.Context, designer string) (fallback.MarketingCopy, int, error) {
	studies, err := ms.csRepo.ListPublishedByDesigner(ctx, nil, designer)
	if err != nil {
		return fallback.MarketingCopy{}, 0, fmt.Errorf("list published studies: %w", err)
	}
	if len(studies) == 0 {
		return fallback.MarketingCopy{}, 0, ErrNoPublishedStudies
	}
	count := len(studies)

	var cached cachedMarketing
	if ms.cache.GetJSON(ctx, marketingCacheKey(designer), &cached) && cached.Count == count {
		return cached.Copy, count, nil
	}

	row, err := ms.mktRepo.GetByDesigner(ctx, nil, designer)
	if err == nil && row.CaseStudyCount == count {
		mc := rowToCopy(row)
		ms.cache.SetJSON(ctx, marketingCacheKey(designer), cachedMarketing{Copy: mc, Count: count})
		return mc, count, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fallback.MarketingCopy{}, 0, fmt.Errorf("load cached marketing content: %w", err)
	}

	mc := ms.synthesizer.Generate(ctx, designer, ms.toStudies(studies))

	highlights, err := json.Marshal(mc.Highlights)
	if err != nil {
		return fallback.MarketingCopy{}, 0, fmt.Errorf("encode highlights: %w", err)
	}
	if _, err := ms.mktRepo.UpsertByDesigner(ctx, nil, &types.MarketingContent{
		Designer:       designer,
		HeroTitle:      mc.HeroTitle,
		HeroSubtitle:   mc.HeroSubtitle,
		Highlights:     highlights,
		Tagline:        mc.Tagline,
		CaseStudyCount: count,
	}); err != nil {
		return fallback.MarketingCopy{}, 0, fmt.Errorf("cache marketing content: %w", err)
	}

	ms.cache.SetJSON(ctx, marketingCacheKey(designer), cachedMarketing{Copy: mc, Count: count})
	ms.log.Info("Regenerated marketing content", "designer", designer, "case_study_count", count)
	return mc, count, nil
}

func (ms *marketingService) toStudies(rows []*types.CaseStudy) []marketing.Study {
	out := make([]marketing.Study, 0, len(rows))
	for _, row := range rows {
		answers := casestudy.Answers{}
		if tpl, ok := ms.registry.Get(row.Template); ok {
			answers = casestudy.ParseAnswers(tpl, row.Answers)
		}
		out = append(out, marketing.Study{
			ID:       row.ID.String(),
			Title:    row.Title,
			Template: row.Template,
			Answers:  answers,
		})
	}
	return out
}

func rowToCopy(row *types.MarketingContent) fallback.MarketingCopy {
	var highlights []fallback.Highlight
	if len(row.Highlights) > 0 {
		_ = json.Unmarshal(row.Highlights, &highlights)
	}
	return fallback.MarketingCopy{
		HeroTitle:    row.HeroTitle,
		HeroSubtitle: row.HeroSubtitle,
		Highlights:   highlights,
		Tagline:      row.Tagline,
	}
}
