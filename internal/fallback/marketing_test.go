package fallback

import (
	"strings"
	"testing"

	"github.com/casefolio/backend/internal/casestudy"
)

func TestMarketingHeuristics(t *testing.T) {
	studies := []Digest{
		{TemplateID: "ui", Product: "E-commerce platform"},
		{TemplateID: "ux", Product: "Banking app"},
	}

	got := Marketing("jane", studies)

	if got.Tagline != "Design that delivers impact" {
		t.Errorf("tagline = %q", got.Tagline)
	}
	if len(got.Highlights) != 3 {
		t.Fatalf("expected 3 highlights, got %d", len(got.Highlights))
	}
	if got.Highlights[0].Metric != "2" || got.Highlights[0].Label != "Case Studies" {
		t.Errorf("first highlight = %+v", got.Highlights[0])
	}
	if got.Highlights[1].Metric != "2" || got.Highlights[1].Label != "Specialties" {
		t.Errorf("second highlight = %+v", got.Highlights[1])
	}
	if got.Highlights[2].Metric != "2" || got.Highlights[2].Label != "Industries" {
		t.Errorf("third highlight = %+v", got.Highlights[2])
	}
	if !strings.Contains(got.HeroSubtitle, "across 2 projects") {
		t.Errorf("hero subtitle = %q", got.HeroSubtitle)
	}
}

func TestMarketingStandoutKPI(t *testing.T) {
	studies := []Digest{
		{TemplateID: "ui", KPI: &casestudy.KPI{Name: "Conversion", Before: 10, After: 20}},
	}

	got := Marketing("jane", studies)

	if got.Highlights[1].Metric != "100%" || got.Highlights[1].Label != "Average Improvement" {
		t.Errorf("standout highlight = %+v", got.Highlights[1])
	}
}

func TestMarketingModestKPIFallsBackToSpecialties(t *testing.T) {
	studies := []Digest{
		// 10% improvement, below the standout threshold
		{TemplateID: "ui", KPI: &casestudy.KPI{Name: "Conversion", Before: 10, After: 11}},
	}

	got := Marketing("jane", studies)

	if got.Highlights[1].Label != "Specialties" {
		t.Errorf("modest KPI should not be a standout: %+v", got.Highlights[1])
	}
}

func TestMarketingHeroTitleTruncation(t *testing.T) {
	short := Marketing("jane", []Digest{{TemplateID: "ui"}})
	if short.HeroTitle != "UI Design Designer" {
		t.Errorf("short hero title = %q", short.HeroTitle)
	}

	// "UI Design & UX Research" exceeds 15 chars, so only the first word stays.
	long := Marketing("jane", []Digest{{TemplateID: "ui"}, {TemplateID: "ux"}})
	if long.HeroTitle != "UI Designer" {
		t.Errorf("long hero title = %q", long.HeroTitle)
	}
}

func TestMarketingUnknownTemplateLabel(t *testing.T) {
	got := Marketing("jane", []Digest{{TemplateID: "motion"}})
	if !strings.Contains(got.HeroTitle, "motion") {
		t.Errorf("unknown template should use raw id: %q", got.HeroTitle)
	}
}
