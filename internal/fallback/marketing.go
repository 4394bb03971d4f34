package fallback

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type Highlight struct {
	Metric string `json:"metric"`
	Label  string `json:"label"`
	Icon   string `json:"icon"`
}

// MarketingCopy is the showcase hero content for one designer.
type MarketingCopy struct {
	HeroTitle    string      `json:"heroTitle"`
	HeroSubtitle string      `json:"heroSubtitle"`
	Highlights   []Highlight `json:"highlights"`
	Tagline      string      `json:"tagline"`
}

const MarketingTagline = "Design that delivers impact"

// standoutImprovementPct is the threshold above which a single case study's
// KPI improvement replaces the specialty-count highlight.
const standoutImprovementPct = 20.0

var specialtyLabels = map[string]string{
	"ui":     "UI Design",
	"ux":     "UX Research",
	"social": "Social Media",
}

// Marketing renders the heuristic showcase copy used when live synthesis is
// unavailable. Deterministic for a given portfolio.
func Marketing(designer string, studies []Digest) MarketingCopy {
	specialties := distinctSpecialties(studies)
	specialtyLine := strings.Join(specialties, " & ")
	totalProjects := len(studies)

	highlights := []Highlight{
		{Metric: strconv.Itoa(totalProjects), Label: "Case Studies", Icon: "🎨"},
		standoutOrSpecialties(studies, len(specialties)),
		{Metric: strconv.Itoa(len(distinctProducts(studies))), Label: "Industries", Icon: "🏢"},
	}

	heroTitle := specialtyLine + " Designer"
	if len(specialtyLine) > 15 {
		heroTitle = strings.SplitN(specialtyLine, " ", 2)[0] + " Designer"
	}

	return MarketingCopy{
		HeroTitle: strings.TrimSpace(heroTitle),
		HeroSubtitle: fmt.Sprintf(
			"Creating impactful %s solutions that drive measurable results across %d projects.",
			strings.ToLower(specialtyLine), totalProjects,
		),
		Highlights: highlights,
		Tagline:    MarketingTagline,
	}
}

func standoutOrSpecialties(studies []Digest, specialtyCount int) Highlight {
	for _, d := range studies {
		kpi := d.KPI
		if kpi == nil || kpi.Before == 0 || kpi.After == 0 {
			continue
		}
		improvement := (kpi.After - kpi.Before) / kpi.Before * 100
		if improvement > standoutImprovementPct {
			return Highlight{
				Metric: fmt.Sprintf("%d%%", int(math.Round(improvement))),
				Label:  "Average Improvement",
				Icon:   "📈",
			}
		}
	}
	return Highlight{Metric: strconv.Itoa(specialtyCount), Label: "Specialties", Icon: "⚡"}
}

func distinctSpecialties(studies []Digest) []string {
	seen := map[string]bool{}
	var out []string
	for _, d := range studies {
		if seen[d.TemplateID] {
			continue
		}
		seen[d.TemplateID] = true
		label, ok := specialtyLabels[d.TemplateID]
		if !ok {
			label = d.TemplateID
		}
		out = append(out, label)
	}
	return out
}

func distinctProducts(studies []Digest) []string {
	seen := map[string]bool{}
	var out []string
	for _, d := range studies {
		p := strings.TrimSpace(d.Product)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
