// Package marketing synthesizes per-designer showcase copy from a portfolio
// of published case studies, with a deterministic heuristic path whenever the
// generation gateway is unconfigured or misbehaves.
package marketing

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/casefolio/backend/internal/casestudy"
	"github.com/casefolio/backend/internal/fallback"
	"github.com/casefolio/backend/internal/platform/logger"
	"github.com/casefolio/backend/internal/platform/openai"
)

// Study is the portfolio view of one published case study.
type Study struct {
	ID       string
	Title    string
	Template string
	Answers  casestudy.Answers
}

type Synthesizer struct {
	gateway openai.Client
	log     *logger.Logger
}

func NewSynthesizer(gateway openai.Client, log *logger.Logger) *Synthesizer {
	return &Synthesizer{gateway: gateway, log: log.With("service", "MarketingSynthesizer")}
}

// Generate produces marketing copy for a designer. Any failure along the live
// path (gateway error, unparseable response) degrades to heuristic copy; this
// method never returns an error.
func (s *Synthesizer) Generate(ctx context.Context, designer string, studies []Study) fallback.MarketingCopy {
	if s.gateway == nil || !s.gateway.Configured() || len(studies) == 0 {
		return s.fallbackCopy(designer, studies)
	}

	raw, err := s.gateway.GenerateText(ctx, marketingSystemPrompt, buildPortfolioPrompt(designer, studies))
	if err != nil {
		s.log.Error("Marketing generation failed", "designer", designer, "error", err)
		return s.fallbackCopy(designer, studies)
	}

	parsed, err := parseMarketingResponse(raw)
	if err != nil {
		s.log.Error("Failed to parse marketing response", "designer", designer, "error", err)
		return s.fallbackCopy(designer, studies)
	}
	return normalizeCopy(parsed, designer, len(studies))
}

func (s *Synthesizer) fallbackCopy(designer string, studies []Study) fallback.MarketingCopy {
	digests := make([]fallback.Digest, 0, len(studies))
	for _, st := range studies {
		digests = append(digests, fallback.BuildDigest(st.Title, st.Template, st.Answers))
	}
	return fallback.Marketing(designer, digests)
}

const marketingSystemPrompt = `You are an expert marketing copywriter specializing in design portfolios. Your job is to create compelling, personalized marketing copy for designers based on their case study portfolio.

Key principles:
- Write in a confident, professional tone that showcases expertise
- Focus on results, impact, and unique value proposition
- Use action-oriented language that resonates with potential clients
- Highlight quantifiable achievements when available
- Keep copy concise but impactful
- Avoid generic design jargon, focus on business impact

Generate content that positions the designer as a strategic partner who delivers measurable results.`

func buildPortfolioPrompt(designer string, studies []Study) string {
	var overview strings.Builder
	for i, st := range studies {
		d := fallback.BuildDigest(st.Title, st.Template, st.Answers)

		goal := d.Goal
		if goal == "" {
			goal = d.Objective
		}
		if goal == "" {
			goal = "Not specified"
		}

		kpiLine := "Not specified"
		if d.KPI != nil {
			kpiLine = fmt.Sprintf("%s: %s%s → %s%s", d.KPI.Name,
				casestudy.FormatAmount(d.KPI.Before), d.KPI.Unit,
				casestudy.FormatAmount(d.KPI.After), d.KPI.Unit)
		}

		fmt.Fprintf(&overview, `
%d. %s (%s)
   - Goal: %s
   - Product: %s
   - Audience: %s
   - KPI: %s
   - Timeline: %s
`,
			i+1, st.Title, strings.ToUpper(st.Template),
			goal,
			orNotSpecified(d.Product),
			orNotSpecified(d.Audience),
			kpiLine,
			orNotSpecified(d.Timeframe),
		)
	}

	industries := strings.Join(distinctProducts(studies), ", ")
	if industries == "" {
		industries = "Various"
	}

	return fmt.Sprintf(`Create personalized marketing content for designer "%s" based on their portfolio:

CASE STUDIES OVERVIEW:
%s

PORTFOLIO STATS:
- Total Projects: %d
- Specialties: %s
- Industries: %s

Generate JSON response with:
{
  "heroTitle": "MAXIMUM 3 words that describe the designer (e.g. 'UI Expert', 'Design Leader', 'UX Specialist')",
  "heroSubtitle": "MAXIMUM 20 words describing their value and impact",
  "highlights": [
    {
      "metric": "Impressive number or achievement",
      "label": "What the metric represents",
      "icon": "relevant emoji"
    }
  ],
  "tagline": "MAXIMUM 10 words summarizing their impact"
}

Create 3 highlights that showcase their best achievements, growth metrics, or unique strengths. Focus on business impact over design process.`,
		designer,
		overview.String(),
		len(studies),
		strings.Join(distinctTemplates(studies), ", "),
		industries,
	)
}

// parseMarketingResponse tolerates responses wrapped in Markdown code fences,
// which chat models emit even when asked for bare JSON.
func parseMarketingResponse(raw string) (fallback.MarketingCopy, error) {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	}
	cleaned = strings.TrimSpace(cleaned)

	var out fallback.MarketingCopy
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return fallback.MarketingCopy{}, err
	}
	return out, nil
}

// normalizeCopy backfills any field the model left empty and caps highlights
// at three, so downstream rendering never deals with partial copy.
func normalizeCopy(c fallback.MarketingCopy, designer string, studyCount int) fallback.MarketingCopy {
	if c.HeroTitle == "" {
		c.HeroTitle = designer + "'s Design Portfolio"
	}
	if c.HeroSubtitle == "" {
		c.HeroSubtitle = fmt.Sprintf(
			"Explore innovative design solutions that drive real business results across %d featured projects.",
			studyCount,
		)
	}
	if len(c.Highlights) > 3 {
		c.Highlights = c.Highlights[:3]
	}
	for i := range c.Highlights {
		if c.Highlights[i].Metric == "" {
			c.Highlights[i].Metric = fmt.Sprintf("%d", studyCount)
		}
		if c.Highlights[i].Label == "" {
			c.Highlights[i].Label = "Projects Completed"
		}
		if c.Highlights[i].Icon == "" {
			c.Highlights[i].Icon = "🎨"
		}
	}
	if c.Tagline == "" {
		c.Tagline = "Design that delivers measurable impact"
	}
	return c
}

func orNotSpecified(v string) string {
	if strings.TrimSpace(v) == "" {
		return "Not specified"
	}
	return v
}

func distinctTemplates(studies []Study) []string {
	seen := map[string]bool{}
	var out []string
	for _, st := range studies {
		if seen[st.Template] {
			continue
		}
		seen[st.Template] = true
		out = append(out, st.Template)
	}
	return out
}

func distinctProducts(studies []Study) []string {
	seen := map[string]bool{}
	var out []string
	for _, st := range studies {
		p := strings.TrimSpace(st.Answers.Text("product"))
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
