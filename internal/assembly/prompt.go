// Package assembly turns a questionnaire template plus its answers into the
// system and user prompts sent to the generation gateway. It never fails on
// missing or malformed answers; gaps render as labeled placeholders.
package assembly

import (
	"fmt"
	"strings"

	"github.com/casefolio/backend/internal/casestudy"
	"github.com/casefolio/backend/internal/casestudy/template"
)

type Mode string

const (
	ModeConcise   Mode = "concise"
	ModeStandard  Mode = "standard"
	ModeNarrative Mode = "narrative"
)

// Contract carries one generation request: which template, how long the
// output should aim to be, and the normalized answers.
type Contract struct {
	Template string
	Mode     Mode
	Inputs   casestudy.Answers
}

func BuildSystemPrompt() string {
	return `You are a case-study editor who produces recruiter-grade Markdown content.

**Core Principles:**
- Be concise, evidence-led, avoid buzzwords
- Always include a TL;DR section at the top (3 bullets max, 2 metrics max)
- Include a Results section with computed deltas
- If data is missing, insert clearly labeled "No data provided" notes without fabricating
- Use industry-standard terminology and proven design patterns
- Focus on impact and outcomes, not just process

**Markdown Structure Requirements:**
- Use ## for main sections (never #)
- Include metric callouts in blockquotes: > **Metric Name**: before → after (**delta**)
- Use tables for comparisons when helpful
- Include specific, actionable insights in the conclusion

**Tone:** Professional but engaging, written for design leaders and recruiters.`
}

func BuildTemplatePrompt(contract Contract, tpl template.Template) string {
	inputs := contract.Inputs
	if inputs == nil {
		inputs = casestudy.Answers{}
	}
	mode := contract.Mode
	if mode == "" {
		mode = ModeStandard
	}

	kpis := ExtractKPIs(inputs, tpl)
	kpiSummaries := make([]string, 0, len(kpis))
	for _, kpi := range kpis {
		delta := casestudy.ComputeKPIDelta(kpi)
		kpiSummaries = append(kpiSummaries, fmt.Sprintf("%s: %s", kpi.Name, delta.Formatted))
	}

	var templateContext string
	switch tpl.ID {
	case "ui":
		templateContext = buildUIContext(inputs, kpis)
	case "ux":
		templateContext = buildUXContext(inputs, kpis)
	case "social":
		templateContext = buildSocialContext(inputs, kpis)
	}

	wordTarget := "800-1200"
	switch mode {
	case ModeConcise:
		wordTarget = "400-600"
	case ModeNarrative:
		wordTarget = "1500+"
	}

	metricsBlock := "No metrics provided"
	if len(kpiSummaries) > 0 {
		metricsBlock = strings.Join(kpiSummaries, "\n")
	}

	return fmt.Sprintf(`Generate a %s following this structure and data:

**Template:** %s
**Target Length:** %s words
**Mode:** %s

%s

**Key Metrics:**
%s

**Required Sections:**
1. **TL;DR** - 3 bullet points max, include 1-2 key metrics
2. **%s**
4. **Results** - Lead with metrics, include %% changes in bold
5. **Key Takeaways** - 2-3 actionable insights

Make it compelling and data-driven. Use specific numbers and avoid generic statements.`,
		strings.ToLower(tpl.Name),
		tpl.Name,
		wordTarget,
		mode,
		templateContext,
		metricsBlock,
		strings.Join(mainSections(tpl.ID), "**\n3. **"),
	)
}

// ExtractKPIs collects the KPI-typed answers present in the inputs, in
// template field order. A KPI is included only when name, before and after
// were all submitted; partially filled KPIs are dropped silently.
func ExtractKPIs(inputs casestudy.Answers, tpl template.Template) []casestudy.KPI {
	var kpis []casestudy.KPI
	for _, section := range tpl.Sections {
		for _, field := range section.Fields {
			if field.Type != template.FieldKPI {
				continue
			}
			v, ok := inputs[field.ID]
			if !ok || v.KPI == nil || !v.KPIComplete {
				continue
			}
			kpis = append(kpis, *v.KPI)
		}
	}
	return kpis
}

func buildUIContext(inputs casestudy.Answers, kpis []casestudy.KPI) string {
	return fmt.Sprintf(`**Project Overview:**
- Title: %s
- Goal: %s
- Product: %s
- Audience: %s
- Timeframe: %s

**Problem:**
- Issues: %s
- Impact: %s

**Solution:**
- Design moves: %s
- Before/after visuals: %s

**Results:**
- Primary KPI: %s
- Secondary signal: %s`,
		textOr(inputs, "title", "Untitled"),
		textOr(inputs, "goal", "Not specified"),
		textOr(inputs, "product", "Not specified"),
		textOr(inputs, "audience", "Not specified"),
		textOr(inputs, "timeframe", "Not specified"),
		joinedOr(inputs.Items("issues"), "Not specified"),
		textOr(inputs, "why_matters", "Not specified"),
		numberedOr(inputs.Items("moves"), "Not specified"),
		providedOr(inputs.Has("before")),
		primaryKPILine(kpis),
		textOr(inputs, "secondary_signal", "Not provided"),
	)
}

func buildUXContext(inputs casestudy.Answers, kpis []casestudy.KPI) string {
	return fmt.Sprintf(`**Project Overview:**
- Title: %s
- Goal: %s
- Product: %s
- Audience: %s
- Timeframe: %s

**Problem:**
- User problem: %s
- Top task: %s

**Research:**
- Sources: %s
- Key insights: %s

**Solution:**
- UX changes: %s
- Artifacts: %s

**Results:**
- Primary KPI: %s
- Qualitative outcome: %s`,
		textOr(inputs, "title", "Untitled"),
		textOr(inputs, "goal", "Not specified"),
		textOr(inputs, "product", "Not specified"),
		textOr(inputs, "audience", "Not specified"),
		textOr(inputs, "timeframe", "Not specified"),
		textOr(inputs, "user_problem", "Not specified"),
		textOr(inputs, "top_task", "Not specified"),
		joinedOr(inputs.Items("sources"), "Not specified"),
		numberedOr(inputs.Items("insights"), "Not specified"),
		numberedOr(inputs.Items("changes"), "Not specified"),
		providedOr(inputs.Has("artifacts")),
		primaryKPILine(kpis),
		textOr(inputs, "qual_outcome", "Not provided"),
	)
}

func buildSocialContext(inputs casestudy.Answers, kpis []casestudy.KPI) string {
	return fmt.Sprintf(`**Campaign Overview:**
- Title: %s
- Goal: %s
- Product: %s
- Audience: %s
- Timeframe: %s

**Campaign Setup:**
- Channels: %s
- Objective: %s

**Creative Strategy:**
- Content pillars: %s
- Volume & cadence: %s
- Creatives: %s

**Results:**
- Primary KPI: %s
- Secondary signal: %s`,
		textOr(inputs, "title", "Untitled"),
		textOr(inputs, "goal", "Not specified"),
		textOr(inputs, "product", "Not specified"),
		textOr(inputs, "audience", "Not specified"),
		textOr(inputs, "timeframe", "Not specified"),
		joinedOr(inputs.Items("channels"), "Not specified"),
		textOr(inputs, "objective", "Not specified"),
		numberedOr(inputs.Items("pillars"), "Not specified"),
		textOr(inputs, "volume", "Not specified"),
		providedOr(inputs.Has("creatives")),
		primaryKPILine(kpis),
		textOr(inputs, "secondary_signal", "Not provided"),
	)
}

func mainSections(templateID string) []string {
	switch templateID {
	case "ui":
		return []string{"Problem", "Solution", "Before/After"}
	case "ux":
		return []string{"Context", "Research", "Solution", "Validation"}
	case "social":
		return []string{"Strategy", "Creative Execution", "Distribution"}
	default:
		return []string{"Context", "Approach", "Execution"}
	}
}

func primaryKPILine(kpis []casestudy.KPI) string {
	if len(kpis) == 0 {
		return "Not provided"
	}
	kpi := kpis[0]
	return fmt.Sprintf("%s (%s%s → %s%s)", kpi.Name,
		casestudy.FormatAmount(kpi.Before), kpi.Unit,
		casestudy.FormatAmount(kpi.After), kpi.Unit)
}

func textOr(inputs casestudy.Answers, id, def string) string {
	if v := inputs.Text(id); v != "" {
		return v
	}
	return def
}

func joinedOr(items []string, def string) string {
	if len(items) == 0 {
		return def
	}
	return strings.Join(items, ", ")
}

func numberedOr(items []string, def string) string {
	if len(items) == 0 {
		return def
	}
	lines := make([]string, 0, len(items))
	for i, item := range items {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, item))
	}
	return strings.Join(lines, "\n")
}

func providedOr(has bool) string {
	if has {
		return "Provided"
	}
	return "Not provided"
}
