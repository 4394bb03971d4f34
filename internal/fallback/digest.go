// Package fallback produces deterministic content when live generation is
// unavailable or fails. Both renderings (the case-study Markdown document and
// the marketing copy) are driven by the same answer digest, so the two
// degrade paths cannot drift apart.
package fallback

import (
	"math"
	"strconv"

	"github.com/casefolio/backend/internal/casestudy"
)

// Digest is the small data record a renderer needs from one case study.
type Digest struct {
	Title      string
	TemplateID string
	Goal       string
	Objective  string
	Product    string
	Audience   string
	Timeframe  string
	Problem    string
	Steps      []string
	KPI        *casestudy.KPI
	Secondary  string
}

// BuildDigest extracts the renderable facts from a normalized answer set.
// Every lookup tolerates absence; renderers substitute fixed defaults.
func BuildDigest(title, templateID string, answers casestudy.Answers) Digest {
	if answers == nil {
		answers = casestudy.Answers{}
	}
	steps := answers.Items("moves")
	if len(steps) == 0 {
		steps = answers.Items("changes")
	}
	problem := answers.Text("user_problem")
	if problem == "" {
		problem = answers.Text("why_matters")
	}
	secondary := answers.Text("secondary_signal")
	if secondary == "" {
		secondary = answers.Text("qual_outcome")
	}
	return Digest{
		Title:      title,
		TemplateID: templateID,
		Goal:       answers.Text("goal"),
		Objective:  answers.Text("objective"),
		Product:    answers.Text("product"),
		Audience:   answers.Text("audience"),
		Timeframe:  answers.Text("timeframe"),
		Problem:    problem,
		Steps:      steps,
		KPI:        answers.KPI("primary_kpi"),
		Secondary:  secondary,
	}
}

// deltaLine formats the unsigned KPI summary used by the deterministic
// renderers. A KPI with a zero before or after value is treated as absent,
// matching how the questionnaire UI leaves untouched number inputs at zero.
func deltaLine(kpi *casestudy.KPI) string {
	if kpi == nil || kpi.Before == 0 || kpi.After == 0 {
		return "No metrics provided"
	}
	pct := int(math.Round((kpi.After - kpi.Before) / kpi.Before * 100))
	return casestudy.FormatAmount(kpi.Before) + kpi.Unit +
		" → " + casestudy.FormatAmount(kpi.After) + kpi.Unit +
		" (**" + strconv.Itoa(pct) + "%**)"
}
