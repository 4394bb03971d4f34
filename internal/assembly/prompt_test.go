package assembly

import (
	"strings"
	"testing"

	"github.com/casefolio/backend/internal/casestudy"
	"github.com/casefolio/backend/internal/casestudy/template"
)

func uiTemplate(t *testing.T) template.Template {
	t.Helper()
	tpl, ok := template.Default().Get("ui")
	if !ok {
		t.Fatal("ui template missing")
	}
	return tpl
}

func TestBuildSystemPromptStructureRules(t *testing.T) {
	got := BuildSystemPrompt()
	for _, want := range []string{"TL;DR", "## for main sections", "blockquotes"} {
		if !strings.Contains(got, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
}

func TestBuildTemplatePromptEmptyInputs(t *testing.T) {
	tpl := uiTemplate(t)

	for _, inputs := range []casestudy.Answers{nil, {}} {
		got := BuildTemplatePrompt(Contract{Template: "ui", Inputs: inputs}, tpl)

		if !strings.Contains(got, "Untitled") {
			t.Error("empty title should render as Untitled")
		}
		if !strings.Contains(got, "Not specified") {
			t.Error("missing answers should render as Not specified")
		}
		if !strings.Contains(got, "No metrics provided") {
			t.Error("missing KPIs should render as No metrics provided")
		}
		if !strings.Contains(got, "800-1200") {
			t.Error("empty mode should default to standard word target")
		}
	}
}

func TestBuildTemplatePromptModes(t *testing.T) {
	tpl := uiTemplate(t)
	cases := []struct {
		mode Mode
		want string
	}{
		{ModeConcise, "400-600"},
		{ModeStandard, "800-1200"},
		{ModeNarrative, "1500+"},
	}
	for _, tc := range cases {
		got := BuildTemplatePrompt(Contract{Template: "ui", Mode: tc.mode}, tpl)
		if !strings.Contains(got, tc.want) {
			t.Errorf("mode %q: prompt missing word target %q", tc.mode, tc.want)
		}
	}
}

func TestBuildTemplatePromptWithKPI(t *testing.T) {
	tpl := uiTemplate(t)
	inputs := casestudy.Answers{
		"title": {Kind: template.FieldText, Text: "Checkout redesign"},
		"primary_kpi": {
			Kind:        template.FieldKPI,
			KPI:         &casestudy.KPI{Name: "Conversion", Before: 2, After: 3, Unit: "%"},
			KPIComplete: true,
		},
	}

	got := BuildTemplatePrompt(Contract{Template: "ui", Inputs: inputs}, tpl)

	if !strings.Contains(got, "Conversion: 2% → 3% (**+50%**)") {
		t.Errorf("prompt missing KPI summary:\n%s", got)
	}
	if !strings.Contains(got, "Conversion (2% → 3%)") {
		t.Errorf("prompt missing primary KPI line:\n%s", got)
	}
	if !strings.Contains(got, "Checkout redesign") {
		t.Error("prompt missing title")
	}
}

func TestExtractKPIsSkipsIncomplete(t *testing.T) {
	tpl := uiTemplate(t)
	inputs := casestudy.Answers{
		"primary_kpi": {
			Kind: template.FieldKPI,
			KPI:  &casestudy.KPI{Name: "Conversion", Before: 2},
			// KPIComplete false: after was never submitted
		},
	}

	if got := ExtractKPIs(inputs, tpl); len(got) != 0 {
		t.Errorf("incomplete KPI extracted: %+v", got)
	}
}

func TestMainSectionsPerTemplate(t *testing.T) {
	reg := template.Default()
	wantSection := map[string]string{
		"ui":     "Before/After",
		"ux":     "Validation",
		"social": "Creative Execution",
	}
	for id, want := range wantSection {
		tpl, _ := reg.Get(id)
		got := BuildTemplatePrompt(Contract{Template: id}, tpl)
		if !strings.Contains(got, want) {
			t.Errorf("template %q prompt missing required section %q", id, want)
		}
	}
}
