package assembly

import (
	"reflect"
	"testing"

	"github.com/casefolio/backend/internal/casestudy"
	"github.com/casefolio/backend/internal/casestudy/template"
)

func TestEnrichWithPatterns(t *testing.T) {
	cases := []struct {
		name       string
		templateID string
		inputs     casestudy.Answers
		want       []string
	}{
		{
			name:       "ui accessibility and cta",
			templateID: "ui",
			inputs: casestudy.Answers{
				"issues": {Kind: template.FieldChips, Items: []string{"low contrast"}},
				"moves":  {Kind: template.FieldList, Items: []string{"Redesigned the CTA button"}},
			},
			want: []string{"Accessibility", "Conversion Optimization"},
		},
		{
			name:       "ux friction",
			templateID: "ux",
			inputs: casestudy.Answers{
				"insights": {Kind: template.FieldList, Items: []string{"Users hit friction at step 2"}},
			},
			want: []string{"Friction Reduction"},
		},
		{
			name:       "social instagram",
			templateID: "social",
			inputs: casestudy.Answers{
				"channels": {Kind: template.FieldChips, Items: []string{"instagram"}},
			},
			want: []string{"Visual Storytelling"},
		},
		{
			name:       "no signals",
			templateID: "ui",
			inputs:     casestudy.Answers{},
			want:       nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := EnrichWithPatterns(tc.inputs, tc.templateID)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}
