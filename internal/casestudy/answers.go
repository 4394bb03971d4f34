package casestudy

import (
	"encoding/json"

	"github.com/casefolio/backend/internal/casestudy/template"
)

// Asset describes one uploaded attachment referenced from an answer.
type Asset struct {
	Name string `json:"name,omitempty"`
	URL  string `json:"url,omitempty"`
	Type string `json:"type,omitempty"`
}

// AnswerValue is a tagged union over the field types a template can declare.
// Exactly one payload is meaningful for a given Kind.
type AnswerValue struct {
	Kind   template.FieldType `json:"kind"`
	Text   string             `json:"text,omitempty"`
	Items  []string           `json:"items,omitempty"`
	Assets []Asset            `json:"assets,omitempty"`
	KPI    *KPI               `json:"kpi,omitempty"`

	// KPIComplete reports whether name, before and after were all present in
	// the submitted KPI object. Partially filled KPIs are kept for rendering
	// but excluded from metric extraction.
	KPIComplete bool `json:"kpi_complete,omitempty"`
}

// Answers maps field ids to typed values. A missing id means the question was
// not answered; accessors return zero values rather than errors.
type Answers map[string]AnswerValue

func (a Answers) Text(id string) string {
	v, ok := a[id]
	if !ok || v.Kind != template.FieldText {
		return ""
	}
	return v.Text
}

func (a Answers) Items(id string) []string {
	v, ok := a[id]
	if !ok {
		return nil
	}
	if v.Kind == template.FieldChips || v.Kind == template.FieldList {
		return v.Items
	}
	return nil
}

func (a Answers) Assets(id string) []Asset {
	v, ok := a[id]
	if !ok || v.Kind != template.FieldAssets {
		return nil
	}
	return v.Assets
}

func (a Answers) KPI(id string) *KPI {
	v, ok := a[id]
	if !ok || v.Kind != template.FieldKPI {
		return nil
	}
	return v.KPI
}

func (a Answers) Has(id string) bool {
	_, ok := a[id]
	return ok
}

// NormalizeAnswers validates a raw answer map against the template's declared
// field types, once, at the boundary where UI input is accepted. Values that
// do not decode as their declared type are dropped rather than rejected; the
// prompt assembler renders placeholders for anything missing.
func NormalizeAnswers(tpl template.Template, raw map[string]json.RawMessage) Answers {
	out := Answers{}
	for _, section := range tpl.Sections {
		for _, field := range section.Fields {
			payload, ok := raw[field.ID]
			if !ok || len(payload) == 0 || string(payload) == "null" {
				continue
			}
			if v, ok := decodeValue(field.Type, payload); ok {
				out[field.ID] = v
			}
		}
	}
	return out
}

// FilterRaw validates a raw answer map the same way NormalizeAnswers does but
// keeps the accepted values in their original wire encoding. This is what gets
// persisted, so stored answers always re-parse cleanly.
func FilterRaw(tpl template.Template, raw map[string]json.RawMessage) map[string]json.RawMessage {
	out := map[string]json.RawMessage{}
	for _, section := range tpl.Sections {
		for _, field := range section.Fields {
			payload, ok := raw[field.ID]
			if !ok || len(payload) == 0 || string(payload) == "null" {
				continue
			}
			if _, ok := decodeValue(field.Type, payload); ok {
				out[field.ID] = payload
			}
		}
	}
	return out
}

// ParseAnswers decodes a serialized answers blob (as persisted on a case
// study record) and normalizes it. Invalid JSON yields an empty answer set.
func ParseAnswers(tpl template.Template, blob []byte) Answers {
	if len(blob) == 0 {
		return Answers{}
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(blob, &raw); err != nil {
		return Answers{}
	}
	return NormalizeAnswers(tpl, raw)
}

func decodeValue(kind template.FieldType, payload json.RawMessage) (AnswerValue, bool) {
	switch kind {
	case template.FieldText:
		var s string
		if err := json.Unmarshal(payload, &s); err != nil {
			return AnswerValue{}, false
		}
		return AnswerValue{Kind: kind, Text: s}, true
	case template.FieldChips, template.FieldList:
		var items []string
		if err := json.Unmarshal(payload, &items); err != nil {
			return AnswerValue{}, false
		}
		return AnswerValue{Kind: kind, Items: items}, true
	case template.FieldAssets:
		var assets []Asset
		if err := json.Unmarshal(payload, &assets); err != nil {
			return AnswerValue{}, false
		}
		return AnswerValue{Kind: kind, Assets: assets}, true
	case template.FieldKPI:
		var probe struct {
			Name   *string  `json:"name"`
			Before *float64 `json:"before"`
			After  *float64 `json:"after"`
			Unit   *string  `json:"unit"`
		}
		if err := json.Unmarshal(payload, &probe); err != nil {
			return AnswerValue{}, false
		}
		kpi := KPI{}
		if probe.Name != nil {
			kpi.Name = *probe.Name
		}
		if probe.Before != nil {
			kpi.Before = *probe.Before
		}
		if probe.After != nil {
			kpi.After = *probe.After
		}
		if probe.Unit != nil {
			kpi.Unit = *probe.Unit
		}
		complete := probe.Name != nil && probe.Before != nil && probe.After != nil
		return AnswerValue{Kind: kind, KPI: &kpi, KPIComplete: complete}, true
	default:
		return AnswerValue{}, false
	}
}
