package template

// FieldType enumerates the questionnaire input kinds a template can declare.
type FieldType string

const (
	FieldText   FieldType = "text"
	FieldChips  FieldType = "chips"
	FieldList   FieldType = "list"
	FieldAssets FieldType = "assets"
	FieldKPI    FieldType = "kpi"
)

type Field struct {
	ID          string    `json:"id"`
	Type        FieldType `json:"type"`
	Required    bool      `json:"req"`
	Max         int       `json:"max,omitempty"`
	MaxItems    int       `json:"maxItems,omitempty"`
	Options     []string  `json:"options,omitempty"`
	Accept      []string  `json:"accept,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
}

// Section groups fields; section order is display and completion-tracking order.
type Section struct {
	ID          string  `json:"id"`
	Title       string  `json:"title,omitempty"`
	Description string  `json:"description,omitempty"`
	Fields      []Field `json:"fields"`
}

type Template struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Sections    []Section `json:"sections"`
}

// Registry is an immutable catalog of questionnaire templates, constructed
// once at startup and passed by reference to everything that needs it.
type Registry struct {
	templates []Template
	byID      map[string]Template
}

func NewRegistry(templates ...Template) *Registry {
	byID := make(map[string]Template, len(templates))
	for _, t := range templates {
		byID[t.ID] = t
	}
	return &Registry{templates: templates, byID: byID}
}

// Default returns the built-in catalog: ui, ux and social.
func Default() *Registry {
	return NewRegistry(uiTemplate, uxTemplate, socialTemplate)
}

func (r *Registry) Get(id string) (Template, bool) {
	t, ok := r.byID[id]
	return t, ok
}

func (r *Registry) All() []Template {
	out := make([]Template, len(r.templates))
	copy(out, r.templates)
	return out
}

var uiTemplate = Template{
	ID:          "ui",
	Name:        "UI Case Study",
	Description: "Show redesign impact with before/after clarity",
	Sections: []Section{
		{
			ID:    "header",
			Title: "Project Overview",
			Fields: []Field{
				{ID: "title", Type: FieldText, Required: true, Max: 80, Placeholder: "e.g., Redesigning Checkout Flow"},
				{ID: "goal", Type: FieldText, Required: true, Placeholder: "e.g., Increase checkout conversion"},
				{ID: "product", Type: FieldText, Required: true, Placeholder: "e.g., E-commerce platform"},
				{ID: "audience", Type: FieldText, Required: true, Placeholder: "e.g., First-time mobile shoppers"},
				{ID: "timeframe", Type: FieldText, Required: true, Placeholder: "e.g., May–July 2025"},
			},
		},
		{
			ID:    "problem",
			Title: "Problem & Context",
			Fields: []Field{
				{
					ID:          "issues",
					Type:        FieldChips,
					Required:    true,
					MaxItems:    2,
					Options:     []string{"confusing hierarchy", "low contrast", "unclear CTAs", "poor mobile UX", "cluttered layout", "slow loading", "accessibility issues"},
					Placeholder: "Top 1-2 UX/UI issues you tackled",
				},
				{ID: "why_matters", Type: FieldText, Required: true, Placeholder: "Why it mattered (business/user impact in one sentence)"},
			},
		},
		{
			ID:    "solution",
			Title: "Solution & Evidence",
			Fields: []Field{
				{ID: "moves", Type: FieldList, Required: true, MaxItems: 3, Placeholder: "Key design moves (3 bullets max)"},
				{ID: "before", Type: FieldAssets, Required: true, Accept: []string{"image"}, Placeholder: "Before screenshots"},
				{ID: "after", Type: FieldAssets, Required: true, Accept: []string{"image"}, Placeholder: "After screenshots"},
			},
		},
		{
			ID:    "results",
			Title: "Results",
			Fields: []Field{
				{ID: "primary_kpi", Type: FieldKPI, Required: true},
				{ID: "secondary_signal", Type: FieldText, Required: false, Placeholder: "Secondary signal (optional)"},
			},
		},
	},
}

var uxTemplate = Template{
	ID:          "ux",
	Name:        "UX Case Study",
	Description: "Demonstrate reasoning, research → iteration → outcome",
	Sections: []Section{
		{
			ID:    "header",
			Title: "Project Overview",
			Fields: []Field{
				{ID: "title", Type: FieldText, Required: true, Max: 80, Placeholder: "e.g., Streamlining Auto-Pay Setup"},
				{ID: "goal", Type: FieldText, Required: true, Placeholder: "e.g., Reduce setup abandonment by 40%"},
				{ID: "product", Type: FieldText, Required: true, Placeholder: "e.g., Banking mobile app"},
				{ID: "audience", Type: FieldText, Required: true, Placeholder: "e.g., New customers setting up recurring payments"},
				{ID: "timeframe", Type: FieldText, Required: true, Placeholder: "e.g., March–August 2025"},
			},
		},
		{
			ID:    "problem",
			Title: "Problem Framing",
			Fields: []Field{
				{ID: "user_problem", Type: FieldText, Required: true, Placeholder: "User problem (1 sentence, user's words if possible)"},
				{ID: "top_task", Type: FieldText, Required: true, Placeholder: "Top task you optimized"},
			},
		},
		{
			ID:    "research",
			Title: "Research & Insight",
			Fields: []Field{
				{
					ID:          "sources",
					Type:        FieldChips,
					Required:    true,
					Options:     []string{"interviews", "analytics", "usability tests", "support logs", "heuristic review"},
					Placeholder: "Evidence source(s)",
				},
				{ID: "insights", Type: FieldList, Required: true, MaxItems: 2, Placeholder: "1-2 insights that changed the design"},
			},
		},
		{
			ID:    "solution",
			Title: "Solution & Iteration",
			Fields: []Field{
				{ID: "changes", Type: FieldList, Required: true, MaxItems: 3, Placeholder: "Key UX changes (flows/patterns) – 3 bullets max"},
				{ID: "artifacts", Type: FieldAssets, Required: false, Accept: []string{"image", "figma", "pdf"}, Placeholder: "Flows, wireframes, prototype (optional)"},
			},
		},
		{
			ID:    "results",
			Title: "Results",
			Fields: []Field{
				{ID: "primary_kpi", Type: FieldKPI, Required: true},
				{ID: "qual_outcome", Type: FieldText, Required: false, Placeholder: "Qualitative outcome (optional)"},
			},
		},
	},
}

var socialTemplate = Template{
	ID:          "social",
	Name:        "Social Case Study",
	Description: "Prove content/design moved the needle",
	Sections: []Section{
		{
			ID:    "header",
			Title: "Campaign Overview",
			Fields: []Field{
				{ID: "title", Type: FieldText, Required: true, Max: 80, Placeholder: "e.g., #SaveWithUs Instagram Campaign"},
				{ID: "goal", Type: FieldText, Required: true, Placeholder: "e.g., Grow saves by 30%"},
				{ID: "product", Type: FieldText, Required: true, Placeholder: "e.g., Fintech savings app"},
				{ID: "audience", Type: FieldText, Required: true, Placeholder: "e.g., Gen Z savers aged 18-25"},
				{ID: "timeframe", Type: FieldText, Required: true, Placeholder: "e.g., Q2 2025"},
			},
		},
		{
			ID:    "campaign",
			Title: "Campaign Basics",
			Fields: []Field{
				{
					ID:          "channels",
					Type:        FieldChips,
					Required:    true,
					Options:     []string{"instagram", "x", "linkedin", "youtube", "facebook", "tiktok", "other"},
					Placeholder: "Channel(s)",
				},
				{ID: "objective", Type: FieldText, Required: true, Placeholder: "Campaign objective (one line)"},
			},
		},
		{
			ID:    "creative",
			Title: "Creative & Distribution",
			Fields: []Field{
				{ID: "pillars", Type: FieldList, Required: true, MaxItems: 3, Placeholder: "Content pillars (up to 3)"},
				{ID: "volume", Type: FieldText, Required: true, Placeholder: "e.g., 12 posts over 4 weeks"},
				{ID: "creatives", Type: FieldAssets, Required: true, Accept: []string{"image", "video"}, Placeholder: "Representative creatives"},
			},
		},
		{
			ID:    "results",
			Title: "Results",
			Fields: []Field{
				{ID: "primary_kpi", Type: FieldKPI, Required: true},
				{ID: "secondary_signal", Type: FieldText, Required: false, Placeholder: "Secondary growth signal (optional)"},
			},
		},
	},
}
