package template

import "testing"

func TestDefaultRegistry(t *testing.T) {
	reg := Default()

	all := reg.All()
	if len(all) != 3 {
		t.Fatalf("expected 3 templates, got %d", len(all))
	}

	for _, id := range []string{"ui", "ux", "social"} {
		tpl, ok := reg.Get(id)
		if !ok {
			t.Fatalf("template %q missing", id)
		}
		if tpl.ID != id {
			t.Errorf("Get(%q).ID = %q", id, tpl.ID)
		}
		if len(tpl.Sections) != 4 {
			t.Errorf("template %q has %d sections, want 4", id, len(tpl.Sections))
		}
	}

	if _, ok := reg.Get("print"); ok {
		t.Error("unknown id should not resolve")
	}
}

func TestFieldIDsUniquePerTemplate(t *testing.T) {
	for _, tpl := range Default().All() {
		seen := map[string]bool{}
		for _, section := range tpl.Sections {
			for _, field := range section.Fields {
				if field.ID == "" {
					t.Errorf("template %q has a field with empty id", tpl.ID)
				}
				if seen[field.ID] {
					t.Errorf("template %q declares field %q twice", tpl.ID, field.ID)
				}
				seen[field.ID] = true
			}
		}
	}
}

func TestEveryTemplateHasPrimaryKPI(t *testing.T) {
	for _, tpl := range Default().All() {
		found := false
		for _, section := range tpl.Sections {
			for _, field := range section.Fields {
				if field.ID == "primary_kpi" && field.Type == FieldKPI {
					found = true
				}
			}
		}
		if !found {
			t.Errorf("template %q lacks a primary_kpi field", tpl.ID)
		}
	}
}

func TestAllReturnsCopy(t *testing.T) {
	reg := Default()
	first := reg.All()
	first[0] = Template{ID: "mutated"}

	if got := reg.All()[0].ID; got == "mutated" {
		t.Error("All() exposed internal slice")
	}
}
