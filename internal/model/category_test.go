package model

import "testing"

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in     string
		want   Category
		wantOK bool
	}{
		{"assignment", CategoryAssignment, true},
		{"lab", CategoryLab, true},
		{"project", CategoryProject, true},
		{"mod", CategoryMod, true},
		{"unfinished", CategoryUnfinished, true},
		{"urgent", "", false},
		{"Lab", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseCategory(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseCategory(%q) = %q, %v, want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestCategoryOrDefault(t *testing.T) {
	if got := CategoryOrDefault("urgent"); got != CategoryProject {
		t.Errorf("CategoryOrDefault(urgent) = %q, want project", got)
	}

	if got := CategoryOrDefault("lab"); got != CategoryLab {
		t.Errorf("CategoryOrDefault(lab) = %q, want lab", got)
	}
}

func TestCategory_Labels(t *testing.T) {
	for _, c := range Categories {
		if !c.Valid() {
			t.Errorf("%q not valid", c)
		}

		if c.Label() == "" || c.Label() == string(c) {
			t.Errorf("%q has no display label", c)
		}
	}

	if got := Category("urgent").Label(); got != "urgent" {
		t.Errorf("unknown Label() = %q, want raw value", got)
	}
}
