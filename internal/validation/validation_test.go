package validation

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"habbit/internal/models"
)

func TestValidateTemplateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "Meditate", "Meditate", false},
		{"trims whitespace", "  Read 20 pages  ", "Read 20 pages", false},
		{"empty", "", "", true},
		{"whitespace only", "   ", "", true},
		{"too long", strings.Repeat("x", 81), "", true},
		{"at limit", strings.Repeat("x", 80), strings.Repeat("x", 80), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateTemplateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateTemplateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ValidateTemplateName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateColor(t *testing.T) {
	valid := []string{"#fff", "#FFF", "#1a2b3c", "#ABCDEF"}
	for _, c := range valid {
		if err := ValidateColor(c); err != nil {
			t.Errorf("ValidateColor(%q) unexpected error: %v", c, err)
		}
	}

	invalid := []string{"", "fff", "#ff", "#fffff", "#gggggg", "red"}
	for _, c := range invalid {
		if err := ValidateColor(c); err == nil {
			t.Errorf("ValidateColor(%q) expected error", c)
		}
	}
}

func TestValidateTemplate(t *testing.T) {
	base := func() models.HabitTemplate {
		return models.HabitTemplate{
			ID:      uuid.NewString(),
			OwnerID: "owner-1",
			Name:    "Stretch",
		}
	}

	if err := ValidateTemplate(base()); err != nil {
		t.Errorf("valid template rejected: %v", err)
	}

	tmpl := base()
	tmpl.ID = ""
	if err := ValidateTemplate(tmpl); err == nil {
		t.Error("expected error for missing id")
	}

	tmpl = base()
	tmpl.OwnerID = ""
	if err := ValidateTemplate(tmpl); err == nil {
		t.Error("expected error for missing owner")
	}

	tmpl = base()
	tmpl.Name = " "
	if err := ValidateTemplate(tmpl); err == nil {
		t.Error("expected error for blank name")
	}

	tmpl = base()
	bad := "blue"
	tmpl.Color = &bad
	if err := ValidateTemplate(tmpl); err == nil {
		t.Error("expected error for invalid color")
	}

	tmpl = base()
	good := "#3fb950"
	tmpl.Color = &good
	if err := ValidateTemplate(tmpl); err != nil {
		t.Errorf("valid color rejected: %v", err)
	}
}
