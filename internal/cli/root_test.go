package cli

import (
	"testing"
	"time"

	"habbit/internal/models"
)

func TestFindTemplate(t *testing.T) {
	templates := []models.HabitTemplate{
		{ID: "1", Name: "Drink water"},
		{ID: "2", Name: "Zumba"},
	}

	tmpl, err := FindTemplate(templates, "drink WATER")
	if err != nil {
		t.Fatalf("FindTemplate returned error: %v", err)
	}
	if tmpl.ID != "1" {
		t.Errorf("expected template 1, got %s", tmpl.ID)
	}

	if _, err := FindTemplate(templates, "missing"); err == nil {
		t.Error("expected error for unknown template name")
	}
}

func TestResolveDay(t *testing.T) {
	day, err := resolveDay("2026-08-26")
	if err != nil {
		t.Fatalf("resolveDay returned error: %v", err)
	}
	want := time.Date(2026, 8, 26, 0, 0, 0, 0, time.Local)
	if !day.Equal(want) {
		t.Errorf("expected %v, got %v", want, day)
	}

	if _, err := resolveDay("26/08/2026"); err == nil {
		t.Error("expected error for malformed date")
	}

	today, err := resolveDay("")
	if err != nil {
		t.Fatalf("resolveDay returned error for empty input: %v", err)
	}
	if today.Hour() != 0 || today.Minute() != 0 {
		t.Errorf("expected start of day, got %v", today)
	}
}

func TestCheckbox(t *testing.T) {
	if got := Checkbox(true); got != "[x]" {
		t.Errorf("expected [x], got %s", got)
	}
	if got := Checkbox(false); got != "[ ]" {
		t.Errorf("expected [ ], got %s", got)
	}
}
