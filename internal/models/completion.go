package models

import "time"

// HabitCompletion records that a template was completed on a calendar day.
// CompletedDate is a YYYY-MM-DD string with no time component; at most one
// completion exists per (owner, template, day).
type HabitCompletion struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"owner_id"`
	TemplateID    string    `json:"template_id"`
	CompletedDate string    `json:"completed_date"`
	CreatedAt     time.Time `json:"created_at"`
}
