package sqlite

import (
	"context"
	"fmt"
	"time"

	"habbit/internal/models"
	"habbit/internal/storage"
)

func (s *Store) CreateCompletion(ctx context.Context, c models.HabitCompletion) error {
	// Marking an already-completed day again is a no-op.
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO habit_completions (id, owner_id, template_id, completed_date, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(owner_id, template_id, completed_date) DO NOTHING`,
		c.ID, c.OwnerID, c.TemplateID, c.CompletedDate, c.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to create completion: %w", err)
	}
	return nil
}

func (s *Store) DeleteCompletion(ctx context.Context, ownerID, templateID, day string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM habit_completions
		WHERE owner_id = ? AND template_id = ? AND completed_date = ?`,
		ownerID, templateID, day)
	if err != nil {
		return fmt.Errorf("failed to delete completion: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return storage.ErrNotFound
	}

	return nil
}

func (s *Store) GetCompletionsForDay(ctx context.Context, ownerID, day string) ([]models.HabitCompletion, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner_id, template_id, completed_date, created_at
		FROM habit_completions
		WHERE owner_id = ? AND completed_date = ?
		ORDER BY created_at`, ownerID, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCompletions(rows)
}

func (s *Store) GetCompletionsInRange(ctx context.Context, ownerID, startDay, endDay string) ([]models.HabitCompletion, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner_id, template_id, completed_date, created_at
		FROM habit_completions
		WHERE owner_id = ? AND completed_date >= ? AND completed_date <= ?
		ORDER BY completed_date, created_at`, ownerID, startDay, endDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCompletions(rows)
}

func (s *Store) DeleteCompletionsForTemplate(ctx context.Context, ownerID, templateID string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM habit_completions WHERE owner_id = ? AND template_id = ?`,
		ownerID, templateID)
	if err != nil {
		return fmt.Errorf("failed to delete completions for template: %w", err)
	}
	return nil
}

type sqlRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func collectCompletions(rows sqlRows) ([]models.HabitCompletion, error) {
	var completions []models.HabitCompletion
	for rows.Next() {
		var c models.HabitCompletion
		var createdAt string

		if err := rows.Scan(&c.ID, &c.OwnerID, &c.TemplateID, &c.CompletedDate, &createdAt); err != nil {
			return nil, err
		}

		var err error
		c.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for completion %s: %w", c.ID, err)
		}

		completions = append(completions, c)
	}

	return completions, rows.Err()
}
