package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"habbit/internal/models"
	"habbit/internal/storage"
)

func (s *Store) CreateTemplate(ctx context.Context, tmpl models.HabitTemplate) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO habit_templates (
			id, owner_id, name, description, icon, color,
			is_active, activated_at, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tmpl.ID, tmpl.OwnerID, tmpl.Name,
		nullString(tmpl.Description), nullString(tmpl.Icon), nullString(tmpl.Color),
		tmpl.IsActive, nullTime(tmpl.ActivatedAt),
		tmpl.CreatedAt.Format(time.RFC3339), tmpl.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}
	return nil
}

func (s *Store) GetTemplate(ctx context.Context, id, ownerID string) (models.HabitTemplate, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, owner_id, name, description, icon, color,
		       is_active, activated_at, created_at, updated_at
		FROM habit_templates WHERE id = ? AND owner_id = ?`, id, ownerID)

	tmpl, err := scanTemplate(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.HabitTemplate{}, storage.ErrNotFound
		}
		return models.HabitTemplate{}, err
	}
	return tmpl, nil
}

func (s *Store) GetTemplates(ctx context.Context, ownerID string) ([]models.HabitTemplate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner_id, name, description, icon, color,
		       is_active, activated_at, created_at, updated_at
		FROM habit_templates WHERE owner_id = ?
		ORDER BY is_active DESC, name ASC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []models.HabitTemplate
	for rows.Next() {
		tmpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, tmpl)
	}

	return templates, rows.Err()
}

func (s *Store) GetActiveTemplates(ctx context.Context, ownerID, day string) ([]models.HabitTemplate, error) {
	cutoff, err := activationCutoff(day)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner_id, name, description, icon, color,
		       is_active, activated_at, created_at, updated_at
		FROM habit_templates
		WHERE owner_id = ? AND is_active = 1
		  AND activated_at IS NOT NULL AND activated_at < ?
		ORDER BY name ASC`, ownerID, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []models.HabitTemplate
	for rows.Next() {
		tmpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, tmpl)
	}

	return templates, rows.Err()
}

// activationCutoff turns a day into the RFC3339 instant that starts the
// next day. Stored activation timestamps are UTC RFC3339 strings, so
// string comparison against the cutoff is chronological.
func activationCutoff(day string) (string, error) {
	d, err := time.Parse("2006-01-02", day)
	if err != nil {
		return "", fmt.Errorf("invalid day %q: %w", day, err)
	}
	return d.AddDate(0, 0, 1).Format(time.RFC3339), nil
}

func (s *Store) UpdateTemplate(ctx context.Context, tmpl models.HabitTemplate) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE habit_templates SET
			name = ?, description = ?, icon = ?, color = ?,
			is_active = ?, activated_at = ?, updated_at = ?
		WHERE id = ? AND owner_id = ?`,
		tmpl.Name, nullString(tmpl.Description), nullString(tmpl.Icon), nullString(tmpl.Color),
		tmpl.IsActive, nullTime(tmpl.ActivatedAt), tmpl.UpdatedAt.Format(time.RFC3339),
		tmpl.ID, tmpl.OwnerID)
	if err != nil {
		return fmt.Errorf("failed to update template: %w", err)
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

func (s *Store) DeleteTemplate(ctx context.Context, id, ownerID string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM habit_templates WHERE id = ? AND owner_id = ?", id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTemplate(row rowScanner) (models.HabitTemplate, error) {
	var t models.HabitTemplate
	var description, icon, color, activatedAt sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(&t.ID, &t.OwnerID, &t.Name, &description, &icon, &color,
		&t.IsActive, &activatedAt, &createdAt, &updatedAt)
	if err != nil {
		return models.HabitTemplate{}, err
	}

	if description.Valid {
		t.Description = &description.String
	}
	if icon.Valid {
		t.Icon = &icon.String
	}
	if color.Valid {
		t.Color = &color.String
	}
	if activatedAt.Valid {
		at, err := time.Parse(time.RFC3339, activatedAt.String)
		if err != nil {
			return models.HabitTemplate{}, fmt.Errorf("failed to parse activated_at for template %s: %w", t.ID, err)
		}
		t.ActivatedAt = &at
	}

	t.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.HabitTemplate{}, fmt.Errorf("failed to parse created_at for template %s: %w", t.ID, err)
	}
	t.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return models.HabitTemplate{}, fmt.Errorf("failed to parse updated_at for template %s: %w", t.ID, err)
	}

	return t, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(time.RFC3339), Valid: true}
}
