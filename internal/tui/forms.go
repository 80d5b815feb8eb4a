package tui

import (
	"github.com/charmbracelet/huh"

	"habbit/internal/validation"
)

// NewTemplateForm creates the add/edit form for habit templates.
func NewTemplateForm(fm *TemplateFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					_, err := validation.ValidateTemplateName(s)
					return err
				}),
			huh.NewInput().
				Title("Description").
				Value(&fm.Description),
			huh.NewInput().
				Title("Icon").
				Description("Optional emoji shown next to the name").
				Value(&fm.Icon),
			huh.NewInput().
				Title("Color").
				Description("Optional hex color, e.g. #7df9aa").
				Value(&fm.Color).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					return validation.ValidateColor(s)
				}),
			huh.NewConfirm().
				Title("Active").
				Value(&fm.Active),
		),
	).WithTheme(huh.ThemeDracula())
}
