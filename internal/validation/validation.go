package validation

import (
	"fmt"
	"regexp"
	"strings"

	"habbit/internal/constants"
	"habbit/internal/models"
)

var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateTemplateName checks that a template name is non-empty after
// trimming and within the length limit. Returns the trimmed name.
func ValidateTemplateName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("template name cannot be empty")
	}
	if len(trimmed) > constants.MaxTemplateNameLen {
		return "", fmt.Errorf("template name exceeds %d characters", constants.MaxTemplateNameLen)
	}
	return trimmed, nil
}

// ValidateColor checks that a color is a #RGB or #RRGGBB hex string.
func ValidateColor(color string) error {
	if !hexColorRe.MatchString(color) {
		return fmt.Errorf("invalid color %q: expected hex format like #1a2b3c", color)
	}
	return nil
}

// ValidateTemplate checks a template before it is written to storage.
func ValidateTemplate(tmpl models.HabitTemplate) error {
	if tmpl.ID == "" {
		return fmt.Errorf("template id cannot be empty")
	}
	if tmpl.OwnerID == "" {
		return fmt.Errorf("template owner cannot be empty")
	}
	if _, err := ValidateTemplateName(tmpl.Name); err != nil {
		return err
	}
	if tmpl.Color != nil {
		if err := ValidateColor(*tmpl.Color); err != nil {
			return err
		}
	}
	return nil
}
