package forms

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/user/countdown-timer-cli/pkg/timeutil"
)

// PresetFormResult holds the data returned by a completed preset form.
type PresetFormResult struct {
	Name     string
	Duration string
}

// TotalSeconds parses the duration text.
func (r *PresetFormResult) TotalSeconds() (int, error) {
	return timeutil.ParseTimeToSeconds(r.Duration)
}

// NewPresetForm creates a form for a named preset duration.
// The result pointer is bound to the form fields and will be populated on submit.
func NewPresetForm(result *PresetFormResult) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title("New preset"),

			huh.NewInput().
				Title("Name").
				Description("Required").
				Value(&result.Name).
				Validate(validatePresetName),

			huh.NewInput().
				Title("Duration").
				Description("HH:MM:SS, MM:SS or seconds").
				Placeholder("0:25:00").
				Value(&result.Duration).
				Validate(func(s string) error {
					_, err := timeutil.ParseTimeToSeconds(s)
					return err
				}),
		),
	).WithTheme(Theme())
}

func validatePresetName(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("name is required")
	}
	if strings.ContainsAny(s, " \t") {
		return errors.New("name must be a single word")
	}
	return nil
}
