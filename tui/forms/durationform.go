package forms

import (
	"github.com/charmbracelet/huh"
	"github.com/user/countdown-timer-cli/pkg/timeutil"
)

// DurationFormResult holds the three fields of a completed duration form.
type DurationFormResult struct {
	Hours   string
	Minutes string
	Seconds string
}

// NewDurationFormResult seeds a result with the text forms of d.
func NewDurationFormResult(d timeutil.Duration) *DurationFormResult {
	h, m, s := d.Strings()
	return &DurationFormResult{Hours: h, Minutes: m, Seconds: s}
}

// Duration parses the three fields. Minutes and seconds above 59 are kept as
// typed; they add to the total.
func (r *DurationFormResult) Duration() (timeutil.Duration, error) {
	var d timeutil.Duration
	var err error
	if d.Hours, err = timeutil.ParseField(r.Hours); err != nil {
		return d, &timeutil.FieldError{Field: "hours", Text: r.Hours, Err: err}
	}
	if d.Minutes, err = timeutil.ParseField(r.Minutes); err != nil {
		return d, &timeutil.FieldError{Field: "minutes", Text: r.Minutes, Err: err}
	}
	if d.Seconds, err = timeutil.ParseField(r.Seconds); err != nil {
		return d, &timeutil.FieldError{Field: "seconds", Text: r.Seconds, Err: err}
	}
	return d, nil
}

// NewDurationForm creates a form asking for the countdown duration.
// The result pointer is bound to the form fields and will be populated on submit.
func NewDurationForm(result *DurationFormResult) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title("Countdown duration"),

			huh.NewInput().
				Title("Hours").
				Value(&result.Hours).
				Validate(validateField),

			huh.NewInput().
				Title("Minutes").
				Value(&result.Minutes).
				Validate(validateField),

			huh.NewInput().
				Title("Seconds").
				Value(&result.Seconds).
				Validate(validateField),
		),
	).WithTheme(Theme())
}

func validateField(s string) error {
	_, err := timeutil.ParseField(s)
	return err
}
