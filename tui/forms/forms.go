// Package forms provides huh-based forms used before and around the timer TUI.
package forms

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// NewConfirmDeleteForm asks whether to delete the named preset.
// The result pointer is bound to the confirm field value.
func NewConfirmDeleteForm(name string, confirmed *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete preset %q?", name)).
				Affirmative("Yes, delete").
				Negative("No, keep it").
				Value(confirmed),
		),
	).WithTheme(Theme())
}
