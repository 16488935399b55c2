package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
)

// Start runs the wizard on the terminal until it is completed or aborted.
func Start() (*Wizard, error) {
	wizard := NewWizard()
	if err := tea.NewProgram(wizard).Start(); err != nil {
		return nil, errors.Wrap(err, "Start error running the wizard")
	}
	return wizard, nil
}
