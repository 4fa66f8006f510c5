package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive UI and blocks until the user quits. A storage
// failure inside the UI is returned after the screen is restored.
func Run(cfg ViewConfig, opts ...tea.ProgramOption) error {
	m, err := NewViewModel(cfg)
	if err != nil {
		return err
	}

	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return err
	}

	if vm, ok := final.(*ViewModel); ok && vm.Err() != nil {
		return vm.Err()
	}
	return nil
}
