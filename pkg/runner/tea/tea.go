package teaui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"tableflip.dev/mytodo/pkg/app"
)

// Run launches the Bubble Tea UI and follows external changes to the store
// until the program exits.
func Run(ctx context.Context, svc *app.Service, opts Options) error {
	lipgloss.SetColorProfile(termenv.EnvColorProfile())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if err := svc.Follow(ctx); err != nil && opts.Log != nil {
		opts.Log.WithError(err).Warn("not following external changes")
	}

	m := New(ctx, svc, opts)
	defer m.Close()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
