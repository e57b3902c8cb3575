package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/focusmate/focusmate-cli/internal/domain"
	"github.com/focusmate/focusmate-cli/internal/ports"
	"github.com/focusmate/focusmate-cli/internal/services"
)

// Run hosts the focus screen. While it is on screen the message poller runs
// and delivered notifications are routed into the program as dialog messages.
func Run(ctx context.Context, app *services.App, scheduler ports.NotificationScheduler, userID int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(NewModel(ctx, app), tea.WithAltScreen())

	scheduler.OnDelivered(func(content domain.NotificationContent, payload domain.NotificationPayload) {
		program.Send(notificationMsg{content: content, payload: payload})
	})
	defer scheduler.OnDelivered(nil)

	go app.Poller.Run(ctx, userID)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
