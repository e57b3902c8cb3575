// Package tui implements the interactive focus screen with Bubbletea.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/focusmate/focusmate-cli/internal/domain"
	"github.com/focusmate/focusmate-cli/internal/services"
)

// appTitle is the dialog title for notifications the app raises itself.
const appTitle = "FocusMate 提醒 🐱"

// tickMsg drives the once-a-second clock refresh.
type tickMsg time.Time

// notificationMsg is injected by the scheduler's delivered callback.
type notificationMsg struct {
	content domain.NotificationContent
	payload domain.NotificationPayload
}

// errMsg surfaces an asynchronous failure on screen.
type errMsg struct{ err error }

// stoppedMsg carries the outcome of a finished session.
type stoppedMsg struct {
	outcome *domain.SessionOutcome
}

// dialog is the single in-app notification dialog. A newer notification
// replaces it outright; there is no queue.
type dialog struct {
	title   string
	body    string
	payload domain.NotificationPayload
}

// dialogTitle picks the dialog title from the payload, not the pushed
// content: a sender name means a friend message, anything else is the app
// talking.
func dialogTitle(payload domain.NotificationPayload) string {
	if payload.FromFriend() {
		return fmt.Sprintf("來自 %s 的訊息 🔔", payload.SenderName)
	}
	return appTitle
}

// Model is the focus screen state.
type Model struct {
	app     *services.App
	ctx     context.Context
	spinner spinner.Model
	width   int
	height  int

	dialog  *dialog
	outcome *domain.SessionOutcome
	lastErr error
}

// NewModel creates the focus screen model.
func NewModel(ctx context.Context, app *services.App) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return Model{app: app, ctx: ctx, spinner: sp}
}

// Init starts the clock.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.spinner.Tick)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		return m, tickCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case notificationMsg:
		// Last write wins. An unread dialog is simply replaced.
		m.dialog = &dialog{
			title:   dialogTitle(msg.payload),
			body:    msg.content.Body,
			payload: msg.payload,
		}
		return m, nil

	case stoppedMsg:
		m.outcome = msg.outcome
		m.lastErr = nil
		return m, nil

	case errMsg:
		m.lastErr = msg.err
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The dialog captures enter/esc; dismissing it counts as opening the
	// notification.
	if m.dialog != nil {
		switch msg.String() {
		case "enter", "esc":
			payload := m.dialog.payload
			m.dialog = nil
			return m, func() tea.Msg {
				m.app.Poller.HandleOpened(m.ctx, payload)
				return nil
			}
		case "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "s":
		m.outcome = nil
		return m, m.startCmd()
	case "b":
		return m, m.stopCmd(domain.StopPause)
	case "e":
		return m, m.stopCmd(domain.StopEnd)
	}
	return m, nil
}

func (m Model) startCmd() tea.Cmd {
	return func() tea.Msg {
		if _, err := m.app.Sessions.Start(m.ctx); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

func (m Model) stopCmd(mode domain.StopMode) tea.Cmd {
	return func() tea.Msg {
		outcome, err := m.app.Sessions.Stop(m.ctx, services.StopRequest{Mode: mode})
		if err != nil {
			return errMsg{err}
		}
		return stoppedMsg{outcome}
	}
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	focusColor   = lipgloss.Color("42")
	idleColor    = lipgloss.Color("243")
	restColor    = lipgloss.Color("214")
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	dialogStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("205")).
			Padding(1, 2)
)

// View renders the focus screen.
func (m Model) View() string {
	state := m.app.Sessions.FocusState()

	var b []string
	b = append(b, titleStyle.Render("FocusMate"), "")

	switch {
	case state.State == domain.StateFocusing:
		b = append(b, renderClock(formatClock(state.ElapsedSeconds), focusColor, m.width))
		b = append(b, "", m.spinner.View()+" 專注中…")
	case state.Resting:
		b = append(b, renderClock("00:00", restColor, m.width))
		b = append(b, "", "休息中，記得回來！")
	default:
		b = append(b, renderClock("00:00", idleColor, m.width))
		b = append(b, "", "準備好了嗎？")
	}

	if m.outcome != nil {
		line := fmt.Sprintf("本次專注 %d 分鐘", m.outcome.Minutes)
		if m.outcome.BadgeEarned {
			line += "，獲得一枚徽章 🏅"
		}
		b = append(b, "", summaryStyle.Render(line))
	}
	if m.lastErr != nil {
		b = append(b, "", errStyle.Render("錯誤: "+m.lastErr.Error()))
	}

	b = append(b, "", helpStyle.Render("s 開始 · b 休息 · e 結束 · q 離開"))
	screen := lipgloss.JoinVertical(lipgloss.Left, b...)

	if m.dialog != nil {
		box := dialogStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(m.dialog.title),
			"",
			m.dialog.body,
			"",
			helpStyle.Render("enter 關閉"),
		))
		if m.width > 0 && m.height > 0 {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
		}
		return box
	}
	return screen
}

// formatClock renders elapsed seconds as mm:ss, rolling into h:mm:ss past an
// hour.
func formatClock(seconds int) string {
	if seconds >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
