package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/focusmate/focusmate-cli/internal/domain"
)

var statsLocal bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show a weekly focus chart",
	Long:  `Display a terminal chart of this week's focus minutes, plus your recent locally logged sessions with --local.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if statsLocal {
			return renderLocalStats(ctx)
		}

		days, err := app.services.Stats.Weekly(ctx)
		if err != nil {
			return fmt.Errorf("failed to get weekly focus: %w", err)
		}

		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(days)
		}

		renderWeeklyChart(days)
		return nil
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsLocal, "local", false, "Show recent locally logged sessions instead")
}

// chartWidth returns the bar width to use, clamped to the terminal.
func chartWidth() int {
	width := 30
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 && w-25 < width {
		width = w - 25
	}
	if width < 10 {
		width = 10
	}
	return width
}

func renderWeeklyChart(days []domain.DailyFocus) {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	width := chartWidth()

	fmt.Printf("  %s\n", titleStyle.Render("This week"))
	fmt.Printf("  %s\n", dimStyle.Render(strings.Repeat("─", width+20)))

	if len(days) == 0 {
		fmt.Printf("  %s\n", dimStyle.Render("No focus recorded this week."))
		return
	}

	maxMinutes := 0
	total := 0
	for _, d := range days {
		total += d.Minutes
		if d.Minutes > maxMinutes {
			maxMinutes = d.Minutes
		}
	}

	for _, d := range days {
		barLen := 0
		if maxMinutes > 0 {
			barLen = d.Minutes * width / maxMinutes
		}
		bar := barStyle.Render(strings.Repeat("█", barLen))
		fmt.Printf("  %-10s %s %d min\n", d.Date, bar, d.Minutes)
	}
	fmt.Printf("  %s\n", dimStyle.Render(fmt.Sprintf("Total: %d min", total)))
}

func renderLocalStats(ctx context.Context) error {
	sessions, err := app.services.Stats.RecentLocal(ctx, 10)
	if err != nil {
		return fmt.Errorf("failed to read local log: %w", err)
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(sessions)
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions logged yet.")
		return nil
	}
	for _, s := range sessions {
		badge := ""
		if s.BadgeEarned {
			badge = " 🏅"
		}
		fmt.Printf("%s  %3d min  %s%s\n",
			s.StartedAt.Format("2006-01-02 15:04"), s.DurationSeconds/60, s.Note, badge)
	}
	return nil
}
