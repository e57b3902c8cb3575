package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/focusmate/focusmate-cli/internal/domain"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current focus state and record",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		state := app.services.Sessions.FocusState()

		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(map[string]any{
				"state":           string(state.State),
				"elapsed_seconds": state.ElapsedSeconds,
				"resting":         state.Resting,
			})
		}

		switch {
		case state.State == domain.StateFocusing:
			fmt.Printf("🐱 專注中 %02d:%02d\n", state.ElapsedSeconds/60, state.ElapsedSeconds%60)
		case state.Resting:
			fmt.Println("😴 休息中")
		default:
			fmt.Println("沒有進行中的專注")
		}

		record, err := app.services.Stats.Record(ctx)
		if err != nil {
			app.logger.Debug("failed to fetch record", "error", err)
			return nil
		}
		fmt.Printf("徽章 %d 枚", record.BadgeCount)
		if record.Title != "" {
			fmt.Printf(" · %s", record.Title)
		}
		fmt.Println()
		return nil
	},
}
