package cmd

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/focusmate/focusmate-cli/internal/domain"
	"github.com/focusmate/focusmate-cli/internal/services"
)

var (
	stopRest      bool
	stopNote      string
	stopPhoto     string
	stopPhotoDesc string
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the focus session, as a rest break or a real finish",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := domain.StopEnd
		if stopRest {
			mode = domain.StopPause
		}

		req := services.StopRequest{Mode: mode, Note: stopNote, PhotoDescription: stopPhotoDesc}
		if stopPhoto != "" {
			data, err := os.ReadFile(stopPhoto)
			if err != nil {
				return fmt.Errorf("failed to read photo: %w", err)
			}
			req.PhotoBase64 = base64.StdEncoding.EncodeToString(data)
		}

		outcome, err := app.services.Sessions.Stop(context.Background(), req)
		if err != nil {
			return err
		}

		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(map[string]any{
				"mode":             string(mode),
				"duration_seconds": outcome.DurationSeconds,
				"minutes":          outcome.Minutes,
				"badge_earned":     outcome.BadgeEarned,
				"note":             outcome.Note,
			})
		}

		if mode == domain.StopPause {
			fmt.Printf("休息一下，%d 分鐘後提醒你回來\n", restReminderMinutes())
		} else {
			fmt.Println("專注結束！")
		}
		fmt.Printf("本次專注 %d 分鐘", outcome.Minutes)
		if outcome.BadgeEarned {
			fmt.Print("，獲得一枚徽章 🏅")
		}
		fmt.Println()
		return nil
	},
}

func restReminderMinutes() int {
	minutes := int(time.Duration(app.config.Reminder.Delay).Minutes())
	if minutes < 1 {
		return 1
	}
	return minutes
}

func init() {
	stopCmd.Flags().BoolVar(&stopRest, "rest", false, "Stop for a rest break instead of finishing")
	stopCmd.Flags().StringVar(&stopNote, "note", "", "Note to store with the session")
	stopCmd.Flags().StringVar(&stopPhoto, "photo", "", "Path to a completion photo to upload")
	stopCmd.Flags().StringVar(&stopPhotoDesc, "desc", "", "Description for the completion photo")
}
