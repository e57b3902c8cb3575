package cmd

import (
	"github.com/spf13/cobra"

	"github.com/focusmate/focusmate-cli/internal/adapters/tui"
)

var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Open the interactive focus screen",
	Long: `Opens the fullscreen focus timer. While it is open, new messages from
friends pop up as dialogs and rest reminders appear in-app.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := setupSignalHandler()

		userID, err := app.storage.UserID(ctx)
		if err != nil {
			return err
		}
		return tui.Run(ctx, app.services, app.scheduler, userID)
	},
}
