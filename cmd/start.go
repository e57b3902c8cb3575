package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a focus session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := app.services.Sessions.Start(context.Background())
		if err != nil {
			return err
		}

		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(map[string]any{
				"id":         session.ID,
				"state":      string(session.State),
				"started_at": session.StartedAt,
			})
		}

		fmt.Println("專注開始！Stay focused 🐱")
		return nil
	},
}
