package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	studyingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	relaxingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
)

var friendsCmd = &cobra.Command{
	Use:   "friends",
	Short: "List your friends and what they are doing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		friends, err := app.services.Friends.List(context.Background())
		if err != nil {
			return err
		}

		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(friends)
		}

		if len(friends) == 0 {
			fmt.Println("No friends yet.")
			return nil
		}
		for _, f := range friends {
			status := f.DisplayStatus()
			if f.Relaxing() {
				status = relaxingStyle.Render(status)
			} else {
				status = studyingStyle.Render(status)
			}
			fmt.Printf("%3d  %-20s %s\n", f.ID, f.Name, status)
		}
		return nil
	},
}

var nudgeMessage string

var nudgeCmd = &cobra.Command{
	Use:   "nudge <friend_id>",
	Short: "Send a come-back-to-work message to a friend",
	Long: `Sends a nudge to a friend. Nudging requires at least one badge; earn
badges by finishing focus sessions.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		friendID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("friend id must be a number, got %q", args[0])
		}

		if err := app.services.Friends.Nudge(context.Background(), friendID, nudgeMessage); err != nil {
			return err
		}
		fmt.Println("Nudge sent 🔔")
		return nil
	},
}

func init() {
	nudgeCmd.Flags().StringVarP(&nudgeMessage, "message", "m", "", "Custom message to send")
}
