package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login <user_id>",
	Short: "Set the user identity used for all backend calls",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil || id <= 0 {
			return fmt.Errorf("user id must be a positive number, got %q", args[0])
		}

		ctx := context.Background()
		if err := app.storage.SetUserID(ctx, id); err != nil {
			return err
		}

		fmt.Printf("Logged in as user %d\n", id)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored user identity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.storage.ClearUserID(context.Background()); err != nil {
			return err
		}
		fmt.Println("Logged out")
		return nil
	},
}
