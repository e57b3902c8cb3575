// Package cmd provides the CLI commands for the FocusMate application.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/focusmate/focusmate-cli/internal/adapters/api"
	"github.com/focusmate/focusmate-cli/internal/adapters/notification"
	"github.com/focusmate/focusmate-cli/internal/adapters/storage"
	"github.com/focusmate/focusmate-cli/internal/config"
	"github.com/focusmate/focusmate-cli/internal/ports"
	"github.com/focusmate/focusmate-cli/internal/services"
)

var (
	// Version info (set at build time via ldflags)
	Version = "dev"

	// Global flags
	apiBaseURL string
	dbPath     string
	jsonOutput bool
	verbose    bool
)

// appDeps groups everything initialized at startup.
type appDeps struct {
	config    *config.Config
	logger    *slog.Logger
	storage   ports.Storage
	backend   ports.Backend
	scheduler ports.NotificationScheduler
	services  *services.App
}

// app holds the initialized dependencies, populated by initializeServices.
var app appDeps

// systemClock is the real clock handed to the session machine.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "focusmate",
	Short: "FocusMate - a study session tracker with friends",
	Long: `FocusMate is a command-line study companion. Track focus sessions,
keep a deadline list, see what your friends are up to, and nudge them
back to work when they rest too long.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiBaseURL, "api", "", "Backend base URL (default from config)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the database file (default: ~/.focusmate/focusmate.db)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("FocusMate CLI\nVersion: {{.Version}}\n")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(focusCmd)
	rootCmd.AddCommand(deadlineCmd)
	rootCmd.AddCommand(friendsCmd)
	rootCmd.AddCommand(nudgeCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(mcpCmd)
}

// initializeServices sets up all the required services and adapters.
func initializeServices() error {
	var err error
	app.config, err = config.Load()
	if err != nil {
		// If config loading fails, use defaults
		app.config = config.DefaultConfig()
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	app.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if apiBaseURL == "" {
		apiBaseURL = app.config.API.BaseURL
	}
	if dbPath == "" {
		dbPath = config.GetDBPath(app.config)
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	app.storage, err = storage.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	app.backend = api.New(apiBaseURL, time.Duration(app.config.API.Timeout), app.logger)
	app.scheduler = notification.New(&app.config.Notifications, app.logger)

	sessions := services.NewSessionManager(
		app.backend, app.storage, app.scheduler, systemClock{}, app.logger,
		time.Duration(app.config.Reminder.Delay))
	app.services = &services.App{
		Sessions:  sessions,
		Deadlines: services.NewDeadlineService(app.backend, app.storage),
		Friends:   services.NewFriendService(app.backend, app.storage),
		Stats:     services.NewStatsService(app.backend, app.storage),
		Poller: services.NewPoller(app.backend, app.scheduler, app.logger,
			time.Duration(app.config.Poll.Interval)),
	}

	return sessions.Restore(context.Background())
}

// cleanupServices closes all resources.
func cleanupServices() error {
	if app.storage != nil {
		return app.storage.Close()
	}
	return nil
}

// setupSignalHandler returns a context that cancels on interrupt signals.
func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx
}
