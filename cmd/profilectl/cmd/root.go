package cmd

import (
	"errors"
	"os"
	"time"

	"github.com/nfrund/myprofile/internal/backend"
	"github.com/nfrund/myprofile/internal/config"
	"github.com/nfrund/myprofile/internal/logging"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	backendURL string
	token      string
	timeout    time.Duration
	logLevel   string

	// fsys is where avatar files are read from.
	fsys afero.Fs = afero.NewOsFs()
)

var rootCmd = &cobra.Command{
	Use:   "profilectl",
	Short: "View and edit your profile from the terminal",
	Long: `profilectl talks to the same user API as the profile page.

Available commands:
  show       Print the current profile
  edit       Change profile fields and upload a new avatar

Settings default to BACKEND_URL, BACKEND_TIMEOUT and PROFILE_TOKEN from the
environment or a .env file.

Use "profilectl [command] --help" for more information about a specific command.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Setup(cmd.ErrOrStderr(), os.Getenv("LOG_FORMAT"), logLevel)
		return nil
	},
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cfg := config.New()

	rootCmd.PersistentFlags().StringVar(&backendURL, "backend", cfg.GetBackendURL(), "base URL of the user API")
	rootCmd.PersistentFlags().StringVar(&token, "token", cfg.GetProfileToken(), "auth token sent with every request")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", cfg.GetBackendTimeout(), "request timeout")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
}

func newClient() (*backend.Client, error) {
	if backendURL == "" {
		return nil, errors.New("no backend URL: set --backend or BACKEND_URL")
	}
	if token == "" {
		return nil, errors.New("no token: set --token or PROFILE_TOKEN")
	}
	return backend.New(backendURL, timeout)
}
