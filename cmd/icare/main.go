package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"icare/internal/api"
	"icare/internal/config"
	"icare/internal/logging"
	"icare/internal/session"
)

var (
	// Global flags
	verbose    bool
	baseURL    string
	configPath string

	// Shared state, wired in PersistentPreRunE
	cfg    *config.Config
	tokens *session.Store
	client *api.Client
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "icare",
	Short: "iCare - 아이 건강 도우미",
	Long: `iCare is a family health assistant for parents of young children.

It talks to the iCare backend: chat with the care bot (text and voice),
find nearby hospitals and pharmacies, and manage prescriptions scanned
from photos.

Run without arguments to start the interactive chat interface.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			var err error
			if path, err = config.DefaultPath(); err != nil {
				return err
			}
		}
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}
		if baseURL != "" {
			cfg.Server.BaseURL = baseURL
		}

		// Logs always go to a file: the chat TUI owns stdout.
		logFile, err := logging.DefaultFile(cfg.Logging.File)
		if err != nil {
			return err
		}
		logger, err = logging.New(logging.Options{
			Level:   cfg.Logging.Level,
			File:    logFile,
			Verbose: verbose,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		dir, err := session.DefaultDir()
		if err != nil {
			return err
		}
		if tokens, err = session.Open(dir); err != nil {
			return err
		}

		client = api.NewClient(cfg.Server.BaseURL, tokens,
			api.WithChatTimeout(cfg.GetChatTimeout()),
			api.WithLogger(logger),
		)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: launch interactive chat
		return runInteractiveChat()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Backend base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: ~/.icare/config.yaml)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(deleteAccountCmd)
	rootCmd.AddCommand(updateLocationCmd)
	rootCmd.AddCommand(hospitalsCmd)
	rootCmd.AddCommand(pharmaciesCmd)
	rootCmd.AddCommand(prescriptionsCmd)
	rootCmd.AddCommand(drugCmd)
}

// renderError turns API failures into the hints users can act on; anything
// else prints as-is.
func renderError(err error) string {
	switch {
	case api.IsAuthExpired(err):
		return "로그인이 만료되었습니다. 'icare login' 으로 다시 로그인해주세요."
	case api.IsTimeout(err):
		return "서버 응답이 지연되고 있습니다. 잠시 후 다시 시도해주세요."
	}
	return err.Error()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, renderError(err))
		os.Exit(1)
	}
}
