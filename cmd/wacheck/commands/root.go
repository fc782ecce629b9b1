package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Roelanb/wacheck/internal/backend"
	"github.com/Roelanb/wacheck/internal/config"
	"github.com/Roelanb/wacheck/internal/controller"
	"github.com/Roelanb/wacheck/internal/observability"
)

// tuiLogFile is used when the interactive UI would otherwise log to the terminal.
const tuiLogFile = "wacheck.log"

var (
	cfgPath    string
	backendURL string
	logLevel   string
	logFile    string

	cfg    *config.Config
	logger *zap.SugaredLogger
)

// Version is injected at build time with -ldflags "-X '...commands.Version=1.2.3'".
var Version = "dev"

func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "wacheck",
		Short:         "Check whether phone numbers are registered on WhatsApp",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations["skipSetup"] == "true" {
				return nil
			}
			return setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "wacheck.yaml", "path to YAML config")
	root.PersistentFlags().StringVar(&backendURL, "backend", "", "backend base URL (overrides backend.base_url)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug|info|warn|error")
	root.PersistentFlags().StringVar(&logFile, "log-file", "", "log output: stdout, stderr or a file path")

	root.AddCommand(
		tuiCmd(),
		statusCmd(),
		initCmd(),
		checkCmd(),
		batchCmd(),
		importCmd(),
		mockServerCmd(),
		configCmd(),
	)
	return root
}

func setup(cmd *cobra.Command) error {
	loaded, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if backendURL != "" {
		loaded.Backend.BaseURL = backendURL
	}
	if logLevel != "" {
		loaded.Logging.Level = logLevel
	}
	if logFile != "" {
		loaded.Logging.File = logFile
	}
	if err := config.Validate(loaded); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	cfg = loaded

	out := cfg.Logging.File
	if cmd.Name() == "tui" && (out == "stdout" || out == "stderr") {
		out = tuiLogFile
	}
	logger = observability.NewLogger(observability.EnvLogLevel(cfg.Logging.Level), out)
	logger.Debugw("config loaded", "path", cfgPath, "backend", cfg.Backend.BaseURL)
	return nil
}

func newController(view controller.View) *controller.Controller {
	client := backend.New(cfg.Backend.BaseURL, nil, cfg.BackendTimeout(), logger)
	return controller.New(client, view,
		controller.WithLogger(logger),
		controller.WithPollIntervals(cfg.PollInterval(), cfg.ErrorPollInterval()),
		controller.WithNotificationTTL(cfg.NotificationTTL()),
		controller.WithCallTimeout(cfg.BackendTimeout()),
	)
}

// requireSession refreshes the session label and fails when the backend
// is not ready, since the check actions stay disabled until then.
func requireSession(ctx context.Context, ctl *controller.Controller) error {
	ctl.CheckSessionStatus(ctx)
	if !ctl.SessionInitialized() {
		return fmt.Errorf("session not ready at %s, run `wacheck init` first", cfg.Backend.BaseURL)
	}
	return nil
}
