package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/Roelanb/wacheck/internal/api"
)

func mockServerCmd() *cobra.Command {
	var (
		listen string
		delay  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "mock-server",
		Short: "Run a stand-in backend with deterministic results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listen == "" {
				listen = cfg.Mock.Listen
			}
			if !cmd.Flags().Changed("delay") {
				delay = cfg.CheckDelay()
			}
			api.Version = Version

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			srv := api.New(logger, listen, delay)
			if err := srv.Start(ctx); err != nil {
				logger.Errorw("failed to start mock backend", "addr", listen, "error", err)
				return err
			}

			<-cmd.Context().Done()
			logger.Infow("signal received, shutting down")

			shCtx, shCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shCancel()
			if err := srv.Shutdown(shCtx); err != nil {
				logger.Errorw("graceful shutdown failed", "error", err)
				return err
			}
			logger.Infow("shutdown complete")
			return nil
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides mock.listen)")
	cmd.Flags().DurationVar(&delay, "delay", time.Second, "time spent per number (overrides mock.check_delay_ms)")
	return cmd
}
