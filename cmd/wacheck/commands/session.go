package commands

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/Roelanb/wacheck/internal/console"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether the backend session is ready",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl := newController(console.New(os.Stdout))
			ctl.CheckSessionStatus(cmd.Context())
			if !ctl.SessionInitialized() {
				return errors.New("session not ready")
			}
			return nil
		},
	}
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the WhatsApp session on the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl := newController(console.New(os.Stdout))
			ctl.InitializeSession(cmd.Context())
			if !ctl.SessionInitialized() {
				return errors.New("session initialization failed")
			}
			return nil
		},
	}
}
