package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Roelanb/wacheck/internal/console"
)

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <number>",
		Short: "Check a single phone number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view := console.New(os.Stdout)
			ctl := newController(view)
			if err := requireSession(cmd.Context(), ctl); err != nil {
				return err
			}
			ctl.CheckSingleNumber(cmd.Context(), args[0])
			if total, errs := view.Rows(); total == 0 || errs > 0 {
				return fmt.Errorf("check of %s failed", args[0])
			}
			return nil
		},
	}
}
