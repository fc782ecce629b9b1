package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Roelanb/wacheck/internal/numbers"
	"github.com/Roelanb/wacheck/internal/tui"
)

func tuiCmd() *cobra.Command {
	var numbersFile string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive checker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefill := ""
			if numbersFile != "" {
				im, err := numbers.ImportFile(numbersFile)
				if err != nil {
					return err
				}
				prefill = im.Text()
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			view := tui.NewView()
			ctl := newController(view)
			p := tea.NewProgram(tui.NewModel(ctx, ctl, prefill), tea.WithAltScreen())
			view.Attach(p)

			logger.Infow("tui started", "backend", cfg.Backend.BaseURL)
			_, err := p.Run()
			cancel()
			ctl.Wait()
			return err
		},
	}
	cmd.Flags().StringVarP(&numbersFile, "numbers", "n", "", "prefill the batch box from a .txt, .csv or .xlsx file")
	return cmd
}
