package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Roelanb/wacheck/internal/numbers"
)

func importCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Extract phone numbers from a .txt, .csv or .xlsx file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			im, err := numbers.ImportFile(args[0])
			if err != nil {
				return err
			}
			logger.Infow("numbers imported", "file", args[0], "kept", len(im.Numbers), "found", im.TotalFound)
			fmt.Fprintf(cmd.ErrOrStderr(), "found %d numbers, kept %d\n", im.TotalFound, len(im.Numbers))
			if output == "" {
				fmt.Fprintln(cmd.OutOrStdout(), im.Text())
				return nil
			}
			if err := os.WriteFile(output, []byte(im.Text()+"\n"), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write numbers to this file instead of stdout")
	return cmd
}
