package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Roelanb/wacheck/internal/console"
	"github.com/Roelanb/wacheck/internal/controller"
	"github.com/Roelanb/wacheck/internal/numbers"
	"github.com/Roelanb/wacheck/internal/watch"
)

var errBatchRejected = errors.New("batch was not started")

func batchCmd() *cobra.Command {
	var (
		watchFile bool
		debounce  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "Check numbers from a file (one per line, .csv or .xlsx) or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			if watchFile && (path == "" || path == "-") {
				return errors.New("--watch needs a file argument")
			}

			ctx := cmd.Context()
			ctl := newController(console.New(os.Stdout))
			if err := requireSession(ctx, ctl); err != nil {
				return err
			}

			text, err := readBatch(path, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if err := runBatch(ctx, ctl, text); err != nil && !watchFile {
				return err
			}
			if !watchFile {
				return nil
			}
			return watchBatch(ctx, ctl, path, debounce)
		},
	}
	cmd.Flags().BoolVarP(&watchFile, "watch", "w", false, "re-run the batch whenever the file changes")
	cmd.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "collapse bursts of file events within this window")
	return cmd
}

// readBatch returns newline-separated numbers. CSV and XLSX files go through
// the importer so header columns are honoured; anything else is taken verbatim.
func readBatch(path string, stdin io.Reader) (string, error) {
	if path == "" || path == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext == ".csv" || ext == ".xlsx" {
		im, err := numbers.ImportFile(path)
		if err != nil {
			return "", err
		}
		return im.Text(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(b), nil
}

func runBatch(ctx context.Context, ctl *controller.Controller, text string) error {
	if !ctl.CheckBatchNumbers(ctx, text) {
		return errBatchRejected
	}
	ctl.Wait()
	return ctx.Err()
}

func watchBatch(ctx context.Context, ctl *controller.Controller, path string, debounce time.Duration) error {
	w, err := watch.New(watch.Options{
		Path:          path,
		Debounce:      debounce,
		Stabilization: 300 * time.Millisecond,
	})
	if err != nil {
		return err
	}
	defer w.Close()
	events, err := w.Start(ctx)
	if err != nil {
		return err
	}
	logger.Infow("watching numbers file", "path", path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			logger.Infow("numbers file changed", "path", ev.Path)
			text, err := readBatch(path, nil)
			if err != nil {
				logger.Errorw("reload numbers file", "path", path, "error", err)
				continue
			}
			if err := runBatch(ctx, ctl, text); err != nil && !errors.Is(err, context.Canceled) {
				logger.Warnw("batch run", "path", path, "error", err)
			}
		}
	}
}
