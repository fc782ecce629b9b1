package checker

import (
	"fmt"
	"strings"
)

const unknownStatus = "Unknown status"

// Classify picks the row category. An error wins over registration.
func Classify(r CheckResult) ResultKind {
	switch {
	case r.Error != "":
		return KindError
	case r.Registered:
		return KindSuccess
	default:
		return KindInfo
	}
}

// BatchRow converts a batch result into a row. The message falls back to the
// error text, then to a placeholder.
func BatchRow(r CheckResult) Row {
	msg := r.Error
	if msg == "" {
		msg = r.Message
	}
	if msg == "" {
		msg = unknownStatus
	}
	return Row{Number: r.Number, Message: msg, Kind: Classify(r)}
}

// BatchRows converts all results, preserving order.
func BatchRows(results []CheckResult) []Row {
	rows := make([]Row, 0, len(results))
	for _, r := range results {
		rows = append(rows, BatchRow(r))
	}
	return rows
}

// Icon returns a short glyph for the row category.
func Icon(k ResultKind) string {
	switch k {
	case KindSuccess:
		return "✓"
	case KindError:
		return "✗"
	default:
		return "i"
	}
}

// Percent returns progress as a percentage of total; 0 when total is not positive.
func Percent(progress, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(progress) / float64(total) * 100
}

// ProgressLabel renders "progress / total".
func ProgressLabel(progress, total int) string {
	return fmt.Sprintf("%d / %d", progress, total)
}

// Summary counts a finished batch.
type Summary struct {
	Registered    int
	NotRegistered int
	Errors        int
}

// Summarize counts registered and errored results. NotRegistered is whatever
// remains: total - registered - errors.
func Summarize(results []CheckResult) Summary {
	var s Summary
	for _, r := range results {
		if r.Error != "" {
			s.Errors++
			continue
		}
		if r.Registered {
			s.Registered++
		}
	}
	s.NotRegistered = len(results) - s.Registered - s.Errors
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("Completed: %d registered, %d not registered, %d errors", s.Registered, s.NotRegistered, s.Errors)
}

// SplitNumbers splits batch input on newlines and drops blank lines.
// Surviving lines are trimmed.
func SplitNumbers(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if n := strings.TrimSpace(line); n != "" {
			out = append(out, n)
		}
	}
	return out
}
