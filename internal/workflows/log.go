package workflows

import (
	"context"
	"slices"
	"strings"

	"github.com/autoagro/keyseal/internal/audit"
)

// LogOptions configures the log workflow.
type LogOptions struct {
	// LogPath is the audit log to read.
	LogPath string

	// Limit keeps only the last N matching entries. Zero means all.
	Limit int

	// Reverse shows the most recent entries first.
	Reverse bool

	// Operations filters by comma-separated operation names.
	Operations string
}

// LogResult contains the outcome of a log operation.
type LogResult struct {
	Entries []audit.Entry

	// Total is the number of entries before filtering.
	Total int
}

// Log reads the audit log and applies the filters in opts.
func Log(ctx context.Context, opts LogOptions) (*LogResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := audit.ReadEntries(opts.LogPath)
	if err != nil {
		return nil, err
	}
	result := &LogResult{Total: len(entries)}

	if opts.Operations != "" {
		ops := strings.Split(opts.Operations, ",")
		for i := range ops {
			ops[i] = strings.TrimSpace(ops[i])
		}
		entries = slices.DeleteFunc(entries, func(e audit.Entry) bool {
			return !slices.Contains(ops, e.Operation)
		})
	}

	entries = audit.Tail(entries, opts.Limit)
	if opts.Reverse {
		slices.Reverse(entries)
	}

	result.Entries = entries
	return result, nil
}
