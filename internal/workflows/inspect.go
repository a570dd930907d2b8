package workflows

import (
	"context"
	"runtime"

	"github.com/autoagro/keyseal/internal/secrets"
)

// InspectOptions configures the inspect workflow.
type InspectOptions struct {
	// Patterns are artifact paths, directories or doublestar globs.
	// If empty, DefaultPath is inspected.
	Patterns []string

	// DefaultPath is inspected when no patterns are given.
	DefaultPath string

	// BaseDir resolves relative patterns. Empty means the working directory.
	BaseDir string
}

// ArtifactReport describes a single inspected artifact.
type ArtifactReport struct {
	Path string

	// Info is nil when Err is set.
	Info *secrets.ArtifactInfo
	Err  error

	// Insecure is true if group or other users can access the file.
	Insecure bool
}

// InspectResult contains the outcome of an inspect operation.
type InspectResult struct {
	Reports []ArtifactReport
}

// Failed returns the number of artifacts that could not be inspected.
func (r *InspectResult) Failed() int {
	n := 0
	for _, report := range r.Reports {
		if report.Err != nil {
			n++
		}
	}
	return n
}

// Inspect reports the metadata of every artifact matched by opts. No key is derived.
// A per-file failure is recorded in its report; only pattern resolution errors are returned.
func Inspect(ctx context.Context, opts InspectOptions) (*InspectResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	patterns := opts.Patterns
	if len(patterns) == 0 {
		patterns = []string{opts.DefaultPath}
	}

	paths, err := secrets.ResolveArtifacts(patterns, opts.BaseDir)
	if err != nil {
		return nil, err
	}

	result := &InspectResult{}
	for _, path := range paths {
		info, err := secrets.InspectArtifact(path)
		report := ArtifactReport{Path: path, Info: info, Err: err}
		if info != nil && runtime.GOOS != "windows" {
			report.Insecure = info.Mode&0o077 != 0
		}
		result.Reports = append(result.Reports, report)
	}

	return result, nil
}
