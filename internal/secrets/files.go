package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kerrors "github.com/autoagro/keyseal/internal/errors"

	"github.com/bmatcuk/doublestar/v4"
)

// ResolveArtifacts takes user-provided paths, directories or globs and returns
// the artifact files they name. Relative patterns are resolved against baseDir.
// Literal paths are returned even without the .enc suffix; directories and
// globs only yield .enc files.
func ResolveArtifacts(patterns []string, baseDir string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, nil
	}

	var files []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		resolved, err := resolvePattern(pattern, baseDir)
		if err != nil {
			return nil, err
		}

		for _, f := range resolved {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no artifacts match %s", kerrors.ErrArtifactNotFound, strings.Join(patterns, ", "))
	}

	return files, nil
}

func resolvePattern(pattern string, baseDir string) ([]string, error) {
	absPattern := pattern
	if !filepath.IsAbs(pattern) {
		absPattern = filepath.Join(baseDir, pattern)
	}

	info, err := os.Stat(absPattern)
	if err == nil && info.IsDir() {
		return findArtifactsInDir(absPattern)
	}

	if strings.ContainsAny(pattern, "*?[{") {
		return expandGlob(absPattern, pattern)
	}

	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrArtifactNotFound, pattern)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", pattern, err)
	}

	return []string{absPattern}, nil
}

func expandGlob(absPattern, pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(absPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}

	var filtered []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if isArtifactFile(m) {
			filtered = append(filtered, m)
		}
	}

	return filtered, nil
}

func findArtifactsInDir(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && isArtifactFile(path) {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}

// isArtifactFile skips the temporary files SaveArtifact leaves while writing.
func isArtifactFile(path string) bool {
	base := filepath.Base(path)
	return strings.HasSuffix(base, ArtifactExtension) && !strings.HasPrefix(base, ".")
}
