package utils

import (
	"regexp"
	"strings"

	"github.com/autoagro/keyseal/internal/ui"
)

// envNameRegex matches portable environment variable names.
var envNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// FormatPaths formats a slice of paths into a readable string.
func FormatPaths(paths []string) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, path := range paths {
		b.WriteString("    - ")
		b.WriteString(ui.Path.Sprint(path))
		b.WriteString("\n")
	}
	return b.String()
}

// IsValidEnvName checks if the given string can be used as an environment variable name.
func IsValidEnvName(name string) bool {
	return envNameRegex.MatchString(name)
}
