package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/autoagro/keyseal/internal/ui"
	"github.com/autoagro/keyseal/internal/utils"
	"github.com/autoagro/keyseal/internal/workflows"

	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [PATH|GLOB ...]",
	Short: "Shows artifact metadata without decrypting",
	Long: `Shows the key derivation settings, sizes and file permissions of one or
more artifacts. No passphrase is needed.

Arguments may be files, directories or glob patterns such as "**/*.enc".
With no arguments the configured artifact is inspected.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting inspect command")

		defaultPath, err := artifactPath("")
		if err != nil {
			return Logger.ErrorfAndReturn("failed to resolve artifact path: %w", err)
		}

		wd, err := os.Getwd()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to get working directory: %w", err)
		}

		result, err := workflows.Inspect(cmd.Context(), workflows.InspectOptions{
			Patterns:    args,
			DefaultPath: defaultPath,
			BaseDir:     wd,
		})
		if err != nil {
			target := defaultPath
			if len(args) > 0 {
				target = strings.Join(args, ", ")
			}
			return printFailure(err, target)
		}
		Logger.Debugf("Inspected %d artifacts", len(result.Reports))

		var b strings.Builder
		var paths []string
		for _, report := range result.Reports {
			paths = append(paths, report.Path)
			if report.Err != nil {
				b.WriteString(failureMessage(report.Err, report.Path) + "\n")
				continue
			}

			info := report.Info
			b.WriteString(ui.SuccessLine(ui.Path.Sprint(info.Path)) + "\n")
			fmt.Fprintf(&b, "  %-12s %s\n", "KDF:", describeKDF(info.KDF))
			if info.Legacy {
				fmt.Fprintf(&b, "  %-12s %s\n", "Format:", ui.Muted.Sprintf("legacy %s token, no KDF metadata", info.Format))
			}
			fmt.Fprintf(&b, "  %-12s %d bytes\n", "Salt:", info.SaltSize)
			fmt.Fprintf(&b, "  %-12s %d bytes\n", "Token:", info.TokenSize)
			fmt.Fprintf(&b, "  %-12s %s\n", "Modified:", info.ModTime.Format("2006-01-02 15:04:05"))
			fmt.Fprintf(&b, "  %-12s %s\n", "Mode:", info.Mode)
			if report.Insecure {
				b.WriteString("  " + ui.WarningLine("readable by other users, run "+ui.Code.Sprintf("chmod 600 %s", info.Path)) + "\n")
			}
		}
		Logger.Infof("Inspected artifacts:%s", strings.TrimSuffix(utils.FormatPaths(paths), "\n"))

		fmt.Print(b.String())

		if failed := result.Failed(); failed > 0 {
			return reported(fmt.Errorf("%d of %d artifacts could not be read", failed, len(result.Reports)))
		}
		return nil
	},
}
