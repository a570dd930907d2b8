package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/autoagro/keyseal/internal/audit"
	"github.com/autoagro/keyseal/internal/ui"
	"github.com/autoagro/keyseal/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	logLimit     int
	logReverse   bool
	logOperation string
	logOneline   bool
	logJSON      bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation type (comma-separated)")
	logCmd.Flags().BoolVar(&logOneline, "oneline", false, "compact one-line format")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

func resetLogState() {
	logLimit = 0
	logReverse = false
	logOperation = ""
	logOneline = false
	logJSON = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit log",
	Long: `Displays the local history of encrypt and decrypt operations,
including failed attempts. Passphrases and keys are never logged.

Examples:
  keyseal log                       # View full log
  keyseal log -n 10                 # Last 10 entries
  keyseal log --operation decrypt   # Only decrypts
  keyseal log --json                # JSON output`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting log command")

		logPath := audit.PathFor(configPath)
		Logger.Debugf("Reading audit log from %s", logPath)

		result, err := workflows.Log(cmd.Context(), workflows.LogOptions{
			LogPath:    logPath,
			Limit:      logLimit,
			Reverse:    logReverse,
			Operations: logOperation,
		})
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read audit log: %w", err)
		}
		Logger.Debugf("Parsed %d entries, %d after filtering", result.Total, len(result.Entries))

		if logJSON {
			entries := result.Entries
			if entries == nil {
				entries = []audit.Entry{}
			}
			output, err := json.MarshalIndent(entries, "", "  ")
			if err != nil {
				return Logger.ErrorfAndReturn("failed to marshal log entries: %w", err)
			}
			fmt.Println(string(output))
			return nil
		}

		if len(result.Entries) == 0 {
			if result.Total == 0 {
				fmt.Println("No audit log entries found.")
			} else {
				fmt.Println("No audit log entries found matching the filters.")
			}
			return nil
		}

		for _, e := range result.Entries {
			if logOneline {
				day := e.Timestamp
				if len(day) > 10 {
					day = day[:10]
				}
				fmt.Printf("%s %s %s %s\n", day, e.Operation, e.Result, e.Path)
				continue
			}
			outputLogEntry(e)
		}
		return nil
	},
}

func outputLogEntry(e audit.Entry) {
	status := ui.Success.Sprint(e.Result)
	if e.Result != audit.ResultOK {
		status = ui.Error.Sprint(e.Result)
	}

	fmt.Printf("%s  %-8s %-7s %s", ui.Muted.Sprint(e.Timestamp), e.Operation, status, ui.Path.Sprint(e.Path))
	if e.KDF != "" {
		fmt.Printf(" %s", ui.Muted.Sprintf("%s, %d", e.KDF, e.Iterations))
	}
	fmt.Println()
	if e.Error != "" {
		fmt.Printf("    %s\n", e.Error)
	}
}
