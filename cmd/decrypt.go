package cmd

import (
	"fmt"

	"github.com/autoagro/keyseal/internal/audit"
	"github.com/autoagro/keyseal/internal/secrets"
	"github.com/autoagro/keyseal/internal/ui"
	"github.com/autoagro/keyseal/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	decryptIn  string
	decryptRaw bool
)

func init() {
	decryptCmd.Flags().StringVarP(&decryptIn, "in", "i", "", "artifact path (default from config)")
	decryptCmd.Flags().BoolVar(&decryptRaw, "raw", false, "print only the API key")
}

func resetDecryptState() {
	decryptIn = ""
	decryptRaw = false
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Recovers the API key from an artifact file",
	Long: `Re-derives the key from your passphrase and opens the artifact.
A wrong passphrase and a tampered file are reported the same way.

Examples:
  keyseal decrypt
  export PLANT_API_KEY="$(keyseal decrypt --raw --in ~/.plantid/key.enc)"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting decrypt command")

		path, err := artifactPath(decryptIn)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to resolve artifact path: %w", err)
		}
		Logger.Debugf("Artifact path: %s", path)

		resolved, err := workflows.ResolvePassphrase(workflows.PassphraseOptions{
			EnvVar: cfg.PassphraseEnv,
			Prompt: readPassphrase,
		})
		if err != nil {
			return printFailure(err, path)
		}
		Logger.Infof("Passphrase read from %s", resolved.Source)

		spinner, cleanup := startSpinner("Opening "+path+"...", decryptRaw)
		defer cleanup()

		result, err := workflows.Decrypt(cmd.Context(), workflows.DecryptOptions{
			ArtifactPath: path,
			Passphrase:   resolved.Passphrase,
			AuditLog:     audit.PathFor(configPath),
		})
		if err != nil {
			cleanup()
			return printFailure(err, path)
		}
		Logger.Infof("Opened %s in %s", result.ArtifactPath, result.Duration)
		if result.AuditErr != nil {
			Logger.Warnf("Failed to write audit log: %v", result.AuditErr)
		}
		if result.Legacy {
			Logger.Debugf("Artifact has no KDF metadata, used %s", result.KDF)
		}

		if decryptRaw {
			fmt.Println(result.Secret)
		} else {
			spinner.FinalMSG = ui.SuccessLine("API key recovered from "+ui.Path.Sprint(result.ArtifactPath)) + "\n" +
				"  " + ui.Code.Sprint(result.Secret)
			cleanup()
		}

		if result.Format == secrets.FormatFernet {
			Logger.WarnfAlways("%s holds a legacy Fernet token, run %s to reseal it", result.ArtifactPath, ui.Code.Sprint("keyseal encrypt"))
		}
		return nil
	},
}
