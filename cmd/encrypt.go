package cmd

import (
	"github.com/autoagro/keyseal/internal/audit"
	"github.com/autoagro/keyseal/internal/secrets"
	"github.com/autoagro/keyseal/internal/ui"
	"github.com/autoagro/keyseal/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	encryptOut        string
	encryptKDF        kdfFlag
	encryptIterations uint32
	encryptStdin      bool
)

func init() {
	encryptCmd.Flags().StringVarP(&encryptOut, "out", "o", "", "artifact path (default from config)")
	encryptCmd.Flags().Var(&encryptKDF, "kdf", "key derivation function: pbkdf2-sha256 or argon2id")
	encryptCmd.Flags().Uint32Var(&encryptIterations, "iterations", 0, "KDF iterations (argon2id time cost); 0 uses the default")
	encryptCmd.Flags().BoolVar(&encryptStdin, "stdin", false, "read the API key from stdin")
}

func resetEncryptState() {
	encryptOut = ""
	encryptKDF = kdfFlag{}
	encryptIterations = 0
	encryptStdin = false
}

var encryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Seals an API key into an artifact file",
	Long: `Seals an API key with a key derived from your passphrase and writes the
artifact. An existing artifact at the same path is replaced.

Examples:
  # Prompt for the API key and passphrase
  keyseal encrypt

  # Pipe the API key in, use argon2id
  echo "$PLANT_API_KEY" | keyseal encrypt --stdin --kdf argon2id --out ~/.plantid/key.enc`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting encrypt command")

		path, err := artifactPath(encryptOut)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to resolve artifact path: %w", err)
		}
		Logger.Debugf("Artifact path: %s", path)

		params, err := encryptParams()
		if err != nil {
			return printFailure(err, path)
		}
		Logger.Debugf("KDF: %s", params)

		secret, err := readSecret()
		if err != nil {
			return printFailure(err, path)
		}

		prompt := readPassphrase
		if encryptStdin {
			prompt = readPassphraseFromTTY
		}
		resolved, err := workflows.ResolvePassphrase(workflows.PassphraseOptions{
			EnvVar:  cfg.PassphraseEnv,
			Confirm: true,
			Prompt:  prompt,
		})
		if err != nil {
			return printFailure(err, path)
		}
		Logger.Infof("Passphrase read from %s", resolved.Source)

		spinner, cleanup := startSpinner("Sealing API key...", false)
		defer cleanup()

		result, err := workflows.Encrypt(cmd.Context(), workflows.EncryptOptions{
			Secret:     secret,
			Passphrase: resolved.Passphrase,
			OutputPath: path,
			KDF:        params,
			AuditLog:   audit.PathFor(configPath),
		})
		if err != nil {
			cleanup()
			return printFailure(err, path)
		}
		Logger.Infof("Sealed %s in %s", result.ArtifactPath, result.Duration)
		if result.AuditErr != nil {
			Logger.Warnf("Failed to write audit log: %v", result.AuditErr)
		}

		finalMessage := ui.SuccessLine("API key sealed to "+ui.Path.Sprint(result.ArtifactPath)) + "\n" +
			ui.HintLine("Key derivation: "+describeKDF(result.KDF))
		if result.Overwritten {
			finalMessage += "\n" + ui.WarningLine("Replaced the existing artifact")
		}
		if resolved.Source == workflows.SourcePrompt {
			finalMessage += "\n" + ui.HintLine("Set "+ui.Highlight.Sprint(cfg.PassphraseEnv)+" to skip the passphrase prompt")
		}

		spinner.FinalMSG = finalMessage
		return nil
	},
}

// encryptParams merges the --kdf and --iterations flags over the configured KDF.
func encryptParams() (secrets.KDFParams, error) {
	params, err := cfg.KDFParams()
	if err != nil {
		return secrets.KDFParams{}, err
	}

	if encryptKDF.value != "" && encryptKDF.value != params.Algorithm {
		params = secrets.KDFParams{Algorithm: encryptKDF.value}
	}
	if encryptIterations != 0 {
		params.Iterations = encryptIterations
	}

	params = params.WithDefaults()
	return params, params.Validate()
}

// readSecret reads the API key from stdin or a masked prompt.
func readSecret() (string, error) {
	if encryptStdin {
		data, err := readSecretFromStdin()
		if err != nil {
			return "", err
		}
		defer secrets.Wipe(data)
		return string(data), nil
	}

	data, err := readPassphrase("API key: ")
	if err != nil {
		return "", err
	}
	defer secrets.Wipe(data)
	return string(data), nil
}
