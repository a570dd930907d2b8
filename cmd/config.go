package cmd

import (
	"github.com/spf13/cobra"
)

// ConfigCmd is the top-level config command.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage keyseal configuration",
	Long: `Shows and updates the keyseal config file.

The file lives at ~/.config/keyseal/config.toml unless KEYSEAL_CONFIG
points elsewhere. Command-line flags always win over the file.

Examples:
  # Show the effective configuration
  keyseal config show

  # Seal new artifacts with argon2id
  keyseal config set kdf argon2id

  # Read the passphrase from a different variable
  keyseal config set passphrase_env MY_PASSPHRASE`,
}

func init() {
	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configSetCmd)
}
