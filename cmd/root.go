package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/autoagro/keyseal/internal/configs"
	logger "github.com/autoagro/keyseal/internal/logging"
	"github.com/autoagro/keyseal/internal/ui"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	// cfg is loaded before every subcommand runs.
	cfg        *configs.Config
	configPath string

	RootCmd = &cobra.Command{
		Use:   "keyseal",
		Short: "Keyseal - seal a single API key behind a passphrase.",
		Long: `Keyseal stores one API key in a small JSON file, encrypted with a key
derived from your passphrase. Only the salt and the sealed token are written
to disk; the key and the passphrase never are.

The passphrase is read from the environment variable named by the
passphrase_env setting (PLANT_ID_PASSPHRASE by default), or prompted for.

Examples:
  # Seal an API key (prompts for the key and the passphrase)
  keyseal encrypt

  # Use it from a script
  export PLANT_API_KEY="$(keyseal decrypt --raw)"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing %s command with verbose=%t, debug=%t", cmd.Name(), verbose, debug)

			path, err := configs.ConfigPath()
			if err != nil {
				return Logger.ErrorfAndReturn("failed to locate config: %w", err)
			}
			configPath = path

			Logger.Debugf("Loading config from %s", configPath)
			loaded, err := configs.LoadConfig(configPath)
			if err != nil {
				return Logger.ErrorfAndReturn("%w", err)
			}
			cfg = loaded
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println()
			figure.NewColorFigure("keyseal", "standard", "green", true).Print()
			fmt.Println()
			fmt.Println(ui.HintLine("Run " + ui.Code.Sprint("keyseal --help") + " to see available commands"))
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	RootCmd.AddCommand(encryptCmd)
	RootCmd.AddCommand(decryptCmd)
	RootCmd.AddCommand(inspectCmd)
	RootCmd.AddCommand(ConfigCmd)
	RootCmd.AddCommand(logCmd)
}

// Execute runs the root command. Errors that a command has not already shown
// to the user are printed to stderr.
func Execute() error {
	err := RootCmd.Execute()
	if err != nil {
		var shown *reportedError
		if !errors.As(err, &shown) {
			fmt.Fprintln(os.Stderr, ui.ErrorLine(err.Error()))
		}
	}
	return err
}

// Helper functions for testing

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	cfg = nil
	configPath = ""
	resetEncryptState()
	resetDecryptState()
	configShowJSON = false
	resetLogState()
	resetCobraFlagState(RootCmd)
}

// resetCobraFlagState clears the Changed bit on every flag to prevent test pollution.
func resetCobraFlagState(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
	})
	cmd.PersistentFlags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
	})
	for _, sub := range cmd.Commands() {
		resetCobraFlagState(sub)
	}
}
