package cmd

import (
	"fmt"
	"strings"

	"github.com/autoagro/keyseal/internal/configs"
	"github.com/autoagro/keyseal/internal/ui"

	"github.com/spf13/cobra"
)

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Update a configuration value",
	Long: fmt.Sprintf(`Updates a single configuration value and saves the config file.

Keys: %s`, strings.Join(configs.Keys(), ", ")),
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		Logger.Infof("Starting config set command")
		Logger.Debugf("Setting %s=%s", key, value)

		if err := cfg.Set(key, value); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), ui.ErrorLine(err.Error())+"\n"+
				ui.HintLine("Valid keys: "+strings.Join(configs.Keys(), ", ")))
			return reported(err)
		}

		if err := configs.SaveConfig(configPath, cfg); err != nil {
			return Logger.ErrorfAndReturn("failed to save config: %w", err)
		}
		Logger.Infof("Saved config to %s", configPath)

		fmt.Println(ui.SuccessLine("Set " + ui.Highlight.Sprint(key) + " to " + ui.Code.Sprint(value)))
		return nil
	},
}
