package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/autoagro/keyseal/internal/configs"
	"github.com/autoagro/keyseal/internal/ui"

	"github.com/spf13/cobra"
)

var configShowJSON bool

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config show command")

		if configShowJSON {
			output, err := json.MarshalIndent(configValues(), "", "  ")
			if err != nil {
				return Logger.ErrorfAndReturn("failed to marshal config to JSON: %w", err)
			}
			fmt.Println(string(output))
			return nil
		}

		fmt.Println(ui.Info.Sprint("Configuration") + " " + ui.Muted.Sprint(configPath))
		fmt.Println()
		for _, key := range configs.Keys() {
			value, _ := cfg.Get(key)
			fmt.Printf("  %-16s %s\n", key+":", ui.Success.Sprint(value))
		}
		return nil
	},
}

func configValues() map[string]string {
	values := make(map[string]string)
	for _, key := range configs.Keys() {
		values[key], _ = cfg.Get(key)
	}
	return values
}
