package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/aidanlsb/forma/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if isJSONOutput() {
			outputSuccess(cfg, nil)
			return nil
		}
		if err := toml.NewEncoder(os.Stdout).Encode(cfg); err != nil {
			return handleError(fmt.Errorf("encoding config: %w", err), "")
		}
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the resolved config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"path": paths.ConfigFile}, nil)
			return nil
		}
		fmt.Println(paths.ConfigFile)
		return nil
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Regenerate the default configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if dryRun {
			fmt.Printf("dry-run: would reset config at %s\n", paths.ConfigFile)
			return nil
		}
		if err := config.WriteDefault(paths.ConfigFile); err != nil {
			return handleError(err, "")
		}
		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"file": paths.ConfigFile}, nil)
			return nil
		}
		fmt.Printf("Reset config at %s\n", paths.ConfigFile)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configPathCmd, configResetCmd)
	rootCmd.AddCommand(configCmd)
}
