package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/apimgr/pokedex/src/paths"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := yaml.Marshal(viper.AllSettings())
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		if !viper.IsSet(key) {
			return fmt.Errorf("key not found: %s", key)
		}
		fmt.Fprintln(cmd.OutOrStdout(), viper.Get(key))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if !viper.IsSet(key) {
			return fmt.Errorf("unknown key: %s", key)
		}

		viper.Set(key, value)

		configPath := getConfigPath()
		if err := paths.EnsureParent(configPath); err != nil {
			return err
		}
		if err := viper.WriteConfigAs(configPath); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := getConfigPath()

		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("config already exists: %s", configPath)
		}
		if err := paths.EnsureParent(configPath); err != nil {
			return err
		}
		if err := os.WriteFile(configPath, []byte(defaultConfig), 0600); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", configPath)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), getConfigPath())
		return nil
	},
}

const defaultConfig = `# pokedex CLI configuration
api:
  base_url: https://pokeapi.co/api/v2
  timeout: 30      # seconds
  rate_limit: 20   # requests per second, 0 disables limiting
  parallel: 8      # concurrent type fetches

cache:
  backend: file    # file, memory, sqlite, redis, none
  dir: ""          # empty uses the default cache directory
  ttl: 168h
  redis:
    url: redis://localhost:6379/0
    prefix: "pokedex:"
  sqlite:
    path: ""       # empty uses <cache dir>/responses.db

logging:
  level: warn      # debug, info, warn, error
  file: ""         # empty uses the default log directory
  max_size: 10     # MB
  max_files: 5

output:
  color: auto      # auto, always, never
  language: en
`

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}
