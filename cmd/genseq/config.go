package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage genseq configuration",
		Long:  "Show, get, or set configuration values. Config is stored in ~/.genseq.yaml.",
		Example: `  genseq config                          # show all config
  genseq config set catalog genome.duckdb  # default catalog for build and export
  genseq config set workers 4              # build four chromosomes at a time
  genseq config get driver                 # get a value`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigGetCmd())

	return cmd
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd.OutOrStdout(), args[0], args[1])
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(cmd.OutOrStdout(), args[0])
		},
	}
}

// fileSettings returns the settings read from the config file, leaving out
// flag defaults bound for the current command.
func fileSettings() (map[string]any, error) {
	cfgFile := viper.ConfigFileUsed()
	settings := map[string]any{}
	if cfgFile == "" {
		return settings, nil
	}
	data, err := os.ReadFile(cfgFile)
	if os.IsNotExist(err) {
		return settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", cfgFile, err)
	}
	if settings == nil {
		settings = map[string]any{}
	}
	return settings, nil
}

func runConfigShow(w io.Writer) error {
	settings, err := fileSettings()
	if err != nil {
		return err
	}
	if len(settings) == 0 {
		fmt.Fprintln(w, "# No configuration set. Config file: ~/.genseq.yaml")
		return nil
	}

	out, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	fmt.Fprint(w, string(out))
	return nil
}

func runConfigSet(w io.Writer, key, value string) error {
	settings, err := fileSettings()
	if err != nil {
		return err
	}

	// Parse boolean-like and integer values
	switch value {
	case "true", "yes", "on":
		settings[key] = true
	case "false", "no", "off":
		settings[key] = false
	default:
		if n, err := strconv.Atoi(value); err == nil {
			settings[key] = n
		} else {
			settings[key] = value
		}
	}

	// Ensure config file exists
	cfgFile := viper.ConfigFileUsed()
	if cfgFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot determine home directory: %w", err)
		}
		cfgFile = filepath.Join(home, ".genseq.yaml")
	}

	out, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(cfgFile, out, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(w, "Set %s = %s in %s\n", key, value, cfgFile)
	return nil
}

func runConfigGet(w io.Writer, key string) error {
	val := viper.Get(key)
	if val == nil {
		return fmt.Errorf("key %q is not set", key)
	}
	fmt.Fprintln(w, val)
	return nil
}
