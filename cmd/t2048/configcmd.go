package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-2048/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the configuration",
	Long: `Print the configuration in effect after config file, .env,
T2048_* variables and flags are applied.

With --defaults, print the built-in default file instead. It is a good
starting point for ~/.t2048/config.yaml.

Examples:
  t2048 config
  t2048 config --defaults > ~/.t2048/config.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in defaults")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagDefaults {
		os.Stdout.Write(config.DefaultYAML()) //nolint:errcheck // Best-effort write to stdout
		return
	}

	out, err := yaml.Marshal(appConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(out) //nolint:errcheck // Best-effort write to stdout
}
