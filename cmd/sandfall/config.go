package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sandfall/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [endless|timed|clear]",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration a run would use after the config file and
flags are applied. The output is a valid config file.

Examples:
  sandfall config > ~/.sandfall/configs/sandfall.yaml
  sandfall config clear --difficulty hard --lines 30`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"endless", "timed", "clear"},
	Run:       runConfig,
}

func init() {
	addGameplayFlags(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) {
	mode := ""
	if len(args) > 0 {
		mode = args[0]
	}

	cfg, err := loadSettings(cmd, mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out, err := config.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
}
