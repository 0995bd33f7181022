// sandfall is a falling-sand block puzzle for the terminal.
//
// Usage:
//
//	sandfall list                  - List game variants
//	sandfall play [mode]           - Play endless, timed or clear mode
//	sandfall menu                  - Pick mode and difficulty interactively
//	sandfall serve                 - Start SSH server for remote play
//	sandfall scores [variant]      - Show high scores
//	sandfall config                - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>       - Set simulation tick rate
//	--seed <value>     - Set RNG seed for reproducible gameplay
//	--db <path>        - Set database path (default: ~/.sandfall/scores.db)
//	--config <path>    - Load configuration from a YAML file
//	--log-file <path>  - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagLogFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sandfall",
	Short: "Sandfall - a falling-sand block puzzle in your terminal",
	Long: `Sandfall drops tetrominoes that crumble into coloured sand. A band of one
colour reaching from the left wall to the right wall clears.

Available commands:
  list     - Show the game variants
  play     - Play a mode directly
  menu     - Interactive mode and difficulty picker
  serve    - Start SSH server for remote play
  scores   - View high scores
  config   - Print the effective configuration

Examples:
  sandfall play
  sandfall play timed --time 120
  sandfall play clear --lines 20 --stop-on-goal
  sandfall menu
  sandfall serve --ssh :2222
  sandfall scores sandfall_clear`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Simulation tick rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.sandfall/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a sandfall YAML config")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Append logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}
