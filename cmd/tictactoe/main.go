// tictactoe is a tic-tac-toe game with move history and time travel.
//
// Usage:
//
//	tictactoe serve   - Serve the game in the browser
//	tictactoe play    - Play in the terminal
//
// Global flags:
//
//	--config <path>     - YAML config file (optional, env TTT_* always applies)
//	--log-level <level> - Override the configured log level
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jaminalder/timetravel-tic-tac-toe/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tictactoe",
	Short: "Tic-tac-toe with move history and time travel",
	Long: `Tic-tac-toe for two players sharing one screen. Every move is recorded;
jump back to any earlier move and play on from there.

Examples:
  tictactoe serve --addr :8080
  tictactoe play`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(playCmd)
}

// loadConfig reads the config and applies global flag overrides.
func loadConfig() (*config.Config, error) {
	conf, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagLogLevel != "" {
		conf.LogLevel = flagLogLevel
	}
	return conf, nil
}

// initLogger builds the process logger from the configured level.
func initLogger(conf *config.Config) (*log.Logger, error) {
	level, err := log.ParseLevel(conf.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", conf.LogLevel, err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "tictactoe",
	}), nil
}
