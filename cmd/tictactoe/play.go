package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jaminalder/timetravel-tic-tac-toe/internal/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Play a local game in the terminal.

Controls:
  Arrow keys / hjkl - Move the cursor
  Enter / Space     - Place a mark
  1-9               - Place a mark on that cell (row by row)
  [ / ]             - Step back / forward through the move history
  g / G             - Jump to game start / latest move
  n                 - New game
  q / Ctrl+C        - Quit`,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	conf, err := loadConfig()
	if err != nil {
		return err
	}
	return tui.Run(conf.HighlightWinner, tea.WithAltScreen())
}
