package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// defaultGameID is played when no game is named.
const defaultGameID = "tetris"

var flagLogFile string

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play in the terminal",
	Long: `Start a game. Without an argument the default game, tetris, is played;
an unknown name is rejected with the list of available games.

Default controls (rebindable under keys: in tetris.yaml):
  Left/A, Right/D  - Move
  Up/W             - Rotate
  Down/S           - Soft drop
  Space            - Hard drop
  Enter            - Start
  P/Esc            - Pause
  R                - Restart
  Q/Ctrl+C         - Quit

The leaderboard of finished games lives in memory for the session.
Logs go to --log-file when given; nothing is logged otherwise.

Examples:
  tetris play
  tetris play tetris --seed 42
  tetris play --config ./my-tetris.yaml --log-file ./tetris.log --log-level debug`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeGameIDs,
	RunE:              runPlay,
}

// completeGameIDs offers registered game IDs for the single positional argument.
func completeGameIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return registry.IDs(), cobra.ShellCompDirectiveNoFileComp
}

func init() {
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
}

// resolveGameID picks the game named on the command line, or the default.
func resolveGameID(args []string) (string, error) {
	id := defaultGameID
	if len(args) > 0 {
		id = args[0]
	}
	if !registry.Exists(id) {
		return "", fmt.Errorf("unknown game %q, available: %s", id, strings.Join(registry.IDs(), ", "))
	}
	return id, nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID, err := resolveGameID(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	tetris.SetConfigPath(flagConfig)

	var logOut io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger, err := newLogger(logOut)
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}

	store, err := storage.Open()
	if err != nil {
		// Continue without a leaderboard - game still works
		logger.Warn("could not open leaderboard", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	return tui.Run(game, runtime, tui.Options{
		Store:  store,
		Keys:   tui.NewKeyMap(cfg.Keys),
		Logger: logger,
	})
}
