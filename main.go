// minimario is a one-level platformer: run, jump on goombas, collect coins
// and grow with a mushroom.
//
// Usage:
//
//	minimario                 - Play the level
//	minimario scores [level]  - Show the best recorded runs
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/milk9111/minimario/levels"
	"github.com/milk9111/minimario/prefabs"
	"github.com/milk9111/minimario/storage"
)

var (
	flagLevel      string
	flagDebug      bool
	flagDBPath     string
	flagLogLevel   string
	flagPrefabsDir string
	flagLevelsDir  string
	flagScale      int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "minimario",
	Short: "A small side-scrolling platformer",
	Long: `minimario runs one platformer level: run with A/D or the arrow keys,
jump with Space, W or Up, pause with Esc.

Examples:
  minimario
  minimario --debug --prefabs-dir prefabs --levels-dir levels
  minimario scores`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runGame,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLevel, "level", "overworld", "Level name (basename in levels/, .yaml optional)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Draw collision shapes and reload prefabs when they change")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.minimario/runs.db", "Path to the run history database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagPrefabsDir, "prefabs-dir", "", "Read prefabs from this directory before the embedded copies")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels-dir", "", "Read levels from this directory before the embedded copies")
	rootCmd.Flags().IntVar(&flagScale, "scale", 3, "Window scale")
	_ = rootCmd.RegisterFlagCompletionFunc("level", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return levels.Names(), cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(scoresCmd)
}

func newLogger() (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "minimario",
		Level:           level,
	})
	return logger, nil
}

// openStore opens the run history. Failures only cost persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("run history disabled", "db", flagDBPath, "err", err)
		return nil
	}
	return store
}

func runGame(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	prefabs.SetDir(flagPrefabsDir)

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	game, err := NewGame(GameOptions{
		Level:     flagLevel,
		LevelsDir: flagLevelsDir,
		Debug:     flagDebug,
		Store:     store,
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	defer game.Close()

	scale := max(flagScale, 1)
	ebiten.SetWindowSize(baseWidth*scale, baseHeight*scale)
	ebiten.SetWindowTitle("minimario")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
