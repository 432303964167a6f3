package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dmelnik/chromamerge/internal/core"
	"github.com/dmelnik/chromamerge/internal/games/chroma"
	"github.com/dmelnik/chromamerge/internal/platform/tui"
	"github.com/dmelnik/chromamerge/internal/registry"
	"github.com/dmelnik/chromamerge/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagEndless    bool
	flagLevel      int
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play the game",
	Long: `Start playing. Without arguments a mode/level selector is shown first;
naming a variant (chroma, chroma_endless) skips it.

Controls:
  Arrows/WASD - Move cursor (or push a grabbed tile)
  Space/Enter - Grab/release the tile under the cursor
  P/Esc       - Pause
  R           - Restart (after game over)
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - Fewer obstacles, gentle spawn acceleration
  normal - Config defaults
  hard   - More obstacles, faster spawns
  fixed  - No progression, stays at config's initial level

Examples:
  chromamerge play
  chromamerge play chroma_endless
  chromamerge play --level 5
  chromamerge play --difficulty hard
  chromamerge play --config ./my-chroma.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagEndless, "endless", false, "Skip the selector and play endless mode")
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Campaign level to start from (skips the selector)")
}

func runPlay(_ *cobra.Command, args []string) {
	variant := ""
	if len(args) == 1 {
		variant = args[0]
		if !registry.Exists(variant) {
			fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", variant)
			fmt.Fprintln(os.Stderr, "Run 'chromamerge list' to see available variants.")
			os.Exit(1)
		}
	}

	// Get terminal size early for the mode selector
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	chroma.SetConfigPath(flagConfig)
	chroma.SetDifficultyPreset(flagDifficulty)

	gameID := "chroma"
	switch {
	case variant != "":
		gameID = variant
	case flagEndless:
		gameID = "chroma_endless"
	case flagLevel > 0:
		if flagLevel > chroma.LevelCount() {
			fmt.Fprintf(os.Stderr, "Error: level must be between 1 and %d\n", chroma.LevelCount())
			os.Exit(1)
		}
		chroma.SetStartLevel(flagLevel)
	default:
		// Show the mode/level selector
		selection, updatedCfg, selErr := tui.RunChromaModeSelector(cfg)
		if selErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
			os.Exit(1)
		}
		cfg = updatedCfg

		// User pressed back or quit
		if selection == nil {
			return
		}

		if selection.Mode == tui.ChromaModeEndless {
			gameID = "chroma_endless"
		}
		if selection.Level > 0 {
			chroma.SetStartLevel(selection.Level)
		}
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
