// chromamerge is a terminal color-merge puzzle playable locally or over SSH.
//
// Usage:
//
//	chromamerge play             - Play with the mode/level selector
//	chromamerge menu             - Start the interactive main menu
//	chromamerge serve            - Start SSH server for remote play
//	chromamerge list             - List game variants
//	chromamerge scores <variant> - Show high scores for a variant
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.chromamerge/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import the game to register its variants
	_ "github.com/dmelnik/chromamerge/internal/games/chroma"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "chromamerge",
	Short: "ChromaMerge - A color-merge puzzle in your terminal",
	Long: `ChromaMerge is a terminal puzzle where you push colored tiles into
each other. Same-color collisions merge into higher values, chains of
three or more cascade, and big merges promote tiles into specials that
clear rows, columns, and areas.

Available commands:
  play     - Play with the mode/level selector
  menu     - Interactive main menu with scoreboard
  serve    - Start SSH server for remote play
  list     - Show game variants
  scores   - View high scores

Examples:
  chromamerge play
  chromamerge play --endless
  chromamerge menu
  chromamerge serve --ssh :2222
  chromamerge scores chroma`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.chromamerge/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(scoresCmd)
}
