package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/engine"
	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/pattern"
	"github.com/sheikhrachel/go-life/utils"
)

const clearCmd = "clear"

// options holds command-line overrides for the JSON configuration
type options struct {
	ConfigPath  string
	Width       string
	Height      string
	Pattern     string
	Padding     int
	Speed       string
	Generations int
	SavePath    string
	Parallel    bool
	Quiet       bool

	set   map[string]bool
	bound *flag.FlagSet
}

func newOptions() *options {
	return &options{
		ConfigPath: "config.json",
		Padding:    pattern.DefaultPadding,
	}
}

// Bind attaches the options to the provided FlagSet
func (o *options) Bind(fs *flag.FlagSet) {
	fs.StringVar(&o.ConfigPath, "config", o.ConfigPath, "path to JSON configuration")
	fs.StringVar(&o.Width, "width", o.Width, "grid width for a blank or random grid")
	fs.StringVar(&o.Height, "height", o.Height, "grid height for a blank or random grid")
	fs.StringVar(&o.Pattern, "pattern", o.Pattern, "pattern file to load (.rle or .cells)")
	fs.IntVar(&o.Padding, "padding", o.Padding, "dead-cell margin around a loaded pattern")
	fs.StringVar(&o.Speed, "speed", o.Speed, "fastest, fast, normal, slow or slowest")
	fs.IntVar(&o.Generations, "generations", o.Generations, "stop after this many generations (0 runs forever)")
	fs.StringVar(&o.SavePath, "save", o.SavePath, "write the final grid to this .rle or .cells file")
	fs.BoolVar(&o.Parallel, "parallel", o.Parallel, "compute generations across all CPUs")
	fs.BoolVar(&o.Quiet, "quiet", o.Quiet, "only print the final summary")
	o.set = map[string]bool{}
	o.bound = fs
}

// Apply copies every explicitly set flag over the configuration
func (o *options) Apply(config *utils.Config) error {
	if o.bound != nil {
		o.bound.Visit(func(f *flag.Flag) { o.set[f.Name] = true })
	}

	if o.set["width"] || o.set["height"] {
		config.Width, config.Height = utils.ParseDimensions(o.Width, o.Height)
	}
	if o.set["pattern"] {
		config.Pattern = o.Pattern
	}
	if o.set["padding"] {
		config.Padding = o.Padding
	}
	if o.set["speed"] {
		d, ok := utils.SpeedPreset(o.Speed)
		if !ok {
			return errors.Errorf("[Apply] unknown speed %q", o.Speed)
		}
		config.FrameRate = d
	}
	if o.set["generations"] {
		config.MaxGenerations = o.Generations
	}
	if o.set["save"] {
		config.SavePath = o.SavePath
	}
	if o.set["parallel"] {
		config.UseParallel = o.Parallel
	}
	if config.FrameRate <= 0 {
		config.FrameRate = utils.SpeedPresets[utils.SpeedFast]
	}
	return nil
}

// initializeGame sets up the engine from a pattern file or a random fill
func initializeGame(config utils.Config) (*engine.Engine, error) {
	game, err := engine.New(config)
	if err != nil {
		return nil, err
	}
	if err = seedGame(game, config); err != nil {
		return nil, err
	}
	return game, nil
}

func seedGame(game *engine.Engine, config utils.Config) error {
	if config.Pattern != "" {
		return game.Load(config.Pattern, config.Padding)
	}
	if config.RandomDensity > 0 {
		game.Randomize(config.RandomDensity)
		return nil
	}
	return game.Initialize(config.Width, config.Height)
}

// displayGameInfo shows the initial game information
func displayGameInfo(config utils.Config, game *engine.Engine) {
	cols, rows := game.Dimensions()
	source := "random"
	if config.Pattern != "" {
		source = config.Pattern
	}
	fmt.Printf("Features: Memory Pool: %v, Parallel: %v\n", config.UseMemoryPool, config.UseParallel)
	fmt.Printf("Grid: %dx%d | Source: %s | Frame: %v\n", cols, rows, source, config.FrameRate)
	fmt.Println("Press Ctrl+C to exit gracefully")
	fmt.Println()
}

// updateGameState folds the latest snapshot into the running stats
func updateGameState(grid *model.Grid, frameDuration time.Duration, stats *utils.Stats) {
	cols, rows := grid.Dimensions()
	stats.Update(grid.Generation(), grid.CountLivingCells(), cols*rows, frameDuration)
}

// displayGameStatus shows the current game status
func displayGameStatus(grid *model.Grid, stats *utils.Stats, isStagnant bool, lastRestartGen int) {
	status := "Active"
	if isStagnant {
		status = "Stagnant"
	}
	if stats.Population == 0 {
		status = "Extinct"
	}

	fmt.Printf("Generation: %d | Living: %d | Density: %.1f%% | Status: %s\n",
		grid.Generation(), stats.Population, stats.Density, status)
	fmt.Printf("Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs\n",
		stats.GenerationsPerSecond, stats.AveragePopulation, stats.Runtime().Seconds())
	if stats.Restarts > 0 {
		fmt.Printf("Restarts: %d (last at generation %d)\n", stats.Restarts, lastRestartGen)
	}
	fmt.Println()
}

// displayGrid prints the snapshot in plaintext pattern form
func displayGrid(grid *model.Grid) {
	if err := pattern.WriteCells(os.Stdout, grid, ""); err != nil {
		fmt.Println("Error drawing grid:", err)
	}
}

// clearScreen clears the terminal screen
func clearScreen() {
	cmd := exec.Command(clearCmd)
	cmd.Stdout = os.Stdout
	if err := cmd.Run(); err != nil {
		fmt.Println("Error clearing terminal:", err)
	}
}

// checkRestartConditions determines if the run should restart or stop
func checkRestartConditions(livingCells, stagnantCount int, config utils.Config) (bool, string) {
	if livingCells == 0 {
		return true, "extinction"
	}
	if config.StagnationThreshold > 0 && stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	return false, ""
}

// restartGame reseeds the engine the same way it was first seeded
func restartGame(game *engine.Engine, config utils.Config) error {
	if err := seedGame(game, config); err != nil {
		return errors.Wrap(err, "[restartGame] failed to reseed")
	}
	fmt.Printf("✨ Restarted! Living cells: %d\n", game.Snapshot().CountLivingCells())
	time.Sleep(time.Second)
	return nil
}
