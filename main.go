package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sheikhrachel/go-life/utils"
)

func main() {
	opts := newOptions()
	opts.Bind(flag.CommandLine)
	flag.Parse()

	// Load configuration - fallback to defaults if file doesn't exist
	config, err := utils.LoadConfig(opts.ConfigPath)
	if err != nil {
		fmt.Printf("Using default configuration (%s not found)\n", opts.ConfigPath)
		config = utils.DefaultConfig()
	}
	if err = opts.Apply(&config); err != nil {
		log.Fatal(err)
	}

	game, err := initializeGame(config)
	if err != nil {
		log.Fatal(err)
	}
	stats := utils.NewStats()
	displayGameInfo(config, game)

	// Handle Ctrl+C gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(config.FrameRate)
	defer ticker.Stop()

	var (
		stagnantCount  = 0
		lastRestartGen = 0
		lastFrameTime  = time.Now()
	)

loop:
	for {
		frameStart := time.Now()
		snapshot := game.Snapshot()
		isStagnant := game.Observe()
		updateGameState(snapshot, frameStart.Sub(lastFrameTime), stats)
		lastFrameTime = frameStart

		if isStagnant {
			stagnantCount++
		} else {
			stagnantCount = 0
		}

		if !opts.Quiet {
			clearScreen()
			displayGameStatus(snapshot, stats, isStagnant, lastRestartGen)
			displayGrid(snapshot)
		}

		if config.MaxGenerations > 0 && snapshot.Generation() >= config.MaxGenerations {
			fmt.Printf("\n🏁 Reached maximum generations limit (%d)\n", config.MaxGenerations)
			break
		}

		if shouldRestart, reason := checkRestartConditions(stats.Population, stagnantCount, config); shouldRestart {
			if !config.AutoRestart {
				fmt.Printf("\n⏹ Stopping: %s\n", reason)
				break
			}
			fmt.Printf("🔄 Restarting due to %s...\n", reason)
			if err = restartGame(game, config); err != nil {
				log.Fatal(err)
			}
			stats.Restarts++
			lastRestartGen = stats.TotalGenerations
			stagnantCount = 0
			continue
		}

		select {
		case <-sigChan:
			fmt.Println("\n🛑 Shutting down gracefully...")
			break loop
		case <-ticker.C:
		}

		game.Step()
	}

	fmt.Printf("Final stats: %d generations in %.1f seconds, %d restarts\n",
		stats.TotalGenerations, stats.Runtime().Seconds(), stats.Restarts)
	fmt.Printf("Average: %.1f gen/sec, %.1f avg population\n",
		stats.GenerationsPerSecond, stats.AveragePopulation)

	if config.SavePath != "" {
		if err = game.Save(config.SavePath); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Saved generation %d to %s\n", game.Generation(), config.SavePath)
	}
}
