package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/blockwork/pow-miner/internal/config"
	logpkg "github.com/blockwork/pow-miner/internal/logger"
	minerpkg "github.com/blockwork/pow-miner/pkg/miner"
	"github.com/blockwork/pow-miner/pkg/types"
	"github.com/spf13/cobra"
)

var (
	cfg    = config.NewConfig()
	logger *logpkg.Logger
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "pow-miner <prefix> <suffix>",
		Short: "Batched blake2s proof-of-work nonce miner",
		Long: `A command line utility that searches for a nonce whose blake2s-256
digest of prefix + nonce-hex + suffix falls below a difficulty threshold.
On success the winning line is printed as prefix + 64-digit nonce + suffix.`,
		Args: cobra.ExactArgs(2),
		Run:  runMiner,
	}

	rootCmd.Flags().IntVarP(&cfg.Workers, "workers", "w", runtime.NumCPU(), "Number of worker goroutines")
	rootCmd.Flags().IntVarP(&cfg.BatchSize, "batch", "b", config.DefaultBatchSize, "Candidates hashed per batch")
	rootCmd.Flags().StringVarP(&cfg.Difficulty, "difficulty", "d", config.DefaultDifficulty, "Difficulty threshold (hex, right-padded to 64 digits)")
	rootCmd.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose output")
	rootCmd.Flags().StringVarP(&cfg.LogFile, "log-file", "l", "", "Log file for progress tracking (default: stdout)")
	rootCmd.Flags().IntVarP(&cfg.LogInterval, "log-interval", "i", 5, "Logging interval in seconds (default: 5)")
	rootCmd.Flags().Int64VarP(&cfg.MaxBatches, "max-batches", "m", 0, "Give up after this many batches (0 = unbounded)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runMiner(cmd *cobra.Command, args []string) {
	cfg.Prefix = args[0]
	cfg.Suffix = args[1]

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	// Setup logging
	setupLogging()

	// Create miner; parses the difficulty and seeds the nonce counter
	miner, err := minerpkg.NewMiner(cfg, logger)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.Verbose {
		logger.Printf("Starting nonce search with %d workers...", cfg.Workers)
		logger.Printf("Target: %s", cfg.TargetDescription())
	}

	// Set up signal handling for Ctrl+C
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start mining in a goroutine
	resultChan := make(chan *types.Result, 1)
	go func() {
		resultChan <- miner.Mine()
	}()

	// Wait for either completion or signal
	select {
	case result := <-resultChan:
		// Search completed normally
		if result == nil {
			logger.Println("No nonce found.")
			return
		}

		if cfg.Verbose {
			logger.Printf("🎉 Found nonce!")
			logger.Printf("Nonce: %s", result.Nonce)
			logger.Printf("Hash:  %s", result.Hash)
			logger.Printf("Attempts: %d", result.Attempts)
			logger.Printf("Duration: %v", result.Duration)

			// Calculate rate safely
			rate := 0.0
			if result.Duration.Seconds() > 0 {
				rate = float64(result.Attempts) / result.Duration.Seconds()
			}
			logger.Printf("Rate: %.2f hashes/sec", rate)
		}

		// Machine-consumable output line
		fmt.Printf("%s%s%s\n", cfg.Prefix, result.Nonce, cfg.Suffix)
	case <-sigChan:
		// Interrupted by Ctrl+C
		logger.Println("\nReceived interrupt signal (Ctrl+C). Stopping workers...")

		miner.Stop()

		// Wait for the search to stop
		<-resultChan

		logger.Printf("Search stopped after %d attempts.", miner.Attempts())
	}
}

func setupLogging() {
	if cfg.LogFile != "" {
		// Log to file
		file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		logger = logpkg.NewWriter(file)
		logger.SetFlags(log.LstdFlags | log.Lmicroseconds)
	} else {
		// Log to stdout
		logger = logpkg.New()
		logger.SetFlags(log.LstdFlags)
	}
}
