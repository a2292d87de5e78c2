package config

import (
	"errors"
	"runtime"
)

// DefaultDifficulty is the stock target: 0xabc behind eight zero
// nibbles, right-padded to 256 bits at parse time.
const DefaultDifficulty = "00000000abc"

// DefaultBatchSize is the number of candidates hashed per iteration.
const DefaultBatchSize = 256

// Errors
var (
	ErrNoDifficulty   = errors.New("difficulty must not be empty")
	ErrBadBatchSize   = errors.New("batch size must be positive")
	ErrBadLogInterval = errors.New("log interval must be positive")
	ErrBadMaxBatches  = errors.New("max batches must not be negative")
)

// Config holds the application configuration
type Config struct {
	Workers     int
	BatchSize   int
	Difficulty  string
	Prefix      string
	Suffix      string
	Verbose     bool
	LogFile     string
	LogInterval int   // Logging interval in seconds
	MaxBatches  int64 // Stop after this many batches without a hit; 0 means unbounded
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		Workers:     runtime.NumCPU(),
		BatchSize:   DefaultBatchSize,
		Difficulty:  DefaultDifficulty,
		LogInterval: 5, // Default 5 seconds
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Difficulty == "" {
		return ErrNoDifficulty
	}
	if c.BatchSize <= 0 {
		return ErrBadBatchSize
	}
	if c.LogInterval <= 0 {
		return ErrBadLogInterval
	}
	if c.MaxBatches < 0 {
		return ErrBadMaxBatches
	}
	return nil
}

// TargetDescription returns a human-readable description of the target
func (c *Config) TargetDescription() string {
	return "digest < 0x" + c.Difficulty + " (right-padded to 64 hex digits)"
}
