package config

import (
	"errors"
	"testing"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()
	if cfg.Workers <= 0 {
		t.Errorf("Workers = %d, want positive", cfg.Workers)
	}
	if cfg.BatchSize != DefaultBatchSize {
		t.Errorf("BatchSize = %d, want %d", cfg.BatchSize, DefaultBatchSize)
	}
	if cfg.Difficulty != DefaultDifficulty {
		t.Errorf("Difficulty = %q, want %q", cfg.Difficulty, DefaultDifficulty)
	}
	if cfg.LogInterval != 5 {
		t.Errorf("LogInterval = %d, want 5", cfg.LogInterval)
	}
	if cfg.MaxBatches != 0 {
		t.Errorf("MaxBatches = %d, want 0", cfg.MaxBatches)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "defaults are valid",
			mutate:  func(c *Config) {},
			wantErr: nil,
		},
		{
			name:    "empty difficulty",
			mutate:  func(c *Config) { c.Difficulty = "" },
			wantErr: ErrNoDifficulty,
		},
		{
			name:    "zero batch size",
			mutate:  func(c *Config) { c.BatchSize = 0 },
			wantErr: ErrBadBatchSize,
		},
		{
			name:    "negative batch size",
			mutate:  func(c *Config) { c.BatchSize = -8 },
			wantErr: ErrBadBatchSize,
		},
		{
			name:    "zero log interval",
			mutate:  func(c *Config) { c.LogInterval = 0 },
			wantErr: ErrBadLogInterval,
		},
		{
			name:    "negative max batches",
			mutate:  func(c *Config) { c.MaxBatches = -1 },
			wantErr: ErrBadMaxBatches,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTargetDescription(t *testing.T) {
	cfg := NewConfig()
	cfg.Difficulty = "abc"
	got := cfg.TargetDescription()
	want := "digest < 0xabc (right-padded to 64 hex digits)"
	if got != want {
		t.Errorf("TargetDescription() = %q, want %q", got, want)
	}
}
