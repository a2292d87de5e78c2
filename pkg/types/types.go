package types

import (
	"math/big"
	"time"

	"github.com/holiman/uint256"
)

// Result represents a completed search
type Result struct {
	Nonce    string // winning nonce, left-zero-padded to 64 hex digits
	Hash     string // hex digest of the winning message
	Attempts int64
	Duration time.Duration
}

// WorkerConfig contains the immutable search parameters shared by all
// workers for one run.
type WorkerConfig struct {
	Prefix    []byte       // raw bytes hashed before the nonce hex
	Suffix    []byte       // raw bytes hashed after the nonce hex
	Target    *uint256.Int // digest must be strictly below this
	BatchSize int
}

// WorkerResult is a single batch hit reported by a worker.
type WorkerResult struct {
	Nonce  *big.Int // winning candidate value
	Digest [32]byte // its blake2s-256 digest
}
