package worker

import (
	"math/big"

	"github.com/holiman/uint256"

	"github.com/blockwork/pow-miner/internal/crypto"
	"github.com/blockwork/pow-miner/pkg/types"
)

var one = big.NewInt(1)

// Worker hashes one batch of consecutive candidates per call and
// evaluates the digests against the target threshold.
type Worker struct {
	config *types.WorkerConfig

	// Pre-allocated buffers for performance
	msgBuf    []byte
	digests   [][crypto.DigestLen]byte
	flags     []bool
	candidate big.Int
}

// NewWorker creates a new worker instance
func NewWorker(config *types.WorkerConfig) *Worker {
	return &Worker{
		config:  config,
		msgBuf:  make([]byte, 0, len(config.Prefix)+crypto.NonceHexWidth+len(config.Suffix)),
		digests: make([][crypto.DigestLen]byte, config.BatchSize),
		flags:   make([]bool, config.BatchSize),
	}
}

// SearchBatch hashes candidates base+0 .. base+BatchSize-1 and returns
// the lowest-index candidate whose digest falls below the target, or nil
// when the whole batch misses. The tie-break is candidate index, never
// digest value.
func (w *Worker) SearchBatch(base *big.Int) *types.WorkerResult {
	w.hashBatch(base)
	w.flags = EvaluateInto(w.flags[:0], w.digests, w.config.Target)

	idx, ok := FirstHit(w.flags)
	if !ok {
		return nil
	}
	return &types.WorkerResult{
		Nonce:  new(big.Int).Add(base, big.NewInt(int64(idx))),
		Digest: w.digests[idx],
	}
}

// hashBatch fills w.digests for the batch starting at base. Candidates
// are rendered as minimal-width lowercase hex, no padding.
func (w *Worker) hashBatch(base *big.Int) {
	w.candidate.Set(base)
	for i := range w.digests {
		if i > 0 {
			w.candidate.Add(&w.candidate, one)
		}
		w.msgBuf = crypto.AppendMessage(w.msgBuf[:0], w.config.Prefix, w.candidate.Text(16), w.config.Suffix)
		w.digests[i] = crypto.HashMessage(w.msgBuf)
	}
}

// Evaluate compares each digest against target as a big-endian unsigned
// integer and returns the per-candidate flags, index-aligned with the
// input.
func Evaluate(digests [][crypto.DigestLen]byte, target *uint256.Int) []bool {
	return EvaluateInto(make([]bool, 0, len(digests)), digests, target)
}

// EvaluateInto is Evaluate appending into a caller-owned slice.
func EvaluateInto(flags []bool, digests [][crypto.DigestLen]byte, target *uint256.Int) []bool {
	for i := range digests {
		flags = append(flags, crypto.DigestBelow(&digests[i], target))
	}
	return flags
}

// FirstHit returns the lowest index with a true flag.
func FirstHit(flags []bool) (int, bool) {
	for i, hit := range flags {
		if hit {
			return i, true
		}
	}
	return 0, false
}
