package miner

import (
	"encoding/hex"
	"math/big"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/blockwork/pow-miner/internal/config"
	"github.com/blockwork/pow-miner/internal/crypto"
	"github.com/blockwork/pow-miner/internal/logger"
	"github.com/blockwork/pow-miner/pkg/types"
	"github.com/blockwork/pow-miner/pkg/worker"
)

// Miner coordinates the batched nonce search across worker goroutines.
type Miner struct {
	config       *config.Config
	logger       *logger.Logger
	attempts     int64
	best         *types.WorkerResult
	mu           sync.RWMutex
	done         chan struct{}
	wg           sync.WaitGroup
	once         sync.Once
	workerConfig *types.WorkerConfig

	// Shared candidate counter. Advanced by one batch step before every
	// claim, so the claimed ranges tile the sequence with no repeats and
	// no gaps after the seed.
	nonceMu   sync.Mutex
	nonce     *big.Int
	batchStep *big.Int
	batches   int64
}

// NewMiner creates a new miner instance. The difficulty string is parsed
// and the nonce counter seeded here; both are immutable for the run.
func NewMiner(cfg *config.Config, log *logger.Logger) (*Miner, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}

	target, err := crypto.ParseTarget(cfg.Difficulty)
	if err != nil {
		return nil, err
	}

	seed, err := crypto.RandomSeed()
	if err != nil {
		return nil, err
	}

	workerConfig := &types.WorkerConfig{
		Prefix:    []byte(cfg.Prefix),
		Suffix:    []byte(cfg.Suffix),
		Target:    target,
		BatchSize: cfg.BatchSize,
	}

	return &Miner{
		config:       cfg,
		logger:       log,
		done:         make(chan struct{}),
		workerConfig: workerConfig,
		nonce:        seed,
		batchStep:    big.NewInt(int64(cfg.BatchSize)),
	}, nil
}

// Mine starts the search and blocks until a nonce is found, Stop is
// called, or the batch cap is exhausted. Returns nil when no nonce was
// found.
func (m *Miner) Mine() *types.Result {
	start := time.Now()

	// Start workers
	for i := 0; i < m.config.Workers; i++ {
		m.wg.Add(1)
		go m.worker()
	}

	// Start periodic logging if verbose mode is enabled
	var logTicker *time.Ticker
	var logDone chan bool
	if m.config.Verbose {
		interval := time.Duration(m.config.LogInterval) * time.Second
		logTicker = time.NewTicker(interval)
		logDone = make(chan bool)
		go m.periodicLogger(logTicker, logDone, start)

		m.logger.Printf("Search started with %d workers, batch size %d, logging every %d seconds...",
			m.config.Workers, m.config.BatchSize, m.config.LogInterval)
	}

	// Wait for completion
	m.wg.Wait()

	// Stop periodic logging
	if logTicker != nil {
		logTicker.Stop()
		close(logDone)
	}

	m.mu.RLock()
	best := m.best
	m.mu.RUnlock()
	if best == nil {
		return nil
	}

	return &types.Result{
		Nonce:    crypto.FormatNonce(best.Nonce),
		Hash:     hex.EncodeToString(best.Digest[:]),
		Attempts: atomic.LoadInt64(&m.attempts),
		Duration: time.Since(start),
	}
}

// nextBatch advances the shared counter by one batch step and returns
// the base of the claimed range. The counter moves before the claim, so
// the first batch starts one step above the seed. Returns false once the
// batch cap is exhausted.
func (m *Miner) nextBatch() (*big.Int, bool) {
	m.nonceMu.Lock()
	defer m.nonceMu.Unlock()

	if m.config.MaxBatches > 0 && m.batches >= m.config.MaxBatches {
		return nil, false
	}
	m.batches++
	m.nonce.Add(m.nonce, m.batchStep)
	return new(big.Int).Set(m.nonce), true
}

// worker runs the search loop for a single goroutine: claim a batch,
// hash and evaluate it, report a hit.
func (m *Miner) worker() {
	defer m.wg.Done()

	w := worker.NewWorker(m.workerConfig)

	for {
		select {
		case <-m.done:
			return
		default:
		}

		base, ok := m.nextBatch()
		if !ok {
			return
		}

		hit := w.SearchBatch(base)
		atomic.AddInt64(&m.attempts, int64(m.config.BatchSize))
		if hit == nil {
			continue
		}

		m.submit(hit)
		return
	}
}

// submit records a hit, preferring the lowest winning nonce when more
// than one worker reports before shutdown completes.
func (m *Miner) submit(hit *types.WorkerResult) {
	m.mu.Lock()
	if m.best == nil || hit.Nonce.Cmp(m.best.Nonce) < 0 {
		m.best = hit
	}
	m.mu.Unlock()
	m.once.Do(func() { close(m.done) })
}

// Stop stops the search
func (m *Miner) Stop() {
	m.once.Do(func() { close(m.done) })
}

// Attempts returns the number of candidates hashed so far
func (m *Miner) Attempts() int64 {
	return atomic.LoadInt64(&m.attempts)
}

// periodicLogger logs search progress at regular intervals
func (m *Miner) periodicLogger(ticker *time.Ticker, done chan bool, start time.Time) {
	for {
		select {
		case <-ticker.C:
			attempts := atomic.LoadInt64(&m.attempts)
			elapsed := time.Since(start)

			// Calculate rate safely
			rate := 0.0
			if elapsed.Seconds() > 0 {
				rate = float64(attempts) / elapsed.Seconds()
			}

			m.logger.Printf("Progress: %d attempts, %.2f hashes/sec, no nonce yet",
				attempts, rate)
		case <-done:
			return
		}
	}
}
