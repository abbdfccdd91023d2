// Package worker provides an asynchronous worker pool for embedding
// study items using the provided embeddings.Embedder, optionally
// persisting each vector through a vector.Driver.
//
// The pool decouples the embed command's item loop from embedding API
// latency: items are enqueued, embedded concurrently, and collected
// after Close drains the queue.
package worker

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alignlab/simcor/pkg/embeddings"
	"github.com/alignlab/simcor/pkg/vector"
)

var (
	defaultNumWorkers   uint = 3
	defaultJobQueueSize uint = 256
)

// Job is a single study item to embed.
type Job struct {
	// Label is the item text sent to the embedder.
	Label string

	// Study groups items in the vector store. Optional.
	Study string
}

// Config is the configuration options for the worker pool.
type Config struct {
	// Embedder generates the text embeddings. Required.
	Embedder embeddings.Embedder

	// VectorDriver optionally persists each embedding as it is produced.
	VectorDriver vector.Driver

	// NumWorkers is the number of background workers in the pool.
	NumWorkers uint

	// QueueSize is the capacity of the buffered job channel (defaults to 256).
	QueueSize uint

	// Logger is the provided zap logger
	Logger *zap.Logger
}

// Pool embeds items asynchronously via a worker pool.
type Pool struct {
	config *Config
	queue  chan Job
	wg     sync.WaitGroup
	logger *zap.Logger

	mu      sync.Mutex
	vectors map[string][]float32
	errs    []error
}

// NewPool creates a new Pool and starts its worker goroutines.
func NewPool(c *Config) (*Pool, error) {
	if c.Embedder == nil {
		return nil, fmt.Errorf("embedder is required")
	}

	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}

	if c.NumWorkers == 0 {
		c.NumWorkers = defaultNumWorkers
	}

	if c.QueueSize == 0 {
		c.QueueSize = defaultJobQueueSize
	}

	if c.NumWorkers > uint(math.MaxInt) {
		return nil, fmt.Errorf("NumWorkers %d exceeds max int", c.NumWorkers)
	}

	p := &Pool{
		config:  c,
		queue:   make(chan Job, c.QueueSize),
		logger:  c.Logger,
		vectors: make(map[string][]float32),
	}

	p.wg.Add(int(c.NumWorkers))
	for i := range c.NumWorkers {
		go p.worker(i)
	}

	return p, nil
}

// Enqueue submits an item for embedding.
// Returns true if enqueued, false if the queue is full, resulting in the job being dropped
func (p *Pool) Enqueue(job Job) bool {
	select {
	case p.queue <- job:
		p.logger.Debug("job queued",
			zap.String("label", job.Label),
		)
		return true
	default:
		p.logger.Error("job not queued, queue full, job dropped",
			zap.String("label", job.Label),
		)
		return false
	}
}

// Close signals workers to stop and waits for in-flight jobs to drain.
// Call this before reading results via Vectors or Errs.
func (p *Pool) Close() {
	close(p.queue)
	p.wg.Wait()
}

// Vectors returns the embeddings for the given labels in order. Returns
// an error if any job failed or any label was never embedded (dropped
// or failed job).
func (p *Pool) Vectors(labels []string) ([][]float32, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.errs) > 0 {
		return nil, fmt.Errorf("%d of %d items failed to embed: %w", len(p.errs), len(labels), p.errs[0])
	}

	out := make([][]float32, len(labels))
	for i, label := range labels {
		v, ok := p.vectors[label]
		if !ok {
			return nil, fmt.Errorf("no embedding produced for item %q", label)
		}
		out[i] = v
	}

	return out, nil
}

// Errs returns the errors accumulated by failed jobs.
func (p *Pool) Errs() []error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]error(nil), p.errs...)
}

// worker is the inner worker goroutine that continuously pulls jobs off
// the queue until it is closed and drained.
func (p *Pool) worker(id uint) {
	defer p.wg.Done()

	for job := range p.queue {
		if err := p.embedItem(job); err != nil {
			p.logger.Error("embedding item failed",
				zap.Uint("worker", id),
				zap.String("label", job.Label),
				zap.Error(err),
			)

			p.mu.Lock()
			p.errs = append(p.errs, err)
			p.mu.Unlock()
			continue
		}

		p.logger.Debug("embedded item",
			zap.Uint("worker", id),
			zap.String("label", job.Label),
		)
	}
}

// embedItem embeds one item and records (and optionally persists) the
// resulting vector.
func (p *Pool) embedItem(job Job) error {
	ctx := context.Background()

	emb, err := p.config.Embedder.Embed(ctx, job.Label)
	if err != nil {
		return fmt.Errorf("embedding %q: %w", job.Label, err)
	}

	p.mu.Lock()
	p.vectors[job.Label] = emb
	p.mu.Unlock()

	if p.config.VectorDriver == nil {
		return nil
	}

	err = p.config.VectorDriver.Add(ctx, []vector.Document{{
		ID:        uuid.NewString(),
		Label:     job.Label,
		Study:     job.Study,
		Embedding: emb,
	}})
	if err != nil {
		return fmt.Errorf("storing embedding for %q: %w", job.Label, err)
	}

	return nil
}
