package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

var ErrRunnerStopped = errors.New("game runner stopped")

// Store persists snapshot blobs under a slot name.
type Store interface {
	Save(ctx context.Context, slot string, blob []byte) error
}

// Publisher receives the statistics after every tick.
type Publisher interface {
	Publish(stats GameStatistics)
}

type RunnerConfig struct {
	TickInterval time.Duration
	// AutosaveEvery is counted in runner ticks. Zero disables autosave.
	AutosaveEvery uint64
	Slot          string
}

type command struct {
	fn   func(*Engine)
	done chan struct{}
}

// Runner is the only goroutine that touches the engine. Ticks and commands
// are interleaved on it one at a time.
type Runner struct {
	engine    *Engine
	cfg       RunnerConfig
	store     Store
	publisher Publisher
	commands  chan command
	saves     chan []byte
	stopped   chan struct{}
	ticks     uint64
	logger    *slog.Logger
}

func NewRunner(engine *Engine, cfg RunnerConfig, store Store, publisher Publisher, logger *slog.Logger) *Runner {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = 100 * time.Millisecond
	}
	if cfg.Slot == "" {
		cfg.Slot = "default"
	}
	return &Runner{
		engine:    engine,
		cfg:       cfg,
		store:     store,
		publisher: publisher,
		commands:  make(chan command),
		saves:     make(chan []byte, 1),
		stopped:   make(chan struct{}),
		logger:    logger,
	}
}

// Run drives ticks until ctx is cancelled, then writes a final save.
func (r *Runner) Run(ctx context.Context) error {
	logger := r.logger.With("component", "runner", "operation", "run")
	logger.Info("Game runner started", "tick_interval", r.cfg.TickInterval, "autosave_every", r.cfg.AutosaveEvery)

	ticker := time.NewTicker(r.cfg.TickInterval)
	defer ticker.Stop()
	defer close(r.stopped)

	for {
		select {
		case <-ctx.Done():
			r.finalSave()
			logger.Info("Game runner stopped", "ticks", r.ticks)
			return nil
		case cmd := <-r.commands:
			cmd.fn(r.engine)
			close(cmd.done)
		case <-ticker.C:
			r.step()
		}
	}
}

func (r *Runner) step() {
	r.engine.Tick()
	r.ticks++

	if r.publisher != nil {
		r.publisher.Publish(r.engine.Statistics())
	}
	if r.cfg.AutosaveEvery > 0 && r.ticks%r.cfg.AutosaveEvery == 0 {
		r.requestSave()
	}
}

// requestSave hands a snapshot to the saver without waiting. When a save is
// already queued the newer one is dropped.
func (r *Runner) requestSave() {
	if r.store == nil {
		return
	}
	blob, err := r.engine.Serialize()
	if err != nil {
		r.logger.Error("Failed to serialize snapshot", "component", "runner", "error", err)
		return
	}
	select {
	case r.saves <- blob:
	default:
		r.logger.Debug("Autosave skipped, previous save still pending", "component", "runner")
	}
}

func (r *Runner) finalSave() {
	if r.store == nil {
		return
	}
	blob, err := r.engine.Serialize()
	if err != nil {
		r.logger.Error("Failed to serialize final snapshot", "component", "runner", "error", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.store.Save(ctx, r.cfg.Slot, blob); err != nil {
		r.logger.Error("Failed to write final save", "component", "runner", "error", err)
	}
}

// RunSaver writes queued snapshots until ctx is cancelled.
func (r *Runner) RunSaver(ctx context.Context) error {
	logger := r.logger.With("component", "runner", "operation", "saver", "slot", r.cfg.Slot)
	for {
		select {
		case <-ctx.Done():
			return nil
		case blob := <-r.saves:
			if err := r.store.Save(ctx, r.cfg.Slot, blob); err != nil {
				logger.Error("Autosave failed", "error", err)
				continue
			}
			logger.Debug("Autosave written", "bytes", len(blob))
		}
	}
}

// Do runs fn on the runner goroutine between ticks and waits for it. If ctx
// ends after fn was queued, fn may still run later.
func (r *Runner) Do(ctx context.Context, fn func(*Engine)) error {
	cmd := command{fn: fn, done: make(chan struct{})}
	select {
	case r.commands <- cmd:
	case <-ctx.Done():
		return ctx.Err()
	case <-r.stopped:
		return ErrRunnerStopped
	}
	select {
	case <-cmd.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SaveNow serializes on the runner and writes the blob before returning.
func (r *Runner) SaveNow(ctx context.Context) error {
	if r.store == nil {
		return fmt.Errorf("no save store configured")
	}
	var (
		blob []byte
		err  error
	)
	if doErr := r.Do(ctx, func(e *Engine) { blob, err = e.Serialize() }); doErr != nil {
		return doErr
	}
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}
	if err := r.store.Save(ctx, r.cfg.Slot, blob); err != nil {
		return fmt.Errorf("failed to write save: %w", err)
	}
	return nil
}
