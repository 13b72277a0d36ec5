package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/andyouranurag/NewsSentimentAnalysis/pkg/util"
)

// Stage names a step of a single pipeline run.
type Stage string

const (
	StageFetching     Stage = "fetching"
	StageParsing      Stage = "parsing"
	StageClassifying  Stage = "classifying"
	StageAggregating  Stage = "aggregating"
	StageComposing    Stage = "composing"
	StageTranslating  Stage = "translating"
	StageSynthesizing Stage = "synthesizing"
	StageDone         Stage = "done"
	StageFailed       Stage = "failed"
)

var stageOrder = map[Stage]int{
	StageFetching:     1,
	StageParsing:      2,
	StageClassifying:  3,
	StageAggregating:  4,
	StageComposing:    5,
	StageTranslating:  6,
	StageSynthesizing: 7,
	StageDone:         8,
}

// Terminal reports whether no further transition is possible.
func (s Stage) Terminal() bool {
	return s == StageDone || s == StageFailed
}

// Run tracks one request through the stages. Stages only move forward and a
// failure short-circuits everything after it.
type Run struct {
	id      string
	logger  *slog.Logger
	now     func() time.Time
	mu      sync.Mutex
	current Stage
	entered time.Time
	started time.Time
	reason  string
	timings map[Stage]time.Duration
}

// NewRun starts a run in the idle state. The id is taken from ctx when the
// transport attached one.
func NewRun(ctx context.Context, logger *slog.Logger) *Run {
	id := RequestIDFromContext(ctx)
	if id == "" {
		id = uuid.NewString()
	}
	now := util.NowUTC()
	return &Run{
		id:      id,
		logger:  logger.With("run_id", id),
		now:     util.NowUTC,
		started: now,
		entered: now,
		timings: make(map[Stage]time.Duration),
	}
}

// ID returns the run identifier.
func (r *Run) ID() string { return r.id }

// Stage returns the current stage, or "" before the first transition.
func (r *Run) Stage() Stage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Reason returns the failure reason once the run failed.
func (r *Run) Reason() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reason
}

// Timings returns how long each completed stage took.
func (r *Run) Timings() map[Stage]time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[Stage]time.Duration, len(r.timings))
	for k, v := range r.timings {
		out[k] = v
	}
	return out
}

// Enter moves the run to stage.
func (r *Run) Enter(stage Stage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current.Terminal() {
		return fmt.Errorf("pipeline run %s already %s", r.id, r.current)
	}
	next, ok := stageOrder[stage]
	if !ok {
		return fmt.Errorf("unknown pipeline stage %q", stage)
	}
	if next <= stageOrder[r.current] {
		return fmt.Errorf("pipeline stage %s cannot follow %s", stage, r.current)
	}
	r.closeCurrentLocked()
	r.current = stage
	r.logger.Debug("pipeline stage entered", "stage", stage)
	return nil
}

// Fail records err as the terminal reason and returns it unchanged.
func (r *Run) Fail(err error) error {
	if err == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current.Terminal() {
		return err
	}
	failedAt := r.current
	r.closeCurrentLocked()
	r.current = StageFailed
	r.reason = err.Error()
	r.logger.Warn("pipeline run failed", "stage", failedAt, "reason", r.reason, "elapsed_ms", r.now().Sub(r.started).Milliseconds())
	return err
}

// Done marks the run as successfully finished.
func (r *Run) Done() {
	if err := r.Enter(StageDone); err != nil {
		return
	}
	r.logger.Info("pipeline run finished", "elapsed_ms", r.now().Sub(r.started).Milliseconds())
}

func (r *Run) closeCurrentLocked() {
	now := r.now()
	if r.current != "" {
		r.timings[r.current] += now.Sub(r.entered)
	}
	r.entered = now
}

type runKey struct{}
type requestIDKey struct{}

// WithRun attaches run to ctx so nested stages report into the same run.
func WithRun(ctx context.Context, run *Run) context.Context {
	return context.WithValue(ctx, runKey{}, run)
}

// RunFromContext returns the run attached to ctx, if any.
func RunFromContext(ctx context.Context) *Run {
	run, _ := ctx.Value(runKey{}).(*Run)
	return run
}

// Advance enters stage on the run carried by ctx; it is a no-op without one.
func Advance(ctx context.Context, stage Stage) {
	if run := RunFromContext(ctx); run != nil {
		_ = run.Enter(stage)
	}
}

// ContextWithRequestID stores the inbound request id.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the inbound request id or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
