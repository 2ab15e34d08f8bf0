// Package coordinator implements the fan-out/fan-in dispatch of search
// tasks: all tasks launch concurrently against one trip request and the
// caller blocks at a barrier until every task has reported an outcome.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mchavarria/wayfinder/internal/search"
	"github.com/mchavarria/wayfinder/pkg/models"
)

// DefaultTaskTimeout bounds each search task when no timeout is configured.
const DefaultTaskTimeout = 30 * time.Second

// ErrUnknownKind is returned when a subset dispatch names a category no
// registered searcher covers.
var ErrUnknownKind = errors.New("no searcher registered for kind")

// Coordinator dispatches registered searchers in parallel and joins on
// their collective completion. Individual task failures never fail the
// dispatch; they are recorded as failure outcomes.
type Coordinator struct {
	searchers map[models.TaskKind]search.Searcher
	timeout   time.Duration
	onOutcome func(models.SearchOutcome)
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithTaskTimeout sets the per-task timeout. A task that has not reported
// within this duration is recorded as a timeout failure; its siblings are
// unaffected.
func WithTaskTimeout(d time.Duration) Option {
	return func(c *Coordinator) {
		c.timeout = d
	}
}

// WithOutcomeHook registers a callback invoked as each task reports.
// Used for progress display; called from task goroutines, so the hook
// must be safe for concurrent use.
func WithOutcomeHook(fn func(models.SearchOutcome)) Option {
	return func(c *Coordinator) {
		c.onOutcome = fn
	}
}

// New creates a Coordinator over the given searchers.
func New(searchers []search.Searcher, opts ...Option) (*Coordinator, error) {
	if len(searchers) == 0 {
		return nil, errors.New("at least one searcher is required")
	}

	byKind := make(map[models.TaskKind]search.Searcher, len(searchers))
	for _, s := range searchers {
		kind := s.Kind()
		if !kind.Valid() {
			return nil, fmt.Errorf("searcher has unknown kind %q", kind)
		}
		if _, dup := byKind[kind]; dup {
			return nil, fmt.Errorf("duplicate searcher for kind %q", kind)
		}
		byKind[kind] = s
	}

	c := &Coordinator{
		searchers: byKind,
		timeout:   DefaultTaskTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Kinds returns the registered categories in display order.
func (c *Coordinator) Kinds() []models.TaskKind {
	var kinds []models.TaskKind
	for _, k := range models.AllKinds() {
		if _, ok := c.searchers[k]; ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Dispatch launches every registered searcher concurrently against req and
// blocks until all have produced an outcome. The returned set always holds
// exactly one entry per registered kind. Dispatch itself fails only when
// the request is malformed.
func (c *Coordinator) Dispatch(ctx context.Context, req models.TripRequest) (models.OutcomeSet, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return c.dispatch(ctx, req, c.Kinds()), nil
}

// DispatchSubset re-runs only the named categories, for partial re-fan-out
// after revision feedback. Kinds must be registered and non-empty.
func (c *Coordinator) DispatchSubset(ctx context.Context, req models.TripRequest, kinds []models.TaskKind) (models.OutcomeSet, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if len(kinds) == 0 {
		return nil, errors.New("subset dispatch requires at least one kind")
	}
	seen := make(map[models.TaskKind]bool, len(kinds))
	for _, k := range kinds {
		if _, ok := c.searchers[k]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKind, k)
		}
		if seen[k] {
			return nil, fmt.Errorf("duplicate kind %q in subset", k)
		}
		seen[k] = true
	}
	return c.dispatch(ctx, req, kinds), nil
}

func (c *Coordinator) dispatch(ctx context.Context, req models.TripRequest, kinds []models.TaskKind) models.OutcomeSet {
	results := make(chan models.SearchOutcome, len(kinds))
	for _, kind := range kinds {
		go c.runTask(ctx, c.searchers[kind], req, results)
	}

	// The barrier: every dispatched task reports exactly once, success,
	// failure, or timeout.
	outcomes := make(models.OutcomeSet, len(kinds))
	for range kinds {
		o := <-results
		outcomes[o.Kind] = o
	}
	return outcomes
}

type taskReturn struct {
	result   *models.SearchResult
	err      error
	panicked bool
}

// runTask executes one searcher with its own timeout and converts every
// failure mode, including panics, into a SearchOutcome. The inner goroutine
// may outlive the timeout; its late result is discarded.
func (c *Coordinator) runTask(ctx context.Context, s search.Searcher, req models.TripRequest, results chan<- models.SearchOutcome) {
	kind := s.Kind()
	start := time.Now()

	tctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	done := make(chan taskReturn, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- taskReturn{err: fmt.Errorf("%s: %v", models.FailurePanic, r), panicked: true}
			}
		}()
		result, err := s.Search(tctx, req)
		done <- taskReturn{result: result, err: err}
	}()

	var outcome models.SearchOutcome
	select {
	case ret := <-done:
		outcome = c.outcomeFor(kind, ret)
	case <-tctx.Done():
		outcome = models.SearchOutcome{
			Kind:    kind,
			Failure: timeoutFailure(ctx),
		}
	}
	outcome.Elapsed = time.Since(start)

	if c.onOutcome != nil {
		c.onOutcome(outcome)
	}
	results <- outcome
}

func (c *Coordinator) outcomeFor(kind models.TaskKind, ret taskReturn) models.SearchOutcome {
	switch {
	case ret.panicked:
		return models.SearchOutcome{
			Kind:    kind,
			Failure: &models.Failure{Reason: ret.err.Error(), Retryable: false},
		}
	case ret.err != nil:
		retryable := true
		reason := ret.err.Error()
		if errors.Is(ret.err, context.Canceled) {
			reason = models.FailureCanceled
			retryable = false
		} else if errors.Is(ret.err, context.DeadlineExceeded) {
			reason = models.FailureTimeout
		}
		return models.SearchOutcome{
			Kind:    kind,
			Failure: &models.Failure{Reason: reason, Retryable: retryable},
		}
	case ret.result == nil:
		return models.SearchOutcome{
			Kind:    kind,
			Failure: &models.Failure{Reason: "searcher returned no result", Retryable: false},
		}
	default:
		return models.SearchOutcome{Kind: kind, Result: ret.result}
	}
}

// timeoutFailure distinguishes a per-task deadline from cancellation of
// the whole dispatch.
func timeoutFailure(parent context.Context) *models.Failure {
	if parent.Err() != nil {
		return &models.Failure{Reason: models.FailureCanceled, Retryable: false}
	}
	return &models.Failure{Reason: models.FailureTimeout, Retryable: true}
}
