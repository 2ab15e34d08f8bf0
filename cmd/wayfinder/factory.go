package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/mchavarria/wayfinder/internal/api"
	"github.com/mchavarria/wayfinder/internal/approval"
	"github.com/mchavarria/wayfinder/internal/config"
	"github.com/mchavarria/wayfinder/internal/consolidate"
	"github.com/mchavarria/wayfinder/internal/coordinator"
	"github.com/mchavarria/wayfinder/internal/search"
	"github.com/mchavarria/wayfinder/internal/state"
	"github.com/mchavarria/wayfinder/internal/workflow"
	"github.com/mchavarria/wayfinder/pkg/models"
)

// buildDriver wires searchers, consolidator, approval gate, and run
// store into a workflow driver rooted at the current directory.
// The caller owns the returned store and must close it.
func buildDriver(cfg *config.Config) (*workflow.Driver, state.RunStore, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, nil, fmt.Errorf("get working directory: %w", err)
	}

	db, err := state.Open(state.DefaultDBPath(cwd))
	if err != nil {
		return nil, nil, fmt.Errorf("open state database: %w", err)
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrate state database: %w", err)
	}

	// Without credentials the planner still works; sections fall back
	// to deterministic summaries instead of generated narratives.
	var analyst search.Analyst
	var narrator consolidate.Narrator
	runner, err := buildRunner(cfg)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	if runner != nil {
		analyst = runner
		narrator = narratorWithTimeout{inner: runner, limit: cfg.Timeouts.Narrative}
	} else {
		fmt.Fprintln(os.Stderr, "warning: no Anthropic credentials configured, using plain narratives")
	}

	coord, err := coordinator.New(search.Default(analyst),
		coordinator.WithTaskTimeout(cfg.Timeouts.Search))
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("create coordinator: %w", err)
	}

	driver := workflow.New(
		coord,
		consolidate.New(models.AllKinds(), narrator),
		approval.NewGate(db),
		db,
		workflow.WithMaxRevisions(cfg.Workflow.MaxRevisions),
		workflow.WithLogger(workflow.NewDebugLoggerForDir(cwd)),
	)
	return driver, db, nil
}

// narratorWithTimeout bounds each narrative call. Search analysis is
// already bounded by the coordinator's per-task timeout.
type narratorWithTimeout struct {
	inner consolidate.Narrator
	limit time.Duration
}

func (n narratorWithTimeout) Run(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, n.limit)
	defer cancel()
	return n.inner.Run(ctx, prompt)
}

// buildRunner creates an API runner from the configuration. Returns
// nil without error when no credentials are available.
func buildRunner(cfg *config.Config) (*api.Runner, error) {
	if cfg.Anthropic.UseBedrock {
		client, err := api.NewClient(api.ClientConfig{
			Model:         anthropic.Model(cfg.Anthropic.Model),
			UseAWSBedrock: true,
			AWSRegion:     cfg.Anthropic.AWSRegion,
			AWSProfile:    cfg.Anthropic.AWSProfile,
		})
		if err != nil {
			return nil, fmt.Errorf("create Bedrock client: %w", err)
		}
		return api.NewRunner(client), nil
	}

	key, err := config.GetAPIKey(cfg)
	if errors.Is(err, config.ErrNoAPIKey) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	client, err := api.NewClient(api.ClientConfig{
		Model:  anthropic.Model(cfg.Anthropic.Model),
		APIKey: key,
	})
	if err != nil {
		return nil, fmt.Errorf("create API client: %w", err)
	}
	return api.NewRunner(client), nil
}
