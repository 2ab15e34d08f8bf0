package approval

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/mchavarria/wayfinder/pkg/models"
)

// DefaultDecisionPath returns where headless runs look for a decision
// document under the given working directory.
func DefaultDecisionPath(dir string) string {
	return filepath.Join(dir, ".wayfinder", "decision.yaml")
}

// WaitForDecision blocks until a valid decision document appears at path,
// then consumes (removes) it. The document is YAML:
//
//	decision: accept | revise | abort
//	feedback: required for revise
//
// A file already present when the wait starts is consumed immediately.
// Partially written or unparsable files are ignored until a later write
// produces a valid document; a parsable document with an invalid decision
// is an error.
func WaitForDecision(ctx context.Context, path string) (models.ApprovalDecision, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return models.ApprovalDecision{}, fmt.Errorf("create decision directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return models.ApprovalDecision{}, fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return models.ApprovalDecision{}, fmt.Errorf("watch %s: %w", dir, err)
	}

	// The file may predate the watch.
	if decision, ok, err := tryConsume(path); err != nil || ok {
		return decision, err
	}

	for {
		select {
		case event, open := <-watcher.Events:
			if !open {
				return models.ApprovalDecision{}, fmt.Errorf("watcher closed unexpectedly")
			}
			if event.Name != path || !event.Op.Has(fsnotify.Create|fsnotify.Write) {
				continue
			}
			if decision, ok, err := tryConsume(path); err != nil || ok {
				return decision, err
			}
		case werr, open := <-watcher.Errors:
			if !open {
				return models.ApprovalDecision{}, fmt.Errorf("watcher closed unexpectedly")
			}
			return models.ApprovalDecision{}, fmt.Errorf("watch %s: %w", dir, werr)
		case <-ctx.Done():
			return models.ApprovalDecision{}, ctx.Err()
		}
	}
}

// tryConsume attempts to read, validate, and remove the decision file.
// ok is false when the file is absent or not yet a parsable document.
func tryConsume(path string) (models.ApprovalDecision, bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return models.ApprovalDecision{}, false, nil
	}
	if err != nil {
		return models.ApprovalDecision{}, false, fmt.Errorf("read decision file: %w", err)
	}

	var decision models.ApprovalDecision
	if err := yaml.Unmarshal(data, &decision); err != nil || decision.Kind == "" {
		// Likely a partial write; wait for the next event.
		return models.ApprovalDecision{}, false, nil
	}
	if err := decision.Validate(); err != nil {
		return models.ApprovalDecision{}, false, fmt.Errorf("decision file: %w", err)
	}

	if err := os.Remove(path); err != nil {
		return models.ApprovalDecision{}, false, fmt.Errorf("consume decision file: %w", err)
	}
	return decision, true, nil
}
