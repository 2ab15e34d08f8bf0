package approval

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mchavarria/wayfinder/pkg/models"
)

func TestWaitForDecision_FileAlreadyPresent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decision.yaml")
	if err := os.WriteFile(path, []byte("decision: accept\n"), 0o644); err != nil {
		t.Fatalf("write decision file: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	decision, err := WaitForDecision(ctx, path)
	if err != nil {
		t.Fatalf("WaitForDecision() error = %v", err)
	}
	if decision.Kind != models.DecisionAccept {
		t.Errorf("decision = %q, want accept", decision.Kind)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("decision file was not consumed")
	}
}

func TestWaitForDecision_FileWrittenLater(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decision.yaml")

	go func() {
		time.Sleep(100 * time.Millisecond)
		os.WriteFile(path, []byte("decision: revise\nfeedback: cheaper hotels\n"), 0o644)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	decision, err := WaitForDecision(ctx, path)
	if err != nil {
		t.Fatalf("WaitForDecision() error = %v", err)
	}
	if decision.Kind != models.DecisionRevise {
		t.Errorf("decision = %q, want revise", decision.Kind)
	}
	if decision.Feedback != "cheaper hotels" {
		t.Errorf("feedback = %q, want %q", decision.Feedback, "cheaper hotels")
	}
}

func TestWaitForDecision_ContextCanceled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decision.yaml")

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if _, err := WaitForDecision(ctx, path); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("WaitForDecision() error = %v, want deadline exceeded", err)
	}
}

func TestWaitForDecision_InvalidDecision(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decision.yaml")
	if err := os.WriteFile(path, []byte("decision: revise\n"), 0o644); err != nil {
		t.Fatalf("write decision file: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := WaitForDecision(ctx, path); err == nil {
		t.Error("WaitForDecision() with revise and no feedback error = nil, want error")
	}
}
