package state

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mchavarria/wayfinder/pkg/models"
)

// tempDBPath returns a path to a temp database file.
func tempDBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "test.db")
}

// setupTestDB creates a new temporary database for testing.
func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(tempDBPath(t))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.Migrate(); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	return db
}

func sampleRun() *models.RunState {
	now := time.Now().UTC().Truncate(time.Second)
	return &models.RunState{
		ID:    "run-1",
		Phase: models.PhaseAwaitingApproval,
		Request: models.TripRequest{
			Destination: "Barcelona, Spain",
			Dates:       "March 15-20, 2026",
			Travelers:   2,
			Budget:      "$2000 total",
		},
		Outcomes: models.OutcomeSet{
			models.KindFlight: {
				Kind:   models.KindFlight,
				Result: &models.SearchResult{Kind: models.KindFlight, Options: []models.Option{{Name: "Aer Lingus", Price: "$420"}}},
			},
			models.KindHotel: {
				Kind:    models.KindHotel,
				Failure: &models.Failure{Reason: models.FailureTimeout, Retryable: true},
			},
		},
		Plan: &models.TravelPlan{
			ID:      "plan-1",
			Version: 1,
			Sections: map[models.TaskKind]models.PlanSection{
				models.KindFlight: {Kind: models.KindFlight, Status: models.SectionComplete},
			},
			Summary: "a plan",
		},
		Revisions:    1,
		SuspendToken: "tok-abc",
		StartedAt:    now,
		UpdatedAt:    now,
	}
}

func TestOpen(t *testing.T) {
	path := tempDBPath(t)
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	if db.Path() != path {
		t.Errorf("Path() = %q, want %q", db.Path(), path)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("database file does not exist at %s", path)
	}
}

func TestOpen_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "state.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("database file does not exist at %s", path)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	if err := db.Migrate(); err != nil {
		t.Fatalf("second Migrate failed: %v", err)
	}
}

func TestCreateAndGetRun(t *testing.T) {
	db := setupTestDB(t)
	run := sampleRun()

	if err := db.CreateRun(run); err != nil {
		t.Fatalf("CreateRun failed: %v", err)
	}

	got, err := db.GetRun(run.ID)
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}

	if got.Phase != run.Phase {
		t.Errorf("Phase = %q, want %q", got.Phase, run.Phase)
	}
	if got.Request.Destination != run.Request.Destination {
		t.Errorf("Request.Destination = %q, want %q", got.Request.Destination, run.Request.Destination)
	}
	if got.Revisions != run.Revisions {
		t.Errorf("Revisions = %d, want %d", got.Revisions, run.Revisions)
	}
	if got.SuspendToken != run.SuspendToken {
		t.Errorf("SuspendToken = %q, want %q", got.SuspendToken, run.SuspendToken)
	}
	if len(got.Outcomes) != len(run.Outcomes) {
		t.Fatalf("Outcomes has %d entries, want %d", len(got.Outcomes), len(run.Outcomes))
	}
	if o := got.Outcomes[models.KindHotel]; o.OK() || o.Failure.Reason != models.FailureTimeout {
		t.Errorf("hotel outcome round-trip = %+v, want timeout failure", o)
	}
	if got.Plan == nil || got.Plan.ID != "plan-1" {
		t.Errorf("Plan round-trip = %+v, want plan-1", got.Plan)
	}
}

func TestGetRun_NotFound(t *testing.T) {
	db := setupTestDB(t)
	if _, err := db.GetRun("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("GetRun error = %v, want ErrRunNotFound", err)
	}
}

func TestGetRunByToken(t *testing.T) {
	db := setupTestDB(t)
	run := sampleRun()
	if err := db.CreateRun(run); err != nil {
		t.Fatalf("CreateRun failed: %v", err)
	}

	got, err := db.GetRunByToken("tok-abc")
	if err != nil {
		t.Fatalf("GetRunByToken failed: %v", err)
	}
	if got.ID != run.ID {
		t.Errorf("GetRunByToken ID = %q, want %q", got.ID, run.ID)
	}

	if _, err := db.GetRunByToken("stale-token"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("GetRunByToken(stale) error = %v, want ErrRunNotFound", err)
	}
	if _, err := db.GetRunByToken(""); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("GetRunByToken(empty) error = %v, want ErrRunNotFound", err)
	}
}

func TestUpdateRun(t *testing.T) {
	db := setupTestDB(t)
	run := sampleRun()
	if err := db.CreateRun(run); err != nil {
		t.Fatalf("CreateRun failed: %v", err)
	}

	run.Phase = models.PhaseCompleted
	run.SuspendToken = ""
	run.Result = "approved"
	run.UpdatedAt = time.Now().UTC()
	if err := db.UpdateRun(run); err != nil {
		t.Fatalf("UpdateRun failed: %v", err)
	}

	got, err := db.GetRun(run.ID)
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if got.Phase != models.PhaseCompleted {
		t.Errorf("Phase = %q, want completed", got.Phase)
	}
	if got.SuspendToken != "" {
		t.Errorf("SuspendToken = %q, want cleared", got.SuspendToken)
	}
	if got.Result != "approved" {
		t.Errorf("Result = %q, want approved", got.Result)
	}
}

func TestUpdateRun_NotFound(t *testing.T) {
	db := setupTestDB(t)
	run := sampleRun()
	if err := db.UpdateRun(run); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("UpdateRun error = %v, want ErrRunNotFound", err)
	}
}

func TestListRuns(t *testing.T) {
	db := setupTestDB(t)

	first := sampleRun()
	first.ID = "run-older"
	first.SuspendToken = "tok-1"
	first.StartedAt = time.Now().UTC().Add(-time.Hour)
	second := sampleRun()
	second.ID = "run-newer"
	second.SuspendToken = "tok-2"

	for _, r := range []*models.RunState{first, second} {
		if err := db.CreateRun(r); err != nil {
			t.Fatalf("CreateRun(%s) failed: %v", r.ID, err)
		}
	}

	runs, err := db.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("ListRuns returned %d runs, want 2", len(runs))
	}
	if runs[0].ID != "run-newer" || runs[1].ID != "run-older" {
		t.Errorf("ListRuns order = [%s, %s], want newest first", runs[0].ID, runs[1].ID)
	}
}
