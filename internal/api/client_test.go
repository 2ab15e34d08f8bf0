package api

import (
	"os"
	"strings"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
)

func TestNewClient_WithAPIKey(t *testing.T) {
	cfg := ClientConfig{
		APIKey: "test-key-123",
		Model:  anthropic.ModelClaudeSonnet4_20250514,
	}

	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	if client.Model() != anthropic.ModelClaudeSonnet4_20250514 {
		t.Errorf("Model = %q, want %q", client.Model(), anthropic.ModelClaudeSonnet4_20250514)
	}

	if client.Tracker() == nil {
		t.Error("Tracker should not be nil")
	}
}

func TestNewClient_NoAPIKey(t *testing.T) {
	original := os.Getenv("ANTHROPIC_API_KEY")
	defer os.Setenv("ANTHROPIC_API_KEY", original)
	os.Unsetenv("ANTHROPIC_API_KEY")

	if _, err := NewClient(ClientConfig{}); err == nil {
		t.Error("expected error when no API key is available")
	}
}

func TestNewClient_DefaultModel(t *testing.T) {
	client, err := NewClient(ClientConfig{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	if client.Model() != anthropic.ModelClaudeSonnet4_20250514 {
		t.Errorf("Model = %q, want default sonnet", client.Model())
	}
}

func TestTranslateModelForBedrock(t *testing.T) {
	tests := []struct {
		name  string
		model anthropic.Model
		want  string
	}{
		{"sonnet", anthropic.ModelClaudeSonnet4_20250514, "us.anthropic.claude-sonnet-4-20250514-v1:0"},
		{"already bedrock", anthropic.Model("us.anthropic.claude-sonnet-4-20250514-v1:0"), "us.anthropic.claude-sonnet-4-20250514-v1:0"},
		{"unknown passthrough", anthropic.Model("custom-model"), "custom-model"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateModelForBedrock(tt.model)
			if string(got) != tt.want {
				t.Errorf("translateModelForBedrock() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClient_IsBedrock(t *testing.T) {
	client, err := NewClient(ClientConfig{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	if client.IsBedrock() {
		t.Error("direct API client reported as Bedrock")
	}

	if !strings.HasPrefix(string(translateModelForBedrock(anthropic.ModelClaudeSonnet4_20250514)), "us.anthropic") {
		t.Error("bedrock translation lost the inference profile prefix")
	}
}

func TestTokenTracker_Add(t *testing.T) {
	tracker := NewTokenTracker()

	tracker.Add(100, 50)
	input, output := tracker.Total()
	if input != 100 {
		t.Errorf("input = %d, want 100", input)
	}
	if output != 50 {
		t.Errorf("output = %d, want 50", output)
	}
	if tracker.Calls() != 1 {
		t.Errorf("Calls = %d, want 1", tracker.Calls())
	}
}

func TestTokenTracker_AddMultiple(t *testing.T) {
	tracker := NewTokenTracker()

	tracker.Add(100, 50)
	tracker.Add(200, 75)
	tracker.Add(50, 25)

	input, output := tracker.Total()
	if input != 350 {
		t.Errorf("input = %d, want 350", input)
	}
	if output != 150 {
		t.Errorf("output = %d, want 150", output)
	}
	if tracker.Calls() != 3 {
		t.Errorf("Calls = %d, want 3", tracker.Calls())
	}
}

func TestTokenTracker_Cost(t *testing.T) {
	tracker := NewTokenTracker()

	tracker.Add(1_000_000, 1_000_000)
	cost := tracker.Cost()

	// $3/M input + $15/M output
	if cost != 18.0 {
		t.Errorf("Cost = %f, want 18.0", cost)
	}
}

func TestTokenTracker_CostZero(t *testing.T) {
	tracker := NewTokenTracker()
	if cost := tracker.Cost(); cost != 0 {
		t.Errorf("Cost = %f, want 0", cost)
	}
}
