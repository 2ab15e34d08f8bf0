package models

import "testing"

func TestPhase_Valid(t *testing.T) {
	tests := []struct {
		name  string
		phase Phase
		want  bool
	}{
		{"init is valid", PhaseInit, true},
		{"fan_out is valid", PhaseFanOut, true},
		{"consolidating is valid", PhaseConsolidating, true},
		{"awaiting_approval is valid", PhaseAwaitingApproval, true},
		{"completed is valid", PhaseCompleted, true},
		{"aborted is valid", PhaseAborted, true},
		{"empty string is invalid", Phase(""), false},
		{"unknown phase is invalid", Phase("paused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.phase.Valid(); got != tt.want {
				t.Errorf("Phase(%q).Valid() = %v, want %v", tt.phase, got, tt.want)
			}
		})
	}
}

func TestPhase_Terminal(t *testing.T) {
	tests := []struct {
		phase Phase
		want  bool
	}{
		{PhaseInit, false},
		{PhaseFanOut, false},
		{PhaseConsolidating, false},
		{PhaseAwaitingApproval, false},
		{PhaseCompleted, true},
		{PhaseAborted, true},
	}

	for _, tt := range tests {
		if got := tt.phase.Terminal(); got != tt.want {
			t.Errorf("Phase(%q).Terminal() = %v, want %v", tt.phase, got, tt.want)
		}
	}
}

func TestApprovalDecision_Validate(t *testing.T) {
	tests := []struct {
		name     string
		decision ApprovalDecision
		wantErr  bool
	}{
		{"accept is valid", ApprovalDecision{Kind: DecisionAccept}, false},
		{"abort is valid", ApprovalDecision{Kind: DecisionAbort}, false},
		{"revise with feedback is valid", ApprovalDecision{Kind: DecisionRevise, Feedback: "cheaper hotels"}, false},
		{"revise without feedback is invalid", ApprovalDecision{Kind: DecisionRevise}, true},
		{"empty kind is invalid", ApprovalDecision{}, true},
		{"unknown kind is invalid", ApprovalDecision{Kind: DecisionKind("maybe")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.decision.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
