package sim

import "testing"

func TestRollTriggered(t *testing.T) {
	held := State{Phase: HeldAtInitialStrike, ActiveStrike: 35}
	rolled := State{Phase: Rolled, ActiveStrike: 40}

	tests := []struct {
		name  string
		state State
		spot  float64
		want  bool
	}{
		{"below trigger", held, 42.49, false},
		{"at trigger", held, 42.5, true},
		{"above trigger", held, 50, true},
		{"already rolled", rolled, 50, false},
		{"already rolled below", rolled, 30, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rollTriggered(tt.state, tt.spot, 42.5); got != tt.want {
				t.Fatalf("rollTriggered(%v, %v) = %v, want %v", tt.state.Phase, tt.spot, got, tt.want)
			}
		})
	}
}
