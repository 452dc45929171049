package knowledge

import "testing"

func TestDistanceToScore(t *testing.T) {
	tests := []struct {
		distance float64
		want     float64
	}{
		{0, 1},
		{0.25, 0.75},
		{1, 0},
		{1.5, 0},
		{-0.2, 1},
	}

	for _, tt := range tests {
		if got := DistanceToScore(tt.distance); got != tt.want {
			t.Errorf("DistanceToScore(%v) = %v, want %v", tt.distance, got, tt.want)
		}
	}
}
