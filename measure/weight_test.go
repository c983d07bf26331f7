package measure

import "testing"

func TestMatchWeight(t *testing.T) {
	tests := []struct {
		name      string
		available []float64
		desired   float64
		want      float64
	}{
		{"exact", []float64{400, 700}, 700, 700},
		{"800 prefers heavier", []float64{400, 700, 900}, 800, 900},
		{"800 falls back lighter", []float64{400, 500, 700}, 800, 700},
		{"450 tries up to 500", []float64{300, 500, 700}, 450, 500},
		{"450 then lighter", []float64{300, 700}, 450, 300},
		{"450 then heavier", []float64{700, 900}, 450, 700},
		{"300 prefers lighter", []float64{100, 400}, 300, 100},
		{"300 then heavier", []float64{400, 700}, 300, 400},
		{"single", []float64{400}, 900, 400},
		{"unsorted input", []float64{900, 100, 500}, 600, 900},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchWeight(tt.available, tt.desired); got != tt.want {
				t.Errorf("matchWeight(%v, %v) = %v, want %v", tt.available, tt.desired, got, tt.want)
			}
		})
	}
}
