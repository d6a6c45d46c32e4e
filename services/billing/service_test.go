package billing

import "testing"

func TestComputeSubtotal(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		unitPrice float64
		want      float64
	}{
		{"two at ten", 2, 10, 20},
		{"one at twenty five", 1, 25, 25},
		{"unpriced drug bills at zero", 4, 0, 0},
		{"fractional price", 3, 2.5, 7.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeSubtotal(tt.quantity, tt.unitPrice); got != tt.want {
				t.Errorf("ComputeSubtotal(%d, %v) = %v, want %v", tt.quantity, tt.unitPrice, got, tt.want)
			}
		})
	}
}
