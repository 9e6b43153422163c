package payroll

import "testing"

func TestComputeNet(t *testing.T) {
	tests := []struct {
		name       string
		gross      float64
		deductions float64
		want       float64
	}{
		{"no deductions", 5000, 0, 5000},
		{"typical", 5000, 1250.50, 3749.50},
		{"rounds to cents", 1000.005, 0.001, 1000},
		{"deductions exceed gross", 1000, 1500, 0},
		{"zero gross", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeNet(tt.gross, tt.deductions); got != tt.want {
				t.Fatalf("ComputeNet(%v, %v) = %v, want %v", tt.gross, tt.deductions, got, tt.want)
			}
		})
	}
}
