package payroll

import "math"

// ComputeNet derives the net pay from gross pay and deductions, rounded to
// cents. Negative results clamp to zero.
func ComputeNet(grossPay, deductions float64) float64 {
	net := grossPay - deductions
	if net < 0 {
		net = 0
	}
	return math.Round(net*100) / 100
}
