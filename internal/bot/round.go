package bot

import "math"

// round2 rounds to 2 decimal places, half away from zero.
// 4.99 * 0.13 = 0.6487 rounds to 0.65; 4.99 * 1.13 = 5.6387 rounds to 5.64.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
