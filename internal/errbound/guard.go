package errbound

import "math"

var legendreGuard = [...]uint{0, 0, 6, 8, 11, 13, 15, 17, 20, 22, 24}

// Error growth of Bonnet's recursion: log2 of the operator norm r and of the
// leading constant A.
const (
	legendreLog2R = 2.271553303163612
	legendreLog2A = 1.815573220150449
)

// LegendreGuard estimates the guard bits the Bonnet recursion needs for degree n.
func LegendreGuard(n int) uint {
	if n < 0 {
		return 0
	}
	if n < len(legendreGuard) {
		return legendreGuard[n]
	}
	return uint(math.Ceil(legendreLog2A + float64(n)*legendreLog2R + 1))
}

var hermiteGuard = [...]uint{0, 0, 4, 6, 8, 9, 10, 12, 13, 14, 15}

// Heuristic; only the number of passes depends on these, never the result.
const (
	hermiteLog2R = 0.25
	hermiteLog2A = 4.0
)

// HermiteGuard estimates the guard bits the Hermite recursion needs for degree n.
func HermiteGuard(n int) uint {
	if n < 0 {
		return 0
	}
	if n < len(hermiteGuard) {
		return hermiteGuard[n]
	}
	return uint(math.Ceil(hermiteLog2A + float64(n)*hermiteLog2R + 2*math.Log2(float64(n))))
}
