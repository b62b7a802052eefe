// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// PCMRange returns the smallest and largest signed value that fits in
// bitDepth bits.
func PCMRange(bitDepth int) (lo, hi int64) {
	hi = int64(1)<<(bitDepth-1) - 1
	return -hi - 1, hi
}

// ClampPCM rounds x to the nearest integer and clamps it to bitDepth bits.
func ClampPCM(x float64, bitDepth int) int32 {
	lo, hi := PCMRange(bitDepth)

	v := math.Round(x)
	if v > float64(hi) {
		return int32(hi)
	} else if v < float64(lo) {
		return int32(lo)
	}
	return int32(v)
}

// FloatToPCM converts a normalized sample in [-1, 1] to a signed integer
// of bitDepth bits.
func FloatToPCM(x float32, bitDepth int) int32 {
	// Clamp and scale
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	_, hi := PCMRange(bitDepth)
	if x < 0 {
		// full negative range: -1 maps to the minimum value
		return int32(float64(x) * float64(hi+1))
	}
	return int32(float64(x) * float64(hi))
}
