package fftengine

import (
	"math"
	"math/bits"
)

// IsPow2 returns true if n is a perfect power of two (1, 2, 4, 8, ...)
// and false otherwise.
// Algorithm from: https://graphics.stanford.edu/~seander/bithacks.html#DetermineIfPowerOf2
func IsPow2(n int) bool {
	if n <= 0 {
		return false
	}
	return n&(n-1) == 0
}

// NextPow2 returns the smallest power of two >= n.
func NextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// ZeroPad pads x with 0s at the end into a new array of length n.
// This does not alter x, and creates an entirely new array.
// This should only be used as a convenience function; it isn't meant
// for the hot path since it allocates.
func ZeroPad(x []complex64, n int) []complex64 {
	y := make([]complex64, n)
	copy(y, x)
	return y
}

// ZeroPadToNextPow2 pads x with 0s at the end into a new array of
// length 2^m >= len(x). This does not alter x.
func ZeroPadToNextPow2(x []complex64) []complex64 {
	return ZeroPad(x, NextPow2(len(x)))
}

// Float32ToComplex64Array converts a float32 array to the equivalent
// complex64 array using an imaginary part of 0.
func Float32ToComplex64Array(x []float32) []complex64 {
	y := make([]complex64, len(x))
	for i, v := range x {
		y[i] = complex(v, 0)
	}
	return y
}

// Complex64ToFloat32Array converts a complex64 array to the
// equivalent float32 array, taking only the real part.
func Complex64ToFloat32Array(x []complex64) []float32 {
	y := make([]float32, len(x))
	for i, v := range x {
		y[i] = real(v)
	}
	return y
}

// RoundFloat32Array calls math.Round (applied in float32) on each
// entry in x, changing the array in-place.
func RoundFloat32Array(x []float32) {
	for i, v := range x {
		x[i] = float32(math.Round(float64(v)))
	}
}
