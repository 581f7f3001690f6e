package fftengine

import "math"

type Window int

const (
	Rectangular Window = iota
	Hanning
	Hamming
	Blackman
)

// ApplyWindow applies the specified window function to x in place and
// returns it.
func ApplyWindow(x []complex64, window Window) []complex64 {
	n := len(x)

	for i := 0; i < n; i++ {
		var w float64
		switch window {
		case Rectangular:
			w = 1.0
		case Hanning:
			w = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		case Hamming:
			w = 0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/float64(n-1))
		case Blackman:
			w = 0.42 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1)) +
				0.08*math.Cos(4*math.Pi*float64(i)/float64(n-1))
		}
		fw := float32(w)
		x[i] = complex(real(x[i])*fw, imag(x[i])*fw)
	}

	return x
}

// PowerSpectrum computes the power spectrum of an FFT result.
func PowerSpectrum(x []complex64) []float32 {
	result := make([]float32, len(x))
	for i := range x {
		result[i] = real(x[i])*real(x[i]) + imag(x[i])*imag(x[i])
	}
	return result
}
