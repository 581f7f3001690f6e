package fftengine

import (
	"math"
	"testing"
)

func TestApplyWindowRectangularIsIdentity(t *testing.T) {
	x := complexRand64(16)
	want := copyComplex64(x)
	got := ApplyWindow(copyComplex64(x), Rectangular)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Rectangular window changed x[%d]: %v -> %v", i, want[i], got[i])
		}
	}
}

func TestApplyWindowEndpointsZero(t *testing.T) {
	for _, w := range []Window{Hanning, Blackman} {
		x := make([]complex64, 32)
		for i := range x {
			x[i] = complex(1, 0)
		}
		ApplyWindow(x, w)
		if e := math.Abs(float64(real(x[0]))); e > 1e-4 {
			t.Errorf("window %v: x[0] = %v, expected ~0", w, x[0])
		}
		last := len(x) - 1
		if e := math.Abs(float64(real(x[last]))); e > 1e-4 {
			t.Errorf("window %v: x[%d] = %v, expected ~0", w, last, x[last])
		}
	}
}

func TestPowerSpectrumNonNegative(t *testing.T) {
	x := complexRand64(64)
	p := PowerSpectrum(x)
	if len(p) != len(x) {
		t.Fatalf("PowerSpectrum length = %d, want %d", len(p), len(x))
	}
	for i, v := range p {
		if v < 0 {
			t.Errorf("PowerSpectrum[%d] = %v, expected >= 0", i, v)
		}
		want := real(x[i])*real(x[i]) + imag(x[i])*imag(x[i])
		if v != want {
			t.Errorf("PowerSpectrum[%d] = %v, want %v", i, v, want)
		}
	}
}
