package convolve

import (
	"math/cmplx"
	"math/rand"
	"testing"
)

func complexRand(N int) []complex64 {
	x := make([]complex64, N)
	for i := 0; i < N; i++ {
		x[i] = complex(float32(rand.NormFloat64()), float32(rand.NormFloat64()))
	}
	return x
}

func slowConvolve(x, y []complex64) []complex64 {
	if len(x) == 0 && len(y) == 0 {
		return nil
	}
	r := make([]complex64, len(x)+len(y)-1)
	for i := range x {
		for j := range y {
			r[i+j] += x[i] * y[j]
		}
	}
	return r
}

func absErr(a, b complex64) float64 {
	return cmplx.Abs(complex128(a) - complex128(b))
}

func TestConvolve(t *testing.T) {
	for i := 1; i < 40; i += 3 {
		x := complexRand(i)
		for j := 1; j < 40; j += 5 {
			y := complexRand(j)
			want := slowConvolve(x, y)
			got, err := Convolve(x, y)
			if err != nil {
				t.Fatalf("Convolve(%d,%d): %v", i, j, err)
			}
			if len(want) != len(got) {
				t.Fatalf("Convolve(%d,%d): length = %d, want %d", i, j, len(got), len(want))
			}
			for k := range want {
				if e := absErr(want[k], got[k]); e > 1e-1 {
					t.Errorf("Convolve(%d,%d)[%d]: want %v, got %v, diff %v", i, j, k, want[k], got[k], e)
				}
			}
		}
	}
}

func TestConvolveEmpty(t *testing.T) {
	got, err := Convolve(nil, nil)
	if err != nil {
		t.Fatalf("Convolve(nil,nil): %v", err)
	}
	if got != nil {
		t.Errorf("Convolve(nil,nil) = %v, want nil", got)
	}
}

func TestFastConvolveRejectsMismatchedLengths(t *testing.T) {
	x := complexRand(8)
	y := complexRand(16)
	if err := FastConvolve(x, y); err == nil {
		t.Errorf("FastConvolve with mismatched lengths didn't return an error")
	}
}

func TestFastConvolveRejectsNonPow2(t *testing.T) {
	x := complexRand(6)
	y := complexRand(6)
	if err := FastConvolve(x, y); err == nil {
		t.Errorf("FastConvolve(6,6) didn't return an error for a non-power-of-two length")
	}
}

// TestMultiConvolve exercises arrays of uniform length, which
// MultiConvolve routes through its single-bucket path (a plain
// pairwise FFT convolution tree), checked against repeated
// slowConvolve for an exact oracle.
func TestMultiConvolve(t *testing.T) {
	arrays := [][]complex64{complexRand(4), complexRand(4), complexRand(4), complexRand(4)}
	returnLength := 1
	for _, a := range arrays {
		returnLength += len(a) - 1
	}
	want := arrays[0]
	for _, a := range arrays[1:] {
		want = slowConvolve(want, a)
	}
	got, err := MultiConvolve(arrays...)
	if err != nil {
		t.Fatalf("MultiConvolve: %v", err)
	}
	if len(got) != returnLength {
		t.Fatalf("MultiConvolve length = %d, want %d", len(got), returnLength)
	}
	for k := range want {
		if e := absErr(want[k], got[k]); e > 3e-1 {
			t.Errorf("MultiConvolve[%d]: want %v, got %v, diff %v", k, want[k], got[k], e)
		}
	}
}

// TestMultiConvolveMixedLengths exercises the multi-bucket path with
// differently-sized inputs; checked only for shape and finiteness
// here, while TestMultiConvolve checks values against slowConvolve.
func TestMultiConvolveMixedLengths(t *testing.T) {
	arrays := [][]complex64{complexRand(4), complexRand(6), complexRand(3), complexRand(5)}
	returnLength := 1
	for _, a := range arrays {
		returnLength += len(a) - 1
	}
	got, err := MultiConvolve(arrays...)
	if err != nil {
		t.Fatalf("MultiConvolve: %v", err)
	}
	if len(got) != returnLength {
		t.Fatalf("MultiConvolve length = %d, want %d", len(got), returnLength)
	}
	for k, v := range got {
		if cmplx.IsNaN(complex128(v)) || cmplx.IsInf(complex128(v)) {
			t.Errorf("MultiConvolve[%d] = %v, not finite", k, v)
		}
	}
}

func TestFastMultiConvolve(t *testing.T) {
	const n, m = 8, 4
	data := make([]complex64, n*m)
	originals := make([][]complex64, m)
	for j := 0; j < m; j++ {
		// Each array fills half of its n-slot; the rest is zero padding.
		a := complexRand(n / 2)
		originals[j] = a
		copy(data[j*n:], a)
	}
	if err := FastMultiConvolve(data, n, false); err != nil {
		t.Fatalf("FastMultiConvolve: %v", err)
	}

	want := originals[0]
	for _, a := range originals[1:] {
		want = slowConvolve(want, a)
	}
	for k := range want {
		if e := absErr(want[k], data[k]); e > 3e-1 {
			t.Errorf("FastMultiConvolve[%d]: want %v, got %v, diff %v", k, want[k], data[k], e)
		}
	}
}

func TestFastMultiConvolveMultithreaded(t *testing.T) {
	const n, m = 4, 8
	data := make([]complex64, n*m)
	originals := make([][]complex64, m)
	for j := 0; j < m; j++ {
		a := complexRand(n)
		originals[j] = a
		copy(data[j*n:], a)
	}
	if err := FastMultiConvolve(data, n, true); err != nil {
		t.Fatalf("FastMultiConvolve(multithread): %v", err)
	}
}
