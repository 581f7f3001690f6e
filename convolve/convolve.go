// Package convolve computes discrete convolutions via the fftengine
// FFT, the way the teacher library layered Convolve/FastConvolve on
// top of its own FFT/IFFT. It is a convenience consumer of the core
// engine, not part of it.
package convolve

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/andewx/fftengine"
)

// Convolve computes the discrete convolution of x and y using FFT.
// Pads x and y to the next power of 2 from len(x)+len(y)-1.
func Convolve(x, y []complex64) ([]complex64, error) {
	if len(x) == 0 && len(y) == 0 {
		return nil, nil
	}
	n := len(x) + len(y) - 1
	N := fftengine.NextPow2(n)
	xp := fftengine.ZeroPad(x, N)
	yp := fftengine.ZeroPad(y, N)
	if err := FastConvolve(xp, yp); err != nil {
		return nil, err
	}
	return xp[:n], nil
}

// FastConvolve computes the discrete convolution of x and y using FFT
// and stores the result in x, clobbering y. x and y must already be
// the same power-of-two length, zero-padded for at least half their
// length.
func FastConvolve(x, y []complex64) error {
	if len(x) == 0 && len(y) == 0 {
		return nil
	}
	if len(x) != len(y) {
		return fmt.Errorf("convolve: x and y must have the same length, given: %d, %d", len(x), len(y))
	}
	if !fftengine.IsPow2(len(x)) {
		return &fftengine.SizeError{Context: "FastConvolve", Want: "a power of two", Got: len(x)}
	}
	plan, err := fftengine.Prepare(planCapacity(len(x)))
	if err != nil {
		return err
	}
	return convolveOne(plan, x, y)
}

// planCapacity rounds a transform length up to the smallest size
// Plan.Prepare accepts: Prepare requires a capacity of at least 4 so
// the radix-8 butterfly always has a base case to build on, even
// though a Plan of that capacity also runs smaller transforms (1, 2,
// or 4 points) directly through the base case with no butterfly
// stages at all.
func planCapacity(n int) int {
	if n < 4 {
		return 4
	}
	return n
}

// MultiConvolve computes the discrete convolution of many arrays
// using a hierarchical FFT algorithm that builds up larger
// convolutions from disproportionately-sized inputs. Slower and more
// allocation-heavy than FastMultiConvolve; prefer that when all
// inputs share one length.
func MultiConvolve(X ...[]complex64) ([]complex64, error) {
	arraysByLength := map[int][][]complex64{}
	mx := 1
	returnLength := 1
	for _, x := range X {
		n := fftengine.NextPow2(2 * len(x))
		arraysByLength[n] = append(arraysByLength[n], fftengine.ZeroPad(x, n))
		if n > mx {
			mx = n
		}
		returnLength += len(x) - 1
	}
	if returnLength <= 0 {
		return nil, nil
	}

	for i := 1; i <= mx; i *= 2 {
		arrays := arraysByLength[i]
		if len(arrays) == 0 {
			continue
		}
		if len(arraysByLength) == 1 {
			return multiConvolveSingleLevel(arrays, returnLength)
		}
		plan, err := fftengine.Prepare(planCapacity(fftengine.NextPow2(i)))
		if err != nil {
			return nil, err
		}
		for j := 0; j < len(arrays); j += 2 {
			if j+1 < len(arrays) {
				if err := convolveOne(plan, arrays[j], arrays[j+1]); err != nil {
					return nil, err
				}
			}
			arraysByLength[2*i] = append(arraysByLength[2*i], fftengine.ZeroPad(arrays[j], 2*i))
			if 2*i > mx {
				mx = 2 * i
			}
		}
		delete(arraysByLength, i)
	}
	return arraysByLength[mx][0][:returnLength], nil
}

func multiConvolveSingleLevel(arrays [][]complex64, returnLength int) ([]complex64, error) {
	if len(arrays) == 2 {
		if err := FastConvolve(arrays[0], arrays[1]); err != nil {
			return nil, err
		}
		return arrays[0][:returnLength], nil
	}
	if len(arrays) == 1 {
		return arrays[0][:returnLength], nil
	}
	N := len(arrays[0])
	n2 := fftengine.NextPow2(len(arrays))
	data := make([]complex64, n2*N)
	for j, array := range arrays {
		copy(data[N*j:], array)
	}
	for j := len(arrays); j < n2; j++ {
		data[N*j] = 1.0
	}
	err := FastMultiConvolve(data, N, false)
	return data[:returnLength], err
}

// FastMultiConvolve computes the discrete convolution of many arrays
// using a hierarchical FFT algorithm, storing the result in the first
// section of X and zeroing the remainder. X is the concatenation of
// n*m equal-length, zero-padded arrays; n and the array count (m)
// must both be powers of two. multithread parallelizes across
// runtime.NumCPU() goroutines, which can slow things down for small X.
func FastMultiConvolve(X []complex64, n int, multithread bool) error {
	N := len(X)
	if N%n != 0 {
		return fmt.Errorf("convolve: len(X) %d not divisible by n (%d)", N, n)
	}
	if !fftengine.IsPow2(n) {
		return fmt.Errorf("convolve: n (%d) must be a power of two", n)
	}
	if !fftengine.IsPow2(N / n) {
		return fmt.Errorf("convolve: array count (%d) must be a power of two", N/n)
	}

	for ; n != N; n <<= 1 {
		n2 := n << 1
		plan, err := fftengine.Prepare(planCapacity(fftengine.NextPow2(n2)))
		if err != nil {
			return err
		}
		if multithread {
			var wg sync.WaitGroup
			var firstErr atomic.Value
			numCPU := runtime.NumCPU()
			for j := 0; j < numCPU; j++ {
				wg.Add(1)
				go func(j int) {
					defer wg.Done()
					s := (j * (N / n2)) / numCPU
					e := ((j + 1) * (N / n2)) / numCPU
					for i := s; i < e; i++ {
						if err := convolveOne(plan, X[i*n2:i*n2+n], X[i*n2+n:i*n2+n2]); err != nil {
							firstErr.CompareAndSwap(nil, err)
						}
					}
				}(j)
			}
			wg.Wait()
			if err, ok := firstErr.Load().(error); ok {
				return err
			}
		} else {
			for i := 0; i < N; i += n2 {
				if err := convolveOne(plan, X[i:i+n], X[i+n:i+n2]); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// convolveOne computes the discrete convolution of x and y in place,
// via Plan/ForwardComplex/InverseComplex, zeroing y as scratch.
func convolveOne(plan *fftengine.Plan, x, y []complex64) error {
	scratch := make([]complex64, len(x))
	copy(scratch, x)
	if err := fftengine.ForwardComplex(plan, scratch, x); err != nil {
		return err
	}
	copy(scratch, y)
	if err := fftengine.ForwardComplex(plan, scratch, y); err != nil {
		return err
	}
	for i := range x {
		x[i] *= y[i]
		y[i] = 0
	}
	copy(scratch, x)
	return fftengine.InverseComplex(plan, scratch, x)
}
