package fftengine

import "unsafe"

// Each Forward*/Inverse* call below allocates its own butterflyLanes
// and twiddle-load scratch rather than storing them on the Plan: a
// Plan is meant to be shared across goroutines running transforms
// concurrently against disjoint buffers, and that scratch is mutated
// on every stage, so keeping it plan-owned would need per-call
// locking or a pool in place of a plain allocation.

// ForwardComplex computes the forward FFT of a complex signal of
// length N (a power of two, N <= plan.MaxSizeComplex()) into spectrum,
// which must have the same length. signal is clobbered; it is used
// as scratch for the duration of the call.
func ForwardComplex(plan *Plan, signal, spectrum []complex64) error {
	if err := checkComplexArgs("ForwardComplex", plan, signal, spectrum); err != nil {
		return err
	}
	lanes, bl, wr := plan.resolveSimd().lanes(), newButterflyLanes(), make([]complex64, 8)
	runComplexPipeline(signal, spectrum, len(signal), false, plan.forward, lanes, bl, wr)
	return nil
}

// InverseComplex computes the inverse FFT of a complex spectrum of
// length N into signal, scaling by 1/N. spectrum is clobbered.
func InverseComplex(plan *Plan, spectrum, signal []complex64) error {
	if err := checkComplexArgs("InverseComplex", plan, signal, spectrum); err != nil {
		return err
	}
	N := len(signal)
	lanes, bl, wr := plan.resolveSimd().lanes(), newButterflyLanes(), make([]complex64, 8)
	runComplexPipeline(spectrum, signal, N, true, plan.inverse, lanes, bl, wr)
	scaleComplex(signal, 1/float32(N))
	return nil
}

// ForwardReal computes the forward FFT of a real signal of length N
// (a power of two, N <= 2*plan.MaxSizeComplex()). The non-redundant
// spectrum X[0..N/2] is written into the first N/2+1 positions of
// spectrum, which must have length N; the remainder is scratch.
// signal is clobbered.
func ForwardReal(plan *Plan, signal []float32, spectrum []complex64) error {
	if err := checkRealArgs("ForwardReal", plan, signal, spectrum); err != nil {
		return err
	}
	N := len(signal)
	M := N / 2
	bufA := reinterpretFloat32(signal)
	bufB := spectrum[:M]

	lanes, bl, wr := plan.resolveSimd().lanes(), newButterflyLanes(), make([]complex64, 8)
	runComplexPipeline(bufA, bufB, M, false, plan.forward, lanes, bl, wr)
	z := bufB

	xe := bufA       // M slots, free: the original signal data was consumed into z
	xo := spectrum[M:] // M slots, free: untouched by the complex sub-pipeline
	stride := 2 * plan.maxSizeComplex / N
	realForwardFinalize(spectrum, z, xe, xo, plan.realTwiddles, M, stride)
	return nil
}

// InverseReal computes the inverse FFT of a real-signal spectrum
// (X[0..N/2] in the first N/2+1 positions of spectrum, length N) into
// signal, a real array of length N, scaling by 1/(N/2). spectrum is
// clobbered.
func InverseReal(plan *Plan, spectrum []complex64, signal []float32) error {
	if err := checkRealArgs("InverseReal", plan, signal, spectrum); err != nil {
		return err
	}
	N := len(signal)
	M := N / 2
	bufA := reinterpretFloat32(signal)
	bufB := spectrum[:M]

	xe := bufA
	xo := spectrum[M:]
	stride := 2 * plan.maxSizeComplex / N

	realInversePrepare(bufB, spectrum[:M+1], xe, xo, plan.realTwiddles, M, stride)

	lanes, bl, wr := plan.resolveSimd().lanes(), newButterflyLanes(), make([]complex64, 8)
	runComplexPipeline(bufB, bufA, M, true, plan.inverse, lanes, bl, wr)
	scaleComplex(bufA, 1/float32(M))
	return nil
}

// runComplexPipeline runs the full autosort/basecase/butterfly stage
// sequence for a complex transform of size total, ping-ponging
// between src and dst, and leaves the result in dst. src is clobbered.
func runComplexPipeline(src, dst []complex64, total int, inverse bool, table []complex64, lanes int, bl *butterflyLanes, wr []complex64) {
	b, k := decompose(total)
	cur, nxt := src, dst

	for i := k; i >= 1; i-- {
		N := b
		for j := 0; j < i; j++ {
			N *= 8
		}
		autosort(nxt, cur, N, total)
		cur, nxt = nxt, cur
	}

	baseCase(nxt, cur, b, total, inverse)
	cur, nxt = nxt, cur

	for i := 1; i <= k; i++ {
		N := b
		for j := 0; j < i; j++ {
			N *= 8
		}
		butterfly(nxt, cur, table, N, total, inverse, lanes, bl, wr)
		cur, nxt = nxt, cur
	}
}

// decompose finds b in {1,2,4} and k>=0 such that total = b*8^k, as
// required by spec: total is a power of two, so this reduces to
// splitting log2(total) into 3*k + log2(b).
func decompose(total int) (b, k int) {
	m := 0
	for t := total; t > 1; t >>= 1 {
		m++
	}
	rem := m % 3
	return 1 << rem, (m - rem) / 3
}

func scaleComplex(x []complex64, s float32) {
	c := complex(s, 0)
	for i := range x {
		x[i] *= c
	}
}

// reinterpretFloat32 views a []float32 of even length as a []complex64
// of half the length, taking consecutive real/imag pairs. complex64
// and float32 share 4-byte alignment, so this is always valid.
func reinterpretFloat32(x []float32) []complex64 {
	return unsafe.Slice((*complex64)(unsafe.Pointer(&x[0])), len(x)/2)
}

func checkComplexArgs(ctx string, plan *Plan, signal, spectrum []complex64) error {
	if len(signal) != len(spectrum) {
		return &SizeError{Context: ctx, Want: "equal to spectrum length", Got: len(signal)}
	}
	N := len(signal)
	if !IsPow2(N) {
		return &SizeError{Context: ctx, Want: "a power of two", Got: N}
	}
	if N > plan.maxSizeComplex {
		return &SizeError{Context: ctx, Want: "within plan capacity", Got: N}
	}
	s0, s1 := complexBytes(signal)
	p0, p1 := complexBytes(spectrum)
	if slicesOverlap(s0, s1, p0, p1) {
		return &AliasingError{Context: ctx}
	}
	return nil
}

func checkRealArgs(ctx string, plan *Plan, signal []float32, spectrum []complex64) error {
	N := len(signal)
	if !IsPow2(N) {
		return &SizeError{Context: ctx, Want: "a power of two", Got: N}
	}
	if len(spectrum) != N {
		return &SizeError{Context: ctx, Want: "equal to signal length", Got: len(spectrum)}
	}
	if N > 2*plan.maxSizeComplex {
		return &SizeError{Context: ctx, Want: "within 2x plan capacity", Got: N}
	}
	s0, s1 := float32Bytes(signal)
	p0, p1 := complexBytes(spectrum)
	if slicesOverlap(s0, s1, p0, p1) {
		return &AliasingError{Context: ctx}
	}
	return nil
}

func complexBytes(x []complex64) (uintptr, uintptr) {
	if len(x) == 0 {
		return 0, 0
	}
	start := uintptr(unsafe.Pointer(&x[0]))
	return start, start + uintptr(len(x))*8
}

func float32Bytes(x []float32) (uintptr, uintptr) {
	if len(x) == 0 {
		return 0, 0
	}
	start := uintptr(unsafe.Pointer(&x[0]))
	return start, start + uintptr(len(x))*4
}

func slicesOverlap(a0, a1, b0, b1 uintptr) bool {
	return a0 < b1 && b0 < a1
}
