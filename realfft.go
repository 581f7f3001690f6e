package fftengine

// realForwardFinalize implements the forward real-signal adapter
// (C6). z is the length-M=N/2 complex spectrum produced by the
// complex FFT sub-pipeline; xeScratch is M complex64 of scratch the
// driver carves out of the signal buffer; xoScratch is M complex64 of
// scratch carved out of the unused half of the spectrum buffer. out
// receives the non-redundant spectrum X[0..N/2] in its first M+1
// positions. realTw is the plan's real_twiddles table, of length
// maxSizeComplex; stride = 2*maxSizeComplex/N relates the plan's
// table index space to this transform's N.
func realForwardFinalize(out, z, xeScratch, xoScratch []complex64, realTw []complex64, M, stride int) {
	half := M / 2 // N/4
	for k := 0; k <= half; k++ {
		kk := (M - k) % M
		zk, zkk := z[k], z[kk]
		xe := 0.5 * (zk + complexConj(zkk))
		xo := mulNegJ(0.5 * (zk - complexConj(zkk)))
		xeScratch[k] = xe
		xoScratch[k] = xo
		if kk != k {
			xeScratch[kk] = complexConj(xe)
			xoScratch[kk] = complexConj(xo)
		}
	}

	for k := 0; k < M; k++ {
		w := realTw[k*stride]
		out[k] = xeScratch[k] + xoScratch[k]*w
	}
	out[M] = xeScratch[0] - xoScratch[0]
}

// realInversePrepare implements the inverse real-signal adapter (C6).
// x is the length-M+1 non-redundant spectrum (the caller's spectrum
// buffer, with the Nyquist bin at x[M]). xeScratch/xoScratch are the
// same M-wide scratch regions as above. y receives the length-M
// complex signal to feed into the complex inverse FFT.
//
// k=0 is a fixed point of (M-k) mod M, so the general conjugate-pair
// formula alone can't recover Xe[0]/Xo[0] (both real, since the
// original Z[0] has no partner): it needs the Nyquist bin X[M]
// instead of self-pairing with X[0]. That is spec's "auxiliary
// twiddle for the descending write is negated" special case; this
// solves it directly: Xe[0]=(X[0]+X[M])/2, Xo[0]=(X[0]-X[M])/2, the
// algebraic inverse of the forward adapter's X[0]=Xe[0]+Xo[0],
// X[M]=Xe[0]-Xo[0].
//
// The descending write at kk mirrors the forward adapter's own
// symmetric pattern (realfft.go's realForwardFinalize): Xo[kk] =
// conj(Xo[k]), not a second twiddle-table lookup at kk.
func realInversePrepare(y, x, xeScratch, xoScratch []complex64, realTw []complex64, M, stride int) {
	xeScratch[0] = 0.5 * (x[0] + x[M])
	xoScratch[0] = 0.5 * (x[0] - x[M])

	half := M / 2
	for k := 1; k <= half; k++ {
		kk := M - k
		xk, xkk := x[k], x[kk]
		xe := 0.5 * (xk + complexConj(xkk))
		diff := 0.5 * (xk - complexConj(xkk))
		xo := diff * complexConj(realTw[k*stride])
		xeScratch[k] = xe
		xoScratch[k] = xo
		if kk != k {
			xeScratch[kk] = complexConj(xe)
			xoScratch[kk] = complexConj(xo)
		}
	}

	for k := 0; k < M; k++ {
		y[k] = xeScratch[k] + mulJ(xoScratch[k])
	}
}

func complexConj(z complex64) complex64 { return complex(real(z), -imag(z)) }
