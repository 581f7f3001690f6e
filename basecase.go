package fftengine

// mulJ rotates z by +j: j*(a+jb) = -b+ja.
func mulJ(z complex64) complex64 { return complex(-imag(z), real(z)) }

// mulNegJ rotates z by -j: -j*(a+jb) = b-ja.
func mulNegJ(z complex64) complex64 { return complex(imag(z), -real(z)) }

// baseCase runs n_iters independent size-N DFTs (N in {1,2,4}) laid
// out contiguously in in/out, each of size N. Twiddles at this size
// are all +-1 or +-j, so no table lookup is needed.
func baseCase(out, in []complex64, N, total int, inverse bool) {
	switch N {
	case 1:
		copy(out[:total], in[:total])
	case 2:
		for i := 0; i < total; i += 2 {
			x0, x1 := in[i], in[i+1]
			out[i] = x0 + x1
			out[i+1] = x0 - x1
		}
	case 4:
		rot, rotInv := mulNegJ, mulJ
		if inverse {
			rot, rotInv = mulJ, mulNegJ
		}
		for i := 0; i < total; i += 4 {
			x0, x1, x2, x3 := in[i], in[i+1], in[i+2], in[i+3]
			out[i] = x0 + x1 + x2 + x3
			out[i+1] = x0 + rot(x1) - x2 + rotInv(x3)
			out[i+2] = x0 - x1 + x2 - x3
			out[i+3] = x0 + rotInv(x1) - x2 + rot(x3)
		}
	}
}
