package fftengine

// autosort performs one Stockham radix-8 stride shuffle from in to
// out at stage size N, across total/N independent blocks. No
// twiddles are touched; this is purely a data movement step,
// equivalent to an interleave-to-stride transpose of a B x 8 matrix
// per block, where B = N/8.
func autosort(out, in []complex64, N, total int) {
	B := N / 8
	for base := 0; base < total; base += N {
		for k := 0; k < B; k++ {
			for r := 0; r < 8; r++ {
				out[base+k+r*B] = in[base+8*k+r]
			}
		}
	}
}
