package fftengine

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// SimdTier identifies a vector-width code path for the radix-8
// butterfly. Tiers are resolved lazily per Plan: UNKNOWN transitions
// to exactly one of the concrete tiers the first time a transform
// runs against that plan.
type SimdTier int32

const (
	TierUnknown SimdTier = iota
	TierScalar
	TierSSE
	TierSSE3
	TierAVX
	TierAVX512
)

func (t SimdTier) String() string {
	switch t {
	case TierScalar:
		return "scalar"
	case TierSSE:
		return "sse"
	case TierSSE3:
		return "sse3"
	case TierAVX:
		return "avx"
	case TierAVX512:
		return "avx512"
	default:
		return "unknown"
	}
}

// lanes returns the complex-lane width of the butterfly kernel this
// tier dispatches to. SSE routes to the scalar kernel: without
// addsubps/movsldup (SSE3), a destructive-friendly complex multiply
// isn't profitable, per spec.
func (t SimdTier) lanes() int {
	switch t {
	case TierAVX512:
		return 8
	case TierAVX:
		return 4
	case TierSSE3:
		return 2
	default:
		return 1
	}
}

// detectSimd probes CPU features and returns the best tier available.
// The scalar tier always qualifies, so this never returns UNKNOWN.
func detectSimd() SimdTier {
	switch {
	case cpu.X86.HasAVX512F:
		return TierAVX512
	case cpu.X86.HasAVX2 && cpu.X86.HasAVX:
		return TierAVX
	case cpu.X86.HasSSE3:
		return TierSSE3
	case cpu.X86.HasSSE2:
		return TierSSE
	default:
		return TierScalar
	}
}

// resolveSimd returns the plan's SIMD tier, resolving it from UNKNOWN
// on first use. Concurrent callers race harmlessly to the same
// detected value: detectSimd is a pure function of CPU features, so
// every racing writer computes an identical tier, and the atomic
// store/load pair guarantees any reader observes a fully-formed value
// rather than a torn one.
func (p *Plan) resolveSimd() SimdTier {
	if t := SimdTier(atomic.LoadInt32((*int32)(&p.simdTier))); t != TierUnknown {
		return t
	}
	t := detectSimd()
	atomic.StoreInt32((*int32)(&p.simdTier), int32(t))
	return t
}
