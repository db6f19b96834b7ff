package gen

import "math/rand/v2"

// hash32 mixes a 32-bit input into a well-distributed 32-bit output
// (murmur finalizer-style avalanching). Stable across versions.
func hash32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}

// hash2 returns a stable hash for 2D integer coordinates plus a seed.
// Large odd constants decorrelate the axes.
func hash2(seed uint32, x, y int32) uint32 {
	h := seed
	h ^= uint32(x) * 0x9e3779b1
	h ^= uint32(y) * 0x85ebca6b
	return hash32(h)
}

// cellRand returns the deterministic draw stream for one cell. The same
// (seed, x, y) triple always produces the same sequence, so weighted
// sub-typing is reproducible across runs and across save/reload.
func cellRand(seed int64, x, y int) *rand.Rand {
	hi := hash2(uint32(seed), int32(x), int32(y))
	lo := hash2(uint32(seed>>32)^0xc2b2ae35, int32(y), int32(x))
	return rand.New(rand.NewPCG(uint64(hi)<<32|uint64(lo), uint64(seed)))
}
