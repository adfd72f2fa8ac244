package block

import "math/bits"

// Word-level bulk operations, unrolled by 4 words at a time. Mirrors the
// generic (non-SIMD) fallback kernels in vecgo's internal/simd package;
// a platform with real SIMD registers would override these the same way
// vecgo overrides andWordsGeneric/orWordsGeneric on amd64/arm64.

func orWords(dst, src []uint64) {
	i := 0
	for ; i+4 <= len(dst); i += 4 {
		dst[i] |= src[i]
		dst[i+1] |= src[i+1]
		dst[i+2] |= src[i+2]
		dst[i+3] |= src[i+3]
	}
	for ; i < len(dst); i++ {
		dst[i] |= src[i]
	}
}

func wordsAllOnes(w []uint64) bool {
	for _, v := range w {
		if v != ^uint64(0) {
			return false
		}
	}
	return true
}

func wordsAllZero(w []uint64) bool {
	for _, v := range w {
		if v != 0 {
			return false
		}
	}
	return true
}

func popcountWords(w []uint64) int {
	count := 0
	i := 0
	for ; i+4 <= len(w); i += 4 {
		count += bits.OnesCount64(w[i])
		count += bits.OnesCount64(w[i+1])
		count += bits.OnesCount64(w[i+2])
		count += bits.OnesCount64(w[i+3])
	}
	for ; i < len(w); i++ {
		count += bits.OnesCount64(w[i])
	}
	return count
}
