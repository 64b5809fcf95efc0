package flatipc

import "github.com/cespare/xxhash/v2"

// SignatureOf folds the 64-bit xxhash of a canonical declaration into 32
// bits. Identical declarations yield identical signatures within a build;
// nothing is promised across builds or toolchains.
func SignatureOf(canonical string) uint32 {
	h := xxhash.Sum64String(canonical)
	return uint32(h>>32) ^ uint32(h)
}
