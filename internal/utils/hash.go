package utils

import "hash/fnv"

// HashStringToUint64 is the deterministic hash behind derived feed row ids,
// snapshot versions, and report memo keys.
func HashStringToUint64(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}
