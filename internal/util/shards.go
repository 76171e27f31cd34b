package util

import "runtime"

// ReasonableShardCount picks a default shard count from CPU parallelism:
// nextPow2(2*GOMAXPROCS), clamped to [1..256].
func ReasonableShardCount() int {
	p := runtime.GOMAXPROCS(0)
	if p < 1 {
		p = 1
	}
	n := int(NextPow2(uint64(p * 2)))
	if n > 256 {
		n = 256
	}
	return n
}

// ShardCount normalizes a requested shard count: non-positive means auto,
// the result is a power of two and never exceeds limit (when limit > 0), so
// every shard can hold at least one entry.
func ShardCount(requested, limit int) int {
	n := requested
	if n <= 0 {
		n = ReasonableShardCount()
	}
	n = int(NextPow2(uint64(n)))
	if limit > 0 {
		for n > limit {
			n >>= 1
		}
	}
	if n < 1 {
		n = 1
	}
	return n
}

// ShardIndex maps a 64-bit hash to a shard index.
// Power-of-two counts use a mask; other counts fall back to modulo.
func ShardIndex(hash uint64, shards int) int {
	if shards <= 1 {
		return 0
	}
	if IsPowerOfTwo(uint64(shards)) {
		return int(hash & uint64(shards-1))
	}
	return int(hash % uint64(shards))
}
