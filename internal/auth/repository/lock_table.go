// Package repository provides the in-process state stores of the access-control layer
// and an optional Redis-backed rate-limit store for multi-replica deployments.
package repository

import (
	"hash/fnv"
	"sync"
)

// defaultShardCount is the number of independently locked shards per store.
const defaultShardCount = 64

// lockTable is a map partitioned into mutex-guarded shards. All operations on one key
// go through the same shard lock, so they are linearized, while keys on other shards
// proceed in parallel.
type lockTable[V any] struct {
	shards []*lockShard[V]
}

type lockShard[V any] struct {
	mu      sync.Mutex
	entries map[string]V
}

func newLockTable[V any](shardCount int) *lockTable[V] {
	if shardCount <= 0 {
		shardCount = defaultShardCount
	}

	shards := make([]*lockShard[V], shardCount)
	for i := range shards {
		shards[i] = &lockShard[V]{entries: make(map[string]V)}
	}

	return &lockTable[V]{shards: shards}
}

// with runs fn while holding the shard lock for key.
func (t *lockTable[V]) with(key string, fn func(entries map[string]V)) {
	shard := t.shardFor(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	fn(shard.entries)
}

// each runs fn on every shard in turn, holding one shard lock at a time.
func (t *lockTable[V]) each(fn func(entries map[string]V)) {
	for _, shard := range t.shards {
		shard.mu.Lock()
		fn(shard.entries)
		shard.mu.Unlock()
	}
}

// len counts entries across all shards.
func (t *lockTable[V]) len() int {
	total := 0
	t.each(func(entries map[string]V) {
		total += len(entries)
	})
	return total
}

func (t *lockTable[V]) shardFor(key string) *lockShard[V] {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return t.shards[h.Sum32()%uint32(len(t.shards))]
}
