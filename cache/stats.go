package cache

// Snapshot is a point-in-time copy of cache statistics.
type Snapshot struct {
	Hits        int64
	Misses      int64
	Stores      int64
	Evictions   int64
	Expirations int64
	Clears      int64
}

// HitRate returns the hit rate as a percentage between 0 and 100.
// Returns 0 if there have been no accesses.
func (s Snapshot) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// stats holds the live counters. Guarded by the cache mutex so increments
// are atomic relative to the map operations that cause them.
type stats struct {
	hits        int64
	misses      int64
	stores      int64
	evictions   int64
	expirations int64
	clears      int64
}

func (s stats) snapshot() Snapshot {
	return Snapshot{
		Hits:        s.hits,
		Misses:      s.misses,
		Stores:      s.stores,
		Evictions:   s.evictions,
		Expirations: s.expirations,
		Clears:      s.clears,
	}
}
