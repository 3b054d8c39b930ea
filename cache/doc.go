// Package cache memoizes solver results by puzzle.
//
// A Store maps the SHA-256 of a state's Key to an Entry holding the pours
// and outcome of a previous search. Three backends are provided:
//
//	MemoryStore  process-local map, for tests and one-shot runs
//	BadgerStore  embedded dgraph-io/badger database, on disk or in memory
//	RedisStore   shared redis/go-redis client, optional TTL and key prefix
//
// Solver wraps solver.Solve with a Store. Cached pours are never trusted:
// every hit is replayed with verify.Replay, and an entry that does not
// replay to its recorded outcome is deleted and the puzzle solved again.
// Store failures are logged and degrade to a cache miss; they never fail
// a solve. Concurrent misses for one puzzle collapse into a single search
// with golang.org/x/sync/singleflight.
package cache
