// Package cache provides TTL caching for market prices.
//
// Two stores share the Store interface:
//   - MemoryStore keeps entries in process memory, guarded by a RWMutex.
//   - FileStore persists entries as JSON files (e.g. ~/.lca/cache/) so a
//     later CLI run can still fall back to the last known price.
//
// Expired entries stay readable through GetStale until Prune drops them,
// which lets callers serve a stale value when the upstream fails.
// Keys are SHA-256 digests of normalised parameters (see GenerateKey).
package cache
