// Package store provides the durable key-value slots behind Vanaclone.
//
// The app keeps its whole state in two named slots, [SlotProfiles] and
// [SlotSettings]. Each slot holds one opaque value that is always replaced
// as a whole; there are no partial or incremental writes.
//
// # Backends
//
// The [Store] interface has three implementations:
//   - [Bolt]: BoltDB, an embedded key-value file (default)
//   - [SQLite]: a single-table SQLite database via modernc.org/sqlite
//   - [Memory]: process memory, used by tests and the "memory" backend
//
// Use [Open] with a [Backend] to construct one:
//
//	st, err := store.Open(store.BackendBolt, dataDir)
//	raw, err := st.Get(store.SlotProfiles)
//
// A missing slot reports [ErrSlotNotFound].
package store
