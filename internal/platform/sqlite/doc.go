// Package sqlite implements store.TaskStore on a local SQLite file using
// mattn/go-sqlite3. It is the default durable store for single-node runs.
// Timestamps are stored as Unix milliseconds and tags as a JSON array.
package sqlite
