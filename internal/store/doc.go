// Package store defines the persistence port for tasks. The interfaces here
// abstract the underlying storage engine from the application's core logic,
// so the task service stays independent of Postgres, SQLite, or the
// in-memory adapter used for ephemeral runs.
package store
