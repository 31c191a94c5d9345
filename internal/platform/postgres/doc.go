// Package postgres implements store.TaskStore on PostgreSQL through the pgx
// database/sql driver. It also embeds the goose migrations that bootstrap the
// tasks table and maps pgconn errors onto the store error taxonomy.
package postgres
