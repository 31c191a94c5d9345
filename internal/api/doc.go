// Package api exposes the task service over HTTP: JSON handlers for
// /api/v1/tasks, the mapping from internal errors to status codes and safe
// messages, and the static client bundle with its index fallback.
package api
