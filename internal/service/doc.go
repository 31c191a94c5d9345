// Package service contains the task use cases. TaskService orders the
// enrich-then-persist steps for each operation and translates lower-level
// failures into errors the API layer can map to status codes.
//
// The service depends on the store.TaskStore and enrichment.Enricher
// interfaces, never on a concrete database or language-model provider.
package service
