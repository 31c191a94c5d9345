// Package domain contains the core business entities, value objects, and
// domain logic of the task service. It represents the heart of the system,
// independent of any specific storage engine, language model, or delivery
// mechanism.
package domain
