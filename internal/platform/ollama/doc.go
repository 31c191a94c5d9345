// Package ollama implements enrichment.TextGenerator against a local Ollama
// server through its chat endpoint (POST /api/chat) with streaming disabled.
package ollama
