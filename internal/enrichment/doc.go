// Package enrichment derives classification tags for tasks by asking a
// language model (LLM) to describe them. It owns the prompt, the tag parser
// and the error taxonomy, and stays independent of any concrete provider:
// adapters for Gemini and Ollama live under internal/platform and satisfy the
// TextGenerator interface.
//
// The Enricher returned by New bounds every call with a timeout and can be
// wrapped with a rate limiter and an LRU cache.
package enrichment
