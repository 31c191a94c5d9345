// Package gemini provides an implementation of the enrichment.TextGenerator
// interface backed by Google's Gemini API.
//
// This package is an infrastructure adapter: it translates a rendered prompt
// into a GenerateContent request and maps the reply, safety blocks and
// transport failures onto the enrichment error taxonomy. It uses the
// google.golang.org/genai client library.
package gemini
