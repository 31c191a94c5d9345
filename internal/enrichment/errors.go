package enrichment

import (
	"errors"
	"fmt"
)

// ErrEnrichment is the root of every error returned by this package and by
// provider adapters. Callers test for it with errors.Is.
var ErrEnrichment = errors.New("tag enrichment failed")

var (
	// ErrInvalidResponse is returned when the model output cannot be turned into tags.
	ErrInvalidResponse = fmt.Errorf("%w: invalid response from language model", ErrEnrichment)

	// ErrContentBlocked is returned when the provider refuses the prompt for safety reasons.
	ErrContentBlocked = fmt.Errorf("%w: content blocked by language model safety filters", ErrEnrichment)

	// ErrTimeout is returned when the call exceeds its time budget.
	ErrTimeout = fmt.Errorf("%w: language model call timed out", ErrEnrichment)

	// ErrProviderUnavailable is returned for transport and upstream failures.
	ErrProviderUnavailable = fmt.Errorf("%w: language model provider unavailable", ErrEnrichment)

	// ErrInvalidConfig is returned when an enricher or provider is misconfigured.
	ErrInvalidConfig = fmt.Errorf("%w: invalid enrichment configuration", ErrEnrichment)
)
