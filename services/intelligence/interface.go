// File: services/intelligence/interface.go
package ai

import (
	"context"

	"venueflow/models"
)

// Extractor is the NLU oracle: given raw message text and the confirmed-value
// snapshot, it returns structured candidate fields with per-field
// presence/absence. Absence means "no new value provided".
//
// The workflow core consumes this as a black box; extraction quality is not
// its concern, determinism of everything downstream is.
type Extractor interface {
	Extract(ctx context.Context, text string, snapshot models.StateSnapshot) (models.ExtractedFields, error)
}

// NewExtractor picks the Gemini-backed extractor when an API key is
// configured and the deterministic local extractor otherwise.
func NewExtractor(geminiAPIKey string, ctxStore *RedisContextStore) Extractor {
	if geminiAPIKey != "" {
		return NewGeminiExtractor(geminiAPIKey, ctxStore)
	}
	return NewLocalExtractor()
}
