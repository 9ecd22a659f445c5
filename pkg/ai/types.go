package ai

import "context"

// Fallback strings substituted whenever generation fails. Callers never
// see an error from the generator.
const (
	CaptionFallback = "Living my best life ✨"
	BioFallback     = "Digital Dreamer 🌌"
)

// Generator produces short creative text for the studio flow. Both
// methods return within bounded time in practice and degrade to a fixed
// fallback string on any internal failure.
type Generator interface {
	GenerateCaption(ctx context.Context, mood, subject string) string
	GenerateBio(ctx context.Context, name, interests string) string
}
