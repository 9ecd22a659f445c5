package ai

import "context"

// staticGenerator always answers with the fixed fallback strings. Used
// when no API key is configured, keeping the studio flow exercisable.
type staticGenerator struct{}

// NewStaticGenerator returns a generator that only serves the fallback
// strings.
func NewStaticGenerator() Generator {
	return staticGenerator{}
}

func (staticGenerator) GenerateCaption(context.Context, string, string) string {
	return CaptionFallback
}

func (staticGenerator) GenerateBio(context.Context, string, string) string {
	return BioFallback
}
