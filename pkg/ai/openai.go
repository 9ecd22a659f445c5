package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/nexio-app/nexio-api/internal/observability"
)

// OpenAIConfig defines configuration options for the OpenAI generator.
type OpenAIConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
	Logger      zerolog.Logger
}

// OpenAIGenerator implements Generator against the OpenAI chat
// completion API.
type OpenAIGenerator struct {
	client *openai.Client
	cfg    OpenAIConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOpenAIGenerator builds a generator using the provided configuration.
func NewOpenAIGenerator(cfg OpenAIConfig) (*OpenAIGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 64
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.9
	}

	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	return &OpenAIGenerator{
		client: openai.NewClientWithConfig(openai.DefaultConfig(cfg.APIKey)),
		cfg:    cfg,
		tracer: otel.Tracer("github.com/nexio-app/nexio-api/pkg/ai/openai"),
		logger: logger.With().Str("component", "caption_generator").Logger(),
	}, nil
}

// GenerateCaption returns a short trendy caption for the given mood and
// context pair, or the fixed fallback on any failure.
func (g *OpenAIGenerator) GenerateCaption(parent context.Context, mood, subject string) string {
	prompt := fmt.Sprintf(`You are a creative assistant for a Gen-Z social app called NexiO.
Generate a short, trendy, viral-worthy caption for a post.

Mood: %s
Context: %s

Keep it under 20 words. Use emojis. No hashtags.`, mood, subject)

	text, err := g.complete(parent, "ai.generate_caption", prompt)
	if err != nil {
		g.logger.Warn().Err(err).Str("mood", mood).Msg("caption generation failed, using fallback")
		observability.CaptionsGenerated().WithLabelValues("fallback").Inc()
		return CaptionFallback
	}

	observability.CaptionsGenerated().WithLabelValues("generated").Inc()
	return text
}

// GenerateBio returns a two-line aesthetic bio, or the fixed fallback on
// any failure.
func (g *OpenAIGenerator) GenerateBio(parent context.Context, name, interests string) string {
	prompt := fmt.Sprintf("Create a cool, aesthetic 2-line bio for a user named %s who likes %s. Use 2 emojis.", name, interests)

	text, err := g.complete(parent, "ai.generate_bio", prompt)
	if err != nil {
		g.logger.Warn().Err(err).Str("name", name).Msg("bio generation failed, using fallback")
		return BioFallback
	}

	return text
}

func (g *OpenAIGenerator) complete(parent context.Context, span string, prompt string) (string, error) {
	ctx, s := g.tracer.Start(parent, span, trace.WithAttributes(
		attribute.String("model", g.cfg.Model),
	))
	defer s.End()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.cfg.Model,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		s.RecordError(err)
		s.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("openai completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		err := fmt.Errorf("no choices returned from openai")
		s.RecordError(err)
		s.SetStatus(codes.Error, err.Error())
		return "", err
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		err := fmt.Errorf("empty completion returned from openai")
		s.RecordError(err)
		return "", err
	}

	return text, nil
}
