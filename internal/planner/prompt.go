package planner

import (
	"context"
	"fmt"

	"travelplanner/internal/models"
	"travelplanner/pkg/llm"
)

const SystemPrompt = "You are a professional travel planner who is good at making detailed travel plans."

// BuildPrompt embeds the request values verbatim into the planning prompt.
func BuildPrompt(destination, duration, preferences string) string {
	return fmt.Sprintf(`
    Please make a detailed travel plan for the following trip:
    Destination: %s
    Duration (days): %s
    Special preferences: %s

    Please include:
    1. A day-by-day itinerary
    2. Recommended sights and their opening hours
    3. Transport advice
    4. Local food recommendations
    5. Things to watch out for
    `, destination, duration, preferences)
}

type Completer interface {
	Complete(ctx context.Context, req llm.CompletionRequest) (string, error)
}

// Generator turns a plan request into travel plan prose.
type Generator struct {
	completer   Completer
	model       string
	temperature float64
	maxTokens   int
}

type GeneratorOption func(*Generator)

func WithSampling(temperature float64, maxTokens int) GeneratorOption {
	return func(g *Generator) {
		g.temperature = temperature
		g.maxTokens = maxTokens
	}
}

func NewGenerator(completer Completer, model string, opts ...GeneratorOption) *Generator {
	g := &Generator{completer: completer, model: model}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) Generate(ctx context.Context, req models.PlanRequest) (string, error) {
	text, err := g.completer.Complete(ctx, llm.CompletionRequest{
		Model: g.model,
		Messages: []llm.Message{
			{Role: "system", Content: SystemPrompt},
			{Role: "user", Content: BuildPrompt(req.Destination, req.Duration.String(), req.Preferences)},
		},
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("generate travel plan: %w", err)
	}
	return text, nil
}
