package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"google.golang.org/genai"
)

const (
	generationModel       = "gemini-2.0-flash-exp"
	generationTemperature = float32(0.7)
	generationMaxTokens   = int32(2048)
	probeMaxTokens        = int32(10)
	maxGenerationAttempts = 3
	retryDelay            = time.Second
)

// modelCaller is the slice of the Gemini client the generation gateway needs.
// *genai.Models satisfies it.
type modelCaller interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GenerationService produces answer text from a composed prompt.
type GenerationService interface {
	// Generate calls the model with the fixed sampling configuration,
	// retrying on any failure up to the attempt bound with a fixed delay.
	// The last error is returned once the attempts are exhausted.
	Generate(ctx context.Context, prompt string) (string, error)
	// Probe runs one trivial generation call to verify model connectivity.
	Probe(ctx context.Context) error
}

type generationServiceImpl struct {
	models modelCaller
	sleep  func(time.Duration)
}

// NewGenerationService creates a generation gateway over the Gemini client.
func NewGenerationService(models modelCaller) GenerationService {
	return &generationServiceImpl{models: models, sleep: time.Sleep}
}

func (g *generationServiceImpl) Generate(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(generationTemperature),
		MaxOutputTokens: generationMaxTokens,
	}

	var lastErr error
	for attempt := 1; attempt <= maxGenerationAttempts; attempt++ {
		answer, err := g.generateOnce(ctx, prompt, config)
		if err == nil {
			log.Printf("SERVICE: Successfully generated response on attempt %d", attempt)
			return answer, nil
		}

		lastErr = err
		log.Printf("SERVICE: Generation attempt %d failed: %v", attempt, err)
		if attempt < maxGenerationAttempts {
			g.sleep(retryDelay)
		}
	}
	return "", fmt.Errorf("generation failed after %d attempts: %w", maxGenerationAttempts, lastErr)
}

func (g *generationServiceImpl) generateOnce(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	result, err := g.models.GenerateContent(ctx, generationModel, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini api call failed: %w", err)
	}

	answer := responseText(result)
	if answer == "" {
		return "", fmt.Errorf("empty response from gemini")
	}
	return answer, nil
}

func (g *generationServiceImpl) Probe(ctx context.Context) error {
	_, err := g.models.GenerateContent(ctx, generationModel, genai.Text("Hello"), &genai.GenerateContentConfig{
		MaxOutputTokens: probeMaxTokens,
	})
	return err
}

// responseText concatenates the text parts of the first candidate.
func responseText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}
