package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeModels struct {
	calls     int
	failures  int  // number of leading calls that return an error
	emptyText bool // when true, successful calls return an empty candidate

	text      string
	gotModel  string
	gotConfig *genai.GenerateContentConfig
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, _ []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.gotModel = model
	f.gotConfig = config
	if f.calls <= f.failures {
		return nil, fmt.Errorf("transient failure %d", f.calls)
	}
	if f.emptyText {
		return &genai.GenerateContentResponse{}, nil
	}
	return textResponse(f.text), nil
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: text}}}},
		},
	}
}

func newTestGenerationService(models modelCaller) (*generationServiceImpl, *[]time.Duration) {
	slept := &[]time.Duration{}
	service := &generationServiceImpl{
		models: models,
		sleep:  func(d time.Duration) { *slept = append(*slept, d) },
	}
	return service, slept
}

func TestGenerateSucceedsFirstAttempt(t *testing.T) {
	models := &fakeModels{text: "an answer"}
	service, slept := newTestGenerationService(models)

	answer, err := service.Generate(context.Background(), "prompt")
	require.NoError(t, err)

	assert.Equal(t, "an answer", answer)
	assert.Equal(t, 1, models.calls)
	assert.Empty(t, *slept)
	assert.Equal(t, "gemini-2.0-flash-exp", models.gotModel)
	require.NotNil(t, models.gotConfig.Temperature)
	assert.InDelta(t, 0.7, float64(*models.gotConfig.Temperature), 0.001)
	assert.Equal(t, int32(2048), models.gotConfig.MaxOutputTokens)
}

func TestGenerateRetriesThenSucceeds(t *testing.T) {
	models := &fakeModels{failures: 2, text: "recovered"}
	service, slept := newTestGenerationService(models)

	answer, err := service.Generate(context.Background(), "prompt")
	require.NoError(t, err)

	assert.Equal(t, "recovered", answer)
	assert.Equal(t, 3, models.calls)
	assert.Equal(t, []time.Duration{time.Second, time.Second}, *slept)
}

func TestGenerateExhaustsRetries(t *testing.T) {
	models := &fakeModels{failures: 10}
	service, slept := newTestGenerationService(models)

	_, err := service.Generate(context.Background(), "prompt")
	require.Error(t, err)

	assert.Equal(t, 3, models.calls)
	assert.Equal(t, []time.Duration{time.Second, time.Second}, *slept)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Contains(t, err.Error(), "transient failure 3")
}

func TestGenerateTreatsEmptyTextAsFailure(t *testing.T) {
	models := &fakeModels{emptyText: true}
	service, _ := newTestGenerationService(models)

	_, err := service.Generate(context.Background(), "prompt")
	require.Error(t, err)

	assert.Equal(t, 3, models.calls)
	assert.Contains(t, err.Error(), "empty response")
}

func TestProbeIsSingleShot(t *testing.T) {
	models := &fakeModels{failures: 1}
	service, slept := newTestGenerationService(models)

	err := service.Probe(context.Background())
	require.Error(t, err)

	assert.Equal(t, 1, models.calls)
	assert.Empty(t, *slept)
	assert.Equal(t, int32(10), models.gotConfig.MaxOutputTokens)
}

func TestResponseTextConcatenatesParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: "a"}, {Text: "b"}}}},
		},
	}
	assert.Equal(t, "ab", responseText(resp))
	assert.Empty(t, responseText(nil))
	assert.Empty(t, responseText(&genai.GenerateContentResponse{}))
}
