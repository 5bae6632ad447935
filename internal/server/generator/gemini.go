package generator

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/vocabday/internal/logging"
	"github.com/dmitrijs2005/vocabday/internal/server/config"
	"google.golang.org/genai"
)

// newGenaiClient is a seam for tests.
var newGenaiClient = genai.NewClient

type geminiText struct {
	client *genai.Client
	model  string
}

func (g *geminiText) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if text == "" {
		return "", errors.New("no response text received from Gemini")
	}
	return text, nil
}

// NewGeminiGenerator builds a generator backed by the Gemini API using the
// key, model and retry settings from cfg.
func NewGeminiGenerator(ctx context.Context, cfg *config.Config, log logging.Logger) (*GeminiGenerator, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, errors.New("gemini api key is not configured")
	}

	client, err := newGenaiClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	return newGenerator(&geminiText{client: client, model: cfg.GeminiModel}, Options{
		Retries:     cfg.GenerationRetries,
		BaseBackoff: time.Second,
		Timeout:     cfg.GenerationTimeout,
	}, log), nil
}
