// Package generator produces daily quizzes with Google Gemini. Model output
// is parsed into typed items and validated; failed attempts are retried with
// exponential backoff, each under its own timeout.
package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"time"

	"github.com/dmitrijs2005/vocabday/internal/common"
	"github.com/dmitrijs2005/vocabday/internal/logging"
	"github.com/dmitrijs2005/vocabday/internal/server/models"
	"github.com/sethvargo/go-retry"
)

const prompt = `Generate exactly 10 English vocabulary words with their meanings for a daily test.
For each word, provide:
1. The word
2. The correct meaning
3. Three incorrect but plausible alternative meanings
Format your response as a JSON array with this structure:
[
  {
    "word": "example",
    "meaning": "correct meaning",
    "options": ["correct meaning", "wrong meaning 1", "wrong meaning 2", "wrong meaning 3"]
  }
]
Make sure:
- Words are at intermediate to advanced level
- All 4 options are shuffled (correct answer can be at any position)
- Wrong options are plausible but clearly incorrect
- Each word is unique and useful for learning
Return ONLY the JSON array, no additional text.`

var fenceRe = regexp.MustCompile("```(?:json)?\\s*")

// textGenerator sends a prompt to a model and returns its text reply.
type textGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Options tune the retry budget of one Generate call.
type Options struct {
	Retries     uint64
	BaseBackoff time.Duration
	Timeout     time.Duration
}

// GeminiGenerator implements services.QuizGenerator.
type GeminiGenerator struct {
	text    textGenerator
	opts    Options
	shuffle func([]string)
	log     logging.Logger
}

func newGenerator(text textGenerator, opts Options, log logging.Logger) *GeminiGenerator {
	if opts.BaseBackoff <= 0 {
		opts.BaseBackoff = time.Second
	}
	return &GeminiGenerator{
		text: text,
		opts: opts,
		shuffle: func(s []string) {
			rand.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
		},
		log: log.With("module", "generator"),
	}
}

// Generate asks the model for a quiz until a valid one arrives or the
// retry budget is spent. Exhaustion wraps common.ErrGenerationFailed.
func (g *GeminiGenerator) Generate(ctx context.Context) ([]models.QuizItem, error) {
	var (
		items   []models.QuizItem
		attempt int
	)

	backoff := retry.WithMaxRetries(g.opts.Retries, retry.NewExponential(g.opts.BaseBackoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		got, err := g.once(ctx)
		if err != nil {
			g.log.Warn(ctx, "quiz generation attempt failed", "attempt", attempt, "error", err)
			return retry.RetryableError(err)
		}
		items = got
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w after %d attempts: %v", common.ErrGenerationFailed, attempt, err)
	}
	return items, nil
}

func (g *GeminiGenerator) once(ctx context.Context) ([]models.QuizItem, error) {
	if g.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.opts.Timeout)
		defer cancel()
	}

	text, err := g.text.GenerateText(ctx, prompt)
	if err != nil {
		return nil, err
	}

	items, err := ParseItems(text)
	if err != nil {
		return nil, err
	}
	for i := range items {
		g.shuffle(items[i].Options)
	}
	return items, nil
}

// ParseItems decodes a model reply, tolerating markdown code fences, and
// validates it as a full daily quiz. CorrectAnswer is taken from Meaning.
func ParseItems(text string) ([]models.QuizItem, error) {
	cleaned := strings.TrimSpace(fenceRe.ReplaceAllString(text, ""))
	if cleaned == "" {
		return nil, fmt.Errorf("empty model response")
	}

	var raw []struct {
		Word    string   `json:"word"`
		Meaning string   `json:"meaning"`
		Options []string `json:"options"`
	}
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, fmt.Errorf("decode model response: %w", err)
	}

	items := make([]models.QuizItem, 0, len(raw))
	for _, r := range raw {
		meaning := strings.TrimSpace(r.Meaning)
		options := make([]string, 0, len(r.Options))
		for _, o := range r.Options {
			options = append(options, strings.TrimSpace(o))
		}
		items = append(items, models.QuizItem{
			Word:          strings.TrimSpace(r.Word),
			Meaning:       meaning,
			Options:       options,
			CorrectAnswer: meaning,
		})
	}

	if err := models.ValidateItems(items); err != nil {
		return nil, err
	}
	return items, nil
}
