package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/vocabday/internal/common"
	"github.com/dmitrijs2005/vocabday/internal/logging"
	"github.com/dmitrijs2005/vocabday/internal/server/models"
	"github.com/dmitrijs2005/vocabday/internal/server/repositories/repomanager"
)

const (
	MessageAlreadyExists = "Test already exists for today"
	MessageGenerated     = "Daily test generated successfully"
)

// GenerationResult reports the outcome of a daily generation run.
type GenerationResult struct {
	Created   bool
	Message   string
	Date      time.Time
	WordCount int
}

// GenerationService creates the quiz for the current UTC day. It is safe
// to trigger repeatedly: an existing quiz for today is reported, not
// regenerated.
type GenerationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	generator   QuizGenerator
	cache       QuizCache
	archiver    Archiver
	log         logging.Logger
	now         func() time.Time
}

func NewGenerationService(db *sql.DB, m repomanager.RepositoryManager, gen QuizGenerator,
	cache QuizCache, archiver Archiver, log logging.Logger) *GenerationService {
	if cache == nil {
		cache = NopQuizCache{}
	}
	if archiver == nil {
		archiver = NopArchiver{}
	}
	return &GenerationService{
		db:          db,
		repomanager: m,
		generator:   gen,
		cache:       cache,
		archiver:    archiver,
		log:         log.With("module", "generation"),
		now:         time.Now,
	}
}

func (s *GenerationService) GenerateToday(ctx context.Context) (*GenerationResult, error) {
	today := models.DateOf(s.now())
	repo := s.repomanager.Quizzes(s.db)

	existing, err := repo.GetByDate(ctx, today)
	switch {
	case err == nil:
		return s.exists(existing), nil
	case !errors.Is(err, common.ErrorNotFound):
		return nil, fmt.Errorf("error searching test: %w", err)
	}

	if s.generator == nil {
		return nil, fmt.Errorf("%w: no generator configured", common.ErrGenerationFailed)
	}

	items, err := s.generator.Generate(ctx)
	if err != nil {
		s.log.Error(ctx, "quiz generation failed", "date", models.FormatDate(today), "error", err)
		if errors.Is(err, common.ErrGenerationFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", common.ErrGenerationFailed, err)
	}

	quiz, err := repo.Create(ctx, &models.Quiz{Date: today, Items: items})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			s.log.Info(ctx, "quiz generated concurrently", "date", models.FormatDate(today))
			return &GenerationResult{Message: MessageAlreadyExists, Date: today}, nil
		}
		if errors.Is(err, common.ErrorValidation) {
			return nil, fmt.Errorf("%w: %v", common.ErrGenerationFailed, err)
		}
		return nil, fmt.Errorf("error storing test: %w", err)
	}

	if err := s.archiver.Archive(ctx, quiz); err != nil {
		s.log.Warn(ctx, "quiz archive failed", "test_id", quiz.ID, "error", err)
	}
	if err := s.cache.Set(ctx, quiz); err != nil {
		s.log.Warn(ctx, "quiz cache write failed", "test_id", quiz.ID, "error", err)
	}

	s.log.Info(ctx, "daily test generated", "test_id", quiz.ID, "date", models.FormatDate(today), "words", len(quiz.Items))
	return &GenerationResult{Created: true, Message: MessageGenerated, Date: today, WordCount: len(quiz.Items)}, nil
}

func (s *GenerationService) exists(q *models.Quiz) *GenerationResult {
	return &GenerationResult{Message: MessageAlreadyExists, Date: q.Date, WordCount: len(q.Items)}
}
