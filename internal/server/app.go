// Package server wires the VocabDay server together: storage, optional
// cache, archive and AI generator, the JSON API and the gRPC health
// listener. It also handles graceful shutdown on SIGINT/SIGTERM.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/vocabday/internal/logging"
	"github.com/dmitrijs2005/vocabday/internal/server/archive"
	"github.com/dmitrijs2005/vocabday/internal/server/cache"
	"github.com/dmitrijs2005/vocabday/internal/server/config"
	"github.com/dmitrijs2005/vocabday/internal/server/generator"
	"github.com/dmitrijs2005/vocabday/internal/server/httpapi"
	"github.com/dmitrijs2005/vocabday/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/vocabday/internal/server/services"
	"github.com/redis/go-redis/v9"

	gs "github.com/dmitrijs2005/vocabday/internal/server/grpc"
)

// openDB is a seam for tests.
var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

type App struct {
	config            *config.Config
	logger            logging.Logger
	db                *sql.DB
	redis             *redis.Client
	userService       *services.UserService
	testService       *services.TestService
	savedWordService  *services.SavedWordService
	generationService *services.GenerationService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	level, levelErr := logging.ParseLevel(c.LogLevel)
	logger := logging.NewJSONLogger(os.Stdout, level)
	if levelErr != nil {
		logger.Warn(ctx, "falling back to info log level", "error", levelErr)
	}

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := &repomanager.PostgresRepositoryManager{}
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	app := &App{config: c, logger: logger, db: db}

	var quizCache services.QuizCache = services.NopQuizCache{}
	if c.RedisAddr != "" {
		client, err := cache.Connect(ctx, c.RedisAddr, c.RedisPassword)
		if err != nil {
			logger.Warn(ctx, "redis unavailable, quiz cache disabled", "addr", c.RedisAddr, "error", err)
		} else {
			app.redis = client
			quizCache = cache.NewQuizCache(client, c.QuizCacheTTL)
		}
	}

	var archiver services.Archiver = services.NopArchiver{}
	if c.S3Bucket != "" {
		a, err := archive.NewS3Archiver(ctx, c)
		if err != nil {
			logger.Warn(ctx, "s3 unavailable, quiz archive disabled", "bucket", c.S3Bucket, "error", err)
		} else {
			archiver = a
		}
	}

	var gen services.QuizGenerator
	if c.GeminiAPIKey != "" {
		g, err := generator.NewGeminiGenerator(ctx, c, logger)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("generator init error: %w", err)
		}
		gen = g
	} else {
		logger.Warn(ctx, "GEMINI_API_KEY is not set, daily generation is disabled")
	}

	app.userService = services.NewUserService(db, rm, c)
	app.testService = services.NewTestService(db, rm, quizCache, logger)
	app.savedWordService = services.NewSavedWordService(db, rm)
	app.generationService = services.NewGenerationService(db, rm, gen, quizCache, archiver, logger)

	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewServer(app.config, app.logger, app.db,
		app.userService, app.testService, app.savedWordService, app.generationService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.db)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.close()
	app.logger.Info(ctx, "App stopped")
}

func (app *App) close() {
	if app.redis != nil {
		_ = app.redis.Close()
	}
	if app.db != nil {
		_ = app.db.Close()
	}
}
