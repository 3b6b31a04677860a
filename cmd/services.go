package cmd

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/abhisek/sqlquest/internal/assessment"
	"github.com/abhisek/sqlquest/internal/diagnosis"
	"github.com/abhisek/sqlquest/internal/lessons"
	"github.com/abhisek/sqlquest/internal/llm"
	"github.com/abhisek/sqlquest/internal/progress"
	"github.com/abhisek/sqlquest/internal/screen"
	"github.com/abhisek/sqlquest/internal/sqlengine"
	"github.com/abhisek/sqlquest/internal/store"
)

// services bundles what the learning commands share.
type services struct {
	store     *store.Store
	ledger    *progress.Ledger
	engine    *sqlengine.Session
	provider  llm.Provider
	generator *assessment.Generator
	diagnosis *diagnosis.Service
}

// openServices opens the store, ledger and lesson engine. With withLLM
// set it also builds the optional LLM provider; the app works without one.
func openServices(ctx context.Context, withLLM bool) (*services, error) {
	st, err := openStore()
	if err != nil {
		return nil, err
	}
	s := &services{store: st}

	s.ledger, err = progress.Load(ctx, st.KVRepo(), lessons.ExerciseCounts(),
		progress.WithLogger(logger),
		progress.WithPassPercent(cfg.Assessment.PassPercent()),
		progress.WithMaxScore(cfg.Assessment.QuestionCount),
	)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("load progress: %w", err)
	}

	s.engine, err = sqlengine.Open(ctx, sqlengine.Options{
		StatementTimeout: cfg.Engine.StatementTimeout,
		Logger:           logger,
	})
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("open lesson database: %w", err)
	}

	if withLLM {
		s.provider = newProvider(ctx, st.EventRepo())
	}

	genOpts := []assessment.Option{assessment.WithLogger(logger)}
	if s.provider != nil && cfg.Assessment.LLMQuestions > 0 {
		genOpts = append(genOpts, assessment.WithSource(assessment.NewLLMSource(s.provider, assessment.DefaultSourceConfig())))
	}
	s.generator = assessment.New(assessment.Config{
		QuestionCount:  cfg.Assessment.QuestionCount,
		ShuffleOptions: cfg.Assessment.ShuffleOptions,
		LLMQuestions:   cfg.Assessment.LLMQuestions,
	}, genOpts...)

	var explainer llm.Provider
	if cfg.LLM.Explain {
		explainer = s.provider
	}
	s.diagnosis = diagnosis.NewService(explainer, diagnosis.WithServiceLogger(logger))
	return s, nil
}

// newProvider builds the configured LLM provider, or returns nil when none
// is configured or it cannot be built.
func newProvider(ctx context.Context, eventRepo store.EventRepo) llm.Provider {
	llmCfg, ok := cfg.LLMProviderConfig()
	if !ok {
		logger.Info("no LLM provider configured")
		return nil
	}
	provider, err := llm.New(ctx, llmCfg, eventRepo, logger)
	if err != nil {
		logger.Warn("LLM provider unavailable", zap.Error(err))
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI features will be unavailable.")
		return nil
	}
	logger.Info("LLM provider ready", zap.String("provider", llmCfg.Provider), zap.String("model", provider.Model()))
	return provider
}

// deps returns the screen dependencies for the TUI.
func (s *services) deps() screen.Deps {
	return screen.Deps{
		Engine:    s.engine,
		Ledger:    s.ledger,
		Events:    s.store.EventRepo(),
		Generator: s.generator,
		Diagnosis: s.diagnosis,
		Logger:    logger,
		MaxRows:   cfg.Engine.MaxRows,
	}
}

// lessonArg looks up a lesson by its command-line id.
func lessonArg(arg string) (lessons.Lesson, error) {
	var id int
	if _, err := fmt.Sscanf(arg, "%d", &id); err != nil {
		return lessons.Lesson{}, fmt.Errorf("invalid lesson id %q", arg)
	}
	return lessons.Get(id)
}

func (s *services) Close() {
	if s.diagnosis != nil {
		s.diagnosis.Close()
	}
	if s.engine != nil {
		_ = s.engine.Close()
	}
	if s.store != nil {
		_ = s.store.Close()
	}
}
