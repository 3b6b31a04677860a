package diagnosis

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/abhisek/sqlquest/internal/llm"
)

// Service coordinates error diagnosis using rule-based classifiers and
// an optional LLM explainer.
type Service struct {
	classifiers []Classifier
	explainer   *Explainer
	pending     chan diagnosisJob
	done        chan struct{}
	closeOnce   sync.Once
	log         *zap.Logger
}

type diagnosisJob struct {
	ctx    context.Context
	input  *ClassifyInput
	result DiagnosisResult
	cb     func(*DiagnosisResult)
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceLogger sets the logger for background explanations.
func WithServiceLogger(log *zap.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log.Named("diagnosis")
		}
	}
}

// WithClassifiers replaces the default rule set.
func WithClassifiers(cs ...Classifier) ServiceOption {
	return func(s *Service) { s.classifiers = cs }
}

// NewService creates a diagnosis service. If provider is nil, only rule-based
// classification is available.
func NewService(provider llm.Provider, opts ...ServiceOption) *Service {
	s := &Service{
		classifiers: DefaultClassifiers(),
		pending:     make(chan diagnosisJob, 32),
		done:        make(chan struct{}),
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if provider != nil {
		s.explainer = NewExplainer(provider, DefaultExplainerConfig())
		go s.processLoop()
	} else {
		close(s.done)
	}
	return s
}

// HasExplainer reports whether LLM explanations will be produced.
func (s *Service) HasExplainer() bool { return s.explainer != nil }

// Diagnose classifies a wrong answer. Rule-based classification is
// synchronous and always returns a result with a tip. If an LLM is
// available, an explanation is requested in the background and cb fires
// with a copy of the result that has Explanation set.
func (s *Service) Diagnose(ctx context.Context, input *ClassifyInput, cb func(*DiagnosisResult)) *DiagnosisResult {
	result := s.classify(input)
	if s.explainer != nil {
		s.dispatchLLM(ctx, input, *result, cb)
	}
	return result
}

// DiagnoseWait is Diagnose for callers that can block. The explanation is
// requested inline; a failed request leaves it empty.
func (s *Service) DiagnoseWait(ctx context.Context, input *ClassifyInput) *DiagnosisResult {
	result := s.classify(input)
	if s.explainer == nil {
		return result
	}
	text, err := s.explainer.Explain(ctx, input, result.Category)
	if err != nil {
		s.log.Warn("explanation failed", zap.Error(err))
		return result
	}
	result.Explanation = text
	result.ClassifierName = "llm"
	return result
}

func (s *Service) classify(input *ClassifyInput) *DiagnosisResult {
	result := &DiagnosisResult{
		Category:       CategoryUnclassified,
		ClassifierName: "none",
	}
	if cat, conf, name := RunClassifiers(s.classifiers, input); cat != "" {
		result.Category = cat
		result.Confidence = conf
		result.ClassifierName = name
	}
	result.Tip = adviceFor(result.Category)
	return result
}

func (s *Service) dispatchLLM(ctx context.Context, input *ClassifyInput, result DiagnosisResult, cb func(*DiagnosisResult)) {
	select {
	case s.pending <- diagnosisJob{ctx: ctx, input: input, result: result, cb: cb}:
	default:
		s.log.Debug("explanation queue full, dropping request",
			zap.String("category", string(result.Category)))
	}
}

func (s *Service) processLoop() {
	defer close(s.done)
	for job := range s.pending {
		text, err := s.explainer.Explain(job.ctx, job.input, job.result.Category)
		if err != nil {
			s.log.Warn("explanation failed", zap.Error(err))
			continue
		}
		res := job.result
		res.Explanation = text
		res.ClassifierName = "llm"
		if job.cb != nil {
			job.cb(&res)
		}
	}
}

// Close shuts down the async processing loop and waits for queued
// explanations to finish.
func (s *Service) Close() {
	s.closeOnce.Do(func() {
		if s.explainer != nil {
			close(s.pending)
		}
	})
	<-s.done
}
