package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"questionnaire/internal/metrics"
	"questionnaire/internal/model"
	"questionnaire/internal/repository"
)

var tracer = otel.Tracer("questionnaire/internal/service")

// QuestionService defines the use cases for the current question set.
type QuestionService interface {
	// Get returns the current question set; an empty one if it was never saved.
	Get(ctx context.Context) (*model.Document, error)

	// Replace validates doc and stores it in place of the current question set.
	Replace(ctx context.Context, doc *model.Document) error

	// Ping reports whether the underlying storage is reachable.
	Ping(ctx context.Context) error
}

// questionService is a concrete implementation of QuestionService.
type questionService struct {
	repo    repository.DocumentRepository
	metrics *metrics.Collectors
}

// NewQuestionService constructs a new QuestionService.
func NewQuestionService(repo repository.DocumentRepository, m *metrics.Collectors) QuestionService {
	return &questionService{repo: repo, metrics: m}
}

func (s *questionService) Get(ctx context.Context) (*model.Document, error) {
	ctx, span := tracer.Start(ctx, "QuestionService.Get")
	defer span.End()

	doc, err := s.repo.Read(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read question set")
		return nil, fmt.Errorf("read question set: %w", err)
	}
	return doc.Normalize(), nil
}

// Replace rejects documents without a questions array or with mismatched lengths,
// leaving the stored document untouched.
func (s *questionService) Replace(ctx context.Context, doc *model.Document) error {
	ctx, span := tracer.Start(ctx, "QuestionService.Replace")
	defer span.End()

	if err := validateDocument(doc); err != nil {
		s.metrics.DocumentWrite(metrics.ResultInvalid)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.SetAttributes(attribute.Int("questionnaire.questions", len(doc.Questions)))

	out := &model.Document{
		Questions: append([]string{}, doc.Questions...),
		AudioURLs: append([]string{}, doc.AudioURLs...),
	}
	if err := s.repo.Write(ctx, out); err != nil {
		s.metrics.DocumentWrite(metrics.ResultError)
		span.RecordError(err)
		span.SetStatus(codes.Error, "write question set")
		return fmt.Errorf("write question set: %w", err)
	}
	s.metrics.DocumentWrite(metrics.ResultSuccess)
	return nil
}

func (s *questionService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func validateDocument(doc *model.Document) error {
	if doc == nil || doc.Questions == nil {
		return ErrQuestionsRequired
	}
	if len(doc.AudioURLs) != len(doc.Questions) {
		return ErrLengthMismatch
	}
	return nil
}
