package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"questionnaire/internal/metrics"
	"questionnaire/internal/model"
	"questionnaire/internal/storage"
)

const (
	audioContentType = "audio/mpeg"
	maxSlotIDLen     = 64
	// maxNameAttempts bounds retries when a generated name is already taken.
	maxNameAttempts = 3
)

var slotIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// MediaService places uploaded audio in public storage.
type MediaService interface {
	// Ingest stores the audio read from r for the given slot and returns the stored asset.
	// size is the exact number of bytes, or -1 if unknown.
	Ingest(ctx context.Context, r io.Reader, size int64, slotID string) (*model.MediaAsset, error)
}

type mediaService struct {
	store   storage.Storage
	metrics *metrics.Collectors
	now     func() time.Time
	token   func() string
}

// NewMediaService constructs a new MediaService.
func NewMediaService(store storage.Storage, m *metrics.Collectors) MediaService {
	return &mediaService{
		store:   store,
		metrics: m,
		now:     time.Now,
		token:   randomToken,
	}
}

func (s *mediaService) Ingest(ctx context.Context, r io.Reader, size int64, slotID string) (*model.MediaAsset, error) {
	ctx, span := tracer.Start(ctx, "MediaService.Ingest")
	defer span.End()

	slotID = strings.TrimSpace(slotID)
	if err := validateIngest(r, slotID); err != nil {
		s.metrics.MediaIngest(s.store.Backend(), metrics.ResultInvalid, 0)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.String("questionnaire.slot_id", slotID))

	var (
		name string
		info storage.ObjectInfo
		err  error
	)
	for attempt := 1; attempt <= maxNameAttempts; attempt++ {
		if attempt > 1 {
			if err = rewind(r); err != nil {
				break
			}
		}
		name = s.generateName(slotID)
		info, err = s.store.Put(ctx, name, r, storage.PutObjectOptions{
			Size:        size,
			ContentType: audioContentType,
			Metadata:    map[string]string{"slot-id": slotID},
		})
		if !errors.Is(err, storage.ErrExists) {
			break
		}
	}
	if err != nil {
		s.metrics.MediaIngest(s.store.Backend(), metrics.ResultError, 0)
		span.RecordError(err)
		span.SetStatus(codes.Error, "store media")
		return nil, fmt.Errorf("store media: %w", err)
	}

	s.metrics.MediaIngest(s.store.Backend(), metrics.ResultSuccess, info.Size)
	return &model.MediaAsset{
		SlotID:      slotID,
		Name:        name,
		StorageKey:  info.Key,
		PublicPath:  s.store.PublicURL(info.Key),
		Size:        info.Size,
		ContentType: audioContentType,
		CreatedAt:   s.now().UTC(),
	}, nil
}

// generateName returns question_<slot>_<unix millis>_<token>.mp3.
func (s *mediaService) generateName(slotID string) string {
	return fmt.Sprintf("question_%s_%d_%s.mp3", slotID, s.now().UnixMilli(), s.token())
}

func validateIngest(r io.Reader, slotID string) error {
	if r == nil {
		return ErrContentRequired
	}
	if slotID == "" {
		return ErrSlotIDRequired
	}
	if len(slotID) > maxSlotIDLen || !slotIDPattern.MatchString(slotID) {
		return ErrInvalidSlotID
	}
	return nil
}

func rewind(r io.Reader) error {
	seeker, ok := r.(io.Seeker)
	if !ok {
		return fmt.Errorf("%w: cannot retry upload with a non-seekable reader", storage.ErrExists)
	}
	if _, err := seeker.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind upload: %w", err)
	}
	return nil
}

func randomToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
