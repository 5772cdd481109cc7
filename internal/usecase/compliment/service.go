// Package compliment implements the compliment machine: users submit
// compliments, and readers get a random approved one back.
//
// Writes go to the configured store and fall back to an in-process store when
// it is unreachable. Reads try the configured store (with retries), then the
// in-process store, then the bundled compliments, so reading never fails.
package compliment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"quirkit/internal/domain/entity"
	"quirkit/internal/observability/metrics"
	"quirkit/internal/repository"
	"quirkit/internal/resilience/fallback"
	"quirkit/internal/resilience/retry"
)

// Where a random compliment came from.
const (
	SourceDatabase = "database"
	SourceMemory   = "memory"
	SourceFallback = "fallback"
)

const (
	msgSent        = "Compliment sent successfully!"
	msgUnderReview = "Compliment submitted for review"
)

// SubmitResult is the response to a submission.
type SubmitResult struct {
	Message         string `json:"message"`
	ComplimentID    string `json:"complimentId"`
	IsApproved      bool   `json:"isApproved"`
	NeedsModeration bool   `json:"needsModeration"`
}

// RandomResult is a compliment picked for display.
type RandomResult struct {
	Message   string `json:"message"`
	Sender    string `json:"sender"`
	Timestamp int64  `json:"timestamp"`
	Source    string `json:"source"`
}

// Service submits and retrieves compliments.
type Service struct {
	primary     repository.ComplimentRepository
	memory      repository.ComplimentRepository
	pool        fallback.Pool[entity.Compliment]
	retryConfig retry.Config
	logger      *slog.Logger
	now         func() time.Time
	newID       func() string
	intn        func(int) int
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithRetryConfig replaces retry.StoreConfig for primary-store reads.
func WithRetryConfig(cfg retry.Config) Option {
	return func(s *Service) { s.retryConfig = cfg }
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator sets how compliment ids are generated.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// WithRand sets the index picker; intn must return a value in [0, n).
func WithRand(intn func(int) int) Option {
	return func(s *Service) { s.intn = intn }
}

// NewService creates a Service. primary may be nil, in which case memory is
// the only store and reads report SourceMemory. pool holds the bundled
// compliments served when no store has an approved one.
func NewService(primary, memory repository.ComplimentRepository, pool []entity.Compliment, opts ...Option) (*Service, error) {
	if memory == nil {
		return nil, errors.New("compliment: memory store is required")
	}
	p, err := fallback.NewPool(pool)
	if err != nil {
		return nil, fmt.Errorf("compliment: %w", err)
	}

	s := &Service{
		primary:     primary,
		memory:      memory,
		pool:        p,
		retryConfig: retry.StoreConfig(),
		logger:      slog.Default(),
		now:         time.Now,
		newID:       uuid.NewString,
		intn:        rand.IntN,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Submit validates and stores a compliment. Profanity in the message or the
// sender does not reject the compliment: it is stored unapproved with the
// profanity flag and queued for moderation.
func (s *Service) Submit(ctx context.Context, message, sender string) (SubmitResult, error) {
	message, sender, err := entity.ValidateCompliment(message, sender)
	if err != nil {
		return SubmitResult{}, err
	}

	c := entity.Compliment{
		ID:          s.newID(),
		Message:     entity.SanitizeText(message),
		Sender:      entity.SanitizeText(sender),
		Timestamp:   s.now().UnixMilli(),
		IsModerated: true,
		IsApproved:  true,
	}
	if entity.ContainsProfanity(message) || entity.ContainsProfanity(sender) {
		c.IsApproved = false
		c.ModerationFlags = []string{entity.ModerationFlagProfanity}
	}

	if err := s.store(ctx, c); err != nil {
		return SubmitResult{}, fmt.Errorf("store compliment: %w", err)
	}
	metrics.RecordComplimentSubmitted(c.IsApproved)

	res := SubmitResult{
		Message:         msgSent,
		ComplimentID:    c.ID,
		IsApproved:      c.IsApproved,
		NeedsModeration: !c.IsApproved,
	}
	if !c.IsApproved {
		res.Message = msgUnderReview
	}
	return res, nil
}

func (s *Service) store(ctx context.Context, c entity.Compliment) error {
	if s.primary != nil {
		err := s.primary.Append(ctx, c)
		if err == nil {
			return nil
		}
		if errors.Is(err, context.Canceled) {
			return err
		}
		s.logger.WarnContext(ctx, "compliment store write failed, using memory store",
			slog.String("compliment_id", c.ID),
			slog.Any("error", err))
		metrics.RecordComplimentFailover("submit")
	}
	return s.memory.Append(ctx, c)
}

// Random returns a random approved compliment.
func (s *Service) Random(ctx context.Context) (RandomResult, error) {
	if s.primary != nil {
		var approved []entity.Compliment
		err := retry.WithBackoff(ctx, s.retryConfig, func() error {
			var err error
			approved, err = s.primary.Filter(ctx, entity.Compliment.Approved)
			return err
		})
		switch {
		case err == nil && len(approved) > 0:
			return s.pick(approved, SourceDatabase), nil
		case errors.Is(err, context.Canceled):
			return RandomResult{}, err
		case err != nil:
			s.logger.WarnContext(ctx, "compliment store read failed, using memory store",
				slog.Any("error", err))
			metrics.RecordComplimentFailover("random")
		}
	}

	approved, err := s.memory.Filter(ctx, entity.Compliment.Approved)
	if err != nil {
		s.logger.WarnContext(ctx, "memory compliment store read failed", slog.Any("error", err))
	}
	if len(approved) > 0 {
		return s.pick(approved, SourceMemory), nil
	}

	c, err := s.pool.Random(s.intn)
	if err != nil {
		return RandomResult{}, err
	}
	return RandomResult{
		Message:   c.Message,
		Sender:    c.Sender,
		Timestamp: s.now().UnixMilli(),
		Source:    SourceFallback,
	}, nil
}

func (s *Service) pick(cs []entity.Compliment, source string) RandomResult {
	c := cs[s.intn(len(cs))]
	return RandomResult{
		Message:   c.Message,
		Sender:    c.Sender,
		Timestamp: c.Timestamp,
		Source:    source,
	}
}
