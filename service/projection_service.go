package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"launchpilot/apperrors"
	"launchpilot/domain"
	"launchpilot/repository"
	"launchpilot/validation"
)

type ProjectionService struct {
	repo      repository.ProjectionRepository
	cache     repository.CacheRepository
	narrator  Narrator
	validator *validation.Validator
	logger    *zap.Logger
	cacheTTL  time.Duration
	timeout   time.Duration
	now       func() time.Time
	newID     func() string
	inflight  singleflight.Group
}

type Option func(*ProjectionService)

// WithCacheTTL sets how long computed projections stay cached. Zero keeps
// them until evicted by the cache itself.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *ProjectionService) { s.cacheTTL = ttl }
}

// WithComputeTimeout bounds a shared computation, including the narrative
// call and persistence.
func WithComputeTimeout(timeout time.Duration) Option {
	return func(s *ProjectionService) { s.timeout = timeout }
}

func WithClock(now func() time.Time) Option {
	return func(s *ProjectionService) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *ProjectionService) { s.newID = newID }
}

// NewProjectionService creates a ProjectionService. narrator may be nil, in
// which case projections carry no summary.
func NewProjectionService(
	repo repository.ProjectionRepository,
	cache repository.CacheRepository,
	narrator Narrator,
	logger *zap.Logger,
	opts ...Option,
) *ProjectionService {
	s := &ProjectionService{
		repo:      repo,
		cache:     cache,
		narrator:  narrator,
		validator: validation.New(),
		logger:    logger,
		cacheTTL:  24 * time.Hour,
		timeout:   time.Minute,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Project validates the inputs and returns the three-scenario projection,
// reusing a cached result for identical inputs.
func (s *ProjectionService) Project(ctx context.Context, input domain.ProjectionInputs) (domain.Projection, error) {
	if err := s.validator.Validate(input); err != nil {
		return domain.Projection{}, err
	}

	hash, err := repository.HashInputs(input)
	if err != nil {
		return domain.Projection{}, apperrors.Internal(err)
	}
	key := cacheKeyPrefix + hash

	if projection, ok := s.cached(ctx, key); ok {
		s.logger.Debug("projection cache hit", zap.String("key", key), zap.String("id", projection.ID))
		return projection, nil
	}

	// The flight is shared by every concurrent caller and its result is
	// cached, so it must not die with whichever request started it.
	v, err, shared := s.inflight.Do(key, func() (any, error) {
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()
		return s.compute(flightCtx, input, key)
	})
	if err != nil {
		return domain.Projection{}, apperrors.From(err)
	}
	if shared {
		s.logger.Debug("projection shared with concurrent request", zap.String("key", key))
	}
	return v.(domain.Projection), nil
}

// ProjectRequest validates a wire request, where every field must be
// present, and projects it.
func (s *ProjectionService) ProjectRequest(ctx context.Context, req domain.ProjectionRequest) (domain.Projection, error) {
	if err := s.validator.Validate(req); err != nil {
		return domain.Projection{}, err
	}
	return s.Project(ctx, req.Inputs())
}

// Get loads a previously computed projection.
func (s *ProjectionService) Get(ctx context.Context, id string) (domain.Projection, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Projection{}, apperrors.NotFound(fmt.Sprintf("projection %q not found", id))
	}

	projection, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Projection{}, apperrors.NotFound(fmt.Sprintf("projection %q not found", id))
		}
		return domain.Projection{}, apperrors.Internal(err)
	}
	return projection, nil
}

func (s *ProjectionService) compute(ctx context.Context, input domain.ProjectionInputs, key string) (domain.Projection, error) {
	scenarios, insights := BuildProjection(input)

	projection := domain.Projection{
		ID:          s.newID(),
		Inputs:      input,
		Scenarios:   scenarios,
		Insights:    insights,
		GeneratedAt: s.now().UTC(),
	}
	if s.narrator != nil {
		projection.Summary = s.narrator.Summarize(ctx, input, scenarios, insights)
	}

	payload, err := json.Marshal(projection)
	if err != nil {
		return domain.Projection{}, apperrors.Internal(fmt.Errorf("encode projection: %w", err))
	}

	// Persistence and caching are best effort; the caller still gets a result.
	if err := s.repo.Save(ctx, projection); err != nil {
		s.logger.Warn("failed to save projection", zap.String("id", projection.ID), zap.Error(err))
	}
	if err := s.cache.Set(ctx, key, string(payload), s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache projection", zap.String("key", key), zap.Error(err))
	}

	s.logger.Info("projection computed",
		zap.String("id", projection.ID),
		zap.String("productType", string(input.ProductType)),
		zap.Int("timeframe", input.Timeframe),
		zap.String("riskLevel", insights.RiskLevel))

	return projection, nil
}

func (s *ProjectionService) cached(ctx context.Context, key string) (domain.Projection, bool) {
	raw, ok := s.cache.Get(ctx, key)
	if !ok {
		return domain.Projection{}, false
	}
	var projection domain.Projection
	if err := json.Unmarshal([]byte(raw), &projection); err != nil {
		s.logger.Warn("discarding unreadable cache entry", zap.String("key", key), zap.Error(err))
		return domain.Projection{}, false
	}
	return projection, true
}
