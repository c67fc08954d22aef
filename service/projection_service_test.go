package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"launchpilot/apperrors"
	"launchpilot/domain"
	"launchpilot/repository"
)

type MockProjectionRepository struct {
	mu         sync.Mutex
	SaveCalls  int
	ForceError bool
	SaveCtxErr error
	saved      map[string]domain.Projection
}

func (m *MockProjectionRepository) Save(ctx context.Context, projection domain.Projection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls++
	m.SaveCtxErr = ctx.Err()
	if m.ForceError {
		return errors.New("save error")
	}
	if m.saved == nil {
		m.saved = make(map[string]domain.Projection)
	}
	m.saved[projection.ID] = projection
	return nil
}

func (m *MockProjectionRepository) FindByID(_ context.Context, id string) (domain.Projection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ForceError {
		return domain.Projection{}, errors.New("connection reset")
	}
	p, ok := m.saved[id]
	if !ok {
		return domain.Projection{}, repository.ErrNotFound
	}
	return p, nil
}

type stubNarrator struct {
	calls atomic.Int32
}

func (n *stubNarrator) Summarize(context.Context, domain.ProjectionInputs, []domain.ScenarioResult, domain.Insights) string {
	n.calls.Add(1)
	return "stub summary"
}

var fixedNow = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

func newTestService(t *testing.T, repo repository.ProjectionRepository, narrator Narrator) (*ProjectionService, *repository.MemoryCache) {
	t.Helper()
	cache := repository.NewMemoryCache()
	var seq atomic.Int32
	svc := NewProjectionService(repo, cache, narrator, zaptest.NewLogger(t),
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string {
			return fmt.Sprintf("00000000-0000-4000-8000-%012d", seq.Add(1))
		}),
	)
	return svc, cache
}

func TestProject_ComputesAndPersists(t *testing.T) {
	repo := &MockProjectionRepository{}
	narrator := &stubNarrator{}
	svc, cache := newTestService(t, repo, narrator)

	projection, err := svc.Project(context.Background(), referenceInputs())
	require.NoError(t, err)

	assert.Equal(t, "00000000-0000-4000-8000-000000000001", projection.ID)
	assert.Equal(t, fixedNow, projection.GeneratedAt)
	assert.Equal(t, "stub summary", projection.Summary)
	assert.Len(t, projection.Scenarios, 3)
	assert.Equal(t, referenceInputs(), projection.Inputs)
	assert.Equal(t, 1, repo.SaveCalls)
	assert.Equal(t, 1, cache.Len())
}

func TestProject_CacheHitSkipsRecompute(t *testing.T) {
	repo := &MockProjectionRepository{}
	narrator := &stubNarrator{}
	svc, _ := newTestService(t, repo, narrator)
	ctx := context.Background()

	first, err := svc.Project(ctx, referenceInputs())
	require.NoError(t, err)
	second, err := svc.Project(ctx, referenceInputs())
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Scenarios, second.Scenarios)
	assert.True(t, first.GeneratedAt.Equal(second.GeneratedAt))
	assert.Equal(t, 1, repo.SaveCalls)
	assert.EqualValues(t, 1, narrator.calls.Load())
}

func TestProject_DifferentInputsComputedSeparately(t *testing.T) {
	repo := &MockProjectionRepository{}
	svc, _ := newTestService(t, repo, nil)
	ctx := context.Background()

	first, err := svc.Project(ctx, referenceInputs())
	require.NoError(t, err)
	second, err := svc.Project(ctx, profitableInputs())
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Empty(t, first.Summary)
	assert.Equal(t, 2, repo.SaveCalls)
}

func TestProject_InvalidInput(t *testing.T) {
	repo := &MockProjectionRepository{}
	svc, _ := newTestService(t, repo, nil)

	in := referenceInputs()
	in.Timeframe = 0

	_, err := svc.Project(context.Background(), in)

	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	assert.Zero(t, repo.SaveCalls, "repository Save should NOT be called")
}

func TestProject_SaveFailureIsNotFatal(t *testing.T) {
	repo := &MockProjectionRepository{ForceError: true}
	svc, _ := newTestService(t, repo, nil)

	projection, err := svc.Project(context.Background(), referenceInputs())

	require.NoError(t, err)
	assert.NotEmpty(t, projection.ID)
	assert.Equal(t, 1, repo.SaveCalls)
}

func TestProject_ConcurrentIdenticalRequests(t *testing.T) {
	repo := &MockProjectionRepository{}
	svc, _ := newTestService(t, repo, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	ids := make([]string, 16)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := svc.Project(ctx, referenceInputs())
			if err == nil {
				ids[i] = p.ID
			}
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.NotEmpty(t, id)
	}
	// Each result is either shared or served from cache, never recomputed
	// after the first computation completes.
	assert.LessOrEqual(t, repo.SaveCalls, len(ids))
}

func TestGet(t *testing.T) {
	repo := &MockProjectionRepository{}
	svc, _ := newTestService(t, repo, nil)
	ctx := context.Background()

	created, err := svc.Project(ctx, referenceInputs())
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.Get(ctx, "00000000-0000-4000-8000-999999999999")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	_, err = svc.Get(ctx, "not-a-uuid")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestGet_RepositoryFailureIsInternal(t *testing.T) {
	repo := &MockProjectionRepository{ForceError: true}
	svc, _ := newTestService(t, repo, nil)

	_, err := svc.Get(context.Background(), "00000000-0000-4000-8000-000000000001")

	assert.True(t, apperrors.IsKind(err, apperrors.KindInternal))
}

type contextCheckingNarrator struct{}

func (contextCheckingNarrator) Summarize(ctx context.Context, _ domain.ProjectionInputs, _ []domain.ScenarioResult, _ domain.Insights) string {
	if ctx.Err() != nil {
		return "fallback summary"
	}
	if _, ok := ctx.Deadline(); !ok {
		return "unbounded summary"
	}
	return "full summary"
}

func TestProject_CancelledCallerDoesNotDegradeSharedResult(t *testing.T) {
	repo := &MockProjectionRepository{}
	svc, _ := newTestService(t, repo, contextCheckingNarrator{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	first, err := svc.Project(ctx, referenceInputs())
	require.NoError(t, err)
	assert.Equal(t, "full summary", first.Summary)
	assert.NoError(t, repo.SaveCtxErr)

	second, err := svc.Project(context.Background(), referenceInputs())
	require.NoError(t, err)
	assert.Equal(t, "full summary", second.Summary)
	assert.Equal(t, first.ID, second.ID)
}

func TestProjectRequest_RequiresEveryField(t *testing.T) {
	svc, _ := newTestService(t, &MockProjectionRepository{}, nil)
	price := 97.0

	_, err := svc.ProjectRequest(context.Background(), domain.ProjectionRequest{
		ProductType:      domain.ProductSaaS,
		SubscriptionType: domain.SubscriptionMonthly,
		PricePoint:       &price,
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindValidation, appErr.Kind)
	assert.Equal(t, "is required", appErr.Details["marketingBudget"])
	assert.Equal(t, "is required", appErr.Details["timeframe"])
	assert.NotContains(t, appErr.Details, "pricePoint")
}

func TestProjectRequest_MapsToInputs(t *testing.T) {
	svc, _ := newTestService(t, &MockProjectionRepository{}, nil)
	in := referenceInputs()

	req := domain.ProjectionRequest{
		ProductType:             in.ProductType,
		PricePoint:              &in.PricePoint,
		SubscriptionType:        in.SubscriptionType,
		TargetCustomers:         &in.TargetCustomers,
		ConversionRate:          &in.ConversionRate,
		ChurnRate:               &in.ChurnRate,
		AcquisitionCost:         &in.AcquisitionCost,
		LifetimeValueMultiplier: &in.LifetimeValueMultiplier,
		UpsellRate:              &in.UpsellRate,
		UpsellAmount:            &in.UpsellAmount,
		FixedCosts:              &in.FixedCosts,
		VariableCostPercentage:  &in.VariableCostPercentage,
		MarketingBudget:         &in.MarketingBudget,
		Timeframe:               &in.Timeframe,
		MonthlyGrowthRate:       &in.MonthlyGrowthRate,
		SeasonalityFactor:       &in.SeasonalityFactor,
	}

	projection, err := svc.ProjectRequest(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, referenceInputs(), projection.Inputs)
}
