package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deaffirst/deafcheck/internal/adapters/outbound/store"
	"github.com/deaffirst/deafcheck/internal/domain"
)

func sampleResult(id string, score float64) *domain.ValidationResult {
	return &domain.ValidationResult{
		ID:           id,
		Target:       domain.TargetURL("https://example.org/"),
		CreatedAt:    time.Now().UTC(),
		OverallScore: score,
		Passed:       score >= 70,
		Status:       domain.StatusCompleted,
		Breakdown: map[domain.Category]*domain.CheckerResult{
			domain.CategoryVisualClarity: {
				Category:  domain.CategoryVisualClarity,
				Score:     22,
				Completed: true,
			},
		},
	}
}

func TestMemory_PutAndGet(t *testing.T) {
	s := store.NewMemory()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, sampleResult("job-1", 88)))

	got, err := s.Get(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, 88.0, got.OverallScore)

	// Reads are idempotent.
	again, err := s.Get(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestMemory_GetUnknownID(t *testing.T) {
	s := store.NewMemory()
	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemory_WriteOnce(t *testing.T) {
	s := store.NewMemory()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, sampleResult("job-1", 40)))
	require.NoError(t, s.Put(ctx, sampleResult("job-1", 95)))

	got, err := s.Get(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, 40.0, got.OverallScore)
}

func TestMemory_RejectsEmptyID(t *testing.T) {
	s := store.NewMemory()
	assert.Error(t, s.Put(context.Background(), &domain.ValidationResult{}))
}

func TestFile_PutAndGet(t *testing.T) {
	s := store.NewFile(t.TempDir())
	ctx := context.Background()

	original := sampleResult("job-7", 73)
	require.NoError(t, s.Put(ctx, original))

	loaded, err := s.Get(ctx, "job-7")
	require.NoError(t, err)
	assert.Equal(t, original.ID, loaded.ID)
	assert.Equal(t, original.OverallScore, loaded.OverallScore)
	assert.True(t, loaded.Passed)
	require.Contains(t, loaded.Breakdown, domain.CategoryVisualClarity)
	assert.Equal(t, 22.0, loaded.Breakdown[domain.CategoryVisualClarity].Score)
}

func TestFile_GetUnknownID(t *testing.T) {
	s := store.NewFile(t.TempDir())
	_, err := s.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFile_WriteOnce(t *testing.T) {
	s := store.NewFile(t.TempDir())
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, sampleResult("job-7", 40)))
	require.NoError(t, s.Put(ctx, sampleResult("job-7", 95)))

	loaded, err := s.Get(ctx, "job-7")
	require.NoError(t, err)
	assert.Equal(t, 40.0, loaded.OverallScore)
}
