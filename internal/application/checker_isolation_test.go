package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deaffirst/deafcheck/internal/domain"
)

type panickingChecker struct{}

func (panickingChecker) Category() domain.Category { return domain.CategoryASLCompatibility }
func (panickingChecker) Analyze(context.Context, *domain.ParsedContent) domain.CheckerResult {
	panic("index out of range")
}

type hangingChecker struct{}

func (hangingChecker) Category() domain.Category { return domain.CategoryAudioIndependence }
func (hangingChecker) Analyze(ctx context.Context, _ *domain.ParsedContent) domain.CheckerResult {
	<-ctx.Done()
	return domain.CheckerResult{Category: domain.CategoryAudioIndependence}
}

type cleanChecker struct{}

func (cleanChecker) Category() domain.Category { return domain.CategoryVisualClarity }
func (cleanChecker) Analyze(context.Context, *domain.ParsedContent) domain.CheckerResult {
	result := domain.CheckerResult{Category: domain.CategoryVisualClarity}
	result.FinalizeScore()
	return result
}

func TestRunCheckers_PanicDoesNotAffectSiblings(t *testing.T) {
	svc := NewValidateService(nil, nil, nil, domain.DefaultConfig())

	breakdown := svc.runCheckers(context.Background(),
		[]domain.Checker{panickingChecker{}, cleanChecker{}},
		&domain.ParsedContent{})

	require.Contains(t, breakdown, domain.CategoryASLCompatibility)
	assert.False(t, breakdown[domain.CategoryASLCompatibility].Completed)

	require.Contains(t, breakdown, domain.CategoryVisualClarity)
	assert.True(t, breakdown[domain.CategoryVisualClarity].Completed)
	assert.Equal(t, domain.CategoryMax, breakdown[domain.CategoryVisualClarity].Score)
}

func TestRunCheckers_DeadlineLeavesSlowCheckerIncomplete(t *testing.T) {
	svc := NewValidateService(nil, nil, nil, domain.DefaultConfig())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	breakdown := svc.runCheckers(ctx,
		[]domain.Checker{hangingChecker{}, cleanChecker{}},
		&domain.ParsedContent{})

	assert.True(t, breakdown[domain.CategoryVisualClarity].Completed)
	assert.False(t, breakdown[domain.CategoryAudioIndependence].Completed)
}
