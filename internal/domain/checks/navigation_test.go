package checks_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deaffirst/deafcheck/internal/domain"
	"github.com/deaffirst/deafcheck/internal/domain/checks"
)

func TestNavigationLogic_CleanPageScoresMax(t *testing.T) {
	content := &domain.ParsedContent{
		HasSkipLink: true,
		Controls: []domain.Control{
			{Element: "a[0]", Tag: "a"},
			{Element: "input[0]", Tag: "input", HasTabIndex: true, TabIndex: 0},
			{Element: "button[0]", Tag: "button", HasTabIndex: true, TabIndex: -1},
		},
	}

	r := checks.NavigationLogic{}.Analyze(context.Background(), content)

	assert.Equal(t, domain.CategoryMax, r.Score)
	assert.Empty(t, r.Findings, "tabindex 0 and -1 do not break focus order")
}

func TestNavigationLogic_MetaRefreshIsBlocking(t *testing.T) {
	content := &domain.ParsedContent{HasSkipLink: true, MetaRefresh: true}

	r := checks.NavigationLogic{}.Analyze(context.Background(), content)

	require.Len(t, r.Findings, 1)
	assert.Equal(t, domain.SeverityBlocking, r.Findings[0].Severity)
	assert.Equal(t, "time_limit", r.Findings[0].Rule)
	assert.InDelta(t, domain.CategoryMax-6, r.Score, 0.0001)
}

func TestNavigationLogic_CountdownMarkersCapAtEight(t *testing.T) {
	content := &domain.ParsedContent{
		HasSkipLink:      true,
		CountdownMarkers: []string{"div[0]", "div[1]", "div[2]"},
	}

	r := checks.NavigationLogic{}.Analyze(context.Background(), content)

	assert.InDelta(t, domain.CategoryMax-8, r.Score, 0.0001)
}

func TestNavigationLogic_MissingSkipLink(t *testing.T) {
	r := checks.NavigationLogic{}.Analyze(context.Background(), &domain.ParsedContent{})

	require.Len(t, r.Findings, 1)
	assert.Equal(t, "skip_navigation", r.Findings[0].Rule)
	assert.InDelta(t, domain.CategoryMax-5, r.Score, 0.0001)
}

func TestNavigationLogic_PositiveTabindex(t *testing.T) {
	content := &domain.ParsedContent{
		HasSkipLink: true,
		Controls: []domain.Control{
			{Element: "a[0]", Tag: "a", HasTabIndex: true, TabIndex: 3},
			{Element: "a[1]", Tag: "a", HasTabIndex: true, TabIndex: 1},
		},
	}

	r := checks.NavigationLogic{}.Analyze(context.Background(), content)

	assert.Len(t, r.Findings, 2)
	assert.InDelta(t, domain.CategoryMax-6, r.Score, 0.0001)
}
