package history_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deaffirst/deafcheck/internal/adapters/outbound/history"
	"github.com/deaffirst/deafcheck/internal/domain"
)

func TestHistory_SaveAppends(t *testing.T) {
	h := history.New()
	dir := t.TempDir()

	first := domain.ScoreEntry{
		Timestamp:    "2026-08-30T10:00:00Z",
		TargetKey:    "https://deafschool.edu/",
		OverallScore: 64,
		Status:       domain.StatusCompleted,
	}
	second := domain.ScoreEntry{
		Timestamp:    "2026-08-30T11:00:00Z",
		TargetKey:    "https://deafschool.edu/",
		OverallScore: 81,
		Passed:       true,
		Status:       domain.StatusCompleted,
	}

	require.NoError(t, h.Save(dir, first))
	require.NoError(t, h.Save(dir, second))

	entries, err := h.Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 64.0, entries[0].OverallScore)
	assert.Equal(t, 81.0, entries[1].OverallScore)
	assert.True(t, entries[1].Passed)
}

func TestHistory_LoadEmpty(t *testing.T) {
	entries, err := history.New().Load(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, entries)
}
