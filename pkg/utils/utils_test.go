package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestGenerateID(t *testing.T) {
	id := GenerateID("bid")
	require.True(t, strings.HasPrefix(id, "bid_"))
	_, err := uuid.Parse(strings.TrimPrefix(id, "bid_"))
	require.NoError(t, err)

	_, err = uuid.Parse(GenerateID(""))
	require.NoError(t, err)
	require.NotEqual(t, GenerateID("bid"), GenerateID("bid"))
}

func TestManualClock(t *testing.T) {
	start := time.Date(2025, 10, 2, 12, 0, 0, 0, time.UTC)
	c := NewManualClock(start)
	require.Equal(t, start, c.Now())

	c.Advance(time.Hour)
	require.Equal(t, start.Add(time.Hour), c.Now())

	c.Set(start)
	require.Equal(t, start, c.Now())
}
