package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solacehq/solace/backend/internal/analysis/signal"
	"github.com/solacehq/solace/backend/internal/model/chat"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "solace.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testTurn(sessionID string, at time.Time, sentiment float64) chat.Turn {
	return chat.Turn{
		ID:        "turn-" + at.Format("150405.000"),
		SessionID: sessionID,
		Message:   chat.Message{SessionID: sessionID, Sender: chat.SenderUser, Content: "hi"},
		Signals:   signal.Set{Sentiment: sentiment},
		Context:   "{}",
		Response:  chat.Response{Text: "hello", Provenance: chat.ProvenanceGreeting},
		CreatedAt: at,
	}
}

func TestSaveTurnAndMoodHistory(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	sentiments := []float64{-0.5, 0.0, 0.6}
	for i, sentiment := range sentiments {
		require.NoError(t, store.SaveTurn(ctx, testTurn("s1", base.Add(time.Duration(i)*time.Minute), sentiment)))
	}

	points, err := store.MoodHistory(ctx, "s1", 20)
	require.NoError(t, err)
	require.Len(t, points, 3)

	// Chronological order with matching sentiments.
	for i, point := range points {
		assert.True(t, point.Timestamp.Equal(base.Add(time.Duration(i)*time.Minute)),
			"unexpected timestamp %v at index %d", point.Timestamp, i)
		assert.InDelta(t, sentiments[i], point.Sentiment, 1e-9)
	}
}

func TestMoodHistoryLimitKeepsMostRecent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, store.SaveTurn(ctx, testTurn("s1", base.Add(time.Duration(i)*time.Minute), float64(i))))
	}

	points, err := store.MoodHistory(ctx, "s1", 2)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.InDelta(t, 3.0, points[0].Sentiment, 1e-9)
	assert.InDelta(t, 4.0, points[1].Sentiment, 1e-9)
}

func TestMoodHistoryEmptySession(t *testing.T) {
	store := openTestStore(t)

	points, err := store.MoodHistory(context.Background(), "nobody", 20)
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestClearSessionOnlyDeletesOwnRows(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, store.SaveTurn(ctx, testTurn("s1", now, 0.1)))
	require.NoError(t, store.SaveTurn(ctx, testTurn("s2", now, 0.2)))

	require.NoError(t, store.ClearSession(ctx, "s1"))

	points, err := store.MoodHistory(ctx, "s1", 20)
	require.NoError(t, err)
	assert.Empty(t, points)

	points, err = store.MoodHistory(ctx, "s2", 20)
	require.NoError(t, err)
	assert.Len(t, points, 1)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solace.db")

	first, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, first.SaveTurn(context.Background(), testTurn("s1", time.Now().UTC(), 0)))
	require.NoError(t, first.Close())

	// Re-opening migrates again without error and keeps existing rows.
	second, err := Open(path)
	require.NoError(t, err)
	defer second.Close()

	points, err := second.MoodHistory(context.Background(), "s1", 20)
	require.NoError(t, err)
	assert.Len(t, points, 1)
}

func TestSaveTurnValidation(t *testing.T) {
	store := openTestStore(t)

	err := store.SaveTurn(context.Background(), chat.Turn{})
	assert.Error(t, err)
}
