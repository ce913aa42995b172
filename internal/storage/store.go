// Package storage provides the SQLite-backed mood log: one row per turn,
// read back as a (timestamp, sentiment) series for charting.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/solacehq/solace/backend/internal/model/chat"
)

// Store provides SQLite-backed persistence for conversation turns.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path, runs migrations, and returns
// a ready Store.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("open store: path is empty")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err = Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// New returns a Store bound to an existing database handle.
func New(db *sql.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveTurn appends one turn to the mood log.
func (s *Store) SaveTurn(ctx context.Context, turn chat.Turn) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("save turn: store is nil")
	}
	if turn.SessionID == "" {
		return fmt.Errorf("save turn: session id is empty")
	}

	timestamp := turn.CreatedAt
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}

	sqlString := `INSERT INTO mood_tracking (session_id, timestamp, user_message, bot_response, sentiment, context)
	              VALUES (?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, sqlString,
		turn.SessionID,
		timestamp.UTC().Format(time.RFC3339Nano),
		turn.Message.Content,
		turn.Response.Text,
		turn.Signals.Sentiment,
		turn.Context,
	)
	if err != nil {
		return fmt.Errorf("save turn: insert: %w", err)
	}
	return nil
}

// MoodHistory returns up to limit of the most recent (timestamp, sentiment)
// pairs for a session, ordered chronologically.
func (s *Store) MoodHistory(ctx context.Context, sessionID string, limit int) ([]chat.MoodPoint, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("mood history: store is nil")
	}
	if sessionID == "" {
		return nil, fmt.Errorf("mood history: session id is empty")
	}
	if limit <= 0 {
		limit = 20
	}

	sqlString := `SELECT timestamp, sentiment FROM mood_tracking
	              WHERE session_id = ?
	              ORDER BY timestamp DESC, id DESC
	              LIMIT ?`
	rows, err := s.db.QueryContext(ctx, sqlString, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("mood history: query: %w", err)
	}
	defer rows.Close()

	points := make([]chat.MoodPoint, 0, limit)
	for rows.Next() {
		var timestampStr string
		var point chat.MoodPoint
		if err = rows.Scan(&timestampStr, &point.Sentiment); err != nil {
			return nil, fmt.Errorf("mood history: scan: %w", err)
		}
		point.Timestamp, err = time.Parse(time.RFC3339Nano, timestampStr)
		if err != nil {
			return nil, fmt.Errorf("mood history: parse timestamp: %w", err)
		}
		points = append(points, point)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("mood history: rows: %w", err)
	}

	// Query returns newest-first; the chart wants oldest-first.
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
	return points, nil
}

// ClearSession deletes every persisted row for a session.
func (s *Store) ClearSession(ctx context.Context, sessionID string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("clear session: store is nil")
	}
	if sessionID == "" {
		return fmt.Errorf("clear session: session id is empty")
	}

	_, err := s.db.ExecContext(ctx, `DELETE FROM mood_tracking WHERE session_id = ?`, sessionID)
	if err != nil {
		return fmt.Errorf("clear session: delete: %w", err)
	}
	return nil
}
