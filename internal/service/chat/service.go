// Package chat orchestrates the dialogue pipeline: extract signals, select a
// response against the session context, commit the turn, and hand it to the
// persistence collaborator.
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/solacehq/solace/backend/internal/analysis/signal"
	"github.com/solacehq/solace/backend/internal/dialogue"
	"github.com/solacehq/solace/backend/internal/model/chat"
	"github.com/solacehq/solace/backend/internal/model/lexicon"
)

var (
	ErrSessionNotFound = errors.New("session not found")
)

// TurnStore is the persistence collaborator. A write failure must never block
// response generation, so the service treats SaveTurn errors as warnings.
type TurnStore interface {
	SaveTurn(ctx context.Context, turn chat.Turn) error
	MoodHistory(ctx context.Context, sessionID string, limit int) ([]chat.MoodPoint, error)
	ClearSession(ctx context.Context, sessionID string) error
}

// session pairs one conversation's context with its append-only turn history.
// Each session owns an independent context; nothing is shared across sessions.
type session struct {
	record  chat.Session
	context *dialogue.Context
	turns   []chat.Turn
}

// Service owns every active session. Messages within one session are handled
// strictly sequentially: the next message is not analyzed until the previous
// turn's context update has committed.
type Service struct {
	mu        sync.Mutex
	extractor *signal.Extractor
	selector  *dialogue.Selector
	store     TurnStore
	sessions  map[string]*session
	moodLimit int
}

// NewService wires the dialogue engine over the supplied lexicon tables.
// A nil rng gets a time-seeded source; tests inject a fixed seed.
func NewService(tables *lexicon.Tables, store TurnStore, rng *rand.Rand, moodLimit int) (*Service, error) {
	if tables == nil {
		return nil, fmt.Errorf("chat: lexicon tables must not be nil")
	}
	if store == nil {
		return nil, fmt.Errorf("chat: turn store must not be nil")
	}
	if moodLimit <= 0 {
		moodLimit = 20
	}
	return &Service{
		extractor: signal.NewExtractor(tables),
		selector:  dialogue.NewSelector(tables, rng),
		store:     store,
		sessions:  make(map[string]*session),
		moodLimit: moodLimit,
	}, nil
}

// CreateSession provisions an anonymous conversation with a fresh context.
func (s *Service) CreateSession(_ context.Context) (chat.Session, error) {
	record := chat.Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.sessions[record.ID] = &session{
		record:  record,
		context: dialogue.NewContext(),
		turns:   make([]chat.Turn, 0, 16),
	}
	s.mu.Unlock()

	return record, nil
}

// GetSession retrieves a session record by identifier.
func (s *Service) GetSession(_ context.Context, sessionID string) (chat.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return chat.Session{}, ErrSessionNotFound
	}
	return sess.record, nil
}

// HandleMessage runs one message through extractor, selector and context
// update, appends the turn to the in-memory history, and hands it to the
// store. An empty message is not an error; it degrades to the general-support
// state. A persistence failure is logged and the response still returned.
func (s *Service) HandleMessage(ctx context.Context, sessionID, content string) (chat.Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return chat.Turn{}, ErrSessionNotFound
	}

	now := time.Now().UTC()
	message := chat.Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Sender:    chat.SenderUser,
		Content:   content,
		CreatedAt: now,
	}

	signals := s.extractor.Extract(content)
	snapshot := encodeSnapshot(sess.context.Snapshot())
	response := s.selector.Select(signals, sess.context)

	turn := chat.Turn{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Number:    sess.context.TurnCount() + 1,
		Message:   message,
		Signals:   signals,
		Context:   snapshot,
		Response:  response,
		CreatedAt: now,
	}

	sess.turns = append(sess.turns, turn)
	sess.context.Update(signals, response)

	if err := s.store.SaveTurn(ctx, turn); err != nil {
		log.Printf("[chat] warning: failed to persist turn %s: %v", turn.ID, err)
	}

	return turn, nil
}

// Transcript returns a copy of the session's ordered turn history.
func (s *Service) Transcript(_ context.Context, sessionID string) ([]chat.Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	copied := make([]chat.Turn, len(sess.turns))
	copy(copied, sess.turns)
	return copied, nil
}

// MoodHistory reads the persisted sentiment series back for charting.
func (s *Service) MoodHistory(ctx context.Context, sessionID string) ([]chat.MoodPoint, error) {
	s.mu.Lock()
	_, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	return s.store.MoodHistory(ctx, sessionID, s.moodLimit)
}

// ClearHistory discards the session's context and turn history and clears the
// persisted rows. After it returns, the next message is turn 1 again. A
// storage failure only loses the durable copy and is logged, not returned.
func (s *Service) ClearHistory(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if ok {
		sess.context = dialogue.NewContext()
		sess.turns = sess.turns[:0]
	}
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	if err := s.store.ClearSession(ctx, sessionID); err != nil {
		log.Printf("[chat] warning: failed to clear persisted history for %s: %v", sessionID, err)
	}
	return nil
}

func encodeSnapshot(summary dialogue.Summary) string {
	raw, err := json.Marshal(summary)
	if err != nil {
		// Summary contains only strings, bools and ints; this cannot fail.
		return "{}"
	}
	return string(raw)
}
