package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/solacehq/solace/backend/internal/model/chat"
	"github.com/solacehq/solace/backend/internal/model/lexicon"
	chatservice "github.com/solacehq/solace/backend/internal/service/chat"
	"github.com/solacehq/solace/backend/pkg/utils"
)

// Handler exposes the conversation engine over HTTP.
type Handler struct {
	chatSvc *chatservice.Service
}

// New creates the chat handler.
func New(chatSvc *chatservice.Service) *Handler {
	return &Handler{chatSvc: chatSvc}
}

// RegisterRoutes mounts the chat routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/session", h.handleCreateSession)
	r.Get("/session/{sessionID}", h.handleGetSession)
	r.Post("/session/{sessionID}/messages", h.handleMessage)
	r.Get("/session/{sessionID}/transcript", h.handleTranscript)
	r.Get("/session/{sessionID}/mood", h.handleMoodHistory)
	r.Delete("/session/{sessionID}/history", h.handleClearHistory)
}

// turnPayload is what the frontend needs to render a reply and the mood
// indicator next to it.
type turnPayload struct {
	Response   string                   `json:"response"`
	Provenance chat.Provenance          `json:"provenance"`
	Sentiment  float64                  `json:"sentiment"`
	Emotions   []lexicon.Emotion        `json:"emotions,omitempty"`
	Stressor   lexicon.Stressor         `json:"stressor,omitempty"`
	Crisis     bool                     `json:"crisis"`
	Question   lexicon.QuestionCategory `json:"question,omitempty"`
	Turn       chat.Turn                `json:"turn"`
}

func newTurnPayload(turn chat.Turn) turnPayload {
	return turnPayload{
		Response:   turn.Response.Text,
		Provenance: turn.Response.Provenance,
		Sentiment:  turn.Signals.Sentiment,
		Emotions:   turn.Signals.Emotions,
		Stressor:   turn.Signals.Stressor,
		Crisis:     turn.Signals.Crisis,
		Question:   turn.Response.Question,
		Turn:       turn,
	}
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.chatSvc.CreateSession(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusCreated, session)
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	session, err := h.chatSvc.GetSession(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, session)
}

func (h *Handler) handleMessage(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var payload struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// An empty content field is still a valid turn; it degrades to the
	// general-support state rather than erroring.
	turn, err := h.chatSvc.HandleMessage(r.Context(), sessionID, payload.Content)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, newTurnPayload(turn))
}

func (h *Handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	turns, err := h.chatSvc.Transcript(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"turns": turns})
}

func (h *Handler) handleMoodHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	points, err := h.chatSvc.MoodHistory(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	average := 0.0
	for _, point := range points {
		average += point.Sentiment
	}
	if len(points) > 0 {
		average /= float64(len(points))
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"points":  points,
		"average": average,
	})
}

func (h *Handler) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if err := h.chatSvc.ClearHistory(r.Context(), sessionID); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func respondServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, chatservice.ErrSessionNotFound) {
		status = http.StatusNotFound
	}
	utils.RespondError(w, status, err.Error())
}
