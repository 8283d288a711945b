package api

import (
	"encoding/json"
	"net/http"

	"github.com/pasar-labs/xiara/server/internal/agent/model"
	"github.com/pasar-labs/xiara/server/internal/agent/orchestrator"
	logx "github.com/pasar-labs/xiara/server/pkg/logger"
)

// apologyMessage is returned when a turn fails outright; users never see raw
// internal errors.
const apologyMessage = "Sorry, I encountered an error trying to respond to your request."

type ChatRequest struct {
	UserID  string                `json:"userId"`
	Prompt  string                `json:"prompt"`
	Context *model.ProductContext `json:"context,omitempty"`
}

type ChatResponse struct {
	Response           string                `json:"response"`
	NeedsClarification bool                  `json:"needs_clarification"`
	IsNegotiating      bool                  `json:"is_negotiating"`
	Cached             bool                  `json:"cached"`
	Context            *model.ProductContext `json:"context,omitempty"`
}

// Handler exposes the dialogue orchestrator over HTTP.
type Handler struct {
	agent *orchestrator.Orchestrator
}

func NewHandler(agent *orchestrator.Orchestrator) *Handler {
	return &Handler{agent: agent}
}

// Register wires the routes onto the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /ping", h.Ping)
	mux.HandleFunc("POST /chat", h.Chat)
	mux.HandleFunc("DELETE /reset/{user_id}", h.Reset)
}

func (h *Handler) Ping(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "Xiara is running!"})
}

func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.UserID == "" || req.Prompt == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "userId and prompt are required"})
		return
	}

	logx.Info().Str("user_id", req.UserID).Str("prompt", req.Prompt).Msg("received chat request")

	reply, err := h.agent.Handle(r.Context(), model.QueryInput{
		UserID:  req.UserID,
		Query:   req.Prompt,
		Product: req.Context,
	})
	if err != nil {
		logx.Error().Err(err).Str("user_id", req.UserID).Msg("failed to handle chat turn")
		writeJSON(w, http.StatusInternalServerError, ChatResponse{Response: apologyMessage})
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{
		Response:           reply.Response,
		NeedsClarification: reply.NeedsClarification,
		IsNegotiating:      reply.IsNegotiating,
		Cached:             reply.Cached,
		Context:            reply.Product,
	})
}

func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "user_id is required"})
		return
	}

	if err := h.agent.Reset(r.Context(), userID); err != nil {
		logx.Error().Err(err).Str("user_id", userID).Msg("failed to reset user state")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"status": "error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logx.Error().Err(err).Msg("failed to encode response")
	}
}
