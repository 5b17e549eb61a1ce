package http

import (
	"encoding/json"
	"net/http"

	"ledgerbot/internal/commands"
	"ledgerbot/internal/log"
)

type commandRequest struct {
	User    string            `json:"user"`
	Command string            `json:"command"`
	Args    map[string]string `json:"args,omitempty"`
}

type commandResponse struct {
	Text string `json:"text"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	var req commandRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if req.User == "" || req.Command == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "user and command are required"})
		return
	}

	reply, err := s.handler.Handle(r.Context(), commands.Request{
		User:    req.User,
		Command: req.Command,
		Args:    req.Args,
	})
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Command failed",
			log.FieldUser, req.User, log.FieldCommand, req.Command, log.FieldError, err.Error())
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, commandResponse{Text: reply.Text})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
