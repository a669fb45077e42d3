package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// jsonResponse writes a JSON response with the given status.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("failed to encode response", zap.Error(err))
	}
}

// jsonError writes the standard error payload: a short machine-readable code
// and a human-readable message.
func (s *Server) jsonError(w http.ResponseWriter, status int, code, message string) {
	s.jsonResponse(w, status, map[string]string{
		"error":   code,
		"message": message,
	})
}
