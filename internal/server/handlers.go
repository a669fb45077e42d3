package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/resume-insight/internal/ingestion"
	"github.com/jonathan/resume-insight/internal/scoring"
)

type analyzeRequest struct {
	File           string `json:"file" validate:"required"`
	JobDescription string `json:"job_description"`
}

type analyzeMetadata struct {
	ResumeLengthChars int  `json:"resume_length_chars"`
	ResumeLengthWords int  `json:"resume_length_words"`
	HasJobDescription bool `json:"has_job_description"`
}

type analyzeResponse struct {
	Assessment scoring.Assessment `json:"assessment"`
	Metadata   analyzeMetadata    `json:"metadata"`
}

type chatRequest struct {
	SessionID       string             `json:"session_id" validate:"required"`
	Message         string             `json:"message" validate:"required"`
	AnalysisContext scoring.Assessment `json:"analysis_context"`
}

type clearRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

// decodeAndValidate parses the request body into dst and runs struct
// validation. It writes the 400 response itself and reports success.
func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.jsonError(w, http.StatusBadRequest, "bad_request", "Request body must be valid JSON")
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		s.jsonError(w, http.StatusBadRequest, "bad_request", validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return "Invalid request"
	}
	missing := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		missing = append(missing, fe.Field())
	}
	return "Missing or invalid fields: " + strings.Join(missing, ", ")
}

// extractResume runs the ingestion pipeline on an uploaded payload.
func extractResume(payload string) (string, error) {
	data, err := ingestion.DecodeBase64(payload)
	if err != nil {
		return "", err
	}
	return ingestion.ExtractText(data)
}

func (s *Server) writeExtractionError(w http.ResponseWriter, err error) {
	var invalidErr *ingestion.InvalidInputError
	if errors.As(err, &invalidErr) {
		s.jsonError(w, http.StatusBadRequest, "invalid_file", invalidErr.Message)
		return
	}
	s.log.Error("extraction failed", zap.Error(err))
	s.jsonError(w, http.StatusInternalServerError, "extraction_failed", "Failed to extract resume text")
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	text, err := extractResume(req.File)
	if err != nil {
		s.writeExtractionError(w, err)
		return
	}

	assessment, err := s.scorer.Score(r.Context(), text, req.JobDescription)
	if err != nil {
		s.log.Error("scoring failed", zap.Error(err))
		s.jsonError(w, http.StatusInternalServerError, "analysis_failed", "Failed to analyze resume")
		return
	}

	s.jsonResponse(w, http.StatusOK, analyzeResponse{
		Assessment: assessment,
		Metadata: analyzeMetadata{
			ResumeLengthChars: len(text),
			ResumeLengthWords: len(strings.Fields(text)),
			HasJobDescription: req.JobDescription != "",
		},
	})
}

func (s *Server) handleAnalyzeStream(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.jsonError(w, http.StatusInternalServerError, "streaming_unsupported", err.Error())
		return
	}

	progress := func(stage string, pct int) {
		sse.WriteEvent("progress", map[string]any{"stage": stage, "progress": pct}) //nolint:errcheck
		s.pause()
	}

	progress("decoding", 5)
	data, err := ingestion.DecodeBase64(req.File)
	if err != nil {
		sse.WriteError(err.Error())
		return
	}

	progress("extracting", 15)
	text, err := ingestion.ExtractText(data)
	if err != nil {
		sse.WriteError(err.Error())
		return
	}
	progress("validating", 30)

	progress("ats_analysis", 35)
	progress("ai_analysis", 55)

	assessment, err := s.scorer.Score(r.Context(), text, req.JobDescription)
	if err != nil {
		s.log.Error("scoring failed", zap.Error(err))
		sse.WriteError("Failed to analyze resume")
		return
	}

	progress("ai_analysis", 85)
	progress("finalizing", 90)

	sse.WriteEvent("complete", map[string]any{"stage": "complete", "progress": 100}) //nolint:errcheck
	sse.WriteEvent("result", analyzeResponse{ //nolint:errcheck
		Assessment: assessment,
		Metadata: analyzeMetadata{
			ResumeLengthChars: len(text),
			ResumeLengthWords: len(strings.Fields(text)),
			HasJobDescription: req.JobDescription != "",
		},
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	reply, err := s.chat.Turn(r.Context(), req.SessionID, req.Message, req.AnalysisContext)
	if err != nil {
		s.log.Error("chat turn failed", zap.Error(err))
		s.jsonError(w, http.StatusInternalServerError, "chat_failed", "Failed to process chat message")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{
		"response":   reply,
		"session_id": req.SessionID,
	})
}

func (s *Server) handleChatStream(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.jsonError(w, http.StatusInternalServerError, "streaming_unsupported", err.Error())
		return
	}

	chunks, err := s.chat.TurnStream(r.Context(), req.SessionID, req.Message, req.AnalysisContext)
	if err != nil {
		s.log.Error("chat stream failed", zap.Error(err))
		sse.WriteError("Failed to process chat message")
		return
	}

	for chunk := range chunks {
		if err := sse.WriteData(map[string]string{"token": chunk}); err != nil {
			return
		}
	}
	sse.WriteData(map[string]bool{"done": true}) //nolint:errcheck
}

func (s *Server) handleChatClear(w http.ResponseWriter, r *http.Request) {
	var req clearRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	cleared := s.chat.Clear(req.SessionID)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"cleared":    cleared,
		"session_id": req.SessionID,
	})
}

func (s *Server) pause() {
	if s.stageDelay > 0 {
		time.Sleep(s.stageDelay)
	}
}
