package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/batch"
	"github.com/jonathan/resume-analyzer/internal/db"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/parsing"
	"github.com/jonathan/resume-analyzer/internal/suggest"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// uploadField is the multipart form field holding an uploaded document.
const uploadField = "file"

// ParseResponse represents the response for /parse
type ParseResponse struct {
	Filename string            `json:"filename,omitempty"`
	Document *parsing.Document `json:"document"`
	Fields   analysis.Fields   `json:"fields"`
}

// BulletsResponse represents the response for /bullets
type BulletsResponse struct {
	Bullets []string `json:"bullets"`
	Count   int      `json:"count"`
}

// HistoryResponse represents the response for /history
type HistoryResponse struct {
	SessionID string        `json:"session_id"`
	Analyses  []db.Analysis `json:"analyses"`
}

// BatchResponse represents the response for /batch
type BatchResponse struct {
	*batch.Report
	SessionID string `json:"session_id,omitempty"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"history": s.history != nil,
	})
}

// handleATSTips returns the static ATS formatting tips
func (s *Server) handleATSTips(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string][]string{"tips": suggest.ATSTips()})
}

// handleParse segments a resume into sections and extracts its fields. The
// text arrives either as JSON or as a multipart upload.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	text, filename, err := s.readText(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	doc, err := s.parser.Parse(r.Context(), text)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, ParseResponse{
		Filename: filename,
		Document: doc,
		Fields:   s.analyzer.Fields(doc, text),
	})
}

// handleBullets extracts bullet points from a block of text
func (s *Server) handleBullets(w http.ResponseWriter, r *http.Request) {
	text, _, err := s.readText(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	bullets := parsing.ExtractBullets(text)
	s.jsonResponse(w, http.StatusOK, BulletsResponse{Bullets: bullets, Count: len(bullets)})
}

// handleAnalyze analyzes a resume against a job description. Analyses that
// carry a session ID are saved to history when a store is configured.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req types.AnalyzeRequest
	if err := decodeJSON(r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, err)
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), analysis.Input{
		Resume:         req.Resume,
		Job:            req.JobDescription,
		ResumeFilename: req.ResumeFilename,
		JobFilename:    req.JobFilename,
	})
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	if req.SessionID != "" {
		s.saveAnalysis(r, req.SessionID, result)
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleBatch analyzes several resumes against one job description
func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req types.BatchRequest
	if err := decodeJSON(r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, err)
		return
	}
	if len(req.Resumes) > s.maxBatchSize {
		s.handleError(w, r, &ErrValidation{
			Field:   "resumes",
			Message: fmt.Sprintf("at most %d resumes per batch", s.maxBatchSize),
		})
		return
	}

	report, err := s.batch.Process(r.Context(), req.JobDescription, req.Resumes)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	if req.SessionID != "" {
		for _, res := range report.Results {
			if res.Success {
				s.saveAnalysis(r, req.SessionID, res.Analysis)
			}
		}
	}
	s.jsonResponse(w, http.StatusOK, BatchResponse{Report: report, SessionID: req.SessionID})
}

// handleHistory lists a session's stored analyses, newest first
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		s.handleError(w, r, &ErrUnavailable{Feature: "history"})
		return
	}

	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		s.handleError(w, r, &ErrValidation{Field: "session_id", Message: "is required"})
		return
	}

	limit := db.DefaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.handleError(w, r, &ErrValidation{Field: "limit", Message: "must be a positive integer"})
			return
		}
		limit = n
	}

	history, err := s.history.GetSessionHistory(r.Context(), sessionID, limit)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if history == nil {
		history = []db.Analysis{}
	}
	s.jsonResponse(w, http.StatusOK, HistoryResponse{SessionID: sessionID, Analyses: history})
}

// handleGetAnalysis returns one stored analysis by ID
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		s.handleError(w, r, &ErrUnavailable{Feature: "history"})
		return
	}

	idStr := r.PathValue("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		s.handleError(w, r, &ErrValidation{Field: "id", Message: "must be a UUID"})
		return
	}

	stored, err := s.history.GetAnalysis(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if stored == nil {
		s.handleError(w, r, &ErrNotFound{Resource: "analysis", ID: idStr})
		return
	}
	s.jsonResponse(w, http.StatusOK, stored)
}

// saveAnalysis stores a under sessionID and sets its ID. Storage failures are
// logged and never fail the request.
func (s *Server) saveAnalysis(r *http.Request, sessionID string, a *analysis.Analysis) {
	log := zerolog.Ctx(r.Context())
	if s.history == nil {
		log.Debug().Msg("history store not configured, analysis not saved")
		return
	}

	id := uuid.New()
	a.ID = id.String()
	_, err := s.history.SaveAnalysis(r.Context(), &db.AnalysisInput{
		ID:              id,
		SessionID:       sessionID,
		ResumeFilename:  a.ResumeFilename,
		JobDescFilename: a.JobFilename,
		SimilarityScore: a.Score,
		Data:            a,
	})
	if err != nil {
		a.ID = ""
		log.Warn().Err(err).Str("session_id", sessionID).Msg("failed to save analysis")
	}
}

// readText returns the request's text and the uploaded filename, if any.
// Multipart uploads are vetted and decoded; other bodies are a JSON
// TextRequest.
func (s *Server) readText(r *http.Request) (string, string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		var req types.TextRequest
		if err := decodeJSON(r, &req); err != nil {
			return "", "", err
		}
		if err := req.Validate(); err != nil {
			return "", "", err
		}
		return req.Text, "", nil
	}

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return "", "", err
		}
		return "", "", &ErrValidation{Field: uploadField, Message: "a file upload is required"}
	}
	defer file.Close() //nolint:errcheck // multipart files are closed on a best-effort basis

	data, err := io.ReadAll(file)
	if err != nil {
		return "", "", fmt.Errorf("failed to read upload: %w", err)
	}

	meta, err := ingestion.ValidateUpload(header.Filename, data)
	if err != nil {
		return "", "", err
	}
	text, err := ingestion.DecodeText(meta.Filename, data)
	if err != nil {
		return "", "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", "", &analysis.InputError{Field: uploadField, Message: "no text could be extracted"}
	}
	return text, meta.Filename, nil
}

// decodeJSON decodes the request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return err
		}
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	return nil
}
