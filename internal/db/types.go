package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// History limits.
const (
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 100
)

// Analysis is a stored analysis result.
type Analysis struct {
	ID              uuid.UUID       `json:"id"`
	SessionID       string          `json:"session_id"`
	ResumeFilename  string          `json:"resume_filename"`
	JobDescFilename string          `json:"job_desc_filename"`
	SimilarityScore float64         `json:"similarity_score"`
	Data            json.RawMessage `json:"analysis_data"`
	CreatedAt       time.Time       `json:"created_at"`
}

// AnalysisInput is what SaveAnalysis stores. Data is marshaled to JSON. A
// nil ID is replaced with a new one.
type AnalysisInput struct {
	ID              uuid.UUID
	SessionID       string
	ResumeFilename  string
	JobDescFilename string
	SimilarityScore float64
	Data            any
}

// clampLimit maps non-positive limits to the default and caps large ones.
func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		return MaxHistoryLimit
	}
	return limit
}
