package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SaveAnalysis stores an analysis and returns its new ID.
func (db *DB) SaveAnalysis(ctx context.Context, input *AnalysisInput) (uuid.UUID, error) {
	if input.SessionID == "" {
		return uuid.Nil, fmt.Errorf("session ID is required")
	}
	data, err := json.Marshal(input.Data)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal analysis: %w", err)
	}

	id := input.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	_, err = db.pool.Exec(ctx,
		`INSERT INTO analyses (id, session_id, resume_filename, job_desc_filename, similarity_score, analysis_data)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		id, input.SessionID, input.ResumeFilename, input.JobDescFilename, input.SimilarityScore, data,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save analysis: %w", err)
	}
	return id, nil
}

// GetSessionHistory returns a session's analyses, newest first.
func (db *DB) GetSessionHistory(ctx context.Context, sessionID string, limit int) ([]Analysis, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, session_id, resume_filename, job_desc_filename, similarity_score, analysis_data, created_at
		 FROM analyses
		 WHERE session_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		sessionID, clampLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query session history: %w", err)
	}
	defer rows.Close()

	history := []Analysis{}
	for rows.Next() {
		var a Analysis
		if err := rows.Scan(&a.ID, &a.SessionID, &a.ResumeFilename, &a.JobDescFilename,
			&a.SimilarityScore, &a.Data, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		history = append(history, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate session history: %w", err)
	}
	return history, nil
}

// GetAnalysis returns one analysis, or nil when id does not exist.
func (db *DB) GetAnalysis(ctx context.Context, id uuid.UUID) (*Analysis, error) {
	var a Analysis
	err := db.pool.QueryRow(ctx,
		`SELECT id, session_id, resume_filename, job_desc_filename, similarity_score, analysis_data, created_at
		 FROM analyses WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.SessionID, &a.ResumeFilename, &a.JobDescFilename,
		&a.SimilarityScore, &a.Data, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	return &a, nil
}

// CleanupOldAnalyses deletes analyses older than days and returns how many
// were removed.
func (db *DB) CleanupOldAnalyses(ctx context.Context, days int) (int64, error) {
	if days < 0 {
		return 0, fmt.Errorf("retention days must be non-negative, got %d", days)
	}
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM analyses WHERE created_at < NOW() - make_interval(days => $1)`,
		days,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up analyses: %w", err)
	}
	return tag.RowsAffected(), nil
}

// SyncScores copies the score stored inside each analysis document into the
// similarity_score column wherever the two disagree, and returns how many
// rows changed.
func (db *DB) SyncScores(ctx context.Context) (int64, error) {
	tag, err := db.pool.Exec(ctx,
		`UPDATE analyses
		 SET similarity_score = (analysis_data->>'score')::double precision
		 WHERE analysis_data->>'score' IS NOT NULL
		   AND similarity_score IS DISTINCT FROM (analysis_data->>'score')::double precision`,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to sync scores: %w", err)
	}
	return tag.RowsAffected(), nil
}
