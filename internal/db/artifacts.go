package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ResumeArtifact is a stored compilation result: the selected resume JSON
// plus metadata about how it was produced.
type ResumeArtifact struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	Template  string          `json:"template"`
	JobTitle  string          `json:"job_title,omitempty"`
	Content   json.RawMessage `json:"content"`
	CreatedAt time.Time       `json:"created_at"`
}

// SaveResumeArtifact stores a compilation result and returns its ID.
func (db *DB) SaveResumeArtifact(ctx context.Context, userID uuid.UUID, template, jobTitle string, content any) (uuid.UUID, error) {
	jsonBytes, err := json.Marshal(content)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal resume artifact: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO resume_artifacts (user_id, template, job_title, content)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		userID, template, jobTitle, jsonBytes,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save resume artifact: %w", err)
	}
	return id, nil
}

// GetResumeArtifact retrieves an artifact by ID. Returns nil when not found.
func (db *DB) GetResumeArtifact(ctx context.Context, artifactID uuid.UUID) (*ResumeArtifact, error) {
	var a ResumeArtifact
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, template, COALESCE(job_title, ''), content, created_at
		 FROM resume_artifacts WHERE id = $1`,
		artifactID,
	).Scan(&a.ID, &a.UserID, &a.Template, &a.JobTitle, &a.Content, &a.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume artifact: %w", err)
	}
	return &a, nil
}

// ListResumeArtifacts retrieves a user's recent compilation results.
func (db *DB) ListResumeArtifacts(ctx context.Context, userID uuid.UUID, limit int) ([]ResumeArtifact, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, template, COALESCE(job_title, ''), content, created_at
		 FROM resume_artifacts WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resume artifacts: %w", err)
	}
	defer rows.Close()

	var artifacts []ResumeArtifact
	for rows.Next() {
		var a ResumeArtifact
		if err := rows.Scan(&a.ID, &a.UserID, &a.Template, &a.JobTitle, &a.Content, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume artifact: %w", err)
		}
		artifacts = append(artifacts, a)
	}
	return artifacts, nil
}

// DeleteResumeArtifact removes one stored compilation result.
func (db *DB) DeleteResumeArtifact(ctx context.Context, artifactID uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM resume_artifacts WHERE id = $1`, artifactID)
	if err != nil {
		return fmt.Errorf("failed to delete resume artifact: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("resume artifact not found: %s", artifactID)
	}
	return nil
}
