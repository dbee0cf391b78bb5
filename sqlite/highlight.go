package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lithoslabs/evidence"
)

// Compile-time interface verification.
var _ evidence.HighlightService = (*HighlightService)(nil)

// HighlightService implements evidence.HighlightService using SQLite.
type HighlightService struct {
	db *DB
}

// NewHighlightService creates a new HighlightService.
func NewHighlightService(db *DB) *HighlightService {
	return &HighlightService{db: db}
}

// FindHighlightsByURL retrieves the stored record for a document URL.
func (s *HighlightService) FindHighlightsByURL(ctx context.Context, documentURL string) (*evidence.HighlightRecord, error) {
	var data string

	err := s.db.QueryRowContext(ctx, `
		SELECT data
		FROM highlights
		WHERE document_url = ?
	`, documentURL).Scan(&data)

	if err == sql.ErrNoRows {
		return nil, evidence.Errorf(evidence.ENOTFOUND, "highlights not found")
	}
	if err != nil {
		return nil, err
	}

	var rec evidence.HighlightRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("failed to decode highlight record: %w", err)
	}
	return &rec, nil
}

// UpsertHighlights inserts or replaces the record for its document URL.
// The full record is stored as JSON; indexed columns are duplicated for
// lookups. Last write wins on conflicting URLs.
func (s *HighlightService) UpsertHighlights(ctx context.Context, rec *evidence.HighlightRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode highlight record: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO highlights (document_url, id, project_id, content_hash, data, extracted_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(document_url) DO UPDATE SET
			id = excluded.id,
			project_id = excluded.project_id,
			content_hash = excluded.content_hash,
			data = excluded.data,
			extracted_at = excluded.extracted_at,
			updated_at = excluded.updated_at
	`, rec.DocumentURL, rec.ID, rec.ProjectID, rec.ContentHash, string(data),
		rec.ExtractedAt.Format(time.RFC3339), rec.UpdatedAt.Format(time.RFC3339))

	return err
}
