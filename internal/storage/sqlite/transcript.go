package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sandevgo/askfolio/internal/core"
)

type Transcript struct {
	db *sql.DB
}

func NewTranscript(db *sql.DB) *Transcript {
	return &Transcript{db: db}
}

func (t *Transcript) AddEntry(ctx context.Context, e core.TranscriptEntry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO transcript (session_id, question, answer, route, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err := t.db.ExecContext(ctx, query, e.SessionID, e.Question, e.Answer, e.Route, e.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert transcript entry: %w", err)
	}
	return nil
}

// GetEntries returns the latest limit entries, oldest first.
func (t *Transcript) GetEntries(ctx context.Context, limit int) ([]core.TranscriptEntry, error) {
	query := `SELECT id, session_id, question, answer, route, created_at FROM transcript ORDER BY id DESC LIMIT ?`

	rows, err := t.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query transcript: %w", err)
	}
	defer rows.Close()

	var entries []core.TranscriptEntry
	for rows.Next() {
		var e core.TranscriptEntry
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Question, &e.Answer, &e.Route, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transcript entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Newest first from the query, flip to chronological.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}
