package core

import (
	"context"
	"time"
)

type TranscriptRepository interface {
	AddEntry(ctx context.Context, entry TranscriptEntry) error
	GetEntries(ctx context.Context, limit int) ([]TranscriptEntry, error)
}

// TranscriptEntry is one displayed exchange, shortcut answers included.
type TranscriptEntry struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Route     string    `json:"route"`
	CreatedAt time.Time `json:"created_at"`
}
