package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/askfolio/internal/core"
)

func TestTranscript_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db, err := NewDB(ctx, filepath.Join(t.TempDir(), "nested", "askfolio.db"))
	require.NoError(t, err)
	defer db.Close()

	repo := NewTranscript(db)
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for i, q := range []string{"first", "second", "third"} {
		require.NoError(t, repo.AddEntry(ctx, core.TranscriptEntry{
			SessionID: "s1",
			Question:  q,
			Answer:    "answer " + q,
			Route:     "rag",
			CreatedAt: at.Add(time.Duration(i) * time.Minute),
		}))
	}

	entries, err := repo.GetEntries(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "second", entries[0].Question)
	assert.Equal(t, "third", entries[1].Question)
	assert.Equal(t, "answer third", entries[1].Answer)
	assert.Equal(t, "s1", entries[1].SessionID)
	assert.True(t, at.Add(2*time.Minute).Equal(entries[1].CreatedAt))
	assert.Greater(t, entries[1].ID, entries[0].ID)
}

func TestTranscript_Empty(t *testing.T) {
	ctx := context.Background()
	db, err := NewDB(ctx, filepath.Join(t.TempDir(), "askfolio.db"))
	require.NoError(t, err)
	defer db.Close()

	entries, err := NewTranscript(db).GetEntries(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNewDB_MigrationsAreIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "askfolio.db")

	db, err := NewDB(ctx, path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = NewDB(ctx, path)
	require.NoError(t, err)
	defer db.Close()
}

func TestTranscript_AddEntryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO transcript").
		WithArgs("s", "q", "a", "contact", sqlmock.AnyArg()).
		WillReturnError(errors.New("database is locked"))

	err = NewTranscript(db).AddEntry(context.Background(), core.TranscriptEntry{
		SessionID: "s", Question: "q", Answer: "a", Route: "contact",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is locked")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTranscript_GetEntriesErrors(t *testing.T) {
	t.Run("query", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT (.+) FROM transcript").WithArgs(5).WillReturnError(errors.New("no such table"))

		_, err = NewTranscript(db).GetEntries(context.Background(), 5)
		assert.ErrorContains(t, err, "no such table")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("scan", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows([]string{"id", "session_id", "question", "answer", "route", "created_at"}).
			AddRow("not-a-number", "s", "q", "a", "rag", time.Now())
		mock.ExpectQuery("SELECT (.+) FROM transcript").WithArgs(5).WillReturnRows(rows)

		_, err = NewTranscript(db).GetEntries(context.Background(), 5)
		assert.ErrorContains(t, err, "failed to scan")
	})
}
