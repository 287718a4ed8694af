package pg

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/samratjha96/bakbak-sub001/internal/app/model"
	"github.com/samratjha96/bakbak-sub001/internal/app/repository"
)

// Ensure PostgresDB implements the annotation repositories
var (
	_ repository.NoteRepository       = (*PostgresDB)(nil)
	_ repository.VocabularyRepository = (*PostgresDB)(nil)
)

// InsertNote stores a new note.
func (pdb *PostgresDB) InsertNote(ctx context.Context, note *model.Note) error {
	_, err := pdb.db.ExecContext(ctx,
		`INSERT INTO notes (id, recording_id, body, position_sec, created_at) VALUES ($1, $2, $3, $4, $5)`,
		note.ID, note.RecordingID, note.Body, note.PositionSec, note.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert note: %w", err)
	}
	return nil
}

// ListNotesByRecording returns a recording's notes ordered by audio position.
func (pdb *PostgresDB) ListNotesByRecording(ctx context.Context, recordingID string) ([]*model.Note, error) {
	rows, err := pdb.db.QueryContext(ctx,
		`SELECT id, recording_id, body, position_sec, created_at
		 FROM notes WHERE recording_id = $1
		 ORDER BY position_sec ASC, created_at ASC`, recordingID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var notes []*model.Note
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(&n.ID, &n.RecordingID, &n.Body, &n.PositionSec, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		notes = append(notes, &n)
	}
	return notes, rows.Err()
}

// DeleteNote removes a note by id.
func (pdb *PostgresDB) DeleteNote(ctx context.Context, id string) error {
	if _, err := pdb.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}

// InsertVocabulary stores a new vocabulary entry.
func (pdb *PostgresDB) InsertVocabulary(ctx context.Context, entry *model.VocabularyEntry) error {
	_, err := pdb.db.ExecContext(ctx,
		`INSERT INTO vocabulary_entries (id, recording_id, term, reading, meaning, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID, entry.RecordingID, entry.Term, entry.Reading, entry.Meaning, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert vocabulary entry: %w", err)
	}
	return nil
}

// ListVocabularyByRecording returns a recording's vocabulary, oldest first.
func (pdb *PostgresDB) ListVocabularyByRecording(ctx context.Context, recordingID string) ([]*model.VocabularyEntry, error) {
	rows, err := pdb.db.QueryContext(ctx,
		`SELECT id, recording_id, term,
			COALESCE(reading, '') as reading,
			COALESCE(meaning, '') as meaning,
			created_at
		 FROM vocabulary_entries WHERE recording_id = $1
		 ORDER BY created_at ASC, id ASC`, recordingID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	return collectVocabulary(rows)
}

// ListVocabulary returns a page of all vocabulary entries, newest first.
func (pdb *PostgresDB) ListVocabulary(ctx context.Context, limit, offset int) ([]*model.VocabularyEntry, error) {
	rows, err := pdb.db.QueryContext(ctx,
		`SELECT id, recording_id, term,
			COALESCE(reading, '') as reading,
			COALESCE(meaning, '') as meaning,
			created_at
		 FROM vocabulary_entries
		 ORDER BY created_at DESC, id DESC
		 LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	return collectVocabulary(rows)
}

func collectVocabulary(rows *sql.Rows) ([]*model.VocabularyEntry, error) {
	var entries []*model.VocabularyEntry
	for rows.Next() {
		var e model.VocabularyEntry
		if err := rows.Scan(&e.ID, &e.RecordingID, &e.Term, &e.Reading, &e.Meaning, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
