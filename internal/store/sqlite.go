package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	_ "modernc.org/sqlite" // register sqlite driver

	"github.com/mkellner/wohnval/internal/domain"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS form_snapshots (
    form_id     TEXT NOT NULL,
    subject_id  TEXT NOT NULL,
    payload     BLOB NOT NULL,
    updated_at  TEXT NOT NULL,
    PRIMARY KEY (form_id, subject_id)
);

CREATE INDEX IF NOT EXISTS idx_snapshots_subject ON form_snapshots(subject_id);
`

// SQLiteStore is the durable FormStore backing the validate command and
// the HTTP server.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens or creates the snapshot database at the given path.
func Open(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening snapshot db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the snapshot database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// FetchFormSnapshot returns the stored payload or ErrNotFound.
func (s *SQLiteStore) FetchFormSnapshot(ctx context.Context, formID domain.FormID, subjectID string) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT payload FROM form_snapshots WHERE form_id = ? AND subject_id = ?",
		string(formID), subjectID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s/%s: %w", formID, subjectID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching %s/%s: %w", formID, subjectID, err)
	}
	return payload, nil
}

// SaveFormSnapshot stores or replaces a raw snapshot payload.
func (s *SQLiteStore) SaveFormSnapshot(ctx context.Context, formID domain.FormID, subjectID string, payload []byte) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO form_snapshots (form_id, subject_id, payload, updated_at)
		 VALUES (?, ?, ?, ?)`,
		string(formID), subjectID, payload, now)
	if err != nil {
		return fmt.Errorf("saving %s/%s: %w", formID, subjectID, err)
	}
	return nil
}

// ImportApplication stores every form present in an application file in a
// single transaction.
func (s *SQLiteStore) ImportApplication(ctx context.Context, app *domain.ApplicationFile) error {
	if app.SubjectID == "" {
		return fmt.Errorf("application file has no subject id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	save := func(formID domain.FormID, v any) error {
		payload, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshaling %s snapshot: %w", formID, err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO form_snapshots (form_id, subject_id, payload, updated_at)
			 VALUES (?, ?, ?, ?)`,
			string(formID), app.SubjectID, payload, now)
		return err
	}

	if app.MainApplication != nil {
		if err := save(domain.FormMainApplication, app.MainApplication); err != nil {
			return err
		}
	}
	if app.IncomeDeclaration != nil {
		if err := save(domain.FormIncomeDeclaration, app.IncomeDeclaration); err != nil {
			return err
		}
	}
	if app.SelfDisclosure != nil {
		if err := save(domain.FormSelfDisclosure, app.SelfDisclosure); err != nil {
			return err
		}
	}
	if app.SelfHelp != nil {
		if err := save(domain.FormSelfHelp, app.SelfHelp); err != nil {
			return err
		}
	}
	if app.FloorArea != nil {
		if err := save(domain.FormFloorArea, app.FloorArea); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Subjects lists every subject id with at least one stored snapshot.
func (s *SQLiteStore) Subjects(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT subject_id FROM form_snapshots ORDER BY subject_id")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var subjects []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		subjects = append(subjects, id)
	}
	return subjects, rows.Err()
}
