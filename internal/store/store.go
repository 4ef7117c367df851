// Package store persists and retrieves immutable form snapshots.
package store

import (
	"context"
	"errors"

	"github.com/mkellner/wohnval/internal/domain"
)

// ErrNotFound is returned when no snapshot exists for a form/subject pair.
var ErrNotFound = errors.New("form snapshot not found")

// FormStore fetches immutable form snapshots. Snapshots are raw JSON
// payloads; deserialization happens at the section boundary so a corrupt
// record poisons only its own report section.
type FormStore interface {
	FetchFormSnapshot(ctx context.Context, formID domain.FormID, subjectID string) ([]byte, error)
}

// FormWriter is implemented by stores that also accept snapshots.
type FormWriter interface {
	SaveFormSnapshot(ctx context.Context, formID domain.FormID, subjectID string, payload []byte) error
}
