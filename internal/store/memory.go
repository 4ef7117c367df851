package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/goccy/go-json"

	"github.com/mkellner/wohnval/internal/domain"
)

// MemoryStore is an in-memory FormStore used by the offline check command
// and by tests.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snapshots: make(map[string][]byte)}
}

// FromApplicationFile builds a memory store holding the forms present in
// an application file. Absent forms stay absent so the engine reports them
// as unavailable.
func FromApplicationFile(app *domain.ApplicationFile) (*MemoryStore, error) {
	ms := NewMemoryStore()
	ctx := context.Background()

	put := func(formID domain.FormID, v any) error {
		return ms.Put(ctx, formID, app.SubjectID, v)
	}

	if app.MainApplication != nil {
		if err := put(domain.FormMainApplication, app.MainApplication); err != nil {
			return nil, err
		}
	}
	if app.IncomeDeclaration != nil {
		if err := put(domain.FormIncomeDeclaration, app.IncomeDeclaration); err != nil {
			return nil, err
		}
	}
	if app.SelfDisclosure != nil {
		if err := put(domain.FormSelfDisclosure, app.SelfDisclosure); err != nil {
			return nil, err
		}
	}
	if app.SelfHelp != nil {
		if err := put(domain.FormSelfHelp, app.SelfHelp); err != nil {
			return nil, err
		}
	}
	if app.FloorArea != nil {
		if err := put(domain.FormFloorArea, app.FloorArea); err != nil {
			return nil, err
		}
	}
	return ms, nil
}

// Put marshals a form value and stores it as the snapshot.
func (m *MemoryStore) Put(ctx context.Context, formID domain.FormID, subjectID string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling %s snapshot: %w", formID, err)
	}
	return m.SaveFormSnapshot(ctx, formID, subjectID, payload)
}

// SaveFormSnapshot stores a raw snapshot payload.
func (m *MemoryStore) SaveFormSnapshot(_ context.Context, formID domain.FormID, subjectID string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[key(formID, subjectID)] = payload
	return nil
}

// FetchFormSnapshot returns the stored payload or ErrNotFound.
func (m *MemoryStore) FetchFormSnapshot(_ context.Context, formID domain.FormID, subjectID string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	payload, ok := m.snapshots[key(formID, subjectID)]
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", formID, subjectID, ErrNotFound)
	}
	out := make([]byte, len(payload))
	copy(out, payload)
	return out, nil
}

func key(formID domain.FormID, subjectID string) string {
	return string(formID) + "/" + subjectID
}
