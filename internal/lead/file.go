package lead

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/rotisserie/eris"

	"github.com/sells-group/audit-api/internal/model"
)

// FileStore keeps leads in a single JSON array file. It is a low-volume
// lead log, deliberately not a database: the whole array is rewritten on
// each append and a process-local mutex serializes writers.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a FileStore writing to path. The file is created
// lazily on first append.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Append adds one lead to the log. The read-append-write sequence is a
// single critical section so concurrent writers cannot lose updates.
func (s *FileStore) Append(_ context.Context, l model.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	leads, err := s.readAll()
	if err != nil {
		return err
	}

	leads = append(leads, l)

	data, err := json.MarshalIndent(leads, "", "  ")
	if err != nil {
		return eris.Wrap(err, "lead: marshal log")
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return eris.Wrap(err, "lead: write log")
	}
	return nil
}

// List returns every persisted lead in append order.
func (s *FileStore) List(_ context.Context) ([]model.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAll()
}

// readAll loads the log, treating a missing file as an empty log. Called
// under s.mu.
func (s *FileStore) readAll() ([]model.Lead, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Lead{}, nil
		}
		return nil, eris.Wrap(err, "lead: read log")
	}

	if len(data) == 0 {
		return []model.Lead{}, nil
	}

	var leads []model.Lead
	if err := json.Unmarshal(data, &leads); err != nil {
		return nil, eris.Wrap(err, "lead: unmarshal log")
	}
	return leads, nil
}
