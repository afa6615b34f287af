package ml

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/DouzZ4/checkinc-ml-service/internal/domain"
)

// Store owns the single process-wide model artifact. Training replaces
// the artifact wholesale (persist first, then swap the in-memory
// reference); forecasting takes a snapshot reference and never observes
// a half-written artifact.
type Store struct {
	path string

	mu      sync.RWMutex
	current *Artifact
}

// NewStore loads the artifact at path, degrading to a fresh untrained
// artifact when the file is missing or unreadable. It never fails the
// process: a broken artifact just means "not yet trained".
func NewStore(path string) *Store {
	s := &Store{path: path}
	s.current = s.load()
	return s
}

func (s *Store) load() *Artifact {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Could not read model artifact at %s: %v", s.path, err)
		}
		return NewArtifact()
	}

	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		log.Printf("Corrupt model artifact at %s, starting untrained: %v", s.path, err)
		return NewArtifact()
	}
	if artifact.Version == "" {
		artifact.Version = InitialVersion
	}
	return &artifact
}

// Current returns the active artifact. The returned artifact is treated
// as read-only by all callers.
func (s *Store) Current() *Artifact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Replace persists the artifact atomically (write to a temp file in the
// same directory, then rename) and swaps it in as the active artifact.
// A failed write leaves both the file and the in-memory artifact
// untouched.
func (s *Store) Replace(artifact *Artifact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.save(artifact); err != nil {
		return err
	}
	s.current = artifact
	return nil
}

func (s *Store) save(artifact *Artifact) error {
	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return &domain.StorageError{Op: "save", Err: err}
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &domain.StorageError{Op: "save", Err: err}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return &domain.StorageError{Op: "save", Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &domain.StorageError{Op: "save", Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &domain.StorageError{Op: "save", Err: err}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return &domain.StorageError{Op: "save", Err: err}
	}
	return nil
}
