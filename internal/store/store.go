// Package store persists the project descriptor and the checkpoint record
// as JSON files inside the project directory.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/yrtrans/transhub/pkg/pipeline/model"
)

const checkpointFileName = "checkpoint.json"

// FileCheckpoints reads and writes the checkpoint record of one project.
// A run has a single writer; the lock only protects in-process readers such
// as the status command.
type FileCheckpoints struct {
	mu   sync.RWMutex
	path string
}

// NewFileCheckpoints returns the checkpoint store of the given project
// directory.
func NewFileCheckpoints(projectDir string) *FileCheckpoints {
	return &FileCheckpoints{path: filepath.Join(projectDir, checkpointFileName)}
}

// Path returns the location of the checkpoint file.
func (s *FileCheckpoints) Path() string {
	return s.path
}

// Load returns the persisted checkpoint. A missing file is an empty
// checkpoint, not an error.
func (s *FileCheckpoints) Load() (model.Checkpoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)

	switch {
	case errors.Is(err, os.ErrNotExist):
		return model.Checkpoint{}, nil
	case err != nil:
		return model.Checkpoint{}, errors.Wrap(err, "unable to read checkpoint file")
	}

	ckpt := model.Checkpoint{}
	if err := json.Unmarshal(data, &ckpt); err != nil {
		return model.Checkpoint{}, errors.Wrap(err, "unable to decode checkpoint file")
	}

	// A JSON null document decodes to a nil map.
	if ckpt == nil {
		ckpt = model.Checkpoint{}
	}

	return ckpt, nil
}

// Save rewrites the checkpoint file through a temporary file so a crash
// mid-write cannot leave a truncated record behind.
func (s *FileCheckpoints) Save(ckpt model.Checkpoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(ckpt, "", "  ")
	if err != nil {
		return errors.Wrap(err, "unable to encode checkpoint")
	}

	tmp := s.path + ".tmp"

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrap(err, "unable to write checkpoint file")
	}

	return errors.Wrap(os.Rename(tmp, s.path), "unable to replace checkpoint file")
}

// MemoryCheckpoints keeps the checkpoint in memory only. It backs tests and
// dry runs.
type MemoryCheckpoints struct {
	mu   sync.RWMutex
	ckpt model.Checkpoint
}

// NewMemoryCheckpoints returns an empty in-memory checkpoint store.
func NewMemoryCheckpoints() *MemoryCheckpoints {
	return &MemoryCheckpoints{ckpt: model.Checkpoint{}}
}

// Load returns a copy of the current checkpoint.
func (s *MemoryCheckpoints) Load() (model.Checkpoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.ckpt.Clone(), nil
}

// Save replaces the current checkpoint.
func (s *MemoryCheckpoints) Save(ckpt model.Checkpoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ckpt = ckpt.Clone()

	return nil
}
