package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/yrtrans/transhub/pkg/pipeline/model"
)

const projectFileName = "project.json"

// Projects reads and writes the project descriptors of one workspace. Every
// project lives in its own directory named after it.
type Projects struct {
	mu        sync.RWMutex
	workspace string
}

// NewProjects returns the project store of the given workspace directory.
func NewProjects(workspace string) *Projects {
	return &Projects{workspace: workspace}
}

func (s *Projects) descriptorPath(name string) string {
	return filepath.Join(s.workspace, name, projectFileName)
}

// Load reads the descriptor of the named project.
func (s *Projects) Load(name string) (*model.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.descriptorPath(name))
	if err != nil {
		return nil, errors.Wrap(err, "unable to read project descriptor")
	}

	var project model.Project
	if err := json.Unmarshal(data, &project); err != nil {
		return nil, errors.Wrap(err, "unable to decode project descriptor")
	}

	return &project, nil
}

// Save writes the descriptor, creating the project directory when needed.
func (s *Projects) Save(project *model.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Join(s.workspace, project.Name)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "unable to create project directory")
	}

	data, err := json.MarshalIndent(project, "", "  ")
	if err != nil {
		return errors.Wrap(err, "unable to encode project descriptor")
	}

	path := filepath.Join(dir, projectFileName)
	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrap(err, "unable to write project descriptor")
	}

	return errors.Wrap(os.Rename(tmp, path), "unable to replace project descriptor")
}

// SetStatus updates and persists the status of the named project.
func (s *Projects) SetStatus(name string, status model.Status) error {
	project, err := s.Load(name)
	if err != nil {
		return err
	}

	project.Status = status

	return s.Save(project)
}

// List returns every project of the workspace in directory order.
// Directories without a readable descriptor are skipped.
func (s *Projects) List() ([]*model.Project, error) {
	entries, err := os.ReadDir(s.workspace)

	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, nil
	case err != nil:
		return nil, errors.Wrap(err, "unable to read workspace directory")
	}

	var out []*model.Project

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		project, err := s.Load(entry.Name())
		if err != nil {
			continue
		}

		out = append(out, project)
	}

	return out, nil
}
