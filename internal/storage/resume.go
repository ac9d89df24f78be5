package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ResumeStore holds the single downloadable resume PDF on disk. Writes go
// through a temp file and rename so a download never observes a partial
// upload.
type ResumeStore struct {
	path string
}

func NewResumeStore(path string) (*ResumeStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create resume directory: %w", err)
	}
	return &ResumeStore{path: path}, nil
}

func (s *ResumeStore) Save(r io.Reader) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), "resume-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp resume file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return fmt.Errorf("write resume: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close resume file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace resume: %w", err)
	}
	return nil
}

func (s *ResumeStore) Path() string {
	return s.path
}

func (s *ResumeStore) Exists() bool {
	info, err := os.Stat(s.path)
	return err == nil && !info.IsDir()
}
