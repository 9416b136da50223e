package storage

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

const copyChunkSize = 64 * 1024

// LocalScratch is a run-scoped directory for intermediate files. Everything
// written through it lives under one unique directory removed by Release.
type LocalScratch struct {
	dir      string
	mu       sync.Mutex
	released bool
}

// NewLocalScratch creates a unique run directory under base, or the system temp dir when base is empty
func NewLocalScratch(base string) (*LocalScratch, error) {
	if base == "" {
		base = os.TempDir()
	}
	if err := os.MkdirAll(base, 0755); err != nil {
		return nil, fmt.Errorf("failed to create scratch base directory: %w", err)
	}

	name := fmt.Sprintf("autoreport_%s_%s", time.Now().Format("20060102_150405"), uuid.New().String()[:8])
	dir := filepath.Join(base, name)
	if err := os.Mkdir(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	return &LocalScratch{dir: dir}, nil
}

// Dir returns the run directory
func (s *LocalScratch) Dir() string {
	return s.dir
}

// Path returns the location of name inside the run directory
func (s *LocalScratch) Path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}

// Store copies r into the run directory under a unique name keeping filename's extension
func (s *LocalScratch) Store(r io.Reader, filename string) (string, error) {
	ext := filepath.Ext(filename)
	path := s.Path(fmt.Sprintf("upload_%s%s", uuid.New().String()[:8], ext))

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	buf := make([]byte, copyChunkSize)
	if _, err := io.CopyBuffer(dst, r, buf); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to copy file contents: %w", err)
	}
	return path, nil
}

// Release removes the run directory and everything in it. It is safe to call more than once.
func (s *LocalScratch) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return nil
	}
	s.released = true

	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("failed to remove scratch directory: %w", err)
	}
	log.Printf("[Scratch] Released %s", s.dir)
	return nil
}
