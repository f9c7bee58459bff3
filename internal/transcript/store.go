package transcript

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store persists transcript artifacts as plain text files under a local
// directory. Artifacts are immutable once written; writing the same name
// again overwrites the previous artifact.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		dir = "transcripts"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create transcript dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes lines as one UTF-8 artifact under name. Each line is expected
// to be newline-terminated already.
func (s *Store) Save(name string, lines []string) (string, error) {
	path := filepath.Join(s.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create transcript %s: %w", path, err)
	}
	for _, line := range lines {
		if _, err := f.WriteString(line); err != nil {
			f.Close()
			return "", fmt.Errorf("write transcript %s: %w", path, err)
		}
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close transcript %s: %w", path, err)
	}
	return path, nil
}

// Writable verifies the store directory accepts writes. Used by readiness
// probes.
func (s *Store) Writable() error {
	probe := filepath.Join(s.dir, ".probe")
	if err := os.WriteFile(probe, nil, 0o644); err != nil {
		return err
	}
	return os.Remove(probe)
}
