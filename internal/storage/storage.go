package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultDir is where reports go when no output directory is configured
const DefaultDir = "result"

// Storage handles the report output directory
type Storage struct {
	dataDir string
}

// New creates a new Storage instance, creating dataDir if needed
func New(dataDir string) (*Storage, error) {
	if dataDir == "" {
		dataDir = DefaultDir
	}

	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// Dir returns the output directory
func (s *Storage) Dir() string {
	return s.dataDir
}

// UniquePath returns a path for name inside the output directory that does not
// exist yet. "report.xlsx" becomes "report_2.xlsx", "report_3.xlsx", ... on collision.
func (s *Storage) UniquePath(name string) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("invalid file name: %q", name)
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	path := filepath.Join(s.dataDir, name)
	for n := 2; ; n++ {
		_, err := os.Stat(path)
		if os.IsNotExist(err) {
			return path, nil
		}
		if err != nil {
			return "", fmt.Errorf("checking %s: %w", path, err)
		}
		path = filepath.Join(s.dataDir, fmt.Sprintf("%s_%d%s", stem, n, ext))
	}
}

// List returns the file names in the output directory with the given extension
func (s *Storage) List(ext string) ([]string, error) {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return nil, fmt.Errorf("reading output directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || (ext != "" && filepath.Ext(e.Name()) != ext) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}
