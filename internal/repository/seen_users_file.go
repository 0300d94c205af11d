package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"newbie_greeter/internal/interfaces"
)

const DefaultSeenUsersPath = "storage/cache/newbie_detect_plugin_cache.json"

// SeenUserFile keeps the seen list in a single JSON file.
type SeenUserFile struct {
	path string
}

func NewSeenUserFile(path string) *SeenUserFile {
	if path == "" {
		path = DefaultSeenUsersPath
	}
	return &SeenUserFile{path: path}
}

func (s *SeenUserFile) Path() string {
	return s.path
}

// Load reads the list. A missing file or content that is not a JSON list of
// strings yields an empty list and no error.
func (s *SeenUserFile) Load() ([]string, interfaces.LoadStatus, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, interfaces.LoadMissing, nil
	}
	if err != nil {
		return []string{}, interfaces.LoadCorrupt, fmt.Errorf("read %s: %w", s.path, err)
	}

	users, err := decodeSeenUsers(data)
	if err != nil {
		return []string{}, interfaces.LoadCorrupt, nil
	}
	return users, interfaces.LoadOK, nil
}

// Save overwrites the file with the full list, creating its directory first.
func (s *SeenUserFile) Save(users []string) error {
	data, err := encodeSeenUsers(users)
	if err != nil {
		return fmt.Errorf("encode seen users: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}
