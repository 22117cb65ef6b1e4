package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteCache persists the session index as indented JSON. Summaries
// can quote private prompts, so the cache is readable only by its
// owner: the file is written 0600 under a 0700 parent.
func WriteCache(path string, sessions []Session) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}
	data, err := json.MarshalIndent(sessions, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session index: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing session index: %w", err)
	}
	return nil
}

// ReadCache loads a previously written session index.
func ReadCache(path string) ([]Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sessions []Session
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, fmt.Errorf("parsing session index: %w", err)
	}
	return sessions, nil
}
