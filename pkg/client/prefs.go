package client

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Prefs are the client-side preferences persisted between sessions.
type Prefs struct {
	KeepSignedIn bool `json:"keep_signed_in"`
}

// LoadPrefs reads preferences from path. A missing file is not an error, it
// just yields the defaults.
func LoadPrefs(path string) (Prefs, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Prefs{}, nil
	}
	if err != nil {
		return Prefs{}, err
	}

	var p Prefs
	if err := json.Unmarshal(raw, &p); err != nil {
		return Prefs{}, err
	}
	return p, nil
}

// SavePrefs writes preferences to path, creating parent directories as
// needed.
func SavePrefs(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
