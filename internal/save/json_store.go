package save

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// SavesFile is the file name JSONStore keeps inside its directory.
const SavesFile = "saves.json"

// JSONStore keeps every slot in a single JSON file.
type JSONStore struct {
	filePath string
	mutex    sync.RWMutex
	data     *jsonData
}

type jsonData struct {
	Sessions map[string]SessionState `json:"sessions"`
}

// NewJSONStore opens or creates the saves file in dir.
func NewJSONStore(dir string) (*JSONStore, error) {
	if dir == "" {
		return nil, errors.New("save: json store needs a directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("save: create %s: %w", dir, err)
	}

	js := &JSONStore{
		filePath: filepath.Join(dir, SavesFile),
		data:     &jsonData{Sessions: make(map[string]SessionState)},
	}

	raw, err := os.ReadFile(js.filePath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return js, nil
	case err != nil:
		return nil, fmt.Errorf("save: read %s: %w", js.filePath, err)
	}
	if err := json.Unmarshal(raw, js.data); err != nil {
		return nil, fmt.Errorf("save: parse %s: %w", js.filePath, err)
	}
	if js.data.Sessions == nil {
		js.data.Sessions = make(map[string]SessionState)
	}
	return js, nil
}

// flush writes the file. Callers hold the write lock.
func (js *JSONStore) flush() error {
	raw, err := json.MarshalIndent(js.data, "", "  ")
	if err != nil {
		return fmt.Errorf("save: encode %s: %w", js.filePath, err)
	}
	tmp := js.filePath + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("save: write %s: %w", tmp, err)
	}
	return os.Rename(tmp, js.filePath)
}

// Save stores s under slot, replacing any earlier snapshot.
func (js *JSONStore) Save(_ context.Context, slot string, s SessionState) error {
	if err := validSlot(slot); err != nil {
		return err
	}
	js.mutex.Lock()
	defer js.mutex.Unlock()

	js.data.Sessions[slot] = s
	return js.flush()
}

// Load returns the snapshot in slot or ErrNotFound.
func (js *JSONStore) Load(_ context.Context, slot string) (SessionState, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	s, ok := js.data.Sessions[slot]
	if !ok {
		return SessionState{}, fmt.Errorf("%w: %s", ErrNotFound, slot)
	}
	return s, nil
}

// Delete removes slot. Deleting an empty slot is not an error.
func (js *JSONStore) Delete(_ context.Context, slot string) error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	if _, ok := js.data.Sessions[slot]; !ok {
		return nil
	}
	delete(js.data.Sessions, slot)
	return js.flush()
}

// Close is a no-op; every Save is flushed immediately.
func (js *JSONStore) Close() error { return nil }
