package gamedata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// DefaultMapFile is the embedded map used when no map path is configured.
const DefaultMapFile = "map.txt"

// Load reads and unmarshals a JSON file from the embedded filesystem.
func Load[T any](filename string) (T, error) {
	var result T

	content, err := dataFS.ReadFile(filename)
	if err != nil {
		return result, fmt.Errorf("failed to read embedded file %s: %w", filename, err)
	}

	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("failed to parse JSON from %s: %w", filename, err)
	}

	return result, nil
}

// DefaultMap returns a reader over the embedded default map.
func DefaultMap() (io.Reader, error) {
	content, err := dataFS.ReadFile(DefaultMapFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded map: %w", err)
	}
	return bytes.NewReader(content), nil
}
