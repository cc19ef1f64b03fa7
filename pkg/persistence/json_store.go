package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// JSONStore handles progress persistence using a local JSON file
type JSONStore struct {
	filePath string
	mutex    sync.RWMutex
	data     Progress
}

// NewJSONStore creates a new JSON storage manager
func NewJSONStore(filePath string) (*JSONStore, error) {
	store := &JSONStore{filePath: filePath}

	// Load existing data if file exists
	if _, err := os.Stat(filePath); err == nil {
		if err := store.loadFromFile(); err != nil {
			return nil, fmt.Errorf("failed to load JSON store: %w", err)
		}
	} else {
		// Create file if it doesn't exist
		if err := store.saveToFile(); err != nil {
			return nil, fmt.Errorf("failed to create JSON store file: %w", err)
		}
	}

	return store, nil
}

func (js *JSONStore) loadFromFile() error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	file, err := os.ReadFile(js.filePath)
	if err != nil {
		return err
	}

	return json.Unmarshal(file, &js.data)
}

func (js *JSONStore) saveToFile() error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	data, err := json.MarshalIndent(js.data, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(js.filePath, data, 0644)
}

// SaveProgress saves the run state to the store
func (js *JSONStore) SaveProgress(p Progress) error {
	js.mutex.Lock()
	js.data = p
	js.mutex.Unlock()

	return js.saveToFile()
}

// LoadProgress loads the run state. A fresh store returns the zero progress.
func (js *JSONStore) LoadProgress() (Progress, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	return js.data, nil
}

// Close closes the store (no-op for JSON store)
func (js *JSONStore) Close() error {
	return nil
}
