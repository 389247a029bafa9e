// Package cache provides the key-value storages the humanizer persists its
// metadata in.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

type simpleCache struct {
	Data map[string]string `json:"Data"`
}

// FileStorage keeps every key in one json file. The file is read on first
// access and rewritten on every Set.
type FileStorage struct {
	path  string
	mu    sync.Mutex
	cache *simpleCache
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// DefaultPath is ~/.humanizer/cache.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".humanizer", "cache.json"), nil
}

func (self *FileStorage) Path() string {
	return self.path
}

func (self *FileStorage) load() (*simpleCache, error) {
	if self.cache != nil {
		return self.cache, nil
	}
	c := &simpleCache{Data: map[string]string{}}
	content, err := os.ReadFile(self.path)
	if errors.Is(err, os.ErrNotExist) {
		self.cache = c
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache %s: %w", self.path, err)
	}
	if err := json.Unmarshal(content, c); err != nil {
		return nil, fmt.Errorf("failed to parse cache %s: %w", self.path, err)
	}
	if c.Data == nil {
		c.Data = map[string]string{}
	}
	self.cache = c
	return c, nil
}

func (self *FileStorage) persist() error {
	jsonData, err := json.MarshalIndent(self.cache, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(self.path), 0o755); err != nil {
		return err
	}
	tmp := self.path + ".tmp"
	if err := os.WriteFile(tmp, jsonData, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, self.path)
}

// Get returns def when key was never set.
func (self *FileStorage) Get(key, def string) (string, error) {
	self.mu.Lock()
	defer self.mu.Unlock()

	c, err := self.load()
	if err != nil {
		return def, err
	}
	value, found := c.Data[key]
	if !found {
		return def, nil
	}
	return value, nil
}

func (self *FileStorage) Set(key, value string) error {
	self.mu.Lock()
	defer self.mu.Unlock()

	c, err := self.load()
	if err != nil {
		return err
	}
	c.Data[key] = value
	return self.persist()
}

// MemoryStorage is a Storage that lives as long as the process.
type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: map[string]string{}}
}

func (self *MemoryStorage) Get(key, def string) (string, error) {
	self.mu.RLock()
	defer self.mu.RUnlock()
	value, found := self.data[key]
	if !found {
		return def, nil
	}
	return value, nil
}

func (self *MemoryStorage) Set(key, value string) error {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.data[key] = value
	return nil
}
