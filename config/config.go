// Copyright © 2025 Texelmark contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: JSON configuration store for texelmark.

package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
)

const (
	configDirName  = "texelmark"
	configFileName = "texelmark.json"
	historyDBName  = "history.db"
)

// Config stores configuration sections as JSON-compatible data.
type Config map[string]interface{}

// Section stores key/value pairs for a configuration section.
type Section map[string]interface{}

var (
	mu      sync.RWMutex
	once    sync.Once
	store   Config
	loadErr error
)

// Load returns the process-wide configuration, reading the config file
// on first use. A missing file yields the registered defaults.
func Load() Config {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return store
}

// Err returns the most recent config load error.
func Err() error {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return loadErr
}

// Reload re-reads the config file from disk.
func Reload() error {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	loadErr = loadLocked()
	return loadErr
}

// Save persists the current configuration to disk.
func Save() error {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	path, err := FilePath()
	if err != nil {
		return err
	}
	return writeConfig(path, store)
}

// Root returns the texelmark configuration directory.
func Root() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, configDirName), nil
}

// FilePath returns the location of the configuration file.
func FilePath() (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, configFileName), nil
}

// HistoryDBPath returns the default location of the history database.
func HistoryDBPath() (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, historyDBName), nil
}

func initStore() {
	mu.Lock()
	defer mu.Unlock()
	store = make(Config)
	loadErr = loadLocked()
}

func loadLocked() error {
	path, err := FilePath()
	if err != nil {
		applyDefaults(store)
		return err
	}

	loaded, found, err := readConfig(path)
	if err != nil {
		log.Printf("[CONFIG] failed to load %s: %v", path, err)
		applyDefaults(store)
		return err
	}
	if !found {
		loaded = make(Config)
	}
	applyDefaults(loaded)
	store = loaded
	return nil
}

func readConfig(path string) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}

func writeConfig(path string, cfg Config) error {
	if cfg == nil {
		cfg = make(Config)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
