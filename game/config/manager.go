package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hexfield/expedition/game/engine"
	"github.com/hexfield/expedition/game/service"
)

var (
	ErrMapNotFound = errors.New("map not found")
	ErrInvalidMap  = errors.New("invalid map")
)

// mapExtensions lists the file extensions the manager recognizes, in
// lookup order.
var mapExtensions = []string{".json", ".yaml", ".yml"}

// Manager handles map configuration loading and caching
type Manager struct {
	mapDir     string
	defaultMap *engine.MapConfig
	maps       map[string]*engine.MapConfig
	mu         sync.RWMutex
}

// NewManager creates a new map manager rooted at mapDir
func NewManager(mapDir string) (*Manager, error) {
	if _, err := os.Stat(mapDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("map directory does not exist: %s", mapDir)
	}

	m := &Manager{
		mapDir: mapDir,
		maps:   make(map[string]*engine.MapConfig),
	}

	if err := m.loadDefaultMap(); err != nil {
		return nil, fmt.Errorf("failed to load default map: %w", err)
	}

	return m, nil
}

// LoadMap loads a map configuration by name. Names are file stems; the
// extension is resolved in json, yaml, yml order.
func (m *Manager) LoadMap(name string) (*engine.MapConfig, error) {
	m.mu.RLock()
	if config, exists := m.maps[name]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if config, exists := m.maps[name]; exists {
		return config, nil
	}

	path, err := m.resolvePath(name)
	if err != nil {
		return nil, err
	}

	config, err := engine.LoadMapConfig(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrMapNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidMap, err)
	}

	m.maps[name] = config
	return config, nil
}

// resolvePath finds the on-disk file for a map name. Callers hold mu.
func (m *Manager) resolvePath(name string) (string, error) {
	for _, ext := range mapExtensions {
		if strings.HasSuffix(name, ext) {
			return filepath.Join(m.mapDir, name), nil
		}
	}
	for _, ext := range mapExtensions {
		path := filepath.Join(m.mapDir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", ErrMapNotFound
}

// ListMaps returns information about all loadable maps in the map
// directory. Files that fail validation are skipped.
func (m *Manager) ListMaps() ([]*service.MapInfo, error) {
	entries, err := os.ReadDir(m.mapDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read map directory: %w", err)
	}

	var maps []*service.MapInfo

	for _, entry := range entries {
		if entry.IsDir() || !hasMapExtension(entry.Name()) {
			continue
		}

		name := stripMapExtension(entry.Name())

		config, err := m.LoadMap(name)
		if err != nil {
			continue
		}

		maps = append(maps, &service.MapInfo{
			Filename:    entry.Name(),
			MapID:       name,
			Name:        config.Name,
			Description: config.Description,
			TileCount:   len(config.Tiles),
			MaxAP:       config.MaxAP,
		})
	}

	return maps, nil
}

// GetDefault returns the default map configuration
func (m *Manager) GetDefault() *engine.MapConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultMap
}

// SetDefault sets the default map by name
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadMap(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultMap = config
	return nil
}

// RefreshCache drops all cached maps and reloads the default
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.maps = make(map[string]*engine.MapConfig)
	m.mu.Unlock()

	return m.loadDefaultMap()
}

// loadDefaultMap picks the default map: verdant_reach if present, else
// the first loadable map file, else the built-in reference map. Must
// not be called with mu held; LoadMap locks internally.
func (m *Manager) loadDefaultMap() error {
	config, err := m.LoadMap("verdant_reach")
	if err != nil {
		maps, listErr := m.ListMaps()
		if listErr != nil || len(maps) == 0 {
			config = engine.DefaultMapConfig()
		} else if config, err = m.LoadMap(maps[0].MapID); err != nil {
			config = engine.DefaultMapConfig()
		}
	}

	m.mu.Lock()
	m.defaultMap = config
	m.mu.Unlock()
	return nil
}

// SaveMap validates and writes a map configuration to the map
// directory as JSON, then caches it.
func (m *Manager) SaveMap(name string, config *engine.MapConfig) error {
	if err := engine.ValidateMapConfig(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMap, err)
	}

	filename := name
	if !hasMapExtension(filename) {
		filename = name + ".json"
	}

	path := filepath.Join(m.mapDir, filename)

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal map: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write map file: %w", err)
	}

	m.mu.Lock()
	m.maps[stripMapExtension(name)] = config
	m.mu.Unlock()

	return nil
}

func hasMapExtension(filename string) bool {
	for _, ext := range mapExtensions {
		if strings.HasSuffix(filename, ext) {
			return true
		}
	}
	return false
}

func stripMapExtension(filename string) string {
	for _, ext := range mapExtensions {
		if strings.HasSuffix(filename, ext) {
			return strings.TrimSuffix(filename, ext)
		}
	}
	return filename
}
