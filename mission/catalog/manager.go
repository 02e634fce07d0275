package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/wricardo/rover-mission/mission/input"
	"github.com/wricardo/rover-mission/mission/service"
)

var (
	ErrMissionNotFound = errors.New("mission not found")
	ErrInvalidMission  = errors.New("invalid mission")
)

// DefaultMission is the mission used when no name is given
const DefaultMission = "classic"

// extensions lists the recognised mission file suffixes in lookup order
var extensions = []string{".txt", ".yaml", ".yml"}

// Manager handles mission loading and caching
type Manager struct {
	dir      string
	missions map[string]*service.CatalogEntry
	mu       sync.RWMutex
}

// NewManager creates a catalog over an existing directory
func NewManager(dir string) (*Manager, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("mission directory does not exist: %s", dir)
		}
		return nil, fmt.Errorf("failed to stat mission directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("mission path is not a directory: %s", dir)
	}

	return &Manager{
		dir:      dir,
		missions: make(map[string]*service.CatalogEntry),
	}, nil
}

// Dir returns the catalog directory
func (m *Manager) Dir() string {
	return m.dir
}

// LoadMission loads a mission by name. An empty name loads DefaultMission,
// falling back to the first mission in the directory. A bare id resolves to
// the first existing file in extension order; a full filename loads exactly
// that file.
func (m *Manager) LoadMission(name string) (*service.CatalogEntry, error) {
	if name == "" {
		return m.loadDefault()
	}

	id := missionID(name)
	if strings.ContainsAny(name, `/\`) || id == "." || id == ".." {
		return nil, fmt.Errorf("%w: %q", ErrMissionNotFound, name)
	}

	filename, err := m.resolve(name)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	// Check cache first
	if entry, exists := m.missions[filename]; exists {
		m.mu.RUnlock()
		return entry, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if entry, exists := m.missions[filename]; exists {
		return entry, nil
	}

	entry, err := m.loadFile(filename)
	if err != nil {
		return nil, err
	}

	m.missions[filename] = entry
	return entry, nil
}

// ListMissions returns information about every loadable mission file, sorted
// by id. Files that fail to parse are skipped.
func (m *Manager) ListMissions() ([]*service.MissionInfo, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read mission directory: %w", err)
	}

	var missions []*service.MissionInfo
	for _, entry := range entries {
		if entry.IsDir() || !hasMissionExtension(entry.Name()) {
			continue
		}

		mission, err := m.LoadMission(entry.Name())
		if err != nil {
			// Skip invalid missions
			continue
		}
		missions = append(missions, mission.Info)
	}

	sort.Slice(missions, func(i, j int) bool {
		return missions[i].MissionID < missions[j].MissionID
	})
	return missions, nil
}

// RefreshCache drops every cached mission so the next load reads from disk
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.missions = make(map[string]*service.CatalogEntry)
}

func (m *Manager) loadDefault() (*service.CatalogEntry, error) {
	entry, err := m.LoadMission(DefaultMission)
	if err == nil {
		return entry, nil
	}

	missions, listErr := m.ListMissions()
	if listErr != nil {
		return nil, listErr
	}
	if len(missions) == 0 {
		return nil, fmt.Errorf("%w: catalog %s is empty", ErrMissionNotFound, m.dir)
	}
	return m.LoadMission(missions[0].MissionID)
}

// resolve finds the file behind a mission name
func (m *Manager) resolve(name string) (string, error) {
	candidates := []string{name}
	if !hasMissionExtension(name) {
		candidates = candidates[:0]
		for _, ext := range extensions {
			candidates = append(candidates, name+ext)
		}
	}

	for _, candidate := range candidates {
		path := filepath.Join(m.dir, candidate)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrMissionNotFound, name)
}

func (m *Manager) loadFile(filename string) (*service.CatalogEntry, error) {
	data, err := os.ReadFile(filepath.Join(m.dir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissionNotFound, filename)
		}
		return nil, fmt.Errorf("failed to read mission file: %w", err)
	}

	id := missionID(filename)
	// When several files share an id, the bare id belongs to the first one in
	// extension order and the others are addressed by filename.
	if primary, err := m.resolve(id); err != nil || primary != filename {
		id = filename
	}
	info := &service.MissionInfo{
		Filename:  filename,
		MissionID: id,
		Name:      id,
		Format:    input.FormatText,
	}

	var mission *input.Mission
	switch filepath.Ext(filename) {
	case ".yaml", ".yml":
		doc, err := input.ParseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidMission, filename, err)
		}
		mission = doc.Mission
		info.Format = input.FormatYAML
		if doc.Name != "" {
			info.Name = doc.Name
		}
		info.Description = doc.Description
	default:
		mission, err = input.ParseString(string(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidMission, filename, err)
		}
	}

	info.Plateau = mission.Plateau
	info.RoverCount = len(mission.Rovers)

	return &service.CatalogEntry{
		Info:    info,
		Source:  string(data),
		Mission: mission,
	}, nil
}

func missionID(name string) string {
	for _, ext := range extensions {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return name
}

func hasMissionExtension(name string) bool {
	return missionID(name) != name
}
