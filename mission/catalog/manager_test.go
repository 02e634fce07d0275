package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/rover-mission/mission/engine"
	"github.com/wricardo/rover-mission/mission/input"
)

const classicText = "5 5\n1 2 N\nLMLMLMLMM\n3 3 E\nMMRMMRMRRM\n"

const ridgeYAML = `name: Ridge
description: One rover along the northern ridge
plateau: {width: 8, height: 3}
rovers:
  - {x: 0, y: 3, heading: E, instructions: MMMMMMMM}
`

func createTestMissionDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func TestNewManager(t *testing.T) {
	dir := createTestMissionDir(t, nil)

	manager, err := NewManager(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, manager.Dir())

	_, err = NewManager(filepath.Join(dir, "missing"))
	assert.Error(t, err)

	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte(classicText), 0644))
	_, err = NewManager(file)
	assert.Error(t, err)
}

func TestLoadMission(t *testing.T) {
	dir := createTestMissionDir(t, map[string]string{
		"classic.txt": classicText,
		"ridge.yaml":  ridgeYAML,
	})
	manager, err := NewManager(dir)
	require.NoError(t, err)

	tests := []struct {
		name    string
		lookup  string
		id      string
		format  string
		display string
		rovers  int
		plateau input.Dimensions
	}{
		{"text by id", "classic", "classic", input.FormatText, "classic", 2, input.Dimensions{Width: 5, Height: 5}},
		{"text by filename", "classic.txt", "classic", input.FormatText, "classic", 2, input.Dimensions{Width: 5, Height: 5}},
		{"yaml by id", "ridge", "ridge", input.FormatYAML, "Ridge", 1, input.Dimensions{Width: 8, Height: 3}},
		{"yaml by filename", "ridge.yaml", "ridge", input.FormatYAML, "Ridge", 1, input.Dimensions{Width: 8, Height: 3}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			entry, err := manager.LoadMission(test.lookup)
			require.NoError(t, err)

			assert.Equal(t, test.id, entry.Info.MissionID)
			assert.Equal(t, test.format, entry.Info.Format)
			assert.Equal(t, test.display, entry.Info.Name)
			assert.Equal(t, test.rovers, entry.Info.RoverCount)
			assert.Equal(t, test.plateau, entry.Info.Plateau)
			assert.Len(t, entry.Mission.Rovers, test.rovers)
			assert.NotEmpty(t, entry.Source)
		})
	}

	ridge, err := manager.LoadMission("ridge")
	require.NoError(t, err)
	assert.Equal(t, "One rover along the northern ridge", ridge.Info.Description)
	assert.Equal(t, engine.East, ridge.Mission.Rovers[0].Heading)
}

func TestLoadMission_Errors(t *testing.T) {
	dir := createTestMissionDir(t, map[string]string{
		"broken.txt": "5 5\n1 2 N\n",
		"bad.yaml":   "plateau: {width: 5}\nrovers: nope\n",
	})
	manager, err := NewManager(dir)
	require.NoError(t, err)

	_, err = manager.LoadMission("nowhere")
	assert.True(t, errors.Is(err, ErrMissionNotFound))

	_, err = manager.LoadMission("../etc/passwd")
	assert.True(t, errors.Is(err, ErrMissionNotFound))

	_, err = manager.LoadMission("broken")
	assert.True(t, errors.Is(err, ErrInvalidMission))
	assert.True(t, errors.Is(err, engine.ErrMalformedInput))

	_, err = manager.LoadMission("bad")
	assert.True(t, errors.Is(err, ErrInvalidMission))
}

func TestLoadMission_Cache(t *testing.T) {
	dir := createTestMissionDir(t, map[string]string{"classic.txt": classicText})
	manager, err := NewManager(dir)
	require.NoError(t, err)

	first, err := manager.LoadMission("classic")
	require.NoError(t, err)

	// Cached entries survive the file changing on disk
	require.NoError(t, os.WriteFile(filepath.Join(dir, "classic.txt"), []byte("3 3\n0 0 N\nM\n"), 0644))
	second, err := manager.LoadMission("classic")
	require.NoError(t, err)
	assert.Same(t, first, second)

	manager.RefreshCache()
	third, err := manager.LoadMission("classic")
	require.NoError(t, err)
	assert.Equal(t, 1, third.Info.RoverCount)
}

func TestLoadMission_Default(t *testing.T) {
	withClassic := createTestMissionDir(t, map[string]string{
		"alpha.txt":   "1 1\n0 0 N\nM\n",
		"classic.txt": classicText,
	})
	manager, err := NewManager(withClassic)
	require.NoError(t, err)
	entry, err := manager.LoadMission("")
	require.NoError(t, err)
	assert.Equal(t, "classic", entry.Info.MissionID)

	withoutClassic := createTestMissionDir(t, map[string]string{
		"beta.txt":  "1 1\n0 0 N\nM\n",
		"alpha.txt": "1 1\n0 0 N\nM\n",
	})
	manager, err = NewManager(withoutClassic)
	require.NoError(t, err)
	entry, err = manager.LoadMission("")
	require.NoError(t, err)
	assert.Equal(t, "alpha", entry.Info.MissionID)

	manager, err = NewManager(createTestMissionDir(t, nil))
	require.NoError(t, err)
	_, err = manager.LoadMission("")
	assert.True(t, errors.Is(err, ErrMissionNotFound))
}

func TestListMissions(t *testing.T) {
	dir := createTestMissionDir(t, map[string]string{
		"classic.txt": classicText,
		"ridge.yml":   ridgeYAML,
		"broken.txt":  "nope",
		"notes.md":    "# not a mission",
	})
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.txt"), 0755))

	manager, err := NewManager(dir)
	require.NoError(t, err)

	missions, err := manager.ListMissions()
	require.NoError(t, err)
	require.Len(t, missions, 2)
	assert.Equal(t, "classic", missions[0].MissionID)
	assert.Equal(t, "ridge", missions[1].MissionID)
	assert.Equal(t, "ridge.yml", missions[1].Filename)
}

func TestManager_ConcurrentAccess(t *testing.T) {
	dir := createTestMissionDir(t, map[string]string{"classic.txt": classicText})
	manager, err := NewManager(dir)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			entry, err := manager.LoadMission("classic")
			assert.NoError(t, err)
			assert.Equal(t, 2, entry.Info.RoverCount)
		}()
	}
	wg.Wait()
}

func TestLoadMission_SharedID(t *testing.T) {
	files := map[string]string{
		"x.txt":  classicText,
		"x.yaml": ridgeYAML,
	}

	t.Run("Filename selects its own file", func(t *testing.T) {
		manager, err := NewManager(createTestMissionDir(t, files))
		require.NoError(t, err)

		// Load the text file first so it is cached before the yaml lookup
		text, err := manager.LoadMission("x")
		require.NoError(t, err)
		assert.Equal(t, "x.txt", text.Info.Filename)
		assert.Equal(t, "x", text.Info.MissionID)
		assert.Equal(t, input.FormatText, text.Info.Format)

		yaml, err := manager.LoadMission("x.yaml")
		require.NoError(t, err)
		assert.Equal(t, "x.yaml", yaml.Info.Filename)
		assert.Equal(t, "x.yaml", yaml.Info.MissionID)
		assert.Equal(t, input.FormatYAML, yaml.Info.Format)
		assert.Equal(t, 1, yaml.Info.RoverCount)
	})

	t.Run("Bare id after filename lookup", func(t *testing.T) {
		manager, err := NewManager(createTestMissionDir(t, files))
		require.NoError(t, err)

		yaml, err := manager.LoadMission("x.yaml")
		require.NoError(t, err)
		assert.Equal(t, input.FormatYAML, yaml.Info.Format)

		text, err := manager.LoadMission("x")
		require.NoError(t, err)
		assert.Equal(t, "x.txt", text.Info.Filename)
		assert.Equal(t, 2, text.Info.RoverCount)

		same, err := manager.LoadMission("x.txt")
		require.NoError(t, err)
		assert.Same(t, text, same)
	})

	t.Run("List shows both files", func(t *testing.T) {
		manager, err := NewManager(createTestMissionDir(t, files))
		require.NoError(t, err)

		missions, err := manager.ListMissions()
		require.NoError(t, err)
		require.Len(t, missions, 2)
		assert.Equal(t, "x", missions[0].MissionID)
		assert.Equal(t, "x.txt", missions[0].Filename)
		assert.Equal(t, "x.yaml", missions[1].MissionID)
		assert.Equal(t, "x.yaml", missions[1].Filename)

		// Every listed id loads back to the file it was listed for
		for _, info := range missions {
			entry, err := manager.LoadMission(info.MissionID)
			require.NoError(t, err)
			assert.Equal(t, info.Filename, entry.Info.Filename)
		}
	})
}
