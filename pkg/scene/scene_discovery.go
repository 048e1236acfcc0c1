package scene

import (
	"fmt"
	"sort"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
}

type sceneEntry struct {
	info    SceneInfo
	factory func() *Scene
}

var builtinScenes = map[string]sceneEntry{
	"cornell": {
		info: SceneInfo{
			Name:        "cornell",
			DisplayName: "Cornell Box",
			Description: "Red/green walled box with a mirror ball and a red ball",
		},
		factory: NewCornellScene,
	},
	"sphere": {
		info: SceneInfo{
			Name:        "sphere",
			DisplayName: "Single Sphere",
			Description: "Unit sphere lit from above",
		},
		factory: NewSphereScene,
	},
	"mirrors": {
		info: SceneInfo{
			Name:        "mirrors",
			DisplayName: "Facing Mirrors",
			Description: "Two parallel mirrors around a red ball",
		},
		factory: NewMirrorsScene,
	},
}

// DefaultSceneName is used when no scene is requested
const DefaultSceneName = "cornell"

// New creates a fresh instance of the named built-in scene
func New(name string) (*Scene, error) {
	entry, ok := builtinScenes[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %v)", name, Names())
	}
	return entry.factory(), nil
}

// Names returns the built-in scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(builtinScenes))
	for name := range builtinScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns metadata for all built-in scenes sorted by name
func List() []SceneInfo {
	infos := make([]SceneInfo, 0, len(builtinScenes))
	for _, name := range Names() {
		infos = append(infos, builtinScenes[name].info)
	}
	return infos
}
