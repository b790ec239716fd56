package scene

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnknownScene is returned by Create for names that are neither built in nor a scene file
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a scene that can be created by name
type SceneInfo struct {
	ID          string `json:"id"`          // Name accepted by Create
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "json"
	FilePath    string `json:"filePath,omitempty"`
}

// sphereGridLayoutSeed fixes the layout of the sphere grid scene
const sphereGridLayoutSeed = 42

type builtinScene struct {
	info   SceneInfo
	create func() *Scene
}

var builtinScenes = []builtinScene{
	{
		info: SceneInfo{
			ID:          "default",
			DisplayName: "Default Scene",
			Description: "Red diffuse sphere between two metal spheres on a yellow ground",
		},
		create: NewDefaultScene,
	},
	{
		info: SceneInfo{
			ID:          "glass",
			DisplayName: "Glass Spheres",
			Description: "Diffuse, metal and glass spheres including a hollow glass shell",
		},
		create: NewGlassScene,
	},
	{
		info: SceneInfo{
			ID:          "spheregrid",
			DisplayName: "Sphere Grid",
			Description: "Field of small randomly chosen spheres around three large ones",
		},
		create: func() *Scene { return NewSphereGridScene(sphereGridLayoutSeed) },
	},
	{
		info: SceneInfo{
			ID:          "single",
			DisplayName: "Single Sphere",
			Description: "Grey diffuse sphere on a grey ground",
		},
		create: NewSingleSphereScene,
	},
}

// List returns the built-in scenes sorted by ID
func List() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, b := range builtinScenes {
		info := b.info
		info.Type = "builtin"
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// ListJSONScenes returns the .json scene files found in dir, sorted by ID.
// A missing directory yields an empty list.
func ListJSONScenes(dir string) ([]SceneInfo, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		name := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
		scenes = append(scenes, SceneInfo{
			ID:          filePath,
			DisplayName: titleCase(name),
			Type:        "json",
			FilePath:    filePath,
		})
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes, nil
}

// Create builds a scene by built-in name, or loads it when name is a path to a .json file
func Create(name string) (*Scene, error) {
	for _, b := range builtinScenes {
		if b.info.ID == name {
			return b.create(), nil
		}
	}

	if strings.EqualFold(filepath.Ext(name), ".json") {
		return LoadJSONScene(name)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}

// titleCase converts a filename-style string to title case
// e.g., "three-spheres" -> "Three Spheres"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
