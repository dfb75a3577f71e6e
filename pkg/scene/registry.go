package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/df07/go-pathtracer/pkg/renderer"
)

// ErrUnknownScene is returned by Create for a name that is not registered
var ErrUnknownScene = errors.New("unknown scene")

// Options are the inputs a built-in scene may depend on
type Options struct {
	Seed        uint64                // Seed for random scene layout and noise lattices
	TexturePath string                // Image used by textured scenes
	Camera      renderer.CameraConfig // Non-zero fields override the scene's camera
}

// SceneInfo describes one built-in scene
type SceneInfo struct {
	ID          string // Name accepted by Create
	DisplayName string // Human-readable name
	Description string
	Group       string // Grouping category
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string
	Scenes []SceneInfo
}

type builtin struct {
	info  SceneInfo
	build func(Options) (*Scene, error)
}

func infallible(f func(Options) *Scene) func(Options) (*Scene, error) {
	return func(o Options) (*Scene, error) { return f(o), nil }
}

var builtins = []builtin{
	{
		SceneInfo{ID: "spheres", Description: "Small sphere on a ground sphere", Group: "Basics"},
		infallible(func(o Options) *Scene { return NewSpheresScene(o.Camera) }),
	},
	{
		SceneInfo{ID: "materials", Description: "Diffuse, glass, hollow glass and metal spheres with depth of field", Group: "Basics"},
		infallible(func(o Options) *Scene { return NewMaterialsScene(o.Camera) }),
	},
	{
		SceneInfo{ID: "bouncing", Description: "Random sphere grid with motion blur over a checker ground", Group: "Basics"},
		infallible(func(o Options) *Scene { return NewBouncingScene(o.Seed, o.Camera) }),
	},
	{
		SceneInfo{ID: "quads", Description: "Five colored quads", Group: "Basics"},
		infallible(func(o Options) *Scene { return NewQuadsScene(o.Camera) }),
	},
	{
		SceneInfo{ID: "checkered", Description: "Two spheres sharing a solid checker texture", Group: "Textures"},
		infallible(func(o Options) *Scene { return NewCheckeredScene(o.Camera) }),
	},
	{
		SceneInfo{ID: "perlin", Description: "Perlin turbulence marble", Group: "Textures"},
		infallible(func(o Options) *Scene { return NewPerlinScene(o.Seed, o.Camera) }),
	},
	{
		SceneInfo{ID: "earth", Description: "Image-textured globe (needs a texture path)", Group: "Textures"},
		func(o Options) (*Scene, error) { return NewEarthScene(o.TexturePath, o.Camera) },
	},
	{
		SceneInfo{ID: "simple-light", Description: "Marble spheres lit by a quad and a sphere light", Group: "Lights and Volumes"},
		infallible(func(o Options) *Scene { return NewSimpleLightScene(o.Seed, o.Camera) }),
	},
	{
		SceneInfo{ID: "cornell", Description: "Cornell box with two rotated boxes", Group: "Lights and Volumes"},
		infallible(func(o Options) *Scene { return NewCornellScene(o.Camera) }),
	},
	{
		SceneInfo{ID: "cornell-smoke", Description: "Cornell box with smoke-filled boxes", Group: "Lights and Volumes"},
		infallible(func(o Options) *Scene { return NewCornellSmokeScene(o.Camera) }),
	},
	{
		SceneInfo{ID: "final", Description: "Every primitive, material and texture in one scene", Group: "Lights and Volumes"},
		func(o Options) (*Scene, error) { return NewFinalScene(o.Seed, o.TexturePath, o.Camera) },
	},
}

// Names returns the IDs of all built-in scenes in sorted order
func Names() []string {
	names := make([]string, 0, len(builtins))
	for _, b := range builtins {
		names = append(names, b.info.ID)
	}
	sort.Strings(names)
	return names
}

// Create builds the named scene
func Create(name string, options Options) (*Scene, error) {
	for _, b := range builtins {
		if b.info.ID != name {
			continue
		}
		s, err := b.build(options)
		if err != nil {
			return nil, fmt.Errorf("failed to create scene %q: %w", name, err)
		}
		return s, nil
	}
	return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownScene, name, strings.Join(Names(), ", "))
}

// ListScenes returns the built-in scenes grouped by category, groups in
// registration order
func ListScenes() []SceneGroup {
	var groups []SceneGroup
	index := map[string]int{}
	for _, b := range builtins {
		info := b.info
		info.DisplayName = titleCase(info.ID)

		i, ok := index[info.Group]
		if !ok {
			i = len(groups)
			index[info.Group] = i
			groups = append(groups, SceneGroup{Name: info.Group})
		}
		groups[i].Scenes = append(groups[i].Scenes, info)
	}
	return groups
}

// titleCase converts a scene ID to title case
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
