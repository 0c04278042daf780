package scene

import (
	"fmt"
	"strings"
)

// Builder constructs a preset scene
type Builder func(Options) (*Scene, error)

// SceneInfo describes a preset for listings
type SceneInfo struct {
	ID          string `json:"id"`          // Name passed to Lookup
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"`
	Group       string `json:"group"`     // Grouping category
	NeedsFile   bool   `json:"needsFile"` // Requires Options.MeshPath
}

type preset struct {
	info  SceneInfo
	build Builder
}

// presets are kept in listing order
var presets = []preset{
	{SceneInfo{ID: "bouncing-spheres", Description: "Random field of small spheres with motion blur and depth of field", Group: "Spheres"}, NewBouncingSpheres},
	{SceneInfo{ID: "materials", Description: "Glass and metal spheres on a yellow ground", Group: "Spheres"}, NewMaterialSpheres},
	{SceneInfo{ID: "checkered-spheres", Description: "Two large spheres sharing a solid checker texture", Group: "Spheres"}, NewCheckeredSpheres},
	{SceneInfo{ID: "earth", Description: "Globe with an image texture", Group: "Textures"}, NewEarth},
	{SceneInfo{ID: "perlin-spheres", Description: "Marble spheres from Perlin turbulence", Group: "Textures"}, NewPerlinSpheres},
	{SceneInfo{ID: "quads", Description: "Five colored quads", Group: "Quads and Lights"}, NewQuads},
	{SceneInfo{ID: "simple-light", Description: "Marble spheres lit by a panel and a sphere light", Group: "Quads and Lights"}, NewSimpleLight},
	{SceneInfo{ID: "cornell-box", Description: "Cornell box with two rotated blocks", Group: "Quads and Lights"}, NewCornellBox},
	{SceneInfo{ID: "cornell-smoke", Description: "Cornell box with smoke-filled blocks", Group: "Volumes"}, NewCornellSmoke},
	{SceneInfo{ID: "final", Description: "Every primitive, material and texture in one scene", Group: "Volumes"}, NewFinal},
	{SceneInfo{ID: "mesh", Description: "Triangle mesh loaded from a glTF or PLY file", Group: "Meshes", NeedsFile: true}, NewMeshScene},
}

// List returns the metadata of every preset in listing order
func List() []SceneInfo {
	infos := make([]SceneInfo, len(presets))
	for i, p := range presets {
		infos[i] = p.info
		infos[i].DisplayName = titleCase(p.info.ID)
	}
	return infos
}

// Names returns the preset names in listing order
func Names() []string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.info.ID
	}
	return names
}

// Lookup returns the builder of the named preset
func Lookup(name string) (Builder, error) {
	for _, p := range presets {
		if p.info.ID == name {
			return p.build, nil
		}
	}
	return nil, fmt.Errorf("unknown scene %q (available: %s)", name, strings.Join(Names(), ", "))
}

// Build looks up and constructs the named preset
func Build(name string, opts Options) (*Scene, error) {
	build, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return build(opts)
}

// titleCase converts a preset name to title case
// e.g., "cornell-box" -> "Cornell Box"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
