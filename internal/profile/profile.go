// Package profile holds named collage presets.
package profile

import (
	"sort"

	"github.com/AnyUserName/collage-cli/internal/canvas"
)

// DefaultName is used when no profile is requested.
const DefaultName = "default"

// Profile defines the collage parameters for a use case.
type Profile struct {
	Name     string
	CellSize int            // cell edge in pixels
	Format   string         // output format
	Quality  int            // lossy quality 1-100
	Lossless bool           // lossless output where supported
	Backing  canvas.Backing // canvas store
}

// Built-in profiles.
var profiles = map[string]Profile{
	"default": {
		Name:     "default",
		CellSize: 200,
		Format:   "webp",
		Quality:  90,
		Lossless: true,
		Backing:  canvas.Auto,
	},
	"thumbnail": {
		Name:     "thumbnail",
		CellSize: 100,
		Format:   "webp",
		Quality:  80,
		Lossless: false,
		Backing:  canvas.Memory,
	},
	"print": {
		Name:     "print",
		CellSize: 400,
		Format:   "webp",
		Quality:  100,
		Lossless: true,
		Backing:  canvas.Disk,
	},
}

// Get returns a profile by name. Falls back to default if unknown.
func Get(name string) Profile {
	if name == "" {
		name = DefaultName
	}
	if p, ok := profiles[name]; ok {
		return p
	}
	p := profiles[DefaultName]
	p.Name = name // preserve requested name
	return p
}

// Known reports whether name is a built-in profile.
func Known(name string) bool {
	_, ok := profiles[name]
	return ok
}

// Names returns the built-in profile names, sorted.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for n := range profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
