package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/charcontroller/controller"
)

//go:embed *.json
var LevelsFS embed.FS

// Level is the on-disk arena layout. Band rectangles are given by their
// top-left corner and size in screen coordinates (y grows downward).
type Level struct {
	Name   string     `json:"name"`
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Spawn  *Point     `json:"spawn,omitempty"`
	Bands  []BandInfo `json:"bands"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type BandInfo struct {
	Kind string  `json:"kind"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	W    float64 `json:"w"`
	H    float64 `json:"h"`
}

func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, cleanLevelPath(name))
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	return &lvl, nil
}

// Arena converts the layout into controller bands and validates them.
func (l *Level) Arena() (controller.Arena, error) {
	arena := controller.Arena{Bands: make([]controller.Band, 0, len(l.Bands))}
	for i, info := range l.Bands {
		kind, err := controller.ParseBandKind(info.Kind)
		if err != nil {
			return controller.Arena{}, fmt.Errorf("level %s: band %d: %w", l.Name, i, err)
		}
		arena.Bands = append(arena.Bands, controller.Band{
			Kind: kind,
			Box:  cp.BB{L: info.X, B: info.Y, R: info.X + info.W, T: info.Y + info.H},
		})
	}
	if err := arena.Validate(); err != nil {
		return controller.Arena{}, fmt.Errorf("level %s: %w", l.Name, err)
	}
	return arena, nil
}

// SpawnPoint returns the level's spawn, or fallback when it has none.
func (l *Level) SpawnPoint(fallback cp.Vector) cp.Vector {
	if l.Spawn == nil {
		return fallback
	}
	return cp.Vector{X: l.Spawn.X, Y: l.Spawn.Y}
}

// LoadArena is LoadLevelFromFS followed by Level.Arena.
func LoadArena(name string) (controller.Arena, error) {
	lvl, err := LoadLevelFromFS(name)
	if err != nil {
		return controller.Arena{}, err
	}
	return lvl.Arena()
}

// Names lists the embedded levels without their extension.
func Names() []string {
	matches, err := fs.Glob(LevelsFS, "*.json")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(m, ".json"))
	}
	sort.Strings(names)
	return names
}

func cleanLevelPath(name string) string {
	s := filepath.Base(filepath.ToSlash(name))
	if filepath.Ext(s) == "" {
		s += ".json"
	}
	return s
}
