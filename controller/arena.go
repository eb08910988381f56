package controller

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
)

type BandKind int

const (
	BandFloor BandKind = iota
	BandLeftWall
	BandRightWall
	BandCeiling
)

func (k BandKind) String() string {
	switch k {
	case BandFloor:
		return "floor"
	case BandLeftWall:
		return "left_wall"
	case BandRightWall:
		return "right_wall"
	case BandCeiling:
		return "ceiling"
	default:
		return fmt.Sprintf("band(%d)", int(k))
	}
}

// ParseBandKind maps the names produced by BandKind.String back to kinds.
func ParseBandKind(name string) (BandKind, error) {
	for _, k := range []BandKind{BandFloor, BandLeftWall, BandRightWall, BandCeiling} {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown band kind %q", ErrInvalidArena, name)
}

// Band is a static axis-aligned collision region. Box uses the same
// y-down convention as MovementState.Box.
type Band struct {
	Kind BandKind
	Box  cp.BB
}

func (b Band) IsWall() bool {
	return b.Kind == BandLeftWall || b.Kind == BandRightWall
}

// Arena is the fixed collision geometry a controller runs in.
type Arena struct {
	Bands []Band
}

// DefaultArena builds a floor at cfg.FloorY, a ceiling at y=0 and two wall
// bands of cfg.WallBandWidth at the arena edges.
func DefaultArena(cfg Config) Arena {
	thick := math.Max(cfg.WallBandWidth, cfg.Height)
	return Arena{Bands: []Band{
		{Kind: BandFloor, Box: cp.BB{L: 0, B: cfg.FloorY, R: cfg.ArenaWidth, T: cfg.FloorY + thick}},
		{Kind: BandCeiling, Box: cp.BB{L: 0, B: -thick, R: cfg.ArenaWidth, T: 0}},
		{Kind: BandLeftWall, Box: cp.BB{L: 0, B: 0, R: cfg.WallBandWidth, T: cfg.FloorY}},
		{Kind: BandRightWall, Box: cp.BB{L: cfg.ArenaWidth - cfg.WallBandWidth, B: 0, R: cfg.ArenaWidth, T: cfg.FloorY}},
	}}
}

func (a Arena) Validate() error {
	floors := 0
	for i, b := range a.Bands {
		for _, v := range []float64{b.Box.L, b.Box.B, b.Box.R, b.Box.T} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: band %d (%s) has a non-finite edge", ErrInvalidArena, i, b.Kind)
			}
		}
		if b.Box.L > b.Box.R || b.Box.B > b.Box.T {
			return fmt.Errorf("%w: band %d (%s) is inverted", ErrInvalidArena, i, b.Kind)
		}
		if b.Kind < BandFloor || b.Kind > BandCeiling {
			return fmt.Errorf("%w: band %d has unknown kind %d", ErrInvalidArena, i, int(b.Kind))
		}
		if b.Kind == BandFloor {
			floors++
		}
	}
	if floors == 0 {
		return fmt.Errorf("%w: no floor band", ErrInvalidArena)
	}
	return nil
}

// overlaps is strict: boxes that only share an edge do not overlap.
func overlaps(a, b cp.BB) bool {
	return a.L < b.R && a.R > b.L && a.B < b.T && a.T > b.B
}

func overlapsX(a, b cp.BB) bool {
	return a.L < b.R && a.R > b.L
}

// touchingWall returns the first wall band the box overlaps or rests
// against.
func (a Arena) touchingWall(box cp.BB) (Band, bool) {
	for _, b := range a.Bands {
		if b.IsWall() && box.Intersects(b.Box) {
			return b, true
		}
	}
	return Band{}, false
}
