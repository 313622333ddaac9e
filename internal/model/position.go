package model

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/bnbgo/internal/diag"
)

// Pivot selects the edge of a referenced place that a relative coordinate is
// measured from.
type Pivot int

const (
	PivotCenter Pivot = iota
	PivotLeft
	PivotTop
	PivotRight
	PivotBottom
)

var pivotNames = [...]string{"center", "left", "top", "right", "bottom"}

func (p Pivot) String() string {
	if p < 0 || int(p) >= len(pivotNames) {
		return fmt.Sprintf("Pivot(%d)", int(p))
	}
	return pivotNames[p]
}

// ParsePivot parses a pivot name as produced by String.
func ParsePivot(s string) (Pivot, error) {
	for i, name := range pivotNames {
		if strings.EqualFold(s, name) {
			return Pivot(i), nil
		}
	}
	return PivotCenter, fmt.Errorf("unknown pivot %q", s)
}

// PivotFromSymbol maps the DSL pivot symbols to pivots. Anything else is
// the center.
func PivotFromSymbol(sym string) Pivot {
	switch sym {
	case "^":
		return PivotTop
	case ">":
		return PivotRight
	case "_":
		return PivotBottom
	case "<":
		return PivotLeft
	}
	return PivotCenter
}

// Vertical reports whether the pivot names a horizontal edge (top or bottom)
// and therefore belongs on the y axis.
func (p Pivot) Vertical() bool {
	return p == PivotTop || p == PivotBottom
}

// Horizontal reports whether the pivot belongs on the x axis only.
func (p Pivot) Horizontal() bool {
	return p == PivotLeft || p == PivotRight
}

func (p Pivot) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Pivot) UnmarshalText(b []byte) error {
	v, err := ParsePivot(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Coordinate is one axis of a Position. With an empty Place the coordinate
// is absolute and Offset is its value; otherwise Offset is added to the
// Pivot edge of Place.
type Coordinate struct {
	Place  string  `json:"place,omitempty"`
	Pivot  Pivot   `json:"pivot"`
	Offset float64 `json:"offset"`
}

// Absolute returns an absolute coordinate.
func Absolute(v float64) Coordinate {
	return Coordinate{Offset: v}
}

// Relative returns a coordinate relative to place.
func Relative(place string, pivot Pivot, offset float64) Coordinate {
	return Coordinate{Place: place, Pivot: pivot, Offset: offset}
}

// IsAbsolute reports whether the coordinate does not reference a place.
func (c Coordinate) IsAbsolute() bool {
	return c.Place == ""
}

func (c Coordinate) String() string {
	if c.IsAbsolute() {
		return fmt.Sprintf("%g", c.Offset)
	}
	return fmt.Sprintf("%s(%s)%+g", c.Pivot, c.Place, c.Offset)
}

// Position is the declared layout coordinate of a place.
type Position struct {
	X      Coordinate `json:"x"`
	Y      Coordinate `json:"y"`
	Source diag.Pos   `json:"-"`
}

// References returns the distinct place names the position depends on.
func (p Position) References() []string {
	var refs []string
	for _, c := range []Coordinate{p.X, p.Y} {
		if c.IsAbsolute() {
			continue
		}
		if len(refs) == 1 && refs[0] == c.Place {
			continue
		}
		refs = append(refs, c.Place)
	}
	return refs
}

// Point is a resolved absolute coordinate: the center of a place.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is the extent of a place as laid out by the renderer.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}
