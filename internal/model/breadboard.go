package model

import "github.com/specialistvlad/bnbgo/internal/diag"

// Breadboard is the compiled document. Once resolution succeeds it is never
// mutated again and may be read from multiple goroutines.
type Breadboard struct {
	Places     []*Place     `json:"places"`
	Components []*Component `json:"components"`
}

// Place is a screen or section of the modeled software.
type Place struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Affordances Forest    `json:"affordances"`
	Includes    []Include `json:"includes,omitempty"`
	Position    *Position `json:"position,omitempty"`
	// Point is the resolved center of the place. It stays nil for places
	// left to the automatic layout and for places positioned relative to
	// one that has no point yet.
	Point  *Point   `json:"point,omitempty"`
	Sketch *Sketch  `json:"sketch,omitempty"`
	Source diag.Pos `json:"-"`
}

// Component is a reusable group of affordances.
type Component struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Affordances Forest    `json:"affordances"`
	Includes    []Include `json:"includes,omitempty"`
	Source      diag.Pos  `json:"-"`
}

// Include is an include directive. At is the number of root affordances
// declared before the directive, i.e. where the copy goes. Once Resolved,
// Spliced holds the number of roots the copy added.
type Include struct {
	Name     string   `json:"name"`
	At       int      `json:"at"`
	Resolved bool     `json:"resolved,omitempty"`
	Spliced  int      `json:"spliced,omitempty"`
	Source   diag.Pos `json:"-"`
}

// Sketch is an image of a place with clickable regions.
type Sketch struct {
	Path    string   `json:"path"`
	Regions []Region `json:"regions,omitempty"`
}

// Rect is a rectangle in image pixels.
type Rect struct {
	Top    int `json:"top"`
	Left   int `json:"left"`
	Bottom int `json:"bottom"`
	Right  int `json:"right"`
}

// Width returns the horizontal extent.
func (r Rect) Width() int { return r.Right - r.Left }

// Height returns the vertical extent.
func (r Rect) Height() int { return r.Bottom - r.Top }

// Region maps a rectangle of a sketch to an affordance of the same place.
type Region struct {
	Rect       Rect   `json:"rect"`
	Affordance string `json:"affordance"`
	// AffordanceID is filled in by sketch validation.
	AffordanceID string   `json:"affordanceId,omitempty"`
	Source       diag.Pos `json:"-"`
}

// PlaceID returns the identifier of the place called name.
func PlaceID(name string) string {
	return "place:" + name
}

// ComponentID returns the identifier of the component called name.
func ComponentID(name string) string {
	return "component:" + name
}

// Place returns the first place called name, or nil.
func (b *Breadboard) Place(name string) *Place {
	for _, p := range b.Places {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Component returns the first component called name, or nil.
func (b *Breadboard) Component(name string) *Component {
	for _, c := range b.Components {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Clone returns a deep copy of the breadboard.
func (b *Breadboard) Clone() *Breadboard {
	out := &Breadboard{
		Places:     make([]*Place, len(b.Places)),
		Components: make([]*Component, len(b.Components)),
	}
	for i, p := range b.Places {
		cp := *p
		cp.Affordances = p.Affordances.Clone()
		cp.Includes = append([]Include(nil), p.Includes...)
		if p.Position != nil {
			pos := *p.Position
			cp.Position = &pos
		}
		if p.Point != nil {
			pt := *p.Point
			cp.Point = &pt
		}
		if p.Sketch != nil {
			sk := *p.Sketch
			sk.Regions = append([]Region(nil), p.Sketch.Regions...)
			cp.Sketch = &sk
		}
		out.Places[i] = &cp
	}
	for i, c := range b.Components {
		cc := *c
		cc.Affordances = c.Affordances.Clone()
		cc.Includes = append([]Include(nil), c.Includes...)
		out.Components[i] = &cc
	}
	return out
}
