package position

import (
	"github.com/specialistvlad/bnbgo/internal/dag"
	"github.com/specialistvlad/bnbgo/internal/diag"
	"github.com/specialistvlad/bnbgo/internal/model"
)

// DefaultSize is the extent assumed for a place the layout has no size for.
var DefaultSize = model.Size{Width: 240, Height: 160}

// SizeFunc reports the laid-out size of the named place.
type SizeFunc func(place string) model.Size

// Sizes returns a SizeFunc answering from perPlace and falling back to def.
func Sizes(def model.Size, perPlace map[string]model.Size) SizeFunc {
	return func(place string) model.Size {
		if s, ok := perPlace[place]; ok {
			return s
		}
		return def
	}
}

// Resolver turns declared positions into absolute points.
type Resolver struct {
	sizes SizeFunc
}

// New creates a Resolver. A nil sizes uses DefaultSize for every place.
func New(sizes SizeFunc) *Resolver {
	if sizes == nil {
		sizes = Sizes(DefaultSize, nil)
	}
	return &Resolver{sizes: sizes}
}

type axis int

const (
	axisX axis = iota
	axisY
)

// Resolve computes Point for every place whose position can be evaluated.
// anchors supplies points for places without a declared position, usually
// fed back by the renderer after automatic layout; a place that depends on
// a place with neither a position nor an anchor keeps a nil Point.
//
// Points from a previous run are discarded first, so Resolve may be called
// again with new anchors.
func (r *Resolver) Resolve(bb *model.Breadboard, anchors map[string]model.Point) diag.Diagnostics {
	var diags diag.Diagnostics

	places := make(map[string]*model.Place, len(bb.Places))
	g := dag.New()
	for _, p := range bb.Places {
		p.Point = nil
		if _, ok := places[p.Name]; ok {
			continue
		}
		places[p.Name] = p
		g.AddNode(p.Name)
	}

	for name, p := range places {
		if p.Position != nil {
			continue
		}
		if pt, ok := anchors[name]; ok {
			p.Point = &pt
		}
	}

	for _, p := range bb.Places {
		if p.Position == nil || places[p.Name] != p {
			continue
		}
		for _, ref := range p.Position.References() {
			if !g.Has(ref) {
				diags = append(diags, diag.New(diag.UnknownPlace, p.Position.Source, ref,
					"position of %q refers to unknown place %q", p.Name, ref))
				continue
			}
			_ = g.AddEdge(ref, p.Name)
		}
	}

	for _, path := range g.Cycles() {
		at := places[path[0]].Source
		if pos := places[path[0]].Position; pos != nil && pos.Source.IsValid() {
			at = pos.Source
		}
		diags = append(diags, diag.Cycle(diag.CyclicPosition, at, path))
	}

	sorted, _ := g.Order()
	for _, name := range sorted {
		p := places[name]
		if p.Position == nil {
			continue
		}
		x, okX := r.coordinate(axisX, p.Position.X, places)
		y, okY := r.coordinate(axisY, p.Position.Y, places)
		if okX && okY {
			p.Point = &model.Point{X: x, Y: y}
		}
	}
	return diags
}

// coordinate evaluates c on the given axis. It reports false when c
// depends on a place that has no point.
func (r *Resolver) coordinate(a axis, c model.Coordinate, places map[string]*model.Place) (float64, bool) {
	if c.IsAbsolute() {
		return c.Offset, true
	}
	ref, ok := places[c.Place]
	if !ok || ref.Point == nil {
		return 0, false
	}
	size := r.sizes(ref.Name)

	var v float64
	switch a {
	case axisX:
		v = ref.Point.X
		switch c.Pivot {
		case model.PivotLeft:
			v -= size.Width / 2
		case model.PivotRight:
			v += size.Width / 2
		}
	case axisY:
		v = ref.Point.Y
		switch c.Pivot {
		case model.PivotTop:
			v -= size.Height / 2
		case model.PivotBottom:
			v += size.Height / 2
		}
	}
	return v + c.Offset, true
}
