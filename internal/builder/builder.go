package builder

import (
	"github.com/specialistvlad/bnbgo/internal/model"
	"github.com/specialistvlad/bnbgo/internal/parser"
)

// Build materializes the parse trees into an unresolved Breadboard. Blocks
// are taken in file order, then in declaration order within each file.
// Every referenced name is kept as written.
func Build(files ...*parser.File) *model.Breadboard {
	bb := &model.Breadboard{}
	for _, f := range files {
		if f == nil {
			continue
		}
		for _, b := range f.Blocks {
			switch b.Kind {
			case parser.PlaceBlock:
				bb.Places = append(bb.Places, buildPlace(b))
			case parser.ComponentBlock:
				bb.Components = append(bb.Components, buildComponent(b))
			}
		}
	}
	return bb
}

func buildPlace(b *parser.Block) *model.Place {
	p := &model.Place{
		ID:          model.PlaceID(b.Name),
		Name:        b.Name,
		Description: b.Doc,
		Affordances: buildForest(b.Affordances),
		Includes:    buildIncludes(b.Includes),
		Source:      b.Pos,
	}
	p.Affordances.AssignIDs(p.ID)

	if b.Position != nil {
		pos := b.Position.Position
		pos.Source = b.Position.Pos
		p.Position = &pos
	}
	if b.Sketch != nil {
		sk := &model.Sketch{Path: b.Sketch.Path}
		for _, r := range b.Sketch.Regions {
			sk.Regions = append(sk.Regions, model.Region{
				Rect:       r.Rect,
				Affordance: r.Affordance,
				Source:     r.Pos,
			})
		}
		p.Sketch = sk
	}
	return p
}

func buildComponent(b *parser.Block) *model.Component {
	c := &model.Component{
		ID:          model.ComponentID(b.Name),
		Name:        b.Name,
		Description: b.Doc,
		Affordances: buildForest(b.Affordances),
		Includes:    buildIncludes(b.Includes),
		Source:      b.Pos,
	}
	c.Affordances.AssignIDs(c.ID)
	return c
}

func buildIncludes(in []*parser.Include) []model.Include {
	var out []model.Include
	for _, inc := range in {
		out = append(out, model.Include{Name: inc.Name, At: inc.At, Source: inc.Pos})
	}
	return out
}

// buildForest flattens the affordance tree into an arena, numbering nodes
// in declaration order.
func buildForest(roots []*parser.Affordance) model.Forest {
	var f model.Forest
	var add func(parent int, a *parser.Affordance)
	add = func(parent int, a *parser.Affordance) {
		idx := f.Add(parent, model.Affordance{
			Label:       a.Label,
			Description: a.Doc,
			Connections: buildConnections(a.Connections),
			Source:      a.Pos,
		})
		for _, child := range a.Children {
			add(idx, child)
		}
	}
	for _, r := range roots {
		add(-1, r)
	}
	return f
}

func buildConnections(in []*parser.Connection) []model.Connection {
	var out []model.Connection
	for _, c := range in {
		out = append(out, model.Connection{Label: c.Label, Target: c.Target, Source: c.Pos})
	}
	return out
}
