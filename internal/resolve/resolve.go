package resolve

import (
	"github.com/specialistvlad/bnbgo/internal/dag"
	"github.com/specialistvlad/bnbgo/internal/diag"
	"github.com/specialistvlad/bnbgo/internal/model"
)

// Options controls name resolution.
type Options struct {
	// IncludePlaces lets an include fall back to a place of the same name
	// when no component matches.
	IncludePlaces bool
}

// Resolver binds the names of an unresolved breadboard.
type Resolver struct {
	opts Options
}

// New creates a Resolver.
func New(opts Options) *Resolver {
	return &Resolver{opts: opts}
}

// owner is a place or component taking part in include splicing.
type owner struct {
	id       string
	forest   *model.Forest
	includes []model.Include
}

// scope is the state of a single Resolve call.
type scope struct {
	opts           Options
	places         map[string]*model.Place
	components     map[string]*model.Component
	placeNames     []string
	componentNames []string
	owners         map[string]*owner
	diags          diag.Diagnostics
}

// Resolve splices includes and binds connection targets in place. Every
// problem is collected; an include already marked resolved is left alone,
// so running Resolve twice has the same effect as running it once.
func (r *Resolver) Resolve(bb *model.Breadboard) diag.Diagnostics {
	s := &scope{
		opts:       r.opts,
		places:     make(map[string]*model.Place, len(bb.Places)),
		components: make(map[string]*model.Component, len(bb.Components)),
		owners:     make(map[string]*owner),
	}
	s.index(bb)
	s.includes(bb)
	s.connections(bb)
	return s.diags
}

// index records the first declaration of every name and reports the rest.
func (s *scope) index(bb *model.Breadboard) {
	for _, c := range bb.Components {
		if first, ok := s.components[c.Name]; ok {
			s.duplicate("component", c.Name, c.Source, first.Source)
			continue
		}
		s.components[c.Name] = c
		s.componentNames = append(s.componentNames, c.Name)
	}
	for _, p := range bb.Places {
		if first, ok := s.places[p.Name]; ok {
			s.duplicate("place", p.Name, p.Source, first.Source)
			continue
		}
		s.places[p.Name] = p
		s.placeNames = append(s.placeNames, p.Name)
	}
}

func (s *scope) duplicate(what, name string, at, first diag.Pos) {
	d := diag.New(diag.DuplicateName, at, name, "duplicate %s name %q", what, name)
	d.Detail = "first declared at " + first.String()
	s.diags = append(s.diags, d)
}

// target returns the owner ID an include name refers to, or "".
func (s *scope) target(name string) string {
	if c, ok := s.components[name]; ok {
		return c.ID
	}
	if s.opts.IncludePlaces {
		if p, ok := s.places[name]; ok {
			return p.ID
		}
	}
	return ""
}

func (s *scope) candidates() []string {
	if !s.opts.IncludePlaces {
		return s.componentNames
	}
	return append(append([]string(nil), s.componentNames...), s.placeNames...)
}

// includes splices every include. Owners are processed so that an included
// forest is complete before it is copied; owners on or behind an include
// cycle are left unspliced.
func (s *scope) includes(bb *model.Breadboard) {
	g := dag.New()
	var all []*owner
	for _, c := range bb.Components {
		if s.components[c.Name] == c {
			all = append(all, &owner{id: c.ID, forest: &c.Affordances, includes: c.Includes})
		}
	}
	for _, p := range bb.Places {
		if s.places[p.Name] == p {
			all = append(all, &owner{id: p.ID, forest: &p.Affordances, includes: p.Includes})
		}
	}
	for _, o := range all {
		s.owners[o.id] = o
		g.AddNode(o.id)
	}

	for _, o := range all {
		for _, inc := range o.includes {
			if inc.Resolved {
				continue
			}
			id := s.target(inc.Name)
			if id == "" {
				d := diag.New(diag.UnknownReference, inc.Source, inc.Name, "include of unknown component %q", inc.Name)
				d.Detail = suggest(inc.Name, s.candidates())
				s.diags = append(s.diags, d)
				continue
			}
			// Both nodes were registered above.
			_ = g.AddEdge(id, o.id)
		}
	}

	for _, path := range g.Cycles() {
		s.diags = append(s.diags, diag.Cycle(diag.CyclicInclude, s.includePos(path), path))
	}

	sorted, _ := g.Order()
	for _, id := range sorted {
		s.splice(s.owners[id])
	}
}

// includePos returns the position of the include by which path[0] pulls in
// path[1].
func (s *scope) includePos(path []string) diag.Pos {
	if len(path) < 2 {
		return diag.Pos{}
	}
	for _, inc := range s.owners[path[0]].includes {
		if s.target(inc.Name) == path[1] {
			return inc.Source
		}
	}
	return diag.Pos{}
}

func (s *scope) splice(o *owner) {
	shift, changed := 0, false
	for i := range o.includes {
		inc := &o.includes[i]
		if inc.Resolved {
			shift += inc.Spliced
			continue
		}
		src, ok := s.owners[s.target(inc.Name)]
		if !ok {
			continue
		}
		n := len(src.forest.Roots)
		o.forest.Splice(inc.At+shift, *src.forest, inc.Name)
		inc.Resolved = true
		inc.Spliced = n
		shift += n
		changed = true
	}
	if changed {
		o.forest.AssignIDs(o.id)
	}
}

// connections binds every connection target to a place. Unknown targets
// are reported once, where they were written, not on every included copy.
func (s *scope) connections(bb *model.Breadboard) {
	for _, c := range bb.Components {
		s.bind(&c.Affordances)
	}
	for _, p := range bb.Places {
		s.bind(&p.Affordances)
	}
}

func (s *scope) bind(f *model.Forest) {
	for i := range f.Nodes {
		n := &f.Nodes[i]
		for j := range n.Connections {
			c := &n.Connections[j]
			if p, ok := s.places[c.Target]; ok {
				c.TargetID = p.ID
				continue
			}
			c.TargetID = ""
			if n.Origin != "" {
				continue
			}
			d := diag.New(diag.UnknownPlace, c.Source, c.Target, "connection to unknown place %q", c.Target)
			d.Detail = suggest(c.Target, s.placeNames)
			s.diags = append(s.diags, d)
		}
	}
}
