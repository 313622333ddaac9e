package model

import (
	"strconv"

	"github.com/specialistvlad/bnbgo/internal/diag"
)

// Affordance is a node of a Forest. Parent and Children are indices into
// the forest's Nodes; Parent is -1 for roots.
type Affordance struct {
	ID          string       `json:"id"`
	Label       string       `json:"label"`
	Description string       `json:"description,omitempty"`
	Parent      int          `json:"parent"`
	Children    []int        `json:"children,omitempty"`
	Connections []Connection `json:"connections,omitempty"`
	// Origin names the component this node was copied from by an include.
	Origin string   `json:"origin,omitempty"`
	Source diag.Pos `json:"-"`
}

// Connection is a navigational edge from an affordance to a place.
type Connection struct {
	ID     string `json:"id"`
	Label  string `json:"label,omitempty"`
	Target string `json:"target"`
	// TargetID is filled in by reference resolution.
	TargetID string   `json:"targetId,omitempty"`
	Source   diag.Pos `json:"-"`
}

// Forest is an ordered forest of affordances stored as a flat arena. Nodes
// are only ever appended, so indices are stable.
type Forest struct {
	Nodes []Affordance `json:"nodes"`
	Roots []int        `json:"roots"`
}

// Len returns the number of nodes.
func (f *Forest) Len() int {
	return len(f.Nodes)
}

// Node returns the node at index i.
func (f *Forest) Node(i int) *Affordance {
	return &f.Nodes[i]
}

// Add appends a as the last child of parent, or as the last root when parent
// is negative, and returns its index.
func (f *Forest) Add(parent int, a Affordance) int {
	idx := len(f.Nodes)
	a.Parent = -1
	a.Children = nil
	if parent >= 0 {
		a.Parent = parent
		f.Nodes[parent].Children = append(f.Nodes[parent].Children, idx)
	} else {
		f.Roots = append(f.Roots, idx)
	}
	f.Nodes = append(f.Nodes, a)
	return idx
}

// Depth returns the nesting depth of node i; roots have depth 0.
func (f *Forest) Depth(i int) int {
	d := 0
	for p := f.Nodes[i].Parent; p >= 0; p = f.Nodes[p].Parent {
		d++
	}
	return d
}

// Walk visits every node in declaration order (pre-order), stopping early
// if fn returns false.
func (f *Forest) Walk(fn func(i, depth int) bool) {
	var visit func(i, depth int) bool
	visit = func(i, depth int) bool {
		if !fn(i, depth) {
			return false
		}
		for _, c := range f.Nodes[i].Children {
			if !visit(c, depth+1) {
				return false
			}
		}
		return true
	}
	for _, r := range f.Roots {
		if !visit(r, 0) {
			return
		}
	}
}

// Find returns the indices of all nodes whose label satisfies match, in
// declaration order.
func (f *Forest) Find(match func(label string) bool) []int {
	var out []int
	f.Walk(func(i, _ int) bool {
		if match(f.Nodes[i].Label) {
			out = append(out, i)
		}
		return true
	})
	return out
}

// Clone returns a deep copy sharing no slices with f.
func (f Forest) Clone() Forest {
	out := Forest{
		Nodes: make([]Affordance, len(f.Nodes)),
		Roots: append([]int(nil), f.Roots...),
	}
	for i, n := range f.Nodes {
		n.Children = append([]int(nil), n.Children...)
		n.Connections = append([]Connection(nil), n.Connections...)
		out.Nodes[i] = n
	}
	return out
}

// Splice inserts an independent copy of src's roots into f's roots at
// position at, keeping src's order. The copied nodes are appended to the
// arena and tagged with origin. It returns the arena index of the first
// copied node.
func (f *Forest) Splice(at int, src Forest, origin string) int {
	base := len(f.Nodes)
	for _, n := range src.Clone().Nodes {
		if n.Parent >= 0 {
			n.Parent += base
		}
		for j := range n.Children {
			n.Children[j] += base
		}
		if n.Origin == "" {
			n.Origin = origin
		}
		f.Nodes = append(f.Nodes, n)
	}

	if at < 0 || at > len(f.Roots) {
		at = len(f.Roots)
	}
	roots := make([]int, 0, len(f.Roots)+len(src.Roots))
	roots = append(roots, f.Roots[:at]...)
	for _, r := range src.Roots {
		roots = append(roots, r+base)
	}
	roots = append(roots, f.Roots[at:]...)
	f.Roots = roots
	return base
}

// AssignIDs derives node and connection identifiers from the owner ID and
// arena indices.
func (f *Forest) AssignIDs(owner string) {
	for i := range f.Nodes {
		n := &f.Nodes[i]
		n.ID = owner + "/" + strconv.Itoa(i)
		for j := range n.Connections {
			n.Connections[j].ID = n.ID + "->" + strconv.Itoa(j)
		}
	}
}
