package parser

import (
	"github.com/specialistvlad/bnbgo/internal/diag"
	"github.com/specialistvlad/bnbgo/internal/model"
)

// File is the parse tree of one source document.
type File struct {
	Name   string
	Blocks []*Block
}

// BlockKind tells places and components apart.
type BlockKind int

const (
	PlaceBlock BlockKind = iota
	ComponentBlock
)

func (k BlockKind) String() string {
	if k == ComponentBlock {
		return "component"
	}
	return "place"
}

// Block is a top-level place or component declaration with everything
// that was declared beneath it.
type Block struct {
	Kind        BlockKind
	Name        string
	Doc         string
	Pos         diag.Pos
	Includes    []*Include
	Position    *Position
	Sketch      *Sketch
	Affordances []*Affordance
}

// Include is an include directive. At counts the root affordances declared
// before it.
type Include struct {
	Name string
	At   int
	Pos  diag.Pos
}

// Position is a position directive, already normalized to two axes.
type Position struct {
	model.Position
	Pos diag.Pos
}

// Sketch is a sketch directive with its region lines.
type Sketch struct {
	Path    string
	Pos     diag.Pos
	Regions []*Region
}

// Region is a clickable region line.
type Region struct {
	Rect       model.Rect
	Affordance string
	Pos        diag.Pos
}

// Affordance is an affordance line. Children are the lines nested one level
// deeper that followed it.
type Affordance struct {
	Label       string
	Doc         string
	Pos         diag.Pos
	Children    []*Affordance
	Connections []*Connection
}

// Connection is a single "-> [(label)] target" arrow.
type Connection struct {
	Label  string
	Target string
	Pos    diag.Pos
}
