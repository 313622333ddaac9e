package parser

import (
	"strconv"
	"strings"

	"github.com/specialistvlad/bnbgo/internal/diag"
	"github.com/specialistvlad/bnbgo/internal/lexer"
	"github.com/specialistvlad/bnbgo/internal/model"
)

// Parse parses one source document. It always returns a File holding every
// block it could make sense of, together with the syntax errors it found.
// A malformed line is reported and skipped; parsing resumes on the next line.
func Parse(filename string, src []byte) (*File, diag.Diagnostics) {
	p := &parser{file: &File{Name: filename}}

	var line []lexer.Token
	for tok := range lexer.New(filename, src).All() {
		if tok.Type == lexer.NEWLINE || tok.Type == lexer.EOF {
			p.parseLine(line)
			line = nil
			continue
		}
		line = append(line, tok)
	}
	return p.file, p.diags
}

type parser struct {
	file  *File
	diags diag.Diagnostics

	// block is the block being filled. It is non-nil but detached from the
	// file when its header was malformed, so that its body does not cascade
	// into more errors.
	block  *Block
	sketch *Sketch
	// stack[d] is the most recent affordance declared at depth d.
	stack []*Affordance
	doc   []string
}

func (p *parser) errorf(pos diag.Pos, format string, args ...any) {
	p.diags = append(p.diags, diag.Syntax(pos, format, args...))
}

func (p *parser) takeDoc() string {
	doc := strings.Join(p.doc, "\n")
	p.doc = nil
	return doc
}

func (p *parser) parseLine(toks []lexer.Token) {
	if len(toks) == 0 {
		return
	}
	for _, tok := range toks {
		if tok.Type == lexer.ILLEGAL {
			p.errorf(tok.Pos, "%s", tok.Text)
			p.doc = nil
			return
		}
	}

	first := toks[0]
	switch first.Type {
	case lexer.DOC:
		p.doc = append(p.doc, first.Text)
		return
	case lexer.PLACE, lexer.COMPONENT:
		p.parseBlockHeader(toks)
		return
	}

	if p.block == nil {
		p.errorf(first.Pos, "expected 'place' or 'component', found %s", describe(first))
		p.doc = nil
		return
	}

	switch first.Type {
	case lexer.INCLUDE:
		p.doc = nil
		p.parseInclude(toks)
	case lexer.POSITION:
		p.doc = nil
		p.parsePosition(toks)
	case lexer.SKETCH:
		p.doc = nil
		p.parseSketch(toks)
	case lexer.LBRACKET:
		p.doc = nil
		p.parseRegion(toks)
	case lexer.MARKER, lexer.TEXT, lexer.STRING, lexer.ARROW:
		p.parseAffordance(toks)
	default:
		p.doc = nil
		p.errorf(first.Pos, "unexpected %s", describe(first))
	}
}

func (p *parser) parseBlockHeader(toks []lexer.Token) {
	kind := PlaceBlock
	if toks[0].Type == lexer.COMPONENT {
		kind = ComponentBlock
	}
	b := &Block{Kind: kind, Pos: toks[0].Pos, Doc: p.takeDoc()}
	p.block = b
	p.sketch = nil
	p.stack = nil

	if len(toks) < 2 || !toks[1].Type.IsName() || toks[1].Text == "" {
		p.errorf(toks[0].Pos, "expected %s name", kind)
		return
	}
	b.Name = toks[1].Text
	p.file.Blocks = append(p.file.Blocks, b)
}

func (p *parser) parseInclude(toks []lexer.Token) {
	if len(toks) < 2 || !toks[1].Type.IsName() || toks[1].Text == "" {
		p.errorf(toks[0].Pos, "expected component name after 'include'")
		return
	}
	p.block.Includes = append(p.block.Includes, &Include{
		Name: toks[1].Text,
		At:   len(p.block.Affordances),
		Pos:  toks[1].Pos,
	})
}

func (p *parser) parseSketch(toks []lexer.Token) {
	switch {
	case p.block.Kind == ComponentBlock:
		p.errorf(toks[0].Pos, "sketch is not allowed in a component")
		return
	case p.block.Sketch != nil:
		p.errorf(toks[0].Pos, "duplicate sketch directive, first declared at %s", p.block.Sketch.Pos)
		return
	case len(toks) < 2 || !toks[1].Type.IsName() || toks[1].Text == "":
		p.errorf(toks[0].Pos, "expected image path after 'sketch'")
		return
	}
	p.sketch = &Sketch{Path: toks[1].Text, Pos: toks[0].Pos}
	p.block.Sketch = p.sketch
}

// parseRegion parses "[top,left bottom,right] label".
func (p *parser) parseRegion(toks []lexer.Token) {
	if p.sketch == nil {
		p.errorf(toks[0].Pos, "clickable region outside of a sketch")
		return
	}

	shape := []lexer.Type{
		lexer.LBRACKET, lexer.NUMBER, lexer.COMMA, lexer.NUMBER,
		lexer.NUMBER, lexer.COMMA, lexer.NUMBER, lexer.RBRACKET,
	}
	var nums []int
	for i, want := range shape {
		if i >= len(toks) || toks[i].Type != want {
			at := toks[len(toks)-1].Pos
			if i < len(toks) {
				at = toks[i].Pos
			}
			p.errorf(at, "malformed clickable region, expected [top,left bottom,right]")
			return
		}
		if want == lexer.NUMBER {
			n, err := strconv.Atoi(toks[i].Text)
			if err != nil {
				p.errorf(toks[i].Pos, "region coordinate %q must be an integer", toks[i].Text)
				return
			}
			nums = append(nums, n)
		}
	}

	rect := model.Rect{Top: nums[0], Left: nums[1], Bottom: nums[2], Right: nums[3]}
	if rect.Width() <= 0 {
		p.errorf(toks[0].Pos, "region width must be positive, got %d", rect.Width())
		return
	}
	if rect.Height() <= 0 {
		p.errorf(toks[0].Pos, "region height must be positive, got %d", rect.Height())
		return
	}

	rest := toks[len(shape):]
	if len(rest) == 0 || !rest[0].Type.IsName() || rest[0].Text == "" {
		p.errorf(toks[len(shape)-1].Pos, "clickable region must reference an affordance")
		return
	}
	p.sketch.Regions = append(p.sketch.Regions, &Region{Rect: rect, Affordance: rest[0].Text, Pos: toks[0].Pos})
}

func (p *parser) parseAffordance(toks []lexer.Token) {
	depth, i := 0, 0
	if toks[0].Type == lexer.MARKER {
		depth = len(toks[0].Text)
		i++
	}

	if i < len(toks) && toks[i].Type.IsName() {
		p.declareAffordance(depth, toks[i], toks[i+1:])
		return
	}

	// A continuation line: arrows only, belonging to the most recent
	// affordance at this depth.
	p.doc = nil
	if i >= len(toks) {
		p.errorf(toks[0].Pos, "expected affordance label after nesting marker")
		return
	}
	if depth >= len(p.stack) {
		p.errorf(toks[i].Pos, "connection continuation has no affordance at depth %d to attach to", depth)
		return
	}
	conns, ok := p.parseArrows(toks[i:])
	if !ok {
		return
	}
	owner := p.stack[depth]
	owner.Connections = append(owner.Connections, conns...)
}

func (p *parser) declareAffordance(depth int, label lexer.Token, arrows []lexer.Token) {
	doc := p.takeDoc()
	if depth > len(p.stack) {
		p.errorf(label.Pos, "affordance %q at depth %d has no parent at depth %d", label.Text, depth, depth-1)
		return
	}

	a := &Affordance{Label: label.Text, Doc: doc, Pos: label.Pos}
	if depth == 0 {
		p.block.Affordances = append(p.block.Affordances, a)
	} else {
		parent := p.stack[depth-1]
		parent.Children = append(parent.Children, a)
	}
	p.stack = append(p.stack[:depth], a)

	// A malformed arrow drops the connections of this line but keeps the
	// affordance, so its children still have a parent.
	if conns, ok := p.parseArrows(arrows); ok {
		a.Connections = append(a.Connections, conns...)
	}
}

// parseArrows parses a sequence of "-> [(label)] target".
func (p *parser) parseArrows(toks []lexer.Token) ([]*Connection, bool) {
	var conns []*Connection
	for i := 0; i < len(toks); {
		arrow := toks[i]
		if arrow.Type != lexer.ARROW {
			p.errorf(arrow.Pos, "expected '->', found %s", describe(arrow))
			return nil, false
		}
		i++

		c := &Connection{Pos: arrow.Pos}
		if i < len(toks) && toks[i].Type == lexer.LABEL {
			c.Label = toks[i].Text
			i++
		}
		if i >= len(toks) || !toks[i].Type.IsName() || toks[i].Text == "" {
			p.errorf(arrow.Pos, "expected target place after '->'")
			return nil, false
		}
		c.Target = toks[i].Text
		i++
		conns = append(conns, c)
	}
	return conns, true
}

func describe(tok lexer.Token) string {
	switch tok.Type {
	case lexer.TEXT, lexer.STRING, lexer.NUMBER:
		return strconv.Quote(tok.Text)
	case lexer.EOF:
		return "end of file"
	}
	if tok.Type.IsKeyword() {
		return "'" + tok.Text + "'"
	}
	return tok.Type.String()
}
