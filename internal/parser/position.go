package parser

import (
	"strconv"

	"github.com/specialistvlad/bnbgo/internal/diag"
	"github.com/specialistvlad/bnbgo/internal/lexer"
	"github.com/specialistvlad/bnbgo/internal/model"
)

func (p *parser) parsePosition(toks []lexer.Token) {
	kw := toks[0]
	switch {
	case p.block.Kind == ComponentBlock:
		p.errorf(kw.Pos, "position is not allowed in a component")
		return
	case p.block.Position != nil:
		p.errorf(kw.Pos, "duplicate position directive, first declared at %s", p.block.Position.Pos)
		return
	}

	var parts [][]lexer.Token
	start := 1
	for i := 1; i <= len(toks); i++ {
		if i == len(toks) || toks[i].Type == lexer.COMMA {
			parts = append(parts, toks[start:i])
			start = i + 1
		}
	}
	if len(parts) > 2 {
		p.errorf(kw.Pos, "position takes at most two coordinates, found %d", len(parts))
		return
	}

	coords := make([]model.Coordinate, 0, 2)
	for _, part := range parts {
		c, ok := p.parseCoordinate(kw.Pos, part)
		if !ok {
			return
		}
		coords = append(coords, c)
	}

	var pos model.Position
	if len(coords) == 1 {
		pos = singleAxis(coords[0])
	} else {
		pos = model.Position{X: coords[0], Y: coords[1]}
	}

	if pos.X.Pivot.Vertical() {
		p.errorf(kw.Pos, "invalid coordinate pivot %q for the x axis", pos.X.Pivot)
		return
	}
	if pos.Y.Pivot.Horizontal() {
		p.errorf(kw.Pos, "invalid coordinate pivot %q for the y axis", pos.Y.Pivot)
		return
	}
	p.block.Position = &Position{Position: pos, Pos: kw.Pos}
}

// singleAxis expands a position with a single coordinate. A relative
// coordinate pivoting on top or bottom is the y axis; any other one is the
// x axis. The missing axis is the center of the same place, or 0 when the
// given coordinate is absolute.
func singleAxis(c model.Coordinate) model.Position {
	if c.IsAbsolute() {
		return model.Position{X: c, Y: model.Absolute(0)}
	}
	other := model.Relative(c.Place, model.PivotCenter, 0)
	if c.Pivot.Vertical() {
		return model.Position{X: other, Y: c}
	}
	return model.Position{X: c, Y: other}
}

// parseCoordinate parses "[pivot] [place] [(+|-) number]" where at least a
// place or a number must be present.
func (p *parser) parseCoordinate(at diag.Pos, toks []lexer.Token) (model.Coordinate, bool) {
	if len(toks) == 0 {
		p.errorf(at, "expected coordinate")
		return model.Coordinate{}, false
	}

	var c model.Coordinate
	i := 0
	if toks[i].Type == lexer.PIVOT {
		c.Pivot = model.PivotFromSymbol(toks[i].Text)
		i++
	}
	if i < len(toks) && toks[i].Type.IsName() {
		c.Place = toks[i].Text
		i++
	}

	hasNumber := false
	if i < len(toks) {
		sign := 1.0
		if toks[i].Type == lexer.PLUS || toks[i].Type == lexer.MINUS {
			if toks[i].Type == lexer.MINUS {
				sign = -1
			}
			i++
		}
		if i >= len(toks) || toks[i].Type != lexer.NUMBER {
			p.errorf(lastPos(at, toks, i), "expected number in coordinate")
			return model.Coordinate{}, false
		}
		v, err := strconv.ParseFloat(toks[i].Text, 64)
		if err != nil {
			p.errorf(toks[i].Pos, "invalid number %q", toks[i].Text)
			return model.Coordinate{}, false
		}
		c.Offset = sign * v
		hasNumber = true
		i++
	}
	if i < len(toks) {
		p.errorf(toks[i].Pos, "unexpected %s in coordinate", describe(toks[i]))
		return model.Coordinate{}, false
	}

	if c.Place == "" {
		if c.Pivot != model.PivotCenter {
			p.errorf(toks[0].Pos, "pivot %q requires a place name", c.Pivot)
			return model.Coordinate{}, false
		}
		if !hasNumber {
			p.errorf(toks[0].Pos, "expected coordinate")
			return model.Coordinate{}, false
		}
	}
	return c, true
}

func lastPos(fallback diag.Pos, toks []lexer.Token, i int) diag.Pos {
	if i < len(toks) {
		return toks[i].Pos
	}
	if len(toks) > 0 {
		return toks[len(toks)-1].Pos
	}
	return fallback
}
