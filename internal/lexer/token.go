package lexer

import (
	"fmt"

	"github.com/specialistvlad/bnbgo/internal/diag"
)

// Type identifies the kind of a Token.
type Type int

const (
	ILLEGAL Type = iota
	EOF
	NEWLINE
	DOC

	// Keywords, only recognized at the start of a line.
	PLACE
	COMPONENT
	INCLUDE
	SKETCH
	POSITION

	MARKER
	ARROW
	LABEL
	TEXT
	STRING
	NUMBER
	PIVOT
	COMMA
	PLUS
	MINUS
	LBRACKET
	RBRACKET
)

var typeNames = map[Type]string{
	ILLEGAL:   "ILLEGAL",
	EOF:       "EOF",
	NEWLINE:   "NEWLINE",
	DOC:       "DOC",
	PLACE:     "PLACE",
	COMPONENT: "COMPONENT",
	INCLUDE:   "INCLUDE",
	SKETCH:    "SKETCH",
	POSITION:  "POSITION",
	MARKER:    "MARKER",
	ARROW:     "ARROW",
	LABEL:     "LABEL",
	TEXT:      "TEXT",
	STRING:    "STRING",
	NUMBER:    "NUMBER",
	PIVOT:     "PIVOT",
	COMMA:     "COMMA",
	PLUS:      "PLUS",
	MINUS:     "MINUS",
	LBRACKET:  "LBRACKET",
	RBRACKET:  "RBRACKET",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "?"
}

// keywords maps the reserved words to their token types.
var keywords = map[string]Type{
	"place":     PLACE,
	"component": COMPONENT,
	"include":   INCLUDE,
	"sketch":    SKETCH,
	"position":  POSITION,
}

// IsKeyword reports whether t is one of the line-leading keywords.
func (t Type) IsKeyword() bool {
	return t >= PLACE && t <= POSITION
}

// IsName reports whether t carries a name (free text or a quoted string).
func (t Type) IsName() bool {
	return t == TEXT || t == STRING
}

// Token is a lexical token. For ILLEGAL tokens Text holds the error message;
// for STRING and LABEL tokens it holds the unescaped contents; for MARKER it
// holds the marker run, whose length is the nesting depth.
type Token struct {
	Type Type
	Text string
	Pos  diag.Pos
}

func (tok Token) String() string {
	return fmt.Sprintf("<%v %q %d:%d>", tok.Type, tok.Text, tok.Pos.Line, tok.Pos.Column)
}
