package lexer

import (
	"bytes"
	"fmt"
	"iter"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/specialistvlad/bnbgo/internal/diag"
)

// Lexer turns breadboard source text into tokens.
type Lexer struct {
	filename string
	src      []byte
}

// New creates a lexer over src. filename is only used for token positions.
func New(filename string, src []byte) *Lexer {
	return &Lexer{filename: filename, src: src}
}

// Tokens is a convenience wrapper collecting every token of src, EOF included.
func Tokens(filename string, src []byte) []Token {
	return slices.Collect(New(filename, src).All())
}

// All returns the token sequence. The sequence is produced lazily, one line
// at a time, always ends with EOF, and every call starts over from the
// beginning of the source.
func (l *Lexer) All() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		offset, lineNo := 0, 1
		for offset < len(l.src) {
			end := bytes.IndexByte(l.src[offset:], '\n')
			next := len(l.src)
			text := l.src[offset:]
			if end >= 0 {
				text = l.src[offset : offset+end]
				next = offset + end + 1
			}

			s := &lineScanner{
				filename: l.filename,
				line:     strings.TrimSuffix(string(text), "\r"),
				lineNo:   lineNo,
				offset:   offset,
			}
			for _, tok := range s.scan() {
				if !yield(tok) {
					return
				}
			}
			if end >= 0 {
				nl := Token{Type: NEWLINE, Text: "\n", Pos: s.posAt(len(s.line))}
				if !yield(nl) {
					return
				}
			}

			offset = next
			lineNo++
		}
		yield(Token{Type: EOF, Pos: diag.Pos{Filename: l.filename, Line: lineNo, Column: 1, Offset: len(l.src)}})
	}
}

// lineScanner tokenizes a single line. The grammar is line oriented, so the
// scanning mode is decided by what the line starts with.
type lineScanner struct {
	filename string
	line     string
	lineNo   int
	offset   int
	pos      int
	toks     []Token
}

func (s *lineScanner) posAt(i int) diag.Pos {
	return diag.Pos{
		Filename: s.filename,
		Line:     s.lineNo,
		Column:   utf8.RuneCountInString(s.line[:i]) + 1,
		Offset:   s.offset + i,
	}
}

func (s *lineScanner) emit(t Type, text string, at int) {
	s.toks = append(s.toks, Token{Type: t, Text: text, Pos: s.posAt(at)})
}

// illegal emits an ILLEGAL token and abandons the rest of the line.
func (s *lineScanner) illegal(at int, format string, args ...any) {
	s.emit(ILLEGAL, fmt.Sprintf(format, args...), at)
	s.pos = len(s.line)
}

func (s *lineScanner) eol() bool {
	return s.pos >= len(s.line)
}

func (s *lineScanner) hasPrefix(p string) bool {
	return strings.HasPrefix(s.line[s.pos:], p)
}

// atComment reports whether a "//" comment starts at the current position.
// Comments must start a line or follow whitespace so that URLs survive.
func (s *lineScanner) atComment() bool {
	return s.hasPrefix("//") && (s.pos == 0 || isSpace(s.line[s.pos-1]))
}

func (s *lineScanner) skipSpace() {
	for !s.eol() && isSpace(s.line[s.pos]) {
		s.pos++
	}
}

func (s *lineScanner) scan() []Token {
	s.skipSpace()
	if s.eol() {
		return nil
	}
	if s.hasPrefix("///") {
		s.emit(DOC, strings.TrimSpace(s.line[s.pos+3:]), s.pos)
		return s.toks
	}
	if s.atComment() {
		return nil
	}

	if t, n := s.keyword(); n > 0 {
		s.emit(t, s.line[s.pos:s.pos+n], s.pos)
		s.pos += n
		if t == POSITION {
			s.scanPosition()
		} else {
			s.scanName()
		}
		return s.toks
	}

	if s.line[s.pos] == '[' {
		s.scanRegion()
		return s.toks
	}

	s.scanAffordance()
	return s.toks
}

// keyword returns the keyword at the current position and its length, or a
// zero length if the line does not start with one.
func (s *lineScanner) keyword() (Type, int) {
	end := s.pos
	for end < len(s.line) && isLetter(s.line[end]) {
		end++
	}
	t, ok := keywords[s.line[s.pos:end]]
	if !ok || (end < len(s.line) && !isSpace(s.line[end])) {
		return ILLEGAL, 0
	}
	return t, end - s.pos
}

// scanName scans the rest of the line as a single name.
func (s *lineScanner) scanName() {
	s.skipSpace()
	if s.eol() || s.atComment() {
		return
	}
	if s.line[s.pos] == '"' {
		if !s.scanString() {
			return
		}
		s.skipSpace()
		if !s.eol() && !s.atComment() {
			s.illegal(s.pos, "unexpected %q after quoted name", s.line[s.pos:])
		}
		return
	}
	start := s.pos
	if text := s.freeText(false); text != "" {
		s.emit(TEXT, text, start)
	}
}

// freeText consumes text up to a comment, the end of the line and, if
// stopAtArrow is set, an arrow. The result is trimmed.
func (s *lineScanner) freeText(stopAtArrow bool) string {
	start := s.pos
	for !s.eol() {
		if (stopAtArrow && s.hasPrefix("->")) || s.atComment() {
			break
		}
		s.pos++
	}
	return strings.TrimSpace(s.line[start:s.pos])
}

// readString reads a quoted string starting at the current position and
// returns its unescaped contents.
func (s *lineScanner) readString() (string, bool) {
	start := s.pos
	s.pos++ // opening quote
	var sb strings.Builder
	for !s.eol() {
		c := s.line[s.pos]
		if c == '\\' && s.pos+1 < len(s.line) {
			if n := s.line[s.pos+1]; n == '"' || n == '\\' {
				sb.WriteByte(n)
				s.pos += 2
				continue
			}
		}
		if c == '"' {
			s.pos++
			return sb.String(), true
		}
		sb.WriteByte(c)
		s.pos++
	}
	s.illegal(start, "unterminated quoted string")
	return "", false
}

func (s *lineScanner) scanString() bool {
	start := s.pos
	text, ok := s.readString()
	if ok {
		s.emit(STRING, text, start)
	}
	return ok
}

func (s *lineScanner) scanNumber() {
	start := s.pos
	for !s.eol() && isDigit(s.line[s.pos]) {
		s.pos++
	}
	if !s.eol() && s.line[s.pos] == '.' {
		s.pos++
		for !s.eol() && isDigit(s.line[s.pos]) {
			s.pos++
		}
	}
	s.emit(NUMBER, s.line[start:s.pos], start)
}

// scanAffordance scans "[markers] label [-> [(label)] target]..." as well as
// continuation lines, which have no label.
func (s *lineScanner) scanAffordance() {
	if s.line[s.pos] == '-' && !s.hasPrefix("->") {
		end := s.pos
		for end < len(s.line) && s.line[end] == '-' {
			end++
		}
		n := end - s.pos
		if end < len(s.line) && s.line[end] == '>' {
			n-- // the last dash belongs to an arrow
		}
		s.emit(MARKER, s.line[s.pos:s.pos+n], s.pos)
		s.pos += n
		s.skipSpace()
	}

	if !s.eol() && !s.hasPrefix("->") && !s.atComment() {
		if !s.scanTerm() {
			return
		}
	}
	s.scanArrows()
}

// scanTerm scans an affordance label or a connection target.
func (s *lineScanner) scanTerm() bool {
	if s.line[s.pos] == '"' {
		return s.scanString()
	}
	start := s.pos
	if text := s.freeText(true); text != "" {
		s.emit(TEXT, text, start)
	}
	return true
}

func (s *lineScanner) scanArrows() {
	for {
		s.skipSpace()
		if s.eol() || s.atComment() {
			return
		}
		if !s.hasPrefix("->") {
			s.illegal(s.pos, "expected '->' but found %q", s.line[s.pos:])
			return
		}
		s.emit(ARROW, "->", s.pos)
		s.pos += 2
		s.skipSpace()

		if !s.eol() && s.line[s.pos] == '(' {
			if !s.scanConnectionLabel() {
				return
			}
			s.skipSpace()
		}
		if s.eol() || s.hasPrefix("->") || s.atComment() {
			continue
		}
		if !s.scanTerm() {
			return
		}
	}
}

func (s *lineScanner) scanConnectionLabel() bool {
	start := s.pos
	s.pos++ // (
	s.skipSpace()

	var text string
	if !s.eol() && s.line[s.pos] == '"' {
		str, ok := s.readString()
		if !ok {
			return false
		}
		text = str
		s.skipSpace()
		if s.eol() || s.line[s.pos] != ')' {
			s.illegal(start, "unterminated connection label")
			return false
		}
	} else {
		idx := strings.IndexByte(s.line[s.pos:], ')')
		if idx < 0 {
			s.illegal(start, "unterminated connection label")
			return false
		}
		text = strings.TrimSpace(s.line[s.pos : s.pos+idx])
		s.pos += idx
	}
	s.pos++ // )
	s.emit(LABEL, text, start)
	return true
}

// scanPosition scans the coordinates following the position keyword.
func (s *lineScanner) scanPosition() {
	for {
		s.skipSpace()
		if s.eol() || s.atComment() {
			return
		}
		c := s.line[s.pos]
		switch {
		case c == ',':
			s.emit(COMMA, ",", s.pos)
			s.pos++
		case c == '+':
			s.emit(PLUS, "+", s.pos)
			s.pos++
		case c == '-':
			s.emit(MINUS, "-", s.pos)
			s.pos++
		case c == '^' || c == '>' || c == '_' || c == '<':
			s.emit(PIVOT, string(c), s.pos)
			s.pos++
		case isDigit(c) || (c == '.' && s.pos+1 < len(s.line) && isDigit(s.line[s.pos+1])):
			s.scanNumber()
		case c == '"':
			if !s.scanString() {
				return
			}
		default:
			start := s.pos
			for !s.eol() && !strings.ContainsRune("+-,", rune(s.line[s.pos])) && !s.atComment() {
				s.pos++
			}
			s.emit(TEXT, strings.TrimSpace(s.line[start:s.pos]), start)
		}
	}
}

// scanRegion scans "[top,left bottom,right] label".
func (s *lineScanner) scanRegion() {
	s.emit(LBRACKET, "[", s.pos)
	s.pos++
loop:
	for {
		s.skipSpace()
		if s.eol() {
			s.illegal(s.pos, "unterminated region, expected ']'")
			return
		}
		switch c := s.line[s.pos]; {
		case c == ']':
			s.emit(RBRACKET, "]", s.pos)
			s.pos++
			break loop
		case c == ',':
			s.emit(COMMA, ",", s.pos)
			s.pos++
		case isDigit(c):
			s.scanNumber()
		default:
			s.illegal(s.pos, "unexpected %q in region", string(c))
			return
		}
	}
	s.scanName()
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
