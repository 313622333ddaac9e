package diag

import (
	"fmt"
	"sort"
	"strings"
)

// Kind classifies a diagnostic.
type Kind int

const (
	SyntaxError Kind = iota + 1
	UnknownReference
	UnknownPlace
	DuplicateName
	CyclicPosition
	CyclicInclude
	UnmatchedRegion
	AffordanceWithoutConnection
)

func (k Kind) String() string {
	switch k {
	case SyntaxError:
		return "SyntaxError"
	case UnknownReference:
		return "UnknownReference"
	case UnknownPlace:
		return "UnknownPlace"
	case DuplicateName:
		return "DuplicateName"
	case CyclicPosition:
		return "CyclicPosition"
	case CyclicInclude:
		return "CyclicInclude"
	case UnmatchedRegion:
		return "UnmatchedRegion"
	case AffordanceWithoutConnection:
		return "AffordanceWithoutConnection"
	}
	return "Unknown"
}

// Pos is a location in a source document. Line and Column are 1-based,
// Offset is the 0-based byte offset.
type Pos struct {
	Filename string `json:"filename,omitempty"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Offset   int    `json:"offset"`
}

// IsValid reports whether the position points into a document.
func (p Pos) IsValid() bool {
	return p.Line > 0
}

func (p Pos) String() string {
	if !p.IsValid() {
		return p.Filename
	}
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// Diagnostic is a single compilation problem.
type Diagnostic struct {
	Kind    Kind
	Pos     Pos
	Summary string
	Detail  string
	// Subject is the name the diagnostic is about (a place, component,
	// include or affordance label), if any.
	Subject string
	// Path holds the participants of a cycle, first element repeated last.
	Path []string
}

func (d *Diagnostic) Error() string {
	var sb strings.Builder
	if d.Pos.IsValid() || d.Pos.Filename != "" {
		sb.WriteString(d.Pos.String())
		sb.WriteString(": ")
	}
	sb.WriteString(d.Kind.String())
	sb.WriteString(": ")
	sb.WriteString(d.Summary)
	if d.Detail != "" {
		sb.WriteString(" (")
		sb.WriteString(d.Detail)
		sb.WriteString(")")
	}
	return sb.String()
}

// Diagnostics is an accumulated list of problems. A non-empty list means the
// compilation attempt failed.
type Diagnostics []*Diagnostic

func (ds Diagnostics) Error() string {
	msgs := make([]string, len(ds))
	for i, d := range ds {
		msgs[i] = d.Error()
	}
	return strings.Join(msgs, "\n")
}

// HasErrors reports whether the list holds any diagnostic.
func (ds Diagnostics) HasErrors() bool {
	return len(ds) > 0
}

// Err returns the list as an error, or nil when it is empty.
func (ds Diagnostics) Err() error {
	if len(ds) == 0 {
		return nil
	}
	return ds
}

// OfKind returns the diagnostics of the given kind, in order.
func (ds Diagnostics) OfKind(k Kind) Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Kind == k {
			out = append(out, d)
		}
	}
	return out
}

// Sort orders the list by file, line and column. Diagnostics without a
// position keep their relative order and come last.
func (ds Diagnostics) Sort() {
	sort.SliceStable(ds, func(i, j int) bool {
		a, b := ds[i].Pos, ds[j].Pos
		if a.IsValid() != b.IsValid() {
			return a.IsValid()
		}
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
}

// Syntax creates a SyntaxError at pos.
func Syntax(pos Pos, format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: SyntaxError, Pos: pos, Summary: fmt.Sprintf(format, args...)}
}

// New creates a diagnostic of the given kind about subject.
func New(kind Kind, pos Pos, subject string, format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: kind, Pos: pos, Subject: subject, Summary: fmt.Sprintf(format, args...)}
}

// Cycle creates a cycle diagnostic of the given kind. path lists the
// participants in traversal order with the first one repeated at the end.
func Cycle(kind Kind, pos Pos, path []string) *Diagnostic {
	subject := ""
	if len(path) > 0 {
		subject = path[0]
	}
	return &Diagnostic{
		Kind:    kind,
		Pos:     pos,
		Subject: subject,
		Path:    path,
		Summary: fmt.Sprintf("cycle detected: %s", strings.Join(path, " -> ")),
	}
}
