// Package sketch binds the clickable regions of place sketches to the
// affordances they stand for.
package sketch

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/specialistvlad/bnbgo/internal/diag"
	"github.com/specialistvlad/bnbgo/internal/model"
)

// MatchMode selects how region labels are compared to affordance labels.
type MatchMode int

const (
	// MatchExact compares labels byte for byte.
	MatchExact MatchMode = iota
	// MatchNormalized compares case-folded labels with runs of whitespace
	// collapsed to a single space.
	MatchNormalized
)

func (m MatchMode) String() string {
	switch m {
	case MatchExact:
		return "exact"
	case MatchNormalized:
		return "normalized"
	}
	return fmt.Sprintf("MatchMode(%d)", int(m))
}

// ParseMatchMode parses the String form of a mode.
func ParseMatchMode(s string) (MatchMode, error) {
	switch s {
	case "", "exact":
		return MatchExact, nil
	case "normalized":
		return MatchNormalized, nil
	}
	return MatchExact, fmt.Errorf("unknown region match mode %q (want exact or normalized)", s)
}

// Validator checks sketch regions against resolved places.
type Validator struct {
	mode MatchMode
}

// New creates a Validator.
func New(mode MatchMode) *Validator {
	return &Validator{mode: mode}
}

// Validate sets AffordanceID on every region that names exactly one
// affordance with a connection, and reports every other region. It must run
// after includes are spliced, since regions may point at included
// affordances.
func (v *Validator) Validate(bb *model.Breadboard) diag.Diagnostics {
	var diags diag.Diagnostics
	for _, p := range bb.Places {
		if p.Sketch == nil {
			continue
		}
		for i := range p.Sketch.Regions {
			if d := v.bind(p, &p.Sketch.Regions[i]); d != nil {
				diags = append(diags, d)
			}
		}
	}
	return diags
}

func (v *Validator) bind(p *model.Place, r *model.Region) *diag.Diagnostic {
	r.AffordanceID = ""
	want := v.normalize(r.Affordance)
	found := p.Affordances.Find(func(label string) bool {
		return v.normalize(label) == want
	})

	switch len(found) {
	case 0:
		return diag.New(diag.UnmatchedRegion, r.Source, r.Affordance,
			"region in %q matches no affordance labeled %q", p.Name, r.Affordance)
	case 1:
	default:
		d := diag.New(diag.UnmatchedRegion, r.Source, r.Affordance,
			"region in %q matches %d affordances labeled %q", p.Name, len(found), r.Affordance)
		d.Detail = "labels must be unique within a place to be used by a region"
		return d
	}

	a := p.Affordances.Node(found[0])
	if len(a.Connections) == 0 {
		return diag.New(diag.AffordanceWithoutConnection, r.Source, r.Affordance,
			"region in %q points at affordance %q, which has no connection", p.Name, a.Label)
	}
	r.AffordanceID = a.ID
	return nil
}

func (v *Validator) normalize(label string) string {
	if v.mode != MatchNormalized {
		return label
	}
	return cases.Fold().String(strings.Join(strings.Fields(label), " "))
}
