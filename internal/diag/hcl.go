package diag

import (
	"io"

	"github.com/hashicorp/hcl/v2"
)

// HCL converts the list into hcl.Diagnostics so that hcl's diagnostic
// writers can render source snippets for it.
func (ds Diagnostics) HCL() hcl.Diagnostics {
	out := make(hcl.Diagnostics, 0, len(ds))
	for _, d := range ds {
		hd := &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  d.Kind.String() + ": " + d.Summary,
			Detail:   d.Detail,
		}
		if d.Pos.IsValid() {
			start := hcl.Pos{Line: d.Pos.Line, Column: d.Pos.Column, Byte: d.Pos.Offset}
			// One character wide, so that the writer has a line to show.
			end := hcl.Pos{Line: start.Line, Column: start.Column + 1, Byte: start.Byte + 1}
			hd.Subject = &hcl.Range{Filename: d.Pos.Filename, Start: start, End: end}
		}
		out = append(out, hd)
	}
	return out
}

// Write renders the diagnostics to w. sources maps file names to their
// contents and is used to print the offending line; it may be nil.
func Write(w io.Writer, ds Diagnostics, sources map[string][]byte, width uint, color bool) error {
	files := make(map[string]*hcl.File, len(sources))
	for name, src := range sources {
		files[name] = &hcl.File{Bytes: src}
	}
	return hcl.NewDiagnosticTextWriter(w, files, width, color).WriteDiagnostics(ds.HCL())
}
