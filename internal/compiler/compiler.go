package compiler

import (
	"context"
	"errors"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/specialistvlad/bnbgo/internal/builder"
	"github.com/specialistvlad/bnbgo/internal/ctxlog"
	"github.com/specialistvlad/bnbgo/internal/diag"
	"github.com/specialistvlad/bnbgo/internal/model"
	"github.com/specialistvlad/bnbgo/internal/parser"
	"github.com/specialistvlad/bnbgo/internal/position"
	"github.com/specialistvlad/bnbgo/internal/resolve"
	"github.com/specialistvlad/bnbgo/internal/sketch"
)

// Source is one DSL document.
type Source struct {
	Name string
	Text []byte
}

// Options configures the resolution stages.
type Options struct {
	Resolve resolve.Options
	Match   sketch.MatchMode
	// Sizes reports place sizes for edge pivots. Nil uses position.DefaultSize.
	Sizes position.SizeFunc
	// Anchors are renderer-supplied points for places without a position.
	Anchors map[string]model.Point
}

// Compiler runs the full pipeline. It holds no state between calls and is
// safe for concurrent use.
type Compiler struct {
	opts Options
}

// New creates a Compiler.
func New(opts Options) *Compiler {
	return &Compiler{opts: opts}
}

// Compile compiles the sources with default options.
func Compile(ctx context.Context, sources ...Source) (*model.Breadboard, error) {
	return New(Options{}).Compile(ctx, sources...)
}

// Compile parses every source, merges them in the given order and resolves
// the result. If any stage reports a problem, the error is a
// diag.Diagnostics holding all of them, sorted by position, and no
// breadboard is returned. The only other error is the context's.
func (c *Compiler) Compile(ctx context.Context, sources ...Source) (*model.Breadboard, error) {
	ctx = ctxlog.With(ctx, "component", "compiler")
	logger := ctxlog.FromContext(ctx)
	start := time.Now()

	files, diags, err := parseAll(ctx, sources)
	if err != nil {
		return nil, err
	}
	logger.Debug("Sources parsed.", "count", len(sources), "syntax_errors", len(diags), "duration", time.Since(start))

	bb := builder.Build(files...)
	logger.Debug("Breadboard built.", "places", len(bb.Places), "components", len(bb.Components))

	stages := []struct {
		name string
		run  func() diag.Diagnostics
	}{
		{"resolve", func() diag.Diagnostics { return resolve.New(c.opts.Resolve).Resolve(bb) }},
		{"position", func() diag.Diagnostics { return position.New(c.opts.Sizes).Resolve(bb, c.opts.Anchors) }},
		{"sketch", func() diag.Diagnostics { return sketch.New(c.opts.Match).Validate(bb) }},
	}
	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ds := stage.run()
		logger.Debug("Stage finished.", "stage", stage.name, "diagnostics", len(ds))
		diags = append(diags, ds...)
	}

	if diags.HasErrors() {
		diags.Sort()
		return nil, diags
	}
	logger.Debug("Compilation finished.", "duration", time.Since(start))
	return bb, nil
}

// Relayout returns a copy of a compiled breadboard with positions resolved
// again against new anchors, typically fed back by the renderer after it
// laid out the places without a position. bb itself is not modified.
func (c *Compiler) Relayout(bb *model.Breadboard, anchors map[string]model.Point) (*model.Breadboard, error) {
	out := bb.Clone()
	if diags := position.New(c.opts.Sizes).Resolve(out, anchors); diags.HasErrors() {
		diags.Sort()
		return nil, diags
	}
	return out, nil
}

// parseAll parses the sources concurrently. Results keep the order of
// sources.
func parseAll(ctx context.Context, sources []Source) ([]*parser.File, diag.Diagnostics, error) {
	files := make([]*parser.File, len(sources))
	perFile := make([]diag.Diagnostics, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, src := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			files[i], perFile[i] = parser.Parse(src.Name, src.Text)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var diags diag.Diagnostics
	for _, ds := range perFile {
		diags = append(diags, ds...)
	}
	return files, diags, nil
}

// AsDiagnostics extracts the diagnostics from an error returned by Compile.
func AsDiagnostics(err error) (diag.Diagnostics, bool) {
	var ds diag.Diagnostics
	if errors.As(err, &ds) {
		return ds, true
	}
	return nil, false
}
