package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/specialistvlad/bnbgo/internal/codec"
	"github.com/specialistvlad/bnbgo/internal/compiler"
	"github.com/specialistvlad/bnbgo/internal/ctxlog"
	"github.com/specialistvlad/bnbgo/internal/diag"
	"github.com/specialistvlad/bnbgo/internal/model"
	"github.com/specialistvlad/bnbgo/internal/publish"
)

// ErrCompilationFailed is returned by Run when the sources have problems.
// The diagnostics themselves have been written to the diagnostics writer.
var ErrCompilationFailed = errors.New("compilation failed")

// Run compiles the sources, writes the document to the configured output
// (stdout when none is set) and publishes it if a renderer is configured.
// Diagnostics are rendered to diagW.
func (a *App) Run(ctx context.Context, stdout, diagW io.Writer) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	sources, err := compiler.ReadSources(a.sources...)
	if err != nil {
		return err
	}
	a.logger.Debug("Sources read.", "count", len(sources))

	bb, err := a.compiler.Compile(ctx, sources...)
	if err != nil {
		diags, ok := compiler.AsDiagnostics(err)
		if !ok {
			return err
		}
		if werr := diag.Write(diagW, diags, compiler.SourceMap(sources), 0, false); werr != nil {
			return fmt.Errorf("failed to write diagnostics: %w", werr)
		}
		return fmt.Errorf("%w: %d problem(s)", ErrCompilationFailed, len(diags))
	}
	a.logger.Info("Compiled breadboard.", "places", len(bb.Places), "components", len(bb.Components))

	if err := a.write(stdout, bb); err != nil {
		return err
	}

	if a.publish != nil {
		if err := a.runPublisher(ctx, bb); err != nil {
			return err
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) write(stdout io.Writer, bb *model.Breadboard) error {
	if a.output == "" || a.output == "-" {
		return codec.Encode(stdout, bb, a.format)
	}
	out, err := codec.Marshal(bb, a.format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(a.output, out, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	a.logger.Info("Wrote breadboard.", "path", a.output, "format", a.format)
	return nil
}

// runPublisher pushes bb to the renderer. In follow mode it stays connected
// until ctx is done, re-resolving positions whenever the renderer sends
// anchors for its automatic layout and publishing the result.
func (a *App) runPublisher(ctx context.Context, bb *model.Breadboard) error {
	pub, err := publish.Dial(ctx, *a.publish)
	if err != nil {
		return fmt.Errorf("failed to connect to renderer: %w", err)
	}
	defer pub.Close()

	anchorsC := make(chan map[string]model.Point, 1)
	if a.follow {
		pub.OnAnchors(func(anchors map[string]model.Point) {
			select {
			case anchorsC <- anchors:
			case <-ctx.Done():
			}
		})
	}

	if err := pub.Publish(bb); err != nil {
		return err
	}
	if !a.follow {
		return nil
	}

	a.logger.Info("Following renderer, waiting for layout anchors.")
	for {
		select {
		case <-ctx.Done():
			a.logger.Info("Stopped following renderer.")
			return nil
		case anchors := <-anchorsC:
			laid, err := a.compiler.Relayout(bb, anchors)
			if err != nil {
				a.logger.Warn("Layout anchors rejected.", "error", err)
				continue
			}
			a.logger.Debug("Re-resolved positions from anchors.", "anchors", len(anchors))
			if err := pub.Publish(laid); err != nil {
				return err
			}
		}
	}
}
