package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/specialistvlad/bnbgo/internal/config"
	"github.com/specialistvlad/bnbgo/internal/ctxlog"
	"github.com/specialistvlad/bnbgo/internal/fsutil"
	"github.com/specialistvlad/bnbgo/internal/schema"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	environ func() []string
}

// NewLoader creates a new HCL configuration loader reading `env` from the
// process environment.
func NewLoader() *Loader {
	return &Loader{environ: os.Environ}
}

// Load parses every project file found at paths and merges them in order;
// a later file overrides the settings of an earlier one. Directories are
// searched for .hcl files. It is not an error if a path does not exist.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	model := &config.Model{Places: make(map[string]config.Size)}
	parser := hclparse.NewParser()
	evalCtx := buildEvalContext(l.environ())

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root schema.Project
		diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		if err := translateProject(model, &root, filepath.Dir(file)); err != nil {
			return nil, fmt.Errorf("invalid project file %s: %w", file, err)
		}
	}

	logger.Debug("HCL loading complete.", "sources", len(model.Sources), "places", len(model.Places), "publish", model.Publish != nil)
	return model, nil
}

// findAllHCLFiles walks all given paths and returns a flat list of all .hcl files found.
func findAllHCLFiles(paths []string) ([]string, error) {
	var existing []string
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue // It's not an error if a configured path doesn't exist.
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		existing = append(existing, path)
	}
	if len(existing) == 0 {
		return nil, nil
	}
	return fsutil.ExpandPaths(".hcl", existing...)
}
