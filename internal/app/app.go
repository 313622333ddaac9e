package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/bnbgo/internal/codec"
	"github.com/specialistvlad/bnbgo/internal/compiler"
	"github.com/specialistvlad/bnbgo/internal/config"
	"github.com/specialistvlad/bnbgo/internal/ctxlog"
	"github.com/specialistvlad/bnbgo/internal/model"
	"github.com/specialistvlad/bnbgo/internal/position"
	"github.com/specialistvlad/bnbgo/internal/publish"
	"github.com/specialistvlad/bnbgo/internal/resolve"
	"github.com/specialistvlad/bnbgo/internal/sketch"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	logger   *slog.Logger
	sources  []string
	format   codec.Format
	output   string
	compiler *compiler.Compiler
	publish  *publish.Config
	follow   bool
}

// NewApp is the constructor for the main application. It loads the project
// file through loader, lets the command-line settings in cfg override it and
// returns a ready App with its own isolated logger writing to logW.
func NewApp(logW io.Writer, cfg *Config, loader config.Loader) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	project := &config.Model{}
	if cfg.ConfigPath != "" {
		m, err := loader.Load(ctx, cfg.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		project = m
	}
	logger.Debug("Configuration loaded and translated into unified model.")

	a := &App{logger: logger, output: cfg.OutputPath, follow: cfg.Follow}

	a.sources = cfg.Sources
	if len(a.sources) == 0 {
		a.sources = project.Sources
	}
	if len(a.sources) == 0 {
		return nil, errors.New("no sources given: pass .bnb files or directories, or set sources in the project file")
	}

	format, err := codec.ParseFormat(firstNonEmpty(cfg.Format, project.Output))
	if err != nil {
		return nil, err
	}
	a.format = format

	match, err := sketch.ParseMatchMode(firstNonEmpty(cfg.Match, project.Resolve.RegionMatch))
	if err != nil {
		return nil, err
	}
	includePlaces := project.Resolve.IncludePlaces
	if cfg.IncludePlaces != nil {
		includePlaces = *cfg.IncludePlaces
	}
	a.compiler = compiler.New(compiler.Options{
		Resolve: resolve.Options{IncludePlaces: includePlaces},
		Match:   match,
		Sizes:   sizes(project),
	})

	a.publish = publishConfig(cfg, project)
	if a.follow && a.publish == nil {
		return nil, errors.New("follow requires a renderer: set -publish or a publish block")
	}

	logger.Debug("App configured.", "sources", a.sources, "format", a.format, "match", match, "include_places", includePlaces, "publish", a.publish != nil)
	return a, nil
}

func sizes(project *config.Model) position.SizeFunc {
	def := position.DefaultSize
	if project.Layout.Width > 0 && project.Layout.Height > 0 {
		def = model.Size{Width: project.Layout.Width, Height: project.Layout.Height}
	}
	perPlace := make(map[string]model.Size, len(project.Places))
	for name, s := range project.Places {
		perPlace[name] = model.Size{Width: s.Width, Height: s.Height}
	}
	return position.Sizes(def, perPlace)
}

func publishConfig(cfg *Config, project *config.Model) *publish.Config {
	var out *publish.Config
	if p := project.Publish; p != nil {
		out = &publish.Config{
			URL:                p.URL,
			Namespace:          p.Namespace,
			Event:              p.Event,
			InsecureSkipVerify: p.InsecureSkipVerify,
		}
	}
	if cfg.PublishURL != "" {
		if out == nil {
			out = &publish.Config{}
		}
		out.URL = cfg.PublishURL
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
