package hcl

import (
	"fmt"
	"path/filepath"

	"github.com/specialistvlad/bnbgo/internal/config"
	"github.com/specialistvlad/bnbgo/internal/schema"
)

// translateProject merges one decoded project file into the agnostic model.
// Relative source paths are anchored at dir, the directory of the file.
func translateProject(m *config.Model, p *schema.Project, dir string) error {
	if len(p.Sources) > 0 {
		m.Sources = m.Sources[:0]
		for _, s := range p.Sources {
			if !filepath.IsAbs(s) {
				s = filepath.Join(dir, s)
			}
			m.Sources = append(m.Sources, s)
		}
	}
	if p.Output != nil {
		m.Output = *p.Output
	}

	if r := p.Resolve; r != nil {
		if r.IncludePlaces != nil {
			m.Resolve.IncludePlaces = *r.IncludePlaces
		}
		if r.RegionMatch != nil {
			m.Resolve.RegionMatch = *r.RegionMatch
		}
	}

	if p.Layout != nil {
		size, err := translateSize("layout", p.Layout.Width, p.Layout.Height)
		if err != nil {
			return err
		}
		m.Layout = size
	}
	for _, pl := range p.Places {
		size, err := translateSize(fmt.Sprintf("place %q", pl.Name), pl.Width, pl.Height)
		if err != nil {
			return err
		}
		m.Places[pl.Name] = size
	}

	if pub := p.Publish; pub != nil {
		out := &config.Publish{URL: pub.URL, Namespace: "/", Event: "breadboard"}
		if pub.Namespace != nil {
			out.Namespace = *pub.Namespace
		}
		if pub.Event != nil {
			out.Event = *pub.Event
		}
		if pub.InsecureSkipVerify != nil {
			out.InsecureSkipVerify = *pub.InsecureSkipVerify
		}
		m.Publish = out
	}
	return nil
}

func translateSize(what string, width, height float64) (config.Size, error) {
	if width <= 0 || height <= 0 {
		return config.Size{}, fmt.Errorf("%s: width and height must be positive, got %gx%g", what, width, height)
	}
	return config.Size{Width: width, Height: height}, nil
}
