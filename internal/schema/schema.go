// Package schema holds the gohcl decoding targets for the bnbgo.hcl project
// file. It mirrors the file layout one to one; translation into
// config.Model happens in the hcl package.
package schema

// Project is the top-level structure of a project file.
type Project struct {
	Sources []string       `hcl:"sources,optional"`
	Output  *string        `hcl:"output,optional"`
	Resolve *Resolve       `hcl:"resolve,block"`
	Layout  *Size          `hcl:"layout,block"`
	Places  []*PlaceLayout `hcl:"place,block"`
	Publish *Publish       `hcl:"publish,block"`
}

// Resolve is the `resolve` block.
type Resolve struct {
	IncludePlaces *bool   `hcl:"include_places,optional"`
	RegionMatch   *string `hcl:"region_match,optional"`
}

// Size is a `layout` block or the body of a `place` block.
type Size struct {
	Width  float64 `hcl:"width"`
	Height float64 `hcl:"height"`
}

// PlaceLayout is a `place "Name"` block overriding the size of one place.
type PlaceLayout struct {
	Name   string  `hcl:"name,label"`
	Width  float64 `hcl:"width"`
	Height float64 `hcl:"height"`
}

// Publish is the `publish` block.
type Publish struct {
	URL                string  `hcl:"url"`
	Namespace          *string `hcl:"namespace,optional"`
	Event              *string `hcl:"event,optional"`
	InsecureSkipVerify *bool   `hcl:"insecure_skip_verify,optional"`
}
