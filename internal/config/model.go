package config

// Model is the unified, format-agnostic representation of a project file.
// Zero values mean "not set"; flags and defaults are applied on top of it by
// the application.
type Model struct {
	// Sources lists DSL files or directories, relative to the project file.
	Sources []string
	// Output is the serialization format name.
	Output  string
	Resolve Resolve
	// Layout is the default place size.
	Layout Size
	// Places holds per-place size overrides, keyed by place name.
	Places  map[string]Size
	Publish *Publish
}

// Resolve holds the name resolution settings.
type Resolve struct {
	IncludePlaces bool
	RegionMatch   string
}

// Size is the extent of a place in layout units.
type Size struct {
	Width  float64
	Height float64
}

// Publish describes the renderer a compiled document is pushed to.
type Publish struct {
	URL                string
	Namespace          string
	Event              string
	InsecureSkipVerify bool
}
