// Package config defines the format-agnostic project settings and the
// Loader interface that reads them.
//
// The `config.Model` is what the app package consumes. Concrete
// implementations of the interface, such as for HCL, are provided in
// separate packages.
package config
