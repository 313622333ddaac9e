// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It is responsible for parsing bnbgo.hcl project files,
// evaluating their expressions and translating them into config.Model.
package hcl
