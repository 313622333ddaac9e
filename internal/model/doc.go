// Package model holds the breadboard document: places, components, their
// affordance forests, connections, positions and sketches.
//
// The same types describe both the unresolved document produced by the
// builder and the resolved one. Resolution fills in TargetID, Point and
// AffordanceID fields and splices included affordances into the forests.
package model
