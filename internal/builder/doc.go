// Package builder turns parse trees into the typed, still unresolved,
// breadboard model.
//
// Identifiers are assigned here: places and components are identified by
// kind and name, affordances by their owner and arena index, connections
// by their affordance and ordinal. Names referenced by includes,
// connections, positions and sketches are not looked up yet.
package builder
