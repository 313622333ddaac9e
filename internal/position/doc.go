// Package position resolves the declared positions of places into absolute
// center points.
//
// A relative coordinate is measured from an edge of the referenced place:
// left and right shift its center by half the width, top and bottom by half
// the height. Places form a dependency graph through their references;
// every cycle in it is reported and the acyclic remainder is evaluated in
// topological order. Places without a position are left to the renderer's
// automatic layout, which may feed their points back as anchors.
package position
