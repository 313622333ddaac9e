// Package dag is a small dependency graph used by the resolution stages. It
// stores nodes by string ID, records which nodes depend on which, finds
// every cycle with a depth-first search over the active recursion path, and
// orders the acyclic part so that dependencies come before their dependents.
//
// Iteration order is always insertion order, so results are deterministic.
package dag
