// Package diag defines the diagnostics produced by every compilation stage.
//
// Stages never stop at the first problem. Each returns a Diagnostics list and
// the caller merges them, so a single compilation attempt reports the full
// set. A Diagnostics value implements error; use Err to get a nil error for
// an empty list.
package diag
