// Package compiler runs the whole pipeline: it parses documents in
// parallel, merges them into one breadboard and resolves includes,
// references, positions and sketch regions in that order.
//
// Every stage runs even when an earlier one failed, so a single call reports
// as many problems as possible. A breadboard is only returned when there are
// none; once returned it is never modified and may be shared freely.
package compiler
