// Package cli parses the bnbgo command line: flags, positional source paths
// and the optional project file. It validates user input, maps problems to
// process exit codes through ExitError and hands a filled app.Config to the
// application.
package cli
