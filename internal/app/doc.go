// Package app contains the core application logic. It defines the main App
// struct, merges command-line settings with the project file, and runs the
// compile, write and publish lifecycle, decoupled from any specific
// entrypoint like a CLI.
package app
