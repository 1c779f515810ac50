// Package main hosts the wordrank CLI entrypoint and command graph.
//
// The Cobra command tree turns terminal invocations into report runs,
// phrase searches, run archive maintenance, and configuration scaffolding.
// Configuration resolution and logger setup live in commandContext so
// subcommands only deal with flags and rendering.
package main
