// Package main hosts the ttsprep CLI entrypoint and command graph.
//
// The Cobra-based command tree resolves configuration once, applies flag
// overrides, and hands the result to the pipeline, history, and dependency
// packages. Add new functionality to the internal packages first, then
// surface it here through a dedicated command or flag.
package main
