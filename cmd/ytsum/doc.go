// Package main hosts the ytsum CLI entrypoint and command graph.
//
// The Cobra-based command tree resolves configuration, builds the logger, and
// hands a URL list to the pipeline. It also lists stored summary records and
// scaffolds configuration files. Keep this package lean: behaviour lives in
// the internal packages and is surfaced here through flags.
package main
