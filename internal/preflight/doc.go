// Package preflight provides readiness checks for the binaries, paths, and
// credentials a summarization run depends on.
//
// The CLI "ytsum config validate" command prints the results of RunAll so a
// broken setup is visible before a run downloads anything. Checks never
// touch the network.
package preflight
