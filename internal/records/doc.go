// Package records appends summary records to the flat output file and reads
// them back for listing.
//
// The file is append-only. Each record is the URL line, a "Shrnutí:" header,
// the summary text, and a rule of fifty "=" characters. Writers hold an
// advisory lock on the output file while appending so two ytsum processes
// sharing an output file do not interleave records.
package records
