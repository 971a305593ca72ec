// Package diag defines the diagnostic model shared by the script runner and
// the CLI.
//
// A Diagnostic carries a Severity, a compact numeric Code with a stable
// string form, a short message and the script position it refers to.
// Producers emit through a Reporter (usually a BagReporter) so they do not
// depend on how findings are stored or printed; the Bag sorts, deduplicates
// and counts them. Rendering to text lives in format.go and in the CLI.
package diag
