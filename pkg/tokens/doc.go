// Package tokens is the matching-and-merge engine of the synchronizer.
//
// Upstream records are first normalized into a Record, then matched against
// the existing catalog. A match appends a provenance line to every matching
// entry; a miss synthesizes a complete new entry. Sync drives both steps for
// a whole set and returns the amended catalog, the new-entries document and
// the counters the operator summary is built from.
//
// The package performs no I/O. Fetching and persistence are handled by the
// callers through the Fetcher interface and the cockatrice package.
package tokens
