// Package trs reads and writes TRS trace set files: a binary container
// format storing sequences of measurement traces together with
// structured metadata and per-trace typed parameter bundles.
//
// Opening a file for reading gives a random-access Reader backed by a
// sliding memory-mapped window; opening a path for writing gives a
// streaming Writer that infers its header from the first appended
// trace and patches it in place on Close. Metadata, parameter kinds,
// and sample encodings live in their own sub-packages (metadata,
// ptype, tag, parameter, encoding, trace) and are re-exported here only
// where a caller is expected to reach for them directly.
package trs
