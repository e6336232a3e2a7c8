// Package hashing provides canonical structural hashing for document values.
//
// Cache identity in tinystore is structural: two queries (or two frozen
// documents) that are built from equal values must produce equal hashes, no
// matter in which order maps were populated or which concrete numeric type
// carried a value. This package defines the single canonical encoding both
// the query algebra and frozen.Dict hash against:
//
//   - every value is prefixed with a type tag
//   - all numeric types are widened to float64 before encoding
//   - map entries are encoded in sorted key order
//   - slices are encoded in element order
//
// The digest is xxhash64; hashes are stable within a process run and across
// processes for the same library version, but are not a persistence format.
package hashing
