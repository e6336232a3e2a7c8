// Package storage defines the storage capability consumed by tinystore's
// middleware chain, plus an in-memory implementation.
//
// The capability is deliberately small: read the full persisted snapshot,
// write a full snapshot, close. Durable adapters (JSON files, object
// stores) are external collaborators implementing the same interface; this
// package only owns the contract and the transient Memory implementation.
package storage
