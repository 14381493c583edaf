// Package testing provides a self-contained environment for exercising the
// minting engine: an in-memory store, a manual clock, and a canned authority
// params provider, plus helpers for the common setup steps (instantiate,
// bind the collection, mint).
package testing
