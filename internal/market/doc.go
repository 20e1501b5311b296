// Package market provides the pure collection operations the analyzer runs
// over a normalized listing snapshot.
//
// Every operation takes a slice of model.Market and returns a new slice or
// value. Inputs are never reordered or mutated, and an empty input is a valid
// input that yields an empty (or zeroed) result.
//
// Orderings are stable: when two markets compare equal under an operation's
// sort key they keep their relative input order.
package market
