// Package state holds the outcome of the people load.
//
// The loader is the only writer: Begin, then exactly one of Ready or Fail.
// Readers take copies through Snapshot, so a snapshot never changes after it is
// returned.
package state
