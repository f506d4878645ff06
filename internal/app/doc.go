// Package app wires configuration, logging, the people client and the loader
// together, then hands them to the TUI or to the headless list command.
//
// Loader runs the single fetch of a session. It holds the loading phase for a
// minimum duration after the fetch settles, so a fast response does not flash
// the spinner, and publishes ready or error to the state store.
package app
