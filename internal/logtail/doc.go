// Package logtail reads the tail of roster's log file.
//
// Read returns the last N lines using a ring buffer, so memory stays
// proportional to N rather than to the file. Parse decodes zap's JSON lines
// into entries, and Tail combines both with a minimum level filter. The
// "roster logs" command prints the result.
package logtail
