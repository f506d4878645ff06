// Package config loads roster's runtime configuration.
//
// # Resolution Order
//
// Load starts from built-in defaults, overlays the TOML file, then overlays
// ROSTER_* environment variables:
//
//  1. Defaults (dummyjson endpoint, 1s loading delay, 500ms filter debounce)
//  2. ~/.config/roster/config.toml, or the path passed to Load
//  3. Environment: ROSTER_ENDPOINT, ROSTER_LIMIT, ROSTER_LOADING_DELAY,
//     ROSTER_FILTER_DEBOUNCE, ROSTER_REQUEST_TIMEOUT, ROSTER_LOG_FILE
//
// A missing file is not an error. A malformed file, an unparsable duration or a
// negative value is.
//
// # File Format
//
//	endpoint = "https://dummyjson.com/users"
//	limit = 0              # 0 lets the API choose its page size
//	loading_delay = "1s"
//	filter_debounce = "500ms"
//	request_timeout = ""   # empty means no timeout
//	log_file = "~/.local/state/roster/roster.log"
//
// Paths starting with ~ are expanded against the user's home directory.
package config
