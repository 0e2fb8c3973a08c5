// Package file provides the TOML configuration store.
//
// Configuration lives in config.toml inside the DevSync home directory
// (~/.devsync by default). Nested tables are exposed as dot-notation keys:
//
//	[proxy]
//	strategies = ["direct", "https://corsproxy.io/?"]
//
// is read as "proxy.strategies".
package file
