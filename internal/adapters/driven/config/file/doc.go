// Package file provides the TOML-backed configuration store.
//
// Settings live in config.toml inside the folio config directory
// (~/.folio by default). Keys are addressed with dots, so
// "import.allowed_hosts" is the allowed_hosts entry of the [import] table.
package file
