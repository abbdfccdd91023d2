// Package api provides an HTTP API server for running matrix comparisons
// and querying persisted comparison reports.
package api

import "github.com/alignlab/simcor/pkg/eventstream"

// Config is the API server configuration.
type Config struct {
	// ListenAddr is the address to listen on (e.g., ":8081")
	ListenAddr string

	// Publisher emits persisted-report events. Optional; nil disables
	// event publishing.
	Publisher eventstream.Publisher
}
