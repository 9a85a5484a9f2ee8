// Package httpserver builds the panel's HTTP server with bounded
// per-connection timeouts so a stalled client cannot pin a connection while
// the dashboard polls.
package httpserver

import (
	"net/http"
	"time"
)

const (
	headerTimeout = 5 * time.Second
	idleTimeout   = 60 * time.Second
)

// New builds the server. Read and write timeouts come from configuration; the
// write timeout must cover the slowest statistics queries.
func New(addr string, handler http.Handler, readTimeout, writeTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: headerTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
}
