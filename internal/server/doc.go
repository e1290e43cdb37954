// Package server runs the HTTP transport of the todo sync client and of the
// remote authority.
//
// It provides startup, signal handling and graceful shutdown around the
// routers built by the handler package.
package server
