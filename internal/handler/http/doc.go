// Package http implements the HTTP transport layer of the todo sync client
// and of the remote authority.
//
// The client router exposes the local record API together with the sync
// trigger and status endpoints. The authority router exposes the batch
// endpoint consumed by the sync engine. Request tracing, access logging,
// response compression and body integrity checks are handled here before
// requests reach the service layer.
package http
