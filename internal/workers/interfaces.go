// Package workers manages the background workers of the client process.
// It defines the Worker interface and a Workers aggregate that starts and
// stops every worker together with the process lifecycle.
package workers

import "context"

// Worker is a background activity bound to the process lifecycle.
//
// Start must not block: implementations spawn their own goroutines and keep
// running until ctx is cancelled or Stop is called. Stop blocks until the
// worker has fully exited.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}
