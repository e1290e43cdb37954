package models

import "time"

// ClientState is the derived synchronization state reported by GET /status.
type ClientState string

const (
	StateOffline     ClientState = "offline"
	StateSyncPending ClientState = "sync_pending"
	StateUpToDate    ClientState = "up_to_date"
)

// StatusReport is the body of GET /status.
type StatusReport struct {
	PendingCount int         `json:"pending_count"`
	LastSyncedAt *time.Time  `json:"last_synced_at"`
	Status       ClientState `json:"status"`

	// QueuedEntries is the number of mutations still waiting in the queue.
	QueuedEntries int `json:"queued_entries"`
}
