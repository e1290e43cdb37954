package service

import "github.com/MKhiriev/go-todo-sync/models"

// Resolve applies last-write-wins on UpdatedAt. The local record wins only
// when it is strictly newer; a tie goes to the remote authority. The winner
// is returned whole, fields are never mixed.
func Resolve(local, remote models.Record) (models.Record, models.Side) {
	if local.UpdatedAt.After(remote.UpdatedAt) {
		return local, models.SideLocal
	}

	return remote, models.SideRemote
}
