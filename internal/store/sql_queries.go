package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-todo-sync/models"
)

const (
	recordsTable     = "records"
	queueTable       = "sync_queue"
	deadEntriesTable = "sync_dead_entries"
	authorityTable   = "authority_records"
)

var recordColumns = []string{
	"id",
	"title",
	"description",
	"completed",
	"created_at",
	"updated_at",
	"deleted",
	"sync_status",
	"remote_id",
	"last_synced_at",
}

var queueColumns = []string{
	"id",
	"record_id",
	"operation",
	"data",
	"timestamp",
	"retry_count",
	"last_error",
}

var deadEntryColumns = []string{
	"id",
	"record_id",
	"operation",
	"data",
	"timestamp",
	"retry_count",
	"final_error",
	"dead_at",
}

var authorityColumns = []string{
	"record_id",
	"server_id",
	"title",
	"description",
	"completed",
	"deleted",
	"created_at",
	"updated_at",
}

// needsSyncStatuses are the record states counted as "not up to date".
var needsSyncStatuses = []string{
	string(models.SyncStatusPending),
	string(models.SyncStatusError),
}

// ── records ───────────────────────────────────────────────────────────────────

func buildInsertRecordQuery(b sq.StatementBuilderType, r models.Record) (string, []any, error) {
	return b.Insert(recordsTable).
		Columns(recordColumns...).
		Values(
			r.ID,
			r.Title,
			r.Description,
			r.Completed,
			r.CreatedAt.UTC(),
			r.UpdatedAt.UTC(),
			r.Deleted,
			string(r.SyncStatus),
			r.RemoteID,
			utcPtr(r.LastSyncedAt),
		).
		ToSql()
}

func buildSelectRecordQuery(b sq.StatementBuilderType, id string) (string, []any, error) {
	return b.Select(recordColumns...).
		From(recordsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildListRecordsQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select(recordColumns...).
		From(recordsTable).
		Where(sq.Eq{"deleted": false}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
}

func buildSaveRecordQuery(b sq.StatementBuilderType, r models.Record) (string, []any, error) {
	return b.Update(recordsTable).
		Set("title", r.Title).
		Set("description", r.Description).
		Set("completed", r.Completed).
		Set("created_at", r.CreatedAt.UTC()).
		Set("updated_at", r.UpdatedAt.UTC()).
		Set("deleted", r.Deleted).
		Set("sync_status", string(r.SyncStatus)).
		Set("remote_id", r.RemoteID).
		Set("last_synced_at", utcPtr(r.LastSyncedAt)).
		Where(sq.Eq{"id": r.ID}).
		ToSql()
}

// buildSaveSettledQuery is buildSaveRecordQuery guarded by version: a row
// edited after version is left alone.
func buildSaveSettledQuery(b sq.StatementBuilderType, r models.Record, version time.Time) (string, []any, error) {
	return b.Update(recordsTable).
		Set("title", r.Title).
		Set("description", r.Description).
		Set("completed", r.Completed).
		Set("created_at", r.CreatedAt.UTC()).
		Set("updated_at", r.UpdatedAt.UTC()).
		Set("deleted", r.Deleted).
		Set("sync_status", string(r.SyncStatus)).
		Set("remote_id", r.RemoteID).
		Set("last_synced_at", utcPtr(r.LastSyncedAt)).
		Where(sq.Eq{"id": r.ID}).
		Where(sq.LtOrEq{"updated_at": version.UTC()}).
		ToSql()
}

// buildMarkSyncedQuery flips the status only while updated_at has not moved
// past version. A newer local edit keeps the row pending.
func buildMarkSyncedQuery(b sq.StatementBuilderType, id string, remoteID *string, version, at time.Time) (string, []any, error) {
	q := b.Update(recordsTable).
		Set("sync_status", sq.Expr("CASE WHEN updated_at <= ? THEN ? ELSE sync_status END",
			version.UTC(), string(models.SyncStatusSynced))).
		Set("last_synced_at", at.UTC())
	if remoteID != nil {
		q = q.Set("remote_id", *remoteID)
	}

	return q.Where(sq.Eq{"id": id}).ToSql()
}

func buildMarkErrorQuery(b sq.StatementBuilderType, id string, version time.Time) (string, []any, error) {
	return b.Update(recordsTable).
		Set("sync_status", string(models.SyncStatusError)).
		Where(sq.Eq{"id": id}).
		Where(sq.LtOrEq{"updated_at": version.UTC()}).
		ToSql()
}

func buildCountNeedingSyncQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select("COUNT(*)").
		From(recordsTable).
		Where(sq.Eq{"sync_status": needsSyncStatuses}).
		ToSql()
}

// buildLatestSyncedAtQuery selects the column itself instead of MAX() so the
// driver keeps the declared DATETIME type when scanning.
func buildLatestSyncedAtQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select("last_synced_at").
		From(recordsTable).
		Where(sq.NotEq{"last_synced_at": nil}).
		OrderBy("last_synced_at DESC").
		Limit(1).
		ToSql()
}

// ── queue ─────────────────────────────────────────────────────────────────────

func buildEnqueueQuery(b sq.StatementBuilderType, e models.QueueEntry) (string, []any, error) {
	return b.Insert(queueTable).
		Columns(queueColumns...).
		Values(
			e.ID,
			e.RecordID,
			string(e.Operation),
			e.Payload,
			e.EnqueuedAt.UTC(),
			e.RetryCount,
			e.LastError,
		).
		ToSql()
}

func buildSnapshotQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select(queueColumns...).
		From(queueTable).
		OrderBy("timestamp ASC", "seq ASC").
		ToSql()
}

func buildRemoveEntryQuery(b sq.StatementBuilderType, entryID string) (string, []any, error) {
	return b.Delete(queueTable).
		Where(sq.Eq{"id": entryID}).
		ToSql()
}

func buildIncrementRetryQuery(b sq.StatementBuilderType, entryID, errText string) (string, []any, error) {
	return b.Update(queueTable).
		Set("retry_count", sq.Expr("retry_count + 1")).
		Set("last_error", errText).
		Where(sq.Eq{"id": entryID}).
		Suffix("RETURNING retry_count").
		ToSql()
}

// buildRemoveThroughQuery deletes entryID and the entries of the same record
// queued before it. Once entryID is gone the subquery yields NULL and
// nothing matches.
func buildRemoveThroughQuery(b sq.StatementBuilderType, recordID, entryID string) (string, []any, error) {
	return b.Delete(queueTable).
		Where(sq.Eq{"record_id": recordID}).
		Where(sq.Expr("seq <= (SELECT seq FROM "+queueTable+" WHERE id = ?)", entryID)).
		ToSql()
}

func buildCountQueueQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select("COUNT(*)").From(queueTable).ToSql()
}

func buildInsertDeadEntryQuery(b sq.StatementBuilderType, d models.DeadEntry) (string, []any, error) {
	return b.Insert(deadEntriesTable).
		Columns(deadEntryColumns...).
		Values(
			d.ID,
			d.RecordID,
			string(d.Operation),
			d.Payload,
			d.EnqueuedAt.UTC(),
			d.RetryCount,
			d.FinalError,
			d.DeadAt.UTC(),
		).
		ToSql()
}

func buildDeadEntriesQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select(deadEntryColumns...).
		From(deadEntriesTable).
		OrderBy("dead_at ASC").
		ToSql()
}

// ── authority ─────────────────────────────────────────────────────────────────

func buildFindAuthorityQuery(b sq.StatementBuilderType, recordID string) (string, []any, error) {
	return b.Select(authorityColumns...).
		From(authorityTable).
		Where(sq.Eq{"record_id": recordID}).
		ToSql()
}

// buildUpsertAuthorityQuery keeps the original server_id and created_at of an
// existing row.
func buildUpsertAuthorityQuery(b sq.StatementBuilderType, r models.RemoteRecord) (string, []any, error) {
	return b.Insert(authorityTable).
		Columns(authorityColumns...).
		Values(
			r.ID,
			deref(r.RemoteID),
			deref(r.Title),
			deref(r.Description),
			derefBool(r.Completed),
			derefBool(r.Deleted),
			derefTime(r.CreatedAt),
			derefTime(r.UpdatedAt),
		).
		Suffix(`ON CONFLICT (record_id) DO UPDATE SET
			title       = EXCLUDED.title,
			description = EXCLUDED.description,
			completed   = EXCLUDED.completed,
			deleted     = EXCLUDED.deleted,
			updated_at  = EXCLUDED.updated_at`).
		ToSql()
}

func buildMarkDeletedAuthorityQuery(b sq.StatementBuilderType, recordID string, at time.Time) (string, []any, error) {
	return b.Update(authorityTable).
		Set("deleted", true).
		Set("updated_at", at.UTC()).
		Where(sq.Eq{"record_id": recordID}).
		ToSql()
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefBool(b *bool) bool {
	return b != nil && *b
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.UTC()
}
