package http

import (
	"context"
	"net/http"
	"time"

	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/internal/service"
	"github.com/MKhiriev/go-todo-sync/models"
)

// ─────────────────────────────────────────────
// Fakes
// ─────────────────────────────────────────────

type fakeRecordService struct {
	record  models.Record
	records []models.Record
	err     error

	gotCreate models.CreateRecordRequest
	gotUpdate models.UpdateRecordRequest
	gotID     string
}

func (f *fakeRecordService) Create(_ context.Context, req models.CreateRecordRequest) (models.Record, error) {
	f.gotCreate = req
	return f.record, f.err
}

func (f *fakeRecordService) Get(_ context.Context, id string) (models.Record, error) {
	f.gotID = id
	return f.record, f.err
}

func (f *fakeRecordService) List(context.Context) ([]models.Record, error) {
	return f.records, f.err
}

func (f *fakeRecordService) Update(_ context.Context, req models.UpdateRecordRequest) (models.Record, error) {
	f.gotUpdate = req
	return f.record, f.err
}

func (f *fakeRecordService) Delete(_ context.Context, id string) error {
	f.gotID = id
	return f.err
}

type fakeSyncService struct {
	result models.CycleResult
	dead   []models.DeadEntry
	err    error
	runs   int
	gotCtx context.Context
}

func (f *fakeSyncService) Run(ctx context.Context) models.CycleResult {
	f.runs++
	f.gotCtx = ctx
	return f.result
}

func (f *fakeSyncService) DeadEntries(context.Context) ([]models.DeadEntry, error) {
	return f.dead, f.err
}

type fakeStatusService struct {
	report models.StatusReport
	err    error
}

func (f *fakeStatusService) Status(context.Context) (models.StatusReport, error) {
	return f.report, f.err
}

type fakeAuthoritySync struct {
	resp    models.BatchResponse
	err     error
	pingErr error
	got     models.BatchRequest
	calls   int
}

func (f *fakeAuthoritySync) ApplyBatch(_ context.Context, req models.BatchRequest) (models.BatchResponse, error) {
	f.calls++
	f.got = req
	return f.resp, f.err
}

func (f *fakeAuthoritySync) Ping(context.Context) error {
	return f.pingErr
}

type fakeAppInfo struct {
	info models.AppBuildInfo
}

func (f fakeAppInfo) GetAppVersion(context.Context) models.AppBuildInfo {
	return f.info
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

type clientFakes struct {
	records *fakeRecordService
	sync    *fakeSyncService
	status  *fakeStatusService
}

func newClientRouter(metrics http.Handler) (http.Handler, *clientFakes) {
	fakes := &clientFakes{
		records: &fakeRecordService{},
		sync:    &fakeSyncService{},
		status:  &fakeStatusService{},
	}

	h := NewClientHandler(&service.ClientServices{
		RecordService:  fakes.records,
		SyncService:    fakes.sync,
		StatusService:  fakes.status,
		AppInfoService: fakeAppInfo{info: models.NewAppBuildInfo("1.2.3", "2026-10-01", "abc123")},
	}, metrics, logger.Nop())

	return h.InitClient(), fakes
}

func newServerRouter(hashKey string) (http.Handler, *fakeAuthoritySync) {
	syncSvc := &fakeAuthoritySync{}

	h := NewServerHandler(&service.Services{
		SyncService:    syncSvc,
		AppInfoService: fakeAppInfo{info: models.NewAppBuildInfo("1.2.3", "2026-10-01", "abc123")},
	}, hashKey, logger.Nop())

	return h.InitServer(), syncSvc
}

func fixedTime() time.Time {
	return time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
}
