package appointment

import (
	"bytes"
	"clinic-desk-api/internal/logs"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type assertErr string

func (e assertErr) Error() string { return string(e) }

// newTestDB opens a private in-memory store pinned to one connection, the
// same shape the server runs with.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&Appointment{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func closeDB(t *testing.T, db *gorm.DB) {
	t.Helper()
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB: %v", err)
	}
	_ = sqlDB.Close()
}

func mustCreate(t *testing.T, svc *AppointmentService, a Appointment) *Appointment {
	t.Helper()
	created, err := svc.Create(a)
	if err != nil {
		t.Fatalf("Create(%+v): %v", a, err)
	}
	return created
}

func mustCount(t *testing.T, svc *AppointmentService) int64 {
	t.Helper()
	n, err := svc.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	return n
}

type mockAppointmentService struct {
	CreateFn           func(a Appointment) (*Appointment, error)
	FindByIdentityFn   func(id string) (*Appointment, error)
	UpdateByIdentityFn func(id string, a Appointment) (*Appointment, error)
	DeleteByIdentityFn func(id string) (*Appointment, error)
	ListByDateFn       func(date string) ([]Appointment, error)
	ExportDayFn        func(date, format string) (string, string, []byte, error)
}

func (m *mockAppointmentService) Create(a Appointment) (*Appointment, error) {
	if m.CreateFn == nil {
		return nil, assertErr("Create not mocked")
	}
	return m.CreateFn(a)
}

func (m *mockAppointmentService) FindByIdentity(id string) (*Appointment, error) {
	if m.FindByIdentityFn == nil {
		return nil, assertErr("FindByIdentity not mocked")
	}
	return m.FindByIdentityFn(id)
}

func (m *mockAppointmentService) UpdateByIdentity(id string, a Appointment) (*Appointment, error) {
	if m.UpdateByIdentityFn == nil {
		return nil, assertErr("UpdateByIdentity not mocked")
	}
	return m.UpdateByIdentityFn(id, a)
}

func (m *mockAppointmentService) DeleteByIdentity(id string) (*Appointment, error) {
	if m.DeleteByIdentityFn == nil {
		return nil, assertErr("DeleteByIdentity not mocked")
	}
	return m.DeleteByIdentityFn(id)
}

func (m *mockAppointmentService) ListByDate(date string) ([]Appointment, error) {
	if m.ListByDateFn == nil {
		return nil, assertErr("ListByDate not mocked")
	}
	return m.ListByDateFn(date)
}

func (m *mockAppointmentService) ExportDay(date, format string) (string, string, []byte, error) {
	if m.ExportDayFn == nil {
		return "", "", nil, assertErr("ExportDay not mocked")
	}
	return m.ExportDayFn(date, format)
}

type mockArchive struct {
	enabled       bool
	ArchiveDayFn  func(ctx context.Context, date string) (string, error)
	ListArchiveFn func(ctx context.Context) ([]string, error)
}

func (m *mockArchive) Enabled() bool { return m.enabled }

func (m *mockArchive) ArchiveDay(ctx context.Context, date string) (string, error) {
	if m.ArchiveDayFn == nil {
		return "", assertErr("ArchiveDay not mocked")
	}
	return m.ArchiveDayFn(ctx, date)
}

func (m *mockArchive) ListArchives(ctx context.Context) ([]string, error) {
	if m.ListArchiveFn == nil {
		return nil, assertErr("ListArchives not mocked")
	}
	return m.ListArchiveFn(ctx)
}

type mockLogService struct {
	entries []logs.SystemLog
}

func (m *mockLogService) Log(entry logs.SystemLog, payload any) error {
	m.entries = append(m.entries, entry)
	return nil
}

// fakeGCS is an in-memory bucket store used through newGCSClientHook.
type fakeGCS struct {
	objects  map[string][]byte
	types    map[string]string
	bucket   string
	listErr  error
	closed   int
	writeErr error
}

func newFakeGCS() *fakeGCS {
	return &fakeGCS{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeGCS) Bucket(name string) gcsBucket {
	f.bucket = name
	return fakeBucket{f: f}
}
func (f *fakeGCS) Close() error { f.closed++; return nil }

type fakeBucket struct{ f *fakeGCS }

func (b fakeBucket) Object(name string) gcsObject { return fakeObject{f: b.f, name: name} }

func (b fakeBucket) ListNames(ctx context.Context, prefix string) ([]string, error) {
	if b.f.listErr != nil {
		return nil, b.f.listErr
	}
	names := []string{}
	for k := range b.f.objects {
		if strings.HasPrefix(k, prefix) {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	return names, nil
}

type fakeObject struct {
	f    *fakeGCS
	name string
}

func (o fakeObject) NewWriter(ctx context.Context, contentType string) io.WriteCloser {
	return &fakeWriter{o: o, contentType: contentType}
}

type fakeWriter struct {
	o           fakeObject
	contentType string
	buf         bytes.Buffer
}

func (w *fakeWriter) Write(p []byte) (int, error) {
	if w.o.f.writeErr != nil {
		return 0, w.o.f.writeErr
	}
	return w.buf.Write(p)
}

func (w *fakeWriter) Close() error {
	w.o.f.objects[w.o.name] = w.buf.Bytes()
	w.o.f.types[w.o.name] = w.contentType
	return nil
}

func useFakeGCS(t *testing.T, f *fakeGCS) {
	t.Helper()
	old := newGCSClientHook
	newGCSClientHook = func(ctx context.Context) (gcsClient, error) { return f, nil }
	t.Cleanup(func() { newGCSClientHook = old })
}

func setupRouter(ac *AppointmentController) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, ac)
	return r
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
}
