package auth

import (
	"bytes"
	"clinic-desk-api/internal/logs"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret"

type assertErr string

func (e assertErr) Error() string { return string(e) }

type mockAuthService struct {
	CreateStaffFn  func(staff Staff) (*Staff, error)
	GetStaffFn     func(email string) (*Staff, error)
	GetStaffByIDFn func(id uint) (*Staff, error)
}

func (m *mockAuthService) CreateStaff(staff Staff) (*Staff, error) {
	if m.CreateStaffFn == nil {
		return nil, assertErr("CreateStaff not mocked")
	}
	return m.CreateStaffFn(staff)
}

func (m *mockAuthService) GetStaff(email string) (*Staff, error) {
	if m.GetStaffFn == nil {
		return nil, assertErr("GetStaff not mocked")
	}
	return m.GetStaffFn(email)
}

func (m *mockAuthService) GetStaffByID(id uint) (*Staff, error) {
	if m.GetStaffByIDFn == nil {
		return nil, assertErr("GetStaffByID not mocked")
	}
	return m.GetStaffByIDFn(id)
}

type mockLogService struct {
	entries []logs.SystemLog
	err     error
}

func (m *mockLogService) Log(entry logs.SystemLog, payload any) error {
	m.entries = append(m.entries, entry)
	return m.err
}

func (m *mockLogService) actions() []string {
	out := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.Action)
	}
	return out
}

func setupAuthRouter(as AuthServicePort, ls LogServicePort) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ac := &AuthController{AuthService: as, LS: ls, Secret: testSecret}
	r := gin.New()
	RegisterRoutes(r, ac)
	return r
}

func postJSON(r http.Handler, path string, body any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func cookieValue(w *httptest.ResponseRecorder, name string) (string, *http.Cookie) {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c.Value, c
		}
	}
	return "", nil
}

func decodeJWTPayload(t *testing.T, token string) map[string]any {
	t.Helper()
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("token is not a JWT: %q", token)
	}
	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	return out
}

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
	if err := db.AutoMigrate(&Staff{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}
