package logs

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func doPost(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLogController_GetLogs_BindError_400(t *testing.T) {
	gin.SetMode(gin.TestMode)

	lc := &LogController{LogService: &LogService{DB: &gorm.DB{}}} // DB not used (bind fails first)
	r := gin.New()
	r.POST("/logs", lc.GetLogs)

	w := doPost(r, "/logs", `{bad json`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestLogController_GetLogs_ServiceError_500(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, mock, cleanup := newMockGorm(t)
	defer cleanup()

	lc := &LogController{LogService: &LogService{DB: db}}

	mock.ExpectQuery(`SELECT count\(\*\)`).
		WillReturnError(assertErr("boom"))

	r := gin.New()
	r.POST("/logs", lc.GetLogs)

	w := doPost(r, "/logs", `{"page":1,"page_size":10}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d body=%s", w.Code, w.Body.String())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestLogController_GetLogs_OK_200(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db := newTestDB(t)
	seedLog(t, db, SystemLog{Level: LevelInfo, Service: "appointments", Action: "CREATE", Message: "saved"})

	r := gin.New()
	RegisterRoutes(r, &LogService{DB: db})

	w := doPost(r, "/api/logs", `{}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Data       []LogRow      `json:"data"`
		Page       int           `json:"page"`
		PageSize   int           `json:"page_size"`
		Total      int64         `json:"total"`
		TotalPages int           `json:"total_pages"`
		Aggregates LogAggregates `json:"aggregates"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Total != 1 || len(resp.Data) != 1 || resp.Data[0].Action != "CREATE" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Page != 1 || resp.PageSize != 20 || resp.TotalPages != 1 {
		t.Fatalf("unexpected paging: %+v", resp)
	}
}

func TestLogRoutes_MiddlewareApplied(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	deny := func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing access token"})
	}
	RegisterRoutes(r, &LogService{DB: &gorm.DB{}}, deny)

	w := doPost(r, "/api/logs", `{}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", w.Code)
	}
}
