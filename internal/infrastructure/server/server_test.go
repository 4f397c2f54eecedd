package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpHandlers "github.com/teamboard/core/internal/adapters/http"
	"github.com/teamboard/core/internal/adapters/preferences"
	"github.com/teamboard/core/internal/adapters/storage"
	"github.com/teamboard/core/internal/application/services"
	"github.com/teamboard/core/internal/domain/entities"
	"github.com/teamboard/core/internal/infrastructure/app"
	"github.com/teamboard/core/internal/infrastructure/config"
	"github.com/teamboard/core/internal/infrastructure/database"
	"github.com/teamboard/core/internal/infrastructure/logger"
)

// Wednesday
var testNow = time.Date(2026, time.October, 14, 10, 0, 0, 0, time.UTC)

func setupTestServer(t *testing.T) http.Handler {
	t.Helper()
	dir := t.TempDir()

	cfg := &config.Config{
		App:      config.AppConfig{Name: "TeamBoard", Version: "test"},
		Server:   config.ServerConfig{RequestTimeout: 5 * time.Second},
		Database: config.DatabaseConfig{Driver: database.DriverSQLite, Path: filepath.Join(dir, "board.db")},
		Security: config.SecurityConfig{CORSAllowedOrigins: "*"},
		Metrics:  config.MetricsConfig{Enabled: true, Path: "/metrics"},
		Storage: config.StorageConfig{
			UploadDir:     filepath.Join(dir, "uploads"),
			PublicBaseURL: "/files",
			MaxUploadMB:   1,
		},
		Team: config.TeamConfig{Name: "Marketing Team", Members: []string{"kim", "lee"}},
	}

	store, err := database.NewRecordStore(cfg.Database)
	require.NoError(t, err)
	files, err := storage.NewLocalStore(cfg.Storage.UploadDir, cfg.Storage.PublicBaseURL)
	require.NoError(t, err)
	prefs := preferences.NewFileStore(filepath.Join(dir, "prefs.yaml"))

	clock := services.NewTeamClock(func() time.Time { return testNow }, time.UTC)
	svc := app.New(store, files, prefs, clock, time.Wednesday, cfg.Team, logger.NewNop())
	t.Cleanup(func() { _ = svc.Close() })

	srv, err := New(cfg, svc, logger.NewNop())
	require.NoError(t, err)
	return srv.Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

const taskBody = `{"title":"post reel","assignee":"lee","category":"instagram","dueDate":"2026-10-16"}`

func TestHealthAndReady(t *testing.T) {
	h := setupTestServer(t)

	rec := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ready")
}

func TestTaskLifecycle(t *testing.T) {
	h := setupTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/v1/tasks", taskBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	task := decode[entities.Task](t, rec)
	assert.Equal(t, entities.TaskStatusTodo, task.Status)
	assert.Equal(t, entities.PriorityNormal, task.Priority)

	rec = do(t, h, http.MethodPatch, "/api/v1/tasks/"+task.ID+"/status", `{"status":"in_progress"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/v1/tasks/"+task.ID+"/activity", "")
	require.Equal(t, http.StatusOK, rec.Code)
	activity := decode[struct {
		Data  []entities.ActivityLog `json:"data"`
		Total int                    `json:"total"`
	}](t, rec)
	require.Equal(t, 2, activity.Total)
	assert.Equal(t, "todo -> in_progress", activity.Data[0].Details)
	assert.Equal(t, "kim", activity.Data[0].Author, "default client acts as the first member")

	rec = do(t, h, http.MethodGet, "/api/v1/tasks?status=in_progress", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":1`)

	rec = do(t, h, http.MethodGet, "/api/v1/tasks?status=blocked", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/tasks/deadlines", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"label":"D-2"`)

	rec = do(t, h, http.MethodDelete, "/api/v1/tasks/"+task.ID, "")
	assert.Equal(t, http.StatusPreconditionRequired, rec.Code)

	rec = do(t, h, http.MethodDelete, "/api/v1/tasks/"+task.ID+"?confirm=true", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/tasks/"+task.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateTaskValidation(t *testing.T) {
	h := setupTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/v1/tasks", `{"title":"x","assignee":"kim","category":"tv","dueDate":"2026-10-16"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	errBody := decode[httpHandlers.ErrorResponse](t, rec)
	assert.NotEmpty(t, errBody.Error)

	rec = do(t, h, http.MethodPost, "/api/v1/tasks", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionPerClient(t *testing.T) {
	h := setupTestServer(t)

	rec := do(t, h, http.MethodPut, "/api/v1/session/member", `{"name":"lee"}`, httpHandlers.HeaderClientID, "laptop")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/v1/session/member", "", httpHandlers.HeaderClientID, "laptop")
	assert.Contains(t, rec.Body.String(), `"name":"lee"`)

	rec = do(t, h, http.MethodGet, "/api/v1/session/member", "")
	assert.Contains(t, rec.Body.String(), `"name":"kim"`)

	rec = do(t, h, http.MethodPut, "/api/v1/session/member", `{"name":"park"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/v1/ideas", `{"topic":"pop-up"}`, httpHandlers.HeaderClientID, "laptop")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "lee", decode[entities.Idea](t, rec).Author)
}

func TestIdeaCommentOwnership(t *testing.T) {
	h := setupTestServer(t)
	laptop := []string{httpHandlers.HeaderClientID, "laptop"}

	rec := do(t, h, http.MethodPut, "/api/v1/session/member", `{"name":"lee"}`, laptop...)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/v1/ideas", `{"topic":"pop-up"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	idea := decode[entities.Idea](t, rec)

	rec = do(t, h, http.MethodPost, "/api/v1/ideas/"+idea.ID+"/comments", `{"content":"nice"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	comment := decode[entities.IdeaComment](t, rec)

	path := "/api/v1/ideas/" + idea.ID + "/comments/" + comment.ID + "?confirm=true"
	rec = do(t, h, http.MethodDelete, path, "", laptop...)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, h, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAttachFileAndServe(t *testing.T) {
	h := setupTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/v1/tasks", taskBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	task := decode[entities.Task](t, rec)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "brief.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte("launch brief"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks/"+task.ID+"/files", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	updated := decode[entities.Task](t, rec)
	require.Len(t, updated.Files, 1)
	assert.Equal(t, "brief.txt", updated.Files[0].Name)
	assert.True(t, strings.HasPrefix(updated.Files[0].URL, "/files/tasks/"+task.ID+"/"), updated.Files[0].URL)

	rec = do(t, h, http.MethodGet, updated.Files[0].URL, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "launch brief", rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/v1/tasks/"+task.ID+"/files", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOverviewEndpoints(t *testing.T) {
	h := setupTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/v1/tasks", `{"title":"today","assignee":"kim","category":"other","dueDate":"2026-10-14"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"today":"2026-10-14"`)

	rec = do(t, h, http.MethodGet, "/api/v1/calendar?month=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	month := decode[services.CalendarMonth](t, rec)
	assert.Equal(t, 2026, month.Year)
	assert.Equal(t, 2, month.Month)

	rec = do(t, h, http.MethodGet, "/api/v1/calendar?month=13", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/calendar/2026-10-14", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"label":"D-Day"`)

	rec = do(t, h, http.MethodGet, "/api/v1/calendar/tomorrow", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/reports/text?period=monthly", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "=== Marketing Team Monthly Report ==="), rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/v1/reports?period=yearly", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/meetings/agendas/current", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"nextMeeting":"2026-10-21"`)
}

func TestMetricsEndpoint(t *testing.T) {
	h := setupTestServer(t)

	do(t, h, http.MethodGet, "/health", "")
	rec := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestRequireConfirmationRejectsFalse(t *testing.T) {
	h := setupTestServer(t)

	rec := do(t, h, http.MethodDelete, "/api/v1/kpis/any?confirm=false", "")
	assert.Equal(t, http.StatusPreconditionRequired, rec.Code)
	assert.Contains(t, rec.Body.String(), entities.ErrConfirmationRequired.Error())

	rec = do(t, h, http.MethodDelete, "/api/v1/kpis/any?confirm=true", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
