package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/employee"
	"github.com/cmlabs-hris/leave-ledger-go/internal/domain/leave"
	"github.com/cmlabs-hris/leave-ledger-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/leave-ledger-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/leave-ledger-go/internal/pkg/storage"
	"github.com/cmlabs-hris/leave-ledger-go/internal/repository/memory"
	employeeService "github.com/cmlabs-hris/leave-ledger-go/internal/service/employee"
	"github.com/cmlabs-hris/leave-ledger-go/internal/service/file"
	leaveService "github.com/cmlabs-hris/leave-ledger-go/internal/service/leave"
	notificationService "github.com/cmlabs-hris/leave-ledger-go/internal/service/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	} `json:"error"`
	Meta *struct {
		TotalItems int `json:"total_items"`
	} `json:"meta"`
}

type testServer struct {
	router http.Handler
	jwt    *jwt.JWTService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store := memory.NewStore()
	for _, e := range []employee.Employee{
		{ID: "E1", Email: "asha@example.com", Name: "Asha Rao", Designation: "Engineer"},
		{ID: "E2", Email: "ravi@example.com", Name: "Ravi Kumar", Designation: "Designer"},
	} {
		e.Status = employee.StatusActive
		e.Balances = employee.DefaultBalances()
		_, err := store.Employees().Create(context.Background(), e)
		require.NoError(t, err)
	}

	local, err := storage.NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)

	policy := leave.DefaultPolicy()
	notifs := notificationService.NewNotificationService(store.Notifications(), notificationService.Config{})
	leaves := leaveService.NewLeaveService(
		store,
		store.LeaveRequests(),
		store.LeaveDocuments(),
		store.Employees(),
		store.Ledger(),
		notifs,
		file.NewFileService(local, 1<<20),
		policy,
	)
	employees := employeeService.NewEmployeeService(store, store.Employees(), store.Ledger(), policy.DefaultBalances)

	jwtService := jwt.NewJWTService("test-secret", time.Hour)
	router := NewRouter(
		RouterConfig{
			Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
			UploadsDir: local.BasePath(),
		},
		jwtService,
		NewLeaveHandler(leaves, 1<<20),
		NewEmployeeHandler(employees),
		NewNotificationHandler(notifs),
	)

	return &testServer{router: router, jwt: jwtService}
}

func (s *testServer) token(t *testing.T, id, name, role string) string {
	t.Helper()
	token, _, err := s.jwt.GenerateAccessToken(jwt.Claims{UserID: id, Name: name, Role: role})
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body any, header ...string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &env)
	}
	return rec, env
}

func submitBody() map[string]string {
	return map[string]string{
		"leave_type": "casual",
		"start_date": "2099-03-02",
		"end_date":   "2099-03-03",
		"reason":     "family function",
	}
}

func TestRouter_RequiresToken(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.do(t, http.MethodGet, "/api/v1/leaves", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/leaves", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_Heartbeat(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_SubmitApproveFlow(t *testing.T) {
	s := newTestServer(t)
	asha := s.token(t, "E1", "Asha Rao", jwt.RoleEmployee)
	admin := s.token(t, "A1", "Priya Admin", jwt.RoleAdmin)

	rec, env := s.do(t, http.MethodPost, "/api/v1/leaves", asha, submitBody(), middleware.OriginHeader, "app")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created leave.LeaveRequestResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "E1", created.EmployeeID)
	assert.Equal(t, 2, created.Days)
	assert.Equal(t, leave.StatusPending, created.Status)

	// employees cannot approve
	rec, env = s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/leaves/%d/approve", created.ID), asha, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "admin_only", env.Error.Details["kind"])

	rec, env = s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/leaves/%d/approve", created.ID), admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var approved leave.LeaveRequestResponse
	require.NoError(t, json.Unmarshal(env.Data, &approved))
	assert.Equal(t, leave.StatusApproved, approved.Status)

	rec, env = s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/leaves/%d/approve", created.ID), admin, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "already_approved", env.Error.Details["kind"])

	rec, env = s.do(t, http.MethodGet, "/api/v1/employees/E1", asha, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var emp employee.EmployeeResponse
	require.NoError(t, json.Unmarshal(env.Data, &emp))
	assert.Equal(t, 14, emp.Balances.Casual)
}

func TestRouter_OriginTagOnAdminFeed(t *testing.T) {
	s := newTestServer(t)
	asha := s.token(t, "E1", "Asha Rao", jwt.RoleEmployee)
	admin := s.token(t, "A1", "Priya Admin", jwt.RoleAdmin)

	rec, _ := s.do(t, http.MethodPost, "/api/v1/leaves", asha, submitBody(), middleware.OriginHeader, "app")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/notifications?scope=admin", asha, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env := s.do(t, http.MethodGet, "/api/v1/notifications?scope=admin", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var feed []struct {
		SenderName string `json:"sender_name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &feed))
	require.Len(t, feed, 1)
	assert.Equal(t, "Asha Rao [App]", feed[0].SenderName)
}

func TestRouter_EmployeesSeeOnlyOwnRequests(t *testing.T) {
	s := newTestServer(t)
	asha := s.token(t, "E1", "Asha Rao", jwt.RoleEmployee)
	ravi := s.token(t, "E2", "Ravi Kumar", jwt.RoleEmployee)
	admin := s.token(t, "A1", "Priya Admin", jwt.RoleAdmin)

	rec, _ := s.do(t, http.MethodPost, "/api/v1/leaves", asha, submitBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := s.do(t, http.MethodGet, "/api/v1/leaves", ravi, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 0, env.Meta.TotalItems)

	rec, env = s.do(t, http.MethodGet, "/api/v1/leaves?employee_id=E1", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 1, env.Meta.TotalItems)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/employees/E1", ravi, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_InvalidInput(t *testing.T) {
	s := newTestServer(t)
	asha := s.token(t, "E1", "Asha Rao", jwt.RoleEmployee)

	body := submitBody()
	body["leave_type"] = "vacation"
	rec, _ := s.do(t, http.MethodPost, "/api/v1/leaves", asha, body)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/leaves/abc", asha, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/leaves/999", asha, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_UploadDocument(t *testing.T) {
	s := newTestServer(t)
	asha := s.token(t, "E1", "Asha Rao", jwt.RoleEmployee)

	rec, env := s.do(t, http.MethodPost, "/api/v1/leaves", asha, submitBody())
	require.Equal(t, http.StatusCreated, rec.Code)
	var created leave.LeaveRequestResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "note.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 medical certificate"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/leaves/%d/documents", created.ID), &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+asha)
	upload := httptest.NewRecorder()
	s.router.ServeHTTP(upload, req)
	require.Equal(t, http.StatusCreated, upload.Code, upload.Body.String())

	var doc struct {
		Data leave.LeaveDocumentResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(upload.Body.Bytes(), &doc))
	assert.Equal(t, created.ID, doc.Data.LeaveRequestID)

	rec, _ = s.do(t, http.MethodGet, "/uploads/"+doc.Data.Path, "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	docsPath := fmt.Sprintf("/api/v1/leaves/%d/documents", created.ID)
	rec, env = s.do(t, http.MethodGet, docsPath, asha, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var docs []leave.LeaveDocumentResponse
	require.NoError(t, json.Unmarshal(env.Data, &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, doc.Data.ID, docs[0].ID)
	assert.Equal(t, "note.pdf", docs[0].FileName)
	assert.NotEmpty(t, docs[0].URL)

	ravi := s.token(t, "E2", "Ravi Kumar", jwt.RoleEmployee)
	rec, _ = s.do(t, http.MethodGet, docsPath, ravi, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
