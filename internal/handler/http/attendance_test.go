package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffhub/staffhub-backend-go/internal/pkg/clock"
	"github.com/staffhub/staffhub-backend-go/internal/pkg/jwt"
	"github.com/staffhub/staffhub-backend-go/internal/repository/memory"
	attendanceService "github.com/staffhub/staffhub-backend-go/internal/service/attendance"
	dashboardService "github.com/staffhub/staffhub-backend-go/internal/service/dashboard"
	leaveService "github.com/staffhub/staffhub-backend-go/internal/service/leave"
)

const (
	handlerTestSecret    = "test-secret-key-for-jwt"
	handlerTestAccessExp = "1h"
	handlerTestEmployee  = "emp-001"
)

type testEnv struct {
	router http.Handler
	token  string
	clk    *clock.Fixed
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	clk := clock.NewFixed(time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC))

	attendanceRepo := memory.NewAttendanceRepository()
	leaveRepo := memory.NewLeaveRequestRepository()
	taskRepo := memory.NewTaskRepository()

	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, clk, time.UTC)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, clk, time.UTC)
	dashboardSvc := dashboardService.NewDashboardService(attendanceSvc, leaveSvc, taskRepo, clk, time.UTC)

	JWTService := jwt.NewJWTService(handlerTestSecret, handlerTestAccessExp)
	router := NewRouter(
		"test",
		JWTService,
		NewAttendanceHandler(attendanceSvc),
		NewLeaveHandler(leaveSvc),
		NewDashboardHandler(dashboardSvc),
	)

	token, _, err := JWTService.GenerateAccessToken(handlerTestEmployee, "employee")
	require.NoError(t, err)

	return testEnv{router: router, token: token, clk: clk}
}

func (e testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.token)

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeBody(t, rec)
	errObj, ok := body["error"].(map[string]interface{})
	require.True(t, ok, "response has no error object: %s", rec.Body.String())
	code, _ := errObj["code"].(string)
	return code
}

func TestAttendanceRoutes(t *testing.T) {
	t.Run("rejects requests without a token", func(t *testing.T) {
		env := newTestEnv(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/check-in/"+handlerTestEmployee, nil)
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("check-in then duplicate check-in", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(t, http.MethodPost, "/api/v1/attendance/check-in/"+handlerTestEmployee, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		rec = env.do(t, http.MethodPost, "/api/v1/attendance/check-in/"+handlerTestEmployee, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "ALREADY_CHECKED_IN", errorCode(t, rec))
	})

	t.Run("check-out without check-in", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(t, http.MethodPost, "/api/v1/attendance/check-out/"+handlerTestEmployee, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "NO_ACTIVE_CHECK_IN", errorCode(t, rec))
	})

	t.Run("full day over the wire", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(t, http.MethodPost, "/api/v1/attendance/check-in/"+handlerTestEmployee, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		env.clk.Advance(3 * time.Hour)
		rec = env.do(t, http.MethodPost, "/api/v1/attendance/start-break/"+handlerTestEmployee, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		env.clk.Advance(30 * time.Minute)
		rec = env.do(t, http.MethodPost, "/api/v1/attendance/end-break/"+handlerTestEmployee, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		env.clk.Advance(4*time.Hour + 30*time.Minute)
		rec = env.do(t, http.MethodPost, "/api/v1/attendance/check-out/"+handlerTestEmployee, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		data := body["data"].(map[string]interface{})
		assert.Equal(t, float64(450), data["working_minutes"])
		assert.Equal(t, float64(30), data["total_break_minutes"])
	})

	t.Run("today status", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(t, http.MethodGet, "/api/v1/attendance/today/"+handlerTestEmployee, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		data := body["data"].(map[string]interface{})
		assert.Equal(t, "2024-03-04", data["date"])
		assert.Equal(t, false, data["is_checked_in"])
	})

	t.Run("monthly summary validates query params", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(t, http.MethodGet, "/api/v1/attendance/monthly/"+handlerTestEmployee+"?year=2024&month=3", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = env.do(t, http.MethodGet, "/api/v1/attendance/monthly/"+handlerTestEmployee+"?year=2024&month=13", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		rec = env.do(t, http.MethodGet, "/api/v1/attendance/monthly/"+handlerTestEmployee, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLeaveRoutes(t *testing.T) {
	apply := map[string]string{
		"leave_type": "annual",
		"start_date": "2024-03-10",
		"end_date":   "2024-03-12",
		"reason":     "family trip",
	}

	t.Run("apply then overlapping apply", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(t, http.MethodPost, "/api/v1/leave/apply/"+handlerTestEmployee, apply)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		overlapping := map[string]string{
			"leave_type": "sick",
			"start_date": "2024-03-12",
			"end_date":   "2024-03-14",
			"reason":     "flu",
		}
		rec = env.do(t, http.MethodPost, "/api/v1/leave/apply/"+handlerTestEmployee, overlapping)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "OVERLAPPING_LEAVE", errorCode(t, rec))

		body := decodeBody(t, rec)
		details := body["error"].(map[string]interface{})["details"].(map[string]interface{})
		assert.Equal(t, "2024-03-10", details["conflict_start"])
		assert.Equal(t, "2024-03-12", details["conflict_end"])
	})

	t.Run("validation failure returns 422", func(t *testing.T) {
		env := newTestEnv(t)

		bad := map[string]string{
			"leave_type": "sabbatical",
			"start_date": "soon",
			"end_date":   "2024-03-12",
			"reason":     "",
		}
		rec := env.do(t, http.MethodPost, "/api/v1/leave/apply/"+handlerTestEmployee, bad)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
	})

	t.Run("cancel lifecycle", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(t, http.MethodPost, "/api/v1/leave/apply/"+handlerTestEmployee, apply)
		require.Equal(t, http.StatusCreated, rec.Code)

		body := decodeBody(t, rec)
		leaveID := body["data"].(map[string]interface{})["id"].(string)

		rec = env.do(t, http.MethodPut, "/api/v1/leave/cancel/"+handlerTestEmployee+"/"+leaveID, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = env.do(t, http.MethodPut, "/api/v1/leave/cancel/"+handlerTestEmployee+"/"+leaveID, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "NOT_CANCELLABLE", errorCode(t, rec))

		rec = env.do(t, http.MethodPut, "/api/v1/leave/cancel/"+handlerTestEmployee+"/nonexistent", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("balance", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(t, http.MethodGet, "/api/v1/leave/balance/"+handlerTestEmployee+"?year=2024", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		data := body["data"].(map[string]interface{})
		assert.Equal(t, float64(20), data["total_allotment"])
	})

	t.Run("list requests", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(t, http.MethodPost, "/api/v1/leave/apply/"+handlerTestEmployee, apply)
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = env.do(t, http.MethodGet, "/api/v1/leave/requests/"+handlerTestEmployee, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		requests := body["data"].(map[string]interface{})["requests"].([]interface{})
		assert.Len(t, requests, 1)
	})
}

func TestEmployeeAuthorization(t *testing.T) {
	t.Run("rejects acting as another employee", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(t, http.MethodPost, "/api/v1/attendance/check-in/emp-999", nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "FORBIDDEN", errorCode(t, rec))

		rec = env.do(t, http.MethodGet, "/api/v1/leave/balance/emp-999", nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = env.do(t, http.MethodGet, "/api/v1/dashboard/summary/emp-999", nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("own employee id passes", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(t, http.MethodPost, "/api/v1/attendance/check-in/"+handlerTestEmployee, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("token without an employee claim may address any employee", func(t *testing.T) {
		env := newTestEnv(t)

		JWTService := jwt.NewJWTService(handlerTestSecret, handlerTestAccessExp)
		serviceToken, _, err := JWTService.GenerateAccessToken("", "service")
		require.NoError(t, err)
		env.token = serviceToken

		rec := env.do(t, http.MethodGet, "/api/v1/attendance/today/emp-999", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestDashboardRoute(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/dashboard/summary/"+handlerTestEmployee, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, handlerTestEmployee, data["employee_id"])
	assert.Contains(t, data, "attendance")
	assert.Contains(t, data, "tasks")
	assert.Contains(t, data, "leave")
	assert.Contains(t, data, "today")
}
