package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/upstream"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func sampleMonthView() attendance.MonthViewResponse {
	id := "rec-1"
	return attendance.MonthViewResponse{
		Employee: attendance.EmployeeSummary{EmployeeID: "EMP001", FullName: "Ada Lovelace"},
		Range: attendance.MonthRange{
			Year: 2024, Month: 2, StartDate: "2024-02-01", EndDate: "2024-02-29",
		},
		Rows: []attendance.DisplayRow{
			{ID: &id, Date: "2024-02-01", Weekday: "Thu", Status: attendance.StatusPresent},
			{ID: nil, Date: "2024-02-02", Weekday: "Fri", Status: attendance.StatusNA},
		},
		Stats: attendance.AttendanceStats{
			WorkingDays: 1, PresentDays: 1, AttendanceRate: 100, RateDisplay: "100.0", RateSource: attendance.RateSourceComputed,
		},
		RecordCount: 1,
	}
}

func TestAttendanceHandler_GetMonthView(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		router, svc, _ := setupRouter(t)
		svc.On("GetMonthView", mock.Anything, attendance.MonthViewRequest{EmployeeID: "emp001", Year: 2024, Month: 2}).
			Return(sampleMonthView(), nil).Once()

		w, resp := doRequest(t, router, http.MethodGet, "/api/v1/attendance/employees/emp001/month?year=2024&month=2", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, resp["success"].(bool))
		data := resp["data"].(map[string]interface{})
		rows := data["rows"].([]interface{})
		assert.Len(t, rows, 2)
		first := rows[0].(map[string]interface{})
		assert.Equal(t, "rec-1", first["id"])
		assert.Equal(t, "Thu", first["day"])
		second := rows[1].(map[string]interface{})
		assert.Nil(t, second["id"])
		assert.Equal(t, "NA", second["status"])
		stats := data["stats"].(map[string]interface{})
		assert.Equal(t, "100.0", stats["attendance_rate_display"])
	})

	t.Run("missing year and month are left to the service", func(t *testing.T) {
		router, svc, _ := setupRouter(t)
		svc.On("GetMonthView", mock.Anything, attendance.MonthViewRequest{EmployeeID: "EMP001"}).
			Return(sampleMonthView(), nil).Once()

		w, _ := doRequest(t, router, http.MethodGet, "/api/v1/attendance/employees/EMP001/month", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("non numeric query parameters", func(t *testing.T) {
		router, _, _ := setupRouter(t)

		w, resp := doRequest(t, router, http.MethodGet, "/api/v1/attendance/employees/EMP001/month?year=abc&month=xyz", "")

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.False(t, resp["success"].(bool))
		details := resp["error"].(map[string]interface{})["details"].(map[string]interface{})
		assert.Contains(t, details, "year")
		assert.Contains(t, details, "month")
	})

	t.Run("explicit zero year and month are rejected", func(t *testing.T) {
		router, _, _ := setupRouter(t)

		w, resp := doRequest(t, router, http.MethodGet, "/api/v1/attendance/employees/EMP001/month?year=0&month=0", "")

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		details := resp["error"].(map[string]interface{})["details"].(map[string]interface{})
		assert.Equal(t, "year must be between 1 and 9999", details["year"])
		assert.Equal(t, "month must be between 1 and 12", details["month"])
	})

	t.Run("out of range month is rejected", func(t *testing.T) {
		router, _, _ := setupRouter(t)

		w, _ := doRequest(t, router, http.MethodGet, "/api/v1/attendance/employees/EMP001/month?year=2024&month=13", "")
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("signed month is rejected before the service", func(t *testing.T) {
		router, _, _ := setupRouter(t)

		w, _ := doRequest(t, router, http.MethodGet, "/api/v1/attendance/employees/EMP001/month?year=2024&month=-1", "")
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	errorCases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", validator.ValidationErrors{{Field: "month", Message: "month must be between 1 and 12"}}, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"employee not found", employee.ErrEmployeeNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"records unavailable", fmt.Errorf("%w: %w", attendance.ErrRecordsUnavailable, upstream.ErrUnavailable), http.StatusBadGateway, "UPSTREAM_UNAVAILABLE"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}
	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			router, svc, _ := setupRouter(t)
			svc.On("GetMonthView", mock.Anything, mock.Anything).Return(attendance.MonthViewResponse{}, tc.err).Once()

			w, resp := doRequest(t, router, http.MethodGet, "/api/v1/attendance/employees/EMP001/month?year=2024&month=2", "")

			assert.Equal(t, tc.status, w.Code)
			assert.False(t, resp["success"].(bool))
			assert.Equal(t, tc.code, resp["error"].(map[string]interface{})["code"])
		})
	}
}

func TestAttendanceHandler_Mark(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		router, svc, _ := setupRouter(t)
		svc.On("MarkAttendance", mock.Anything, attendance.MarkAttendanceRequest{
			EmployeeID: "EMP001", Date: "2024-02-10", Status: "present",
		}).Return(attendance.RecordResponse{
			ID: "rec-9", EmployeeID: "EMP001", Date: "2024-02-10", Status: attendance.StatusPresent,
		}, nil).Once()

		w, resp := doRequest(t, router, http.MethodPost, "/api/v1/attendance",
			`{"employee_id":"EMP001","date":"2024-02-10","status":"present"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, resp["success"].(bool))
		assert.Equal(t, "Attendance marked successfully", resp["message"])
		data := resp["data"].(map[string]interface{})
		assert.Equal(t, "rec-9", data["id"])
	})

	t.Run("malformed body", func(t *testing.T) {
		router, _, _ := setupRouter(t)

		w, resp := doRequest(t, router, http.MethodPost, "/api/v1/attendance", `{"employee_id":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, resp["success"].(bool))
	})

	errorCases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"already marked", attendance.ErrAttendanceAlreadyMarked, http.StatusConflict, "Attendance already marked for this date"},
		{"future date", attendance.ErrFutureDate, http.StatusBadRequest, "Attendance date cannot be in the future"},
		{"rejected upstream", &upstream.RejectedError{StatusCode: http.StatusBadRequest, Detail: "Attendance already marked for EMP001 on 2024-02-10"}, http.StatusBadRequest, "Attendance already marked for EMP001 on 2024-02-10"},
		{"source down", upstream.ErrUnavailable, http.StatusBadGateway, "Attendance source is unavailable, please retry"},
	}
	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			router, svc, _ := setupRouter(t)
			svc.On("MarkAttendance", mock.Anything, mock.Anything).Return(attendance.RecordResponse{}, tc.err).Once()

			w, resp := doRequest(t, router, http.MethodPost, "/api/v1/attendance",
				`{"employee_id":"EMP001","date":"2024-02-10","status":"present"}`)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.message, resp["error"].(map[string]interface{})["message"])
		})
	}
}

func TestAttendanceHandler_YearOptions(t *testing.T) {
	router, svc, _ := setupRouter(t)
	svc.On("YearOptions", mock.Anything).Return([]attendance.YearOption{
		{Value: 2024, Label: "2024"},
		{Value: 2023, Label: "2023"},
	}).Once()

	w, resp := doRequest(t, router, http.MethodGet, "/api/v1/attendance/years", "")

	assert.Equal(t, http.StatusOK, w.Code)
	years := resp["data"].([]interface{})
	assert.Len(t, years, 2)
	assert.Equal(t, float64(2024), years[0].(map[string]interface{})["value"])
}
