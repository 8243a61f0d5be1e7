package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAttendanceService struct {
	mock.Mock
}

func (m *MockAttendanceService) GetMonthView(ctx context.Context, req attendance.MonthViewRequest) (attendance.MonthViewResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(attendance.MonthViewResponse), args.Error(1)
}

func (m *MockAttendanceService) MarkAttendance(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.RecordResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(attendance.RecordResponse), args.Error(1)
}

func (m *MockAttendanceService) YearOptions(ctx context.Context) []attendance.YearOption {
	args := m.Called(ctx)
	return args.Get(0).([]attendance.YearOption)
}

type MockEmployeeService struct {
	mock.Mock
}

func (m *MockEmployeeService) GetEmployee(ctx context.Context, employeeID string) (employee.EmployeeResponse, error) {
	args := m.Called(ctx, employeeID)
	return args.Get(0).(employee.EmployeeResponse), args.Error(1)
}

func (m *MockEmployeeService) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(employee.ListEmployeeResponse), args.Error(1)
}

func (m *MockEmployeeService) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(employee.EmployeeResponse), args.Error(1)
}

func (m *MockEmployeeService) DeleteEmployee(ctx context.Context, employeeID string) error {
	args := m.Called(ctx, employeeID)
	return args.Error(0)
}

func setupRouter(t *testing.T) (http.Handler, *MockAttendanceService, *MockEmployeeService) {
	t.Helper()
	attendanceSvc := new(MockAttendanceService)
	employeeSvc := new(MockEmployeeService)
	t.Cleanup(func() {
		attendanceSvc.AssertExpectations(t)
		employeeSvc.AssertExpectations(t)
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := NewRouter(
		logger,
		[]string{"http://localhost:3000"},
		NewAttendanceHandler(attendanceSvc),
		NewEmployeeHandler(employeeSvc),
	)
	return router, attendanceSvc, employeeSvc
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return w, resp
}
