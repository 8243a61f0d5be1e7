package http

import (
	"net/http"
	"testing"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestEmployeeHandler_GetEmployee(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		router, _, svc := setupRouter(t)
		svc.On("GetEmployee", mock.Anything, "EMP001").Return(employee.EmployeeResponse{
			ID: "1", EmployeeID: "EMP001", FullName: "Ada Lovelace", Email: "ada@example.com", Department: "Engineering", Status: "active",
		}, nil).Once()

		w, resp := doRequest(t, router, http.MethodGet, "/api/v1/employees/EMP001", "")

		assert.Equal(t, http.StatusOK, w.Code)
		data := resp["data"].(map[string]interface{})
		assert.Equal(t, "Ada Lovelace", data["full_name"])
	})

	t.Run("not found", func(t *testing.T) {
		router, _, svc := setupRouter(t)
		svc.On("GetEmployee", mock.Anything, "EMP404").Return(employee.EmployeeResponse{}, employee.ErrEmployeeNotFound).Once()

		w, resp := doRequest(t, router, http.MethodGet, "/api/v1/employees/EMP404", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.False(t, resp["success"].(bool))
	})
}

func TestEmployeeHandler_ListEmployees(t *testing.T) {
	router, _, svc := setupRouter(t)
	search := "ada"
	svc.On("ListEmployees", mock.Anything, employee.EmployeeFilter{Search: &search, Page: 2, Limit: 5}).
		Return(employee.ListEmployeeResponse{
			TotalCount: 6,
			Page:       2,
			Limit:      5,
			TotalPages: 2,
			Showing:    "6-6 of 6",
			Employees:  []employee.EmployeeResponse{{EmployeeID: "EMP006", FullName: "Ada Byron"}},
		}, nil).Once()

	w, resp := doRequest(t, router, http.MethodGet, "/api/v1/employees?search=ada&page=2&limit=5&ignored=x", "")

	assert.Equal(t, http.StatusOK, w.Code)
	meta := resp["meta"].(map[string]interface{})
	assert.Equal(t, float64(6), meta["total_items"])
	assert.Equal(t, float64(2), meta["total_pages"])
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "6-6 of 6", data["showing"])
}

func TestEmployeeHandler_CreateEmployee(t *testing.T) {
	body := `{"employee_id":"emp042","full_name":"Budi Santoso","email":"budi@company.com","department":"Finance"}`
	decoded := employee.CreateEmployeeRequest{EmployeeID: "emp042", FullName: "Budi Santoso", Email: "budi@company.com", Department: "Finance"}

	t.Run("created", func(t *testing.T) {
		router, _, svc := setupRouter(t)
		svc.On("CreateEmployee", mock.Anything, decoded).Return(employee.EmployeeResponse{
			ID: "42", EmployeeID: "EMP042", FullName: "Budi Santoso", Email: "budi@company.com", Department: "Finance", Status: "active",
		}, nil).Once()

		w, resp := doRequest(t, router, http.MethodPost, "/api/v1/employees", body)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "Employee created successfully", resp["message"])
		data := resp["data"].(map[string]interface{})
		assert.Equal(t, "EMP042", data["employee_id"])
	})

	t.Run("invalid fields", func(t *testing.T) {
		router, _, svc := setupRouter(t)
		svc.On("CreateEmployee", mock.Anything, mock.Anything).Return(employee.EmployeeResponse{},
			validator.ValidationErrors{{Field: "email", Message: "email format is invalid"}}).Once()

		w, resp := doRequest(t, router, http.MethodPost, "/api/v1/employees", body)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		details := resp["error"].(map[string]interface{})["details"].(map[string]interface{})
		assert.Equal(t, "email format is invalid", details["email"])
	})

	t.Run("duplicate id", func(t *testing.T) {
		router, _, svc := setupRouter(t)
		svc.On("CreateEmployee", mock.Anything, decoded).Return(employee.EmployeeResponse{}, employee.ErrEmployeeCodeExists).Once()

		w, _ := doRequest(t, router, http.MethodPost, "/api/v1/employees", body)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		router, _, svc := setupRouter(t)
		svc.On("CreateEmployee", mock.Anything, decoded).Return(employee.EmployeeResponse{}, employee.ErrEmailExists).Once()

		w, _ := doRequest(t, router, http.MethodPost, "/api/v1/employees", body)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		router, _, svc := setupRouter(t)

		w, _ := doRequest(t, router, http.MethodPost, "/api/v1/employees", `{"employee_id":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "CreateEmployee", mock.Anything, mock.Anything)
	})
}

func TestEmployeeHandler_DeleteEmployee(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		router, _, svc := setupRouter(t)
		svc.On("DeleteEmployee", mock.Anything, "EMP042").Return(nil).Once()

		w, resp := doRequest(t, router, http.MethodDelete, "/api/v1/employees/EMP042", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Employee EMP042 deleted successfully", resp["message"])
	})

	t.Run("not found", func(t *testing.T) {
		router, _, svc := setupRouter(t)
		svc.On("DeleteEmployee", mock.Anything, "EMP404").Return(employee.ErrEmployeeNotFound).Once()

		w, _ := doRequest(t, router, http.MethodDelete, "/api/v1/employees/EMP404", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
