package employee_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrms/internal/employee"
	employeeerrors "go-hrms/internal/employee/errors"
	"go-hrms/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeEmployeeService struct {
	createFn          func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	getAllFn          func(ctx context.Context) ([]employee.EmployeeResponse, error)
	getByIDFn         func(ctx context.Context, id string) (employee.EmployeeResponse, error)
	getLeaveSummaryFn func(ctx context.Context, id string) (employee.LeaveBalances, error)
	updateFn          func(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
}

func (f *fakeEmployeeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.createFn(ctx, req)
}
func (f *fakeEmployeeService) GetAll(ctx context.Context) ([]employee.EmployeeResponse, error) {
	return f.getAllFn(ctx)
}
func (f *fakeEmployeeService) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeEmployeeService) GetLeaveSummary(ctx context.Context, id string) (employee.LeaveBalances, error) {
	return f.getLeaveSummaryFn(ctx, id)
}
func (f *fakeEmployeeService) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.updateFn(ctx, id, req)
}

type apiEnvelope struct {
	Ok   bool            `json:"ok"`
	Data json.RawMessage `json:"data"`
	Meta *struct {
		Total int `json:"total"`
	} `json:"meta"`
	Error *struct {
		Code    string   `json:"code"`
		Message string   `json:"message"`
		Details []string `json:"details"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	assert.NoError(t, json.Unmarshal(body, &env))
	return env
}

func newRouter(svc employee.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	employee.RegisterRoutes(r.Group("/api/v1"), employee.NewHandler(svc))
	return r
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &fakeEmployeeService{
			createFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, "Jo", req.FirstName.Value)
				assert.True(t, req.Role.Null)
				assert.Equal(t, 12, req.SickLeaveTotal.Value)
				assert.False(t, req.Gender.Present)
				return employee.EmployeeResponse{ID: "e-1", FirstName: "Jo"}, nil
			},
		}

		w := doJSON(newRouter(svc), http.MethodPost, "/api/v1/employees",
			`{"first_name":"Jo","role":null,"sick_leave_total":"12"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		assert.Nil(t, env.Meta)
	})

	t.Run("validation errors are listed", func(t *testing.T) {
		svc := &fakeEmployeeService{
			createFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, apperror.Validation([]string{"First name is required.", "Email is required."})
			},
		}

		w := doJSON(newRouter(svc), http.MethodPost, "/api/v1/employees", `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, apperror.CodeInvalidInput, env.Error.Code)
		assert.Equal(t, []string{"First name is required.", "Email is required."}, env.Error.Details)
	})

	t.Run("non-string text field is rejected before the service", func(t *testing.T) {
		svc := &fakeEmployeeService{}

		w := doJSON(newRouter(svc), http.MethodPost, "/api/v1/employees", `{"first_name":5}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, apperror.CodeInvalidInput, env.Error.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		svc := &fakeEmployeeService{}

		w := doJSON(newRouter(svc), http.MethodPost, "/api/v1/employees", `{"first_name":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, []string{"Request body must be valid JSON."}, env.Error.Details)
	})

	t.Run("email conflict", func(t *testing.T) {
		svc := &fakeEmployeeService{
			createFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmailAlreadyExists
			},
		}

		w := doJSON(newRouter(svc), http.MethodPost, "/api/v1/employees", `{"email":"a@b.c"}`)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, apperror.CodeConflict, env.Error.Code)
		assert.Equal(t, "Email already in use.", env.Error.Message)
	})
}

func TestHandler_GetAll(t *testing.T) {
	svc := &fakeEmployeeService{
		getAllFn: func(ctx context.Context) ([]employee.EmployeeResponse, error) {
			return []employee.EmployeeResponse{{ID: "e-1"}, {ID: "e-2"}}, nil
		},
	}

	w := doJSON(newRouter(svc), http.MethodGet, "/api/v1/employees", "")

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, 2, env.Meta.Total)

	var data []employee.EmployeeResponse
	assert.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Len(t, data, 2)
}

func TestHandler_GetById(t *testing.T) {
	svc := &fakeEmployeeService{
		getByIDFn: func(ctx context.Context, id string) (employee.EmployeeResponse, error) {
			assert.Equal(t, "abc", id)
			return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		},
	}

	w := doJSON(newRouter(svc), http.MethodGet, "/api/v1/employees/abc", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, apperror.CodeNotFound, env.Error.Code)
	assert.Equal(t, "Employee not found", env.Error.Message)
}

func TestHandler_GetLeaveSummary(t *testing.T) {
	svc := &fakeEmployeeService{
		getLeaveSummaryFn: func(ctx context.Context, id string) (employee.LeaveBalances, error) {
			return employee.ComputeLeaveBalances(employee.LeaveCounters{SickTotal: 10, SickUsed: 10}, employee.GenderMale), nil
		},
	}

	w := doJSON(newRouter(svc), http.MethodGet, "/api/v1/employees/e-1/leave-summary", "")

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())

	var data employee.LeaveBalances
	assert.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, employee.LeaveBucket{Total: 10, Used: 10, Remaining: 0, Eligible: false}, data.Sick)
	assert.False(t, data.Maternity.Eligible)
}

func TestHandler_Update(t *testing.T) {
	t.Run("partial body", func(t *testing.T) {
		svc := &fakeEmployeeService{
			updateFn: func(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, "e-1", id)
				assert.True(t, req.Gender.Present)
				assert.False(t, req.Email.Present)
				assert.True(t, req.MaternityLeaveTotal.Valid)
				return employee.EmployeeResponse{ID: id, Gender: employee.GenderFemale}, nil
			},
		}

		w := doJSON(newRouter(svc), http.MethodPatch, "/api/v1/employees/e-1",
			`{"gender":"female","maternity_leave_total":90}`)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("department not found", func(t *testing.T) {
		svc := &fakeEmployeeService{
			updateFn: func(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrDepartmentNotFound
			},
		}

		w := doJSON(newRouter(svc), http.MethodPatch, "/api/v1/employees/e-1", `{"department_id":"x"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
