package orghandler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/org"
	"hrportal/internal/platform/listing"
	"hrportal/internal/transport/http/middleware"
)

type stubService struct {
	OrgService
	employees map[string]org.Employee
	cycles    [][]string
	created   []org.Employee
}

func (s *stubService) GetEmployee(_ context.Context, id string) (org.Employee, error) {
	emp, ok := s.employees[id]
	if !ok {
		return org.Employee{}, org.ErrEmployeeNotFound
	}
	return emp, nil
}

func (s *stubService) CreateEmployee(_ context.Context, emp org.Employee) (org.Employee, error) {
	emp.ID = uuid.NewString()
	s.created = append(s.created, emp)
	return emp, nil
}

func (s *stubService) UpdateEmployee(_ context.Context, emp org.Employee) (org.Employee, error) {
	if emp.ManagerID == emp.ID {
		return org.Employee{}, org.ErrSelfManager
	}
	s.employees[emp.ID] = emp
	return emp, nil
}

func (s *stubService) ListEmployees(_ context.Context, params listing.Params, _ org.EmployeeFilter) ([]org.Employee, listing.Meta, error) {
	items := make([]org.Employee, 0, len(s.employees))
	for _, emp := range s.employees {
		items = append(items, emp)
	}
	return items, listing.NewMeta(params, len(items)), nil
}

func (s *stubService) Subordinates(_ context.Context, _ string, _ bool) ([]org.Employee, error) {
	return nil, nil
}

func (s *stubService) ManagerCycles(context.Context) ([][]string, error) {
	return s.cycles, nil
}

type recordingAuditor struct {
	actions []string
}

func (a *recordingAuditor) Record(_ context.Context, _, action, entityType, _, _, _ string, _, _ any) error {
	a.actions = append(a.actions, action+":"+entityType)
	return nil
}

func newRouter(svc OrgService, auditor *recordingAuditor, role string) http.Handler {
	h := NewHandler(svc, auth.StaticPermissions{}, auditor)
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := middleware.WithUser(req.Context(), auth.UserContext{UserID: "actor-1", RoleName: role})
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Route("/hr", h.RegisterRoutes)
	return r
}

func TestEmployeeRoutes(t *testing.T) {
	aliceID := uuid.NewString()
	svc := &stubService{employees: map[string]org.Employee{
		aliceID: {ID: aliceID, FirstName: "Alice", LastName: "Smith", Email: "alice@example.com", IsActive: true},
	}}
	auditor := &recordingAuditor{}
	router := newRouter(svc, auditor, auth.RoleHR)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{name: "list", method: http.MethodGet, path: "/hr/employees?page=1&limit=5", status: http.StatusOK},
		{name: "get", method: http.MethodGet, path: "/hr/employees/" + aliceID, status: http.StatusOK},
		{name: "get missing", method: http.MethodGet, path: "/hr/employees/" + uuid.NewString(), status: http.StatusNotFound},
		{name: "get bad id", method: http.MethodGet, path: "/hr/employees/abc", status: http.StatusBadRequest},
		{name: "create", method: http.MethodPost, path: "/hr/employees",
			body: `{"firstName":"Bob","lastName":"Jones","email":"bob@example.com","hireDate":"2024-02-01"}`, status: http.StatusCreated},
		{name: "create bad email", method: http.MethodPost, path: "/hr/employees",
			body: `{"firstName":"Bob","lastName":"Jones","email":"bob"}`, status: http.StatusBadRequest},
		{name: "create bad date", method: http.MethodPost, path: "/hr/employees",
			body: `{"firstName":"Bob","lastName":"Jones","email":"bob@example.com","hireDate":"01/02/2024"}`, status: http.StatusBadRequest},
		{name: "update self manager", method: http.MethodPut, path: "/hr/employees/" + aliceID,
			body: `{"firstName":"Alice","lastName":"Smith","email":"alice@example.com","managerId":"` + aliceID + `"}`, status: http.StatusBadRequest},
		{name: "subordinates empty", method: http.MethodGet, path: "/hr/employees/" + aliceID + "/subordinates?recursive=true", status: http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, bytes.NewBufferString(tc.body)))
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, rec.Code, rec.Body.String())
			}
		})
	}

	if len(svc.created) != 1 || svc.created[0].HireDate == nil || !svc.created[0].IsActive {
		t.Fatalf("unexpected created employees %+v", svc.created)
	}
	if len(auditor.actions) != 1 || auditor.actions[0] != "create:employee" {
		t.Fatalf("unexpected audit actions %v", auditor.actions)
	}
}

func TestSubordinatesRenderEmptyArray(t *testing.T) {
	id := uuid.NewString()
	router := newRouter(&stubService{employees: map[string]org.Employee{}}, &recordingAuditor{}, auth.RoleEmployee)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hr/employees/"+id+"/subordinates", nil))

	var env struct {
		Data []org.Employee `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Data == nil {
		t.Fatalf("expected [] not null: %s", rec.Body.String())
	}
}

func TestWriteRoutesRequirePermission(t *testing.T) {
	router := newRouter(&stubService{employees: map[string]org.Employee{}}, &recordingAuditor{}, auth.RoleEmployee)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/hr/employees",
		bytes.NewBufferString(`{"firstName":"Bob","lastName":"Jones","email":"bob@example.com"}`)))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestIntegrityReportsCycles(t *testing.T) {
	router := newRouter(&stubService{cycles: [][]string{{"a", "b"}}}, &recordingAuditor{}, auth.RoleHR)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hr/org/integrity", nil))

	var env struct {
		Data struct {
			Healthy       bool       `json:"healthy"`
			ManagerCycles [][]string `json:"managerCycles"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Data.Healthy || len(env.Data.ManagerCycles) != 1 {
		t.Fatalf("unexpected integrity payload %+v", env.Data)
	}
}
