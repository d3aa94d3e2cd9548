package contractshandler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/contracts"
	"hrportal/internal/transport/http/middleware"
)

type stubService struct {
	ContractService
	lastContract   contracts.Contract
	lastAssignment contracts.Assignment
	committed      decimal.Decimal
}

func (s *stubService) CreateContract(_ context.Context, c contracts.Contract) (contracts.Contract, error) {
	c.ID = uuid.NewString()
	s.lastContract = c
	return c, nil
}

func (s *stubService) CreateAssignment(_ context.Context, a contracts.Assignment) (contracts.Assignment, error) {
	if err := contracts.CheckWorkload(s.committed, a.WorkloadPercentage); err != nil {
		return contracts.Assignment{}, err
	}
	a.ID = uuid.NewString()
	s.lastAssignment = a
	return a, nil
}

func (s *stubService) ListAssignments(_ context.Context, contractID string) ([]contracts.Assignment, error) {
	if contractID != s.lastContract.ID {
		return nil, contracts.ErrContractNotFound
	}
	return nil, nil
}

func newRouter(svc ContractService, role string) http.Handler {
	h := NewHandler(svc, auth.StaticPermissions{}, nil)
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

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, path, bytes.NewBufferString(body)))
	return rec
}

func TestCreateContractDecodesDecimalSalary(t *testing.T) {
	svc := &stubService{}
	router := newRouter(svc, auth.RoleHR)
	employeeID := uuid.NewString()

	rec := do(t, router, http.MethodPost, "/hr/contracts",
		`{"employeeId":"`+employeeID+`","contractType":"permanent","startDate":"2024-01-01","salary":"4250.50"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if !svc.lastContract.Salary.Equal(decimal.RequireFromString("4250.50")) {
		t.Fatalf("unexpected salary %s", svc.lastContract.Salary)
	}

	var env struct {
		Data struct {
			Salary string `json:"salary"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Data.Salary != "4250.5" {
		t.Fatalf("expected salary rendered as string, got %q", env.Data.Salary)
	}
}

func TestCreateContractValidation(t *testing.T) {
	router := newRouter(&stubService{}, auth.RoleHR)
	employeeID := uuid.NewString()

	tests := []struct {
		name string
		body string
	}{
		{name: "missing employee", body: `{"contractType":"permanent","startDate":"2024-01-01","salary":1}`},
		{name: "unknown type", body: `{"employeeId":"` + employeeID + `","contractType":"gig","startDate":"2024-01-01"}`},
		{name: "missing start", body: `{"employeeId":"` + employeeID + `","contractType":"permanent"}`},
		{name: "bad currency", body: `{"employeeId":"` + employeeID + `","contractType":"permanent","startDate":"2024-01-01","currency":"EURO"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if rec := do(t, router, http.MethodPost, "/hr/contracts", tc.body); rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestCreateAssignmentWorkload(t *testing.T) {
	svc := &stubService{committed: decimal.NewFromInt(60)}
	router := newRouter(svc, auth.RoleHR)
	path := "/hr/contracts/" + uuid.NewString() + "/assignments"
	positionID := uuid.NewString()

	rec := do(t, router, http.MethodPost, path, `{"positionId":"`+positionID+`","workloadPercentage":50,"startDate":"2024-01-01"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected workload rejection, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = do(t, router, http.MethodPost, path, `{"positionId":"`+positionID+`","workloadPercentage":40,"startDate":"2024-01-01"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastAssignment.ContractID == "" {
		t.Fatal("expected contract id taken from the path")
	}
}

func TestContractRoutesPermissions(t *testing.T) {
	router := newRouter(&stubService{}, auth.RoleManager)
	if rec := do(t, router, http.MethodPost, "/hr/contracts", `{}`); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for manager write, got %d", rec.Code)
	}
	if rec := do(t, router, http.MethodGet, "/hr/contracts/"+uuid.NewString()+"/assignments", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown contract, got %d", rec.Code)
	}
}
