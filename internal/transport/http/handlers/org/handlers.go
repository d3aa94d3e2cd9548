package orghandler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/org"
	"hrportal/internal/platform/listing"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

type OrgService interface {
	ListEmployees(ctx context.Context, params listing.Params, filter org.EmployeeFilter) ([]org.Employee, listing.Meta, error)
	GetEmployee(ctx context.Context, employeeID string) (org.Employee, error)
	CreateEmployee(ctx context.Context, emp org.Employee) (org.Employee, error)
	UpdateEmployee(ctx context.Context, emp org.Employee) (org.Employee, error)
	DeactivateEmployee(ctx context.Context, employeeID string) error
	Subordinates(ctx context.Context, employeeID string, recursive bool) ([]org.Employee, error)
	Peers(ctx context.Context, employeeID string) ([]org.Employee, error)
	Chart(ctx context.Context, rootID string) ([]org.ChartNode, error)
	ManagerCycles(ctx context.Context) ([][]string, error)

	ListDepartments(ctx context.Context, params listing.Params) ([]org.Department, listing.Meta, error)
	GetDepartment(ctx context.Context, departmentID string) (org.Department, error)
	CreateDepartment(ctx context.Context, dep org.Department) (org.Department, error)
	UpdateDepartment(ctx context.Context, dep org.Department) (org.Department, error)
	DeleteDepartment(ctx context.Context, departmentID string) error

	ListPositions(ctx context.Context, params listing.Params, departmentID string) ([]org.Position, listing.Meta, error)
	GetPosition(ctx context.Context, positionID string) (org.Position, error)
	CreatePosition(ctx context.Context, pos org.Position) (org.Position, error)
	UpdatePosition(ctx context.Context, pos org.Position) (org.Position, error)
	DeletePosition(ctx context.Context, positionID string) error
}

type Handler struct {
	Service OrgService
	Perms   middleware.PermissionStore
	Audit   shared.Auditor
}

func NewHandler(service OrgService, perms middleware.PermissionStore, auditor shared.Auditor) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditor}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	read := middleware.RequirePermission(auth.PermOrgRead, h.Perms)
	write := middleware.RequirePermission(auth.PermOrgWrite, h.Perms)

	r.With(read).Get("/employees", h.handleListEmployees)
	r.With(write).Post("/employees", h.handleCreateEmployee)
	r.With(read).Get("/employees/{employeeID}", h.handleGetEmployee)
	r.With(write).Put("/employees/{employeeID}", h.handleUpdateEmployee)
	r.With(write).Delete("/employees/{employeeID}", h.handleDeactivateEmployee)
	r.With(read).Get("/employees/{employeeID}/subordinates", h.handleSubordinates)
	r.With(read).Get("/employees/{employeeID}/peers", h.handlePeers)

	r.With(read).Get("/org/chart", h.handleChart)
	r.With(write).Get("/org/integrity", h.handleIntegrity)

	r.With(read).Get("/departments", h.handleListDepartments)
	r.With(write).Post("/departments", h.handleCreateDepartment)
	r.With(read).Get("/departments/{departmentID}", h.handleGetDepartment)
	r.With(write).Put("/departments/{departmentID}", h.handleUpdateDepartment)
	r.With(write).Delete("/departments/{departmentID}", h.handleDeleteDepartment)

	r.With(read).Get("/positions", h.handleListPositions)
	r.With(write).Post("/positions", h.handleCreatePosition)
	r.With(read).Get("/positions/{positionID}", h.handleGetPosition)
	r.With(write).Put("/positions/{positionID}", h.handleUpdatePosition)
	r.With(write).Delete("/positions/{positionID}", h.handleDeletePosition)
}

func actor(r *http.Request) string {
	user, _ := middleware.GetUser(r.Context())
	return user.UserID
}
