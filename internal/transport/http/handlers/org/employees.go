package orghandler

import (
	"net/http"

	"hrportal/internal/domain/audit"
	"hrportal/internal/domain/org"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

type employeeRequest struct {
	FirstName    string `json:"firstName" validate:"required,max=100"`
	LastName     string `json:"lastName" validate:"required,max=100"`
	Email        string `json:"email" validate:"required,email"`
	NationalID   string `json:"nationalId" validate:"max=64"`
	DepartmentID string `json:"departmentId" validate:"omitempty,uuid"`
	PositionID   string `json:"positionId" validate:"omitempty,uuid"`
	ManagerID    string `json:"managerId" validate:"omitempty,uuid"`
	UserID       string `json:"userId" validate:"omitempty,uuid"`
	HireDate     string `json:"hireDate"`
	IsActive     *bool  `json:"isActive"`
}

func (p employeeRequest) toEmployee(v *shared.Validator) org.Employee {
	emp := org.Employee{
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Email:        p.Email,
		NationalID:   p.NationalID,
		DepartmentID: p.DepartmentID,
		PositionID:   p.PositionID,
		ManagerID:    p.ManagerID,
		UserID:       p.UserID,
		HireDate:     v.OptionalDate("hireDate", p.HireDate),
		IsActive:     true,
	}
	if p.IsActive != nil {
		emp.IsActive = *p.IsActive
	}
	return emp
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	departmentID, ok := shared.QueryID(w, r, "departmentId", requestID)
	if !ok {
		return
	}
	managerID, ok := shared.QueryID(w, r, "managerId", requestID)
	if !ok {
		return
	}
	filter := org.EmployeeFilter{
		DepartmentID: departmentID,
		ManagerID:    managerID,
		ActiveOnly:   shared.QueryBool(r, "activeOnly"),
	}
	items, meta, err := h.Service.ListEmployees(r.Context(), shared.ParseListParams(r), filter)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Paginated(w, items, meta, requestID)
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employeeID, ok := shared.PathID(w, r, "employeeID", requestID)
	if !ok {
		return
	}
	emp, err := h.Service.GetEmployee(r.Context(), employeeID)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, emp, requestID)
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload employeeRequest
	if !shared.DecodeAndValidate(w, r, &payload, requestID) {
		return
	}
	v := shared.NewValidator()
	emp := payload.toEmployee(v)
	if v.Reject(w, requestID) {
		return
	}

	created, err := h.Service.CreateEmployee(r.Context(), emp)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	shared.RecordAudit(r, h.Audit, actor(r), audit.ActionCreate, "employee", created.ID, nil, created)
	api.Created(w, created, requestID)
}

func (h *Handler) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employeeID, ok := shared.PathID(w, r, "employeeID", requestID)
	if !ok {
		return
	}
	var payload employeeRequest
	if !shared.DecodeAndValidate(w, r, &payload, requestID) {
		return
	}
	v := shared.NewValidator()
	emp := payload.toEmployee(v)
	if v.Reject(w, requestID) {
		return
	}

	before, err := h.Service.GetEmployee(r.Context(), employeeID)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	emp.ID = employeeID
	if payload.IsActive == nil {
		emp.IsActive = before.IsActive
	}
	updated, err := h.Service.UpdateEmployee(r.Context(), emp)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	shared.RecordAudit(r, h.Audit, actor(r), audit.ActionUpdate, "employee", employeeID, before, updated)
	api.Success(w, updated, requestID)
}

func (h *Handler) handleDeactivateEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employeeID, ok := shared.PathID(w, r, "employeeID", requestID)
	if !ok {
		return
	}
	if err := h.Service.DeactivateEmployee(r.Context(), employeeID); err != nil {
		api.FailError(w, err, requestID)
		return
	}
	shared.RecordAudit(r, h.Audit, actor(r), audit.ActionDeactivate, "employee", employeeID, nil, nil)
	api.Success(w, map[string]any{"id": employeeID, "isActive": false}, requestID)
}

func (h *Handler) handleSubordinates(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employeeID, ok := shared.PathID(w, r, "employeeID", requestID)
	if !ok {
		return
	}
	items, err := h.Service.Subordinates(r.Context(), employeeID, shared.QueryBool(r, "recursive"))
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, nonNil(items), requestID)
}

func (h *Handler) handlePeers(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employeeID, ok := shared.PathID(w, r, "employeeID", requestID)
	if !ok {
		return
	}
	items, err := h.Service.Peers(r.Context(), employeeID)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, nonNil(items), requestID)
}

func (h *Handler) handleChart(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	rootID, ok := shared.QueryID(w, r, "rootId", requestID)
	if !ok {
		return
	}
	nodes, err := h.Service.Chart(r.Context(), rootID)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	if nodes == nil {
		nodes = []org.ChartNode{}
	}
	api.Success(w, nodes, requestID)
}

func (h *Handler) handleIntegrity(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	cycles, err := h.Service.ManagerCycles(r.Context())
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	if cycles == nil {
		cycles = [][]string{}
	}
	api.Success(w, map[string]any{"managerCycles": cycles, "healthy": len(cycles) == 0}, requestID)
}

func nonNil(items []org.Employee) []org.Employee {
	if items == nil {
		return []org.Employee{}
	}
	return items
}
