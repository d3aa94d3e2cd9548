package contractshandler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"hrportal/internal/domain/audit"
	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/contracts"
	"hrportal/internal/platform/listing"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

type ContractService interface {
	ListContracts(ctx context.Context, params listing.Params, filter contracts.ContractFilter) ([]contracts.Contract, listing.Meta, error)
	GetContract(ctx context.Context, contractID string) (contracts.Contract, error)
	CreateContract(ctx context.Context, c contracts.Contract) (contracts.Contract, error)
	UpdateContract(ctx context.Context, c contracts.Contract) (contracts.Contract, error)
	DeleteContract(ctx context.Context, contractID string) error
	ListAssignments(ctx context.Context, contractID string) ([]contracts.Assignment, error)
	GetAssignment(ctx context.Context, assignmentID string) (contracts.Assignment, error)
	CreateAssignment(ctx context.Context, a contracts.Assignment) (contracts.Assignment, error)
	UpdateAssignment(ctx context.Context, a contracts.Assignment) (contracts.Assignment, error)
	DeleteAssignment(ctx context.Context, assignmentID string) error
}

type Handler struct {
	Service ContractService
	Perms   middleware.PermissionStore
	Audit   shared.Auditor
}

func NewHandler(service ContractService, perms middleware.PermissionStore, auditor shared.Auditor) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditor}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	read := middleware.RequirePermission(auth.PermContractsRead, h.Perms)
	write := middleware.RequirePermission(auth.PermContractsWrite, h.Perms)

	r.With(read).Get("/contracts", h.handleListContracts)
	r.With(write).Post("/contracts", h.handleCreateContract)
	r.With(read).Get("/contracts/{contractID}", h.handleGetContract)
	r.With(write).Put("/contracts/{contractID}", h.handleUpdateContract)
	r.With(write).Delete("/contracts/{contractID}", h.handleDeleteContract)
	r.With(read).Get("/contracts/{contractID}/assignments", h.handleListAssignments)
	r.With(write).Post("/contracts/{contractID}/assignments", h.handleCreateAssignment)
	r.With(read).Get("/assignments/{assignmentID}", h.handleGetAssignment)
	r.With(write).Put("/assignments/{assignmentID}", h.handleUpdateAssignment)
	r.With(write).Delete("/assignments/{assignmentID}", h.handleDeleteAssignment)
}

type contractRequest struct {
	EmployeeID   string          `json:"employeeId" validate:"omitempty,uuid"`
	ContractType string          `json:"contractType" validate:"required,oneof=permanent fixed_term part_time internship"`
	StartDate    string          `json:"startDate"`
	EndDate      string          `json:"endDate"`
	Salary       decimal.Decimal `json:"salary"`
	Currency     string          `json:"currency" validate:"omitempty,len=3"`
	Status       string          `json:"status" validate:"omitempty,oneof=active terminated expired"`
}

func (p contractRequest) toContract(v *shared.Validator) contracts.Contract {
	return contracts.Contract{
		EmployeeID:   p.EmployeeID,
		ContractType: p.ContractType,
		StartDate:    v.Date("startDate", p.StartDate),
		EndDate:      v.OptionalDate("endDate", p.EndDate),
		Salary:       p.Salary,
		Currency:     p.Currency,
		Status:       p.Status,
	}
}

type assignmentRequest struct {
	PositionID         string          `json:"positionId" validate:"required,uuid"`
	WorkloadPercentage decimal.Decimal `json:"workloadPercentage"`
	StartDate          string          `json:"startDate"`
	EndDate            string          `json:"endDate"`
}

func (p assignmentRequest) toAssignment(v *shared.Validator) contracts.Assignment {
	return contracts.Assignment{
		PositionID:         p.PositionID,
		WorkloadPercentage: p.WorkloadPercentage,
		StartDate:          v.Date("startDate", p.StartDate),
		EndDate:            v.OptionalDate("endDate", p.EndDate),
	}
}

func actor(r *http.Request) string {
	user, _ := middleware.GetUser(r.Context())
	return user.UserID
}

func (h *Handler) handleListContracts(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employeeID, ok := shared.QueryID(w, r, "employeeId", requestID)
	if !ok {
		return
	}
	filter := contracts.ContractFilter{EmployeeID: employeeID, Status: r.URL.Query().Get("status")}
	items, meta, err := h.Service.ListContracts(r.Context(), shared.ParseListParams(r), filter)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Paginated(w, items, meta, requestID)
}

func (h *Handler) handleGetContract(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	contractID, ok := shared.PathID(w, r, "contractID", requestID)
	if !ok {
		return
	}
	c, err := h.Service.GetContract(r.Context(), contractID)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, c, requestID)
}

func (h *Handler) handleCreateContract(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload contractRequest
	if !shared.DecodeAndValidate(w, r, &payload, requestID) {
		return
	}
	v := shared.NewValidator()
	if payload.EmployeeID == "" {
		v.Add("employeeId", "is required")
	}
	c := payload.toContract(v)
	if v.Reject(w, requestID) {
		return
	}

	created, err := h.Service.CreateContract(r.Context(), c)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	shared.RecordAudit(r, h.Audit, actor(r), audit.ActionCreate, "contract", created.ID, nil, created)
	api.Created(w, created, requestID)
}

func (h *Handler) handleUpdateContract(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	contractID, ok := shared.PathID(w, r, "contractID", requestID)
	if !ok {
		return
	}
	var payload contractRequest
	if !shared.DecodeAndValidate(w, r, &payload, requestID) {
		return
	}
	v := shared.NewValidator()
	c := payload.toContract(v)
	if v.Reject(w, requestID) {
		return
	}
	c.ID = contractID

	updated, err := h.Service.UpdateContract(r.Context(), c)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	shared.RecordAudit(r, h.Audit, actor(r), audit.ActionUpdate, "contract", contractID, nil, updated)
	api.Success(w, updated, requestID)
}

func (h *Handler) handleDeleteContract(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	contractID, ok := shared.PathID(w, r, "contractID", requestID)
	if !ok {
		return
	}
	if err := h.Service.DeleteContract(r.Context(), contractID); err != nil {
		api.FailError(w, err, requestID)
		return
	}
	shared.RecordAudit(r, h.Audit, actor(r), audit.ActionDelete, "contract", contractID, nil, nil)
	api.Success(w, map[string]string{"id": contractID}, requestID)
}

func (h *Handler) handleListAssignments(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	contractID, ok := shared.PathID(w, r, "contractID", requestID)
	if !ok {
		return
	}
	items, err := h.Service.ListAssignments(r.Context(), contractID)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	if items == nil {
		items = []contracts.Assignment{}
	}
	api.Success(w, items, requestID)
}

func (h *Handler) handleGetAssignment(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	assignmentID, ok := shared.PathID(w, r, "assignmentID", requestID)
	if !ok {
		return
	}
	a, err := h.Service.GetAssignment(r.Context(), assignmentID)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, a, requestID)
}

func (h *Handler) handleCreateAssignment(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	contractID, ok := shared.PathID(w, r, "contractID", requestID)
	if !ok {
		return
	}
	var payload assignmentRequest
	if !shared.DecodeAndValidate(w, r, &payload, requestID) {
		return
	}
	v := shared.NewValidator()
	a := payload.toAssignment(v)
	if v.Reject(w, requestID) {
		return
	}
	a.ContractID = contractID

	created, err := h.Service.CreateAssignment(r.Context(), a)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	shared.RecordAudit(r, h.Audit, actor(r), audit.ActionCreate, "assignment", created.ID, nil, created)
	api.Created(w, created, requestID)
}

func (h *Handler) handleUpdateAssignment(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	assignmentID, ok := shared.PathID(w, r, "assignmentID", requestID)
	if !ok {
		return
	}
	var payload assignmentRequest
	if !shared.DecodeAndValidate(w, r, &payload, requestID) {
		return
	}
	v := shared.NewValidator()
	a := payload.toAssignment(v)
	if v.Reject(w, requestID) {
		return
	}
	a.ID = assignmentID

	updated, err := h.Service.UpdateAssignment(r.Context(), a)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	shared.RecordAudit(r, h.Audit, actor(r), audit.ActionUpdate, "assignment", assignmentID, nil, updated)
	api.Success(w, updated, requestID)
}

func (h *Handler) handleDeleteAssignment(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	assignmentID, ok := shared.PathID(w, r, "assignmentID", requestID)
	if !ok {
		return
	}
	if err := h.Service.DeleteAssignment(r.Context(), assignmentID); err != nil {
		api.FailError(w, err, requestID)
		return
	}
	shared.RecordAudit(r, h.Audit, actor(r), audit.ActionDelete, "assignment", assignmentID, nil, nil)
	api.Success(w, map[string]string{"id": assignmentID}, requestID)
}
