package orghandler

import (
	"net/http"

	"hrportal/internal/domain/audit"
	"hrportal/internal/domain/org"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

type departmentRequest struct {
	Name           string `json:"name" validate:"required,max=200"`
	ParentID       string `json:"parentId" validate:"omitempty,uuid"`
	HeadEmployeeID string `json:"headEmployeeId" validate:"omitempty,uuid"`
}

type positionRequest struct {
	Title        string `json:"title" validate:"required,max=200"`
	DepartmentID string `json:"departmentId" validate:"omitempty,uuid"`
	Level        int    `json:"level" validate:"gte=0"`
	IsActive     *bool  `json:"isActive"`
}

func (h *Handler) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	items, meta, err := h.Service.ListDepartments(r.Context(), shared.ParseListParams(r))
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Paginated(w, items, meta, requestID)
}

func (h *Handler) handleGetDepartment(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	departmentID, ok := shared.PathID(w, r, "departmentID", requestID)
	if !ok {
		return
	}
	dep, err := h.Service.GetDepartment(r.Context(), departmentID)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, dep, requestID)
}

func (h *Handler) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload departmentRequest
	if !shared.DecodeAndValidate(w, r, &payload, requestID) {
		return
	}
	created, err := h.Service.CreateDepartment(r.Context(), org.Department{
		Name:           payload.Name,
		ParentID:       payload.ParentID,
		HeadEmployeeID: payload.HeadEmployeeID,
	})
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	shared.RecordAudit(r, h.Audit, actor(r), audit.ActionCreate, "department", created.ID, nil, created)
	api.Created(w, created, requestID)
}

func (h *Handler) handleUpdateDepartment(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	departmentID, ok := shared.PathID(w, r, "departmentID", requestID)
	if !ok {
		return
	}
	var payload departmentRequest
	if !shared.DecodeAndValidate(w, r, &payload, requestID) {
		return
	}
	updated, err := h.Service.UpdateDepartment(r.Context(), org.Department{
		ID:             departmentID,
		Name:           payload.Name,
		ParentID:       payload.ParentID,
		HeadEmployeeID: payload.HeadEmployeeID,
	})
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	shared.RecordAudit(r, h.Audit, actor(r), audit.ActionUpdate, "department", departmentID, nil, updated)
	api.Success(w, updated, requestID)
}

func (h *Handler) handleDeleteDepartment(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	departmentID, ok := shared.PathID(w, r, "departmentID", requestID)
	if !ok {
		return
	}
	if err := h.Service.DeleteDepartment(r.Context(), departmentID); err != nil {
		api.FailError(w, err, requestID)
		return
	}
	shared.RecordAudit(r, h.Audit, actor(r), audit.ActionDelete, "department", departmentID, nil, nil)
	api.Success(w, map[string]string{"id": departmentID}, requestID)
}

func (h *Handler) handleListPositions(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	departmentID, ok := shared.QueryID(w, r, "departmentId", requestID)
	if !ok {
		return
	}
	items, meta, err := h.Service.ListPositions(r.Context(), shared.ParseListParams(r), departmentID)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Paginated(w, items, meta, requestID)
}

func (h *Handler) handleGetPosition(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	positionID, ok := shared.PathID(w, r, "positionID", requestID)
	if !ok {
		return
	}
	pos, err := h.Service.GetPosition(r.Context(), positionID)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, pos, requestID)
}

func (p positionRequest) toPosition() org.Position {
	pos := org.Position{Title: p.Title, DepartmentID: p.DepartmentID, Level: p.Level, IsActive: true}
	if p.IsActive != nil {
		pos.IsActive = *p.IsActive
	}
	return pos
}

func (h *Handler) handleCreatePosition(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload positionRequest
	if !shared.DecodeAndValidate(w, r, &payload, requestID) {
		return
	}
	created, err := h.Service.CreatePosition(r.Context(), payload.toPosition())
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	shared.RecordAudit(r, h.Audit, actor(r), audit.ActionCreate, "position", created.ID, nil, created)
	api.Created(w, created, requestID)
}

func (h *Handler) handleUpdatePosition(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	positionID, ok := shared.PathID(w, r, "positionID", requestID)
	if !ok {
		return
	}
	var payload positionRequest
	if !shared.DecodeAndValidate(w, r, &payload, requestID) {
		return
	}
	pos := payload.toPosition()
	pos.ID = positionID
	updated, err := h.Service.UpdatePosition(r.Context(), pos)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	shared.RecordAudit(r, h.Audit, actor(r), audit.ActionUpdate, "position", positionID, nil, updated)
	api.Success(w, updated, requestID)
}

func (h *Handler) handleDeletePosition(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	positionID, ok := shared.PathID(w, r, "positionID", requestID)
	if !ok {
		return
	}
	if err := h.Service.DeletePosition(r.Context(), positionID); err != nil {
		api.FailError(w, err, requestID)
		return
	}
	shared.RecordAudit(r, h.Audit, actor(r), audit.ActionDelete, "position", positionID, nil, nil)
	api.Success(w, map[string]string{"id": positionID}, requestID)
}
