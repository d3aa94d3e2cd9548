package performancehandler

import (
	"net/http"

	"hrportal/internal/domain/performance"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

type goalRequest struct {
	EmployeeID  string  `json:"employeeId" validate:"omitempty,uuid"`
	CycleID     string  `json:"cycleId" validate:"omitempty,uuid"`
	Title       string  `json:"title" validate:"required,max=200"`
	Description string  `json:"description"`
	Weight      float64 `json:"weight" validate:"gte=0"`
	Progress    float64 `json:"progress" validate:"gte=0,lte=100"`
	Status      string  `json:"status" validate:"omitempty,oneof=active completed cancelled"`
	DueDate     string  `json:"dueDate"`
}

func (p goalRequest) toGoal(v *shared.Validator) performance.Goal {
	return performance.Goal{
		EmployeeID:  p.EmployeeID,
		CycleID:     p.CycleID,
		Title:       p.Title,
		Description: p.Description,
		Weight:      p.Weight,
		Progress:    p.Progress,
		Status:      p.Status,
		DueDate:     v.OptionalDate("dueDate", p.DueDate),
	}
}

func (h *Handler) handleListGoals(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employeeID, ok := shared.QueryID(w, r, "employeeId", requestID)
	if !ok {
		return
	}
	cycleID, ok := shared.QueryID(w, r, "cycleId", requestID)
	if !ok {
		return
	}
	filter := performance.GoalFilter{
		EmployeeID: employeeID,
		CycleID:    cycleID,
		Status:     r.URL.Query().Get("status"),
	}
	items, meta, err := h.Service.ListGoals(r.Context(), shared.ParseListParams(r), filter)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Paginated(w, items, meta, requestID)
}

func (h *Handler) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	goalID, ok := shared.PathID(w, r, "goalID", requestID)
	if !ok {
		return
	}
	g, err := h.Service.GetGoal(r.Context(), goalID)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, g, requestID)
}

func (h *Handler) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload goalRequest
	if !shared.DecodeAndValidate(w, r, &payload, requestID) {
		return
	}
	v := shared.NewValidator()
	if payload.EmployeeID == "" {
		v.Add("employeeId", "is required")
	}
	g := payload.toGoal(v)
	if v.Reject(w, requestID) {
		return
	}
	created, err := h.Service.CreateGoal(r.Context(), g)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Created(w, created, requestID)
}

func (h *Handler) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	goalID, ok := shared.PathID(w, r, "goalID", requestID)
	if !ok {
		return
	}
	var payload goalRequest
	if !shared.DecodeAndValidate(w, r, &payload, requestID) {
		return
	}
	v := shared.NewValidator()
	g := payload.toGoal(v)
	if v.Reject(w, requestID) {
		return
	}
	g.ID = goalID
	updated, err := h.Service.UpdateGoal(r.Context(), g)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, updated, requestID)
}

func (h *Handler) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	goalID, ok := shared.PathID(w, r, "goalID", requestID)
	if !ok {
		return
	}
	if err := h.Service.DeleteGoal(r.Context(), goalID); err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, map[string]string{"id": goalID}, requestID)
}
