package performancehandler

import (
	"context"
	"fmt"
	"net/http"

	"hrportal/internal/domain/audit"
	"hrportal/internal/domain/notifications"
	"hrportal/internal/domain/performance"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

type cycleRequest struct {
	Title              string   `json:"title" validate:"required,max=200"`
	Description        string   `json:"description"`
	TemplateID         string   `json:"templateId" validate:"required,uuid"`
	StartDate          string   `json:"startDate"`
	EndDate            string   `json:"endDate"`
	SubmissionDeadline string   `json:"submissionDeadline"`
	EvaluationTypes    []string `json:"evaluationTypes" validate:"required,min=1,dive,oneof=SELF MANAGER PEER SUBORDINATE CLIENT"`
}

func (p cycleRequest) toCycle(v *shared.Validator) performance.Cycle {
	c := performance.Cycle{
		Title:              p.Title,
		Description:        p.Description,
		TemplateID:         p.TemplateID,
		StartDate:          v.Date("startDate", p.StartDate),
		EndDate:            v.Date("endDate", p.EndDate),
		SubmissionDeadline: v.OptionalDate("submissionDeadline", p.SubmissionDeadline),
		EvaluationTypes:    make([]performance.EvaluationType, 0, len(p.EvaluationTypes)),
	}
	for _, t := range p.EvaluationTypes {
		c.EvaluationTypes = append(c.EvaluationTypes, performance.EvaluationType(t))
	}
	return c
}

type publishRequest struct {
	TargetEmployeeIDs []string `json:"targetEmployeeIds" validate:"omitempty,dive,uuid"`
}

func (h *Handler) handleListCycles(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	filter := performance.CycleFilter{Status: r.URL.Query().Get("status")}
	items, meta, err := h.Service.ListCycles(r.Context(), shared.ParseListParams(r), filter)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Paginated(w, items, meta, requestID)
}

func (h *Handler) handleGetCycle(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	cycleID, ok := shared.PathID(w, r, "cycleID", requestID)
	if !ok {
		return
	}
	c, err := h.Service.GetCycle(r.Context(), cycleID)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, c, requestID)
}

func (h *Handler) handleCreateCycle(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload cycleRequest
	if !shared.DecodeAndValidate(w, r, &payload, requestID) {
		return
	}
	v := shared.NewValidator()
	c := payload.toCycle(v)
	if v.Reject(w, requestID) {
		return
	}
	created, err := h.Service.CreateCycle(r.Context(), c)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	shared.RecordAudit(r, h.Audit, actor(r), audit.ActionCreate, "cycle", created.ID, nil, created)
	api.Created(w, created, requestID)
}

func (h *Handler) handleUpdateCycle(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	cycleID, ok := shared.PathID(w, r, "cycleID", requestID)
	if !ok {
		return
	}
	var payload cycleRequest
	if !shared.DecodeAndValidate(w, r, &payload, requestID) {
		return
	}
	v := shared.NewValidator()
	c := payload.toCycle(v)
	if v.Reject(w, requestID) {
		return
	}
	c.ID = cycleID
	updated, err := h.Service.UpdateCycle(r.Context(), c)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	shared.RecordAudit(r, h.Audit, actor(r), audit.ActionUpdate, "cycle", cycleID, nil, updated)
	api.Success(w, updated, requestID)
}

func (h *Handler) handleDeleteCycle(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	cycleID, ok := shared.PathID(w, r, "cycleID", requestID)
	if !ok {
		return
	}
	if err := h.Service.DeleteCycle(r.Context(), cycleID); err != nil {
		api.FailError(w, err, requestID)
		return
	}
	shared.RecordAudit(r, h.Audit, actor(r), audit.ActionDelete, "cycle", cycleID, nil, nil)
	api.Success(w, map[string]string{"id": cycleID}, requestID)
}

func (h *Handler) handleCloseCycle(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	cycleID, ok := shared.PathID(w, r, "cycleID", requestID)
	if !ok {
		return
	}
	closed, err := h.Service.CloseCycle(r.Context(), cycleID)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	shared.RecordAudit(r, h.Audit, actor(r), audit.ActionClose, "cycle", cycleID, nil, closed)
	api.Success(w, closed, requestID)
}

func (h *Handler) handlePublish(w http.ResponseWriter, r *http.Request) {
	h.publish(w, r, audit.ActionPublish, h.Service.Publish)
}

func (h *Handler) handleRepublish(w http.ResponseWriter, r *http.Request) {
	h.publish(w, r, audit.ActionRepublish, h.Service.Republish)
}

type publishFunc func(ctx context.Context, input performance.PublishInput) (performance.PublishResult, error)

func (h *Handler) publish(w http.ResponseWriter, r *http.Request, action string, run publishFunc) {
	requestID := middleware.GetRequestID(r.Context())
	cycleID, ok := shared.PathID(w, r, "cycleID", requestID)
	if !ok {
		return
	}
	var payload publishRequest
	if !shared.DecodeOptional(w, r, &payload, requestID) {
		return
	}

	result, err := run(r.Context(), performance.PublishInput{
		CycleID:           cycleID,
		TargetEmployeeIDs: payload.TargetEmployeeIDs,
		PublishedBy:       actor(r),
	})
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}

	if h.Metrics != nil {
		h.Metrics.RecordPublish(result.EvaluationsCreated)
	}
	h.notifyEmployees(r.Context(), performance.DistinctEvaluators(result.Evaluations),
		notifications.TypeReviewAssigned,
		"New evaluations assigned",
		fmt.Sprintf("You have evaluations to complete in %q.", result.Cycle.Title))
	shared.RecordAudit(r, h.Audit, actor(r), action, "cycle", cycleID, nil, map[string]any{
		"status":             result.Cycle.Status,
		"evaluationsCreated": result.EvaluationsCreated,
		"targetEmployeeIds":  payload.TargetEmployeeIDs,
	})
	api.Success(w, result, requestID)
}

func (h *Handler) handleListCycleEvaluations(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	cycleID, ok := shared.PathID(w, r, "cycleID", requestID)
	if !ok {
		return
	}
	items, meta, err := h.Service.ListCycleEvaluations(r.Context(), cycleID, shared.ParseListParams(r))
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Paginated(w, items, meta, requestID)
}

func (h *Handler) handleCycleSummary(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	cycleID, ok := shared.PathID(w, r, "cycleID", requestID)
	if !ok {
		return
	}
	summary, err := h.Service.CycleSummary(r.Context(), cycleID)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, summary, requestID)
}
