package performancehandler

import (
	"fmt"
	"net/http"
	"path/filepath"

	"hrportal/internal/domain/audit"
	"hrportal/internal/domain/notifications"
	"hrportal/internal/domain/performance"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

type createEvaluationRequest struct {
	CycleID        string `json:"cycleId" validate:"omitempty,uuid"`
	TemplateID     string `json:"templateId" validate:"omitempty,uuid"`
	EmployeeID     string `json:"employeeId" validate:"required,uuid"`
	EvaluatorID    string `json:"evaluatorId" validate:"required,uuid"`
	EvaluationType string `json:"evaluationType" validate:"required,oneof=SELF MANAGER PEER SUBORDINATE CLIENT"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
	Comments       string `json:"comments" validate:"max=4000"`
}

type updateEvaluationRequest struct {
	Categories []performance.Category `json:"categories"`
	Comments   string                 `json:"comments" validate:"max=4000"`
}

type reviewRequest struct {
	Status string `json:"status" validate:"required,oneof=reviewed approved rejected"`
}

func (h *Handler) handleListEvaluations(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var ids [3]string
	for i, name := range []string{"cycleId", "employeeId", "evaluatorId"} {
		id, ok := shared.QueryID(w, r, name, requestID)
		if !ok {
			return
		}
		ids[i] = id
	}
	query := r.URL.Query()
	filter := performance.EvaluationFilter{
		CycleID:        ids[0],
		EmployeeID:     ids[1],
		EvaluatorID:    ids[2],
		EvaluationType: performance.EvaluationType(query.Get("evaluationType")),
		Status:         query.Get("status"),
	}
	items, meta, err := h.Service.ListEvaluations(r.Context(), shared.ParseListParams(r), filter)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Paginated(w, items, meta, requestID)
}

func (h *Handler) handleGetEvaluation(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	evaluationID, ok := shared.PathID(w, r, "evaluationID", requestID)
	if !ok {
		return
	}
	ev, err := h.Service.GetEvaluation(r.Context(), evaluationID)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, ev, requestID)
}

func (h *Handler) handleCreateEvaluation(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload createEvaluationRequest
	if !shared.DecodeAndValidate(w, r, &payload, requestID) {
		return
	}
	v := shared.NewValidator()
	input := performance.CreateEvaluationInput{
		CycleID:        payload.CycleID,
		TemplateID:     payload.TemplateID,
		EmployeeID:     payload.EmployeeID,
		EvaluatorID:    payload.EvaluatorID,
		EvaluationType: performance.EvaluationType(payload.EvaluationType),
		StartDate:      v.OptionalDate("startDate", payload.StartDate),
		EndDate:        v.OptionalDate("endDate", payload.EndDate),
		Comments:       payload.Comments,
	}
	if v.Reject(w, requestID) {
		return
	}

	created, err := h.Service.CreateEvaluation(r.Context(), input)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	shared.RecordAudit(r, h.Audit, actor(r), audit.ActionCreate, "evaluation", created.ID, nil, created)
	api.Created(w, created, requestID)
}

func (h *Handler) handleUpdateEvaluation(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	evaluationID, ok := shared.PathID(w, r, "evaluationID", requestID)
	if !ok {
		return
	}
	var payload updateEvaluationRequest
	if !shared.DecodeAndValidate(w, r, &payload, requestID) {
		return
	}
	updated, err := h.Service.UpdateEvaluation(r.Context(), evaluationID, payload.Categories, payload.Comments)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	shared.RecordAudit(r, h.Audit, actor(r), audit.ActionUpdate, "evaluation", evaluationID, nil, updated)
	api.Success(w, updated, requestID)
}

func (h *Handler) handleDeleteEvaluation(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	evaluationID, ok := shared.PathID(w, r, "evaluationID", requestID)
	if !ok {
		return
	}
	if err := h.Service.DeleteEvaluation(r.Context(), evaluationID); err != nil {
		api.FailError(w, err, requestID)
		return
	}
	shared.RecordAudit(r, h.Audit, actor(r), audit.ActionDelete, "evaluation", evaluationID, nil, nil)
	api.Success(w, map[string]string{"id": evaluationID}, requestID)
}

func (h *Handler) handleSubmitEvaluation(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	evaluationID, ok := shared.PathID(w, r, "evaluationID", requestID)
	if !ok {
		return
	}
	submitted, err := h.Service.SubmitEvaluation(r.Context(), evaluationID)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	h.notifyEmployees(r.Context(), []string{submitted.EmployeeID},
		notifications.TypeEvaluationSubmitted,
		"Evaluation submitted",
		fmt.Sprintf("A %s evaluation for period %s has been submitted.", submitted.EvaluationType, submitted.Period))
	shared.RecordAudit(r, h.Audit, actor(r), audit.ActionSubmit, "evaluation", evaluationID, nil, submitted)
	api.Success(w, submitted, requestID)
}

func (h *Handler) handleReviewEvaluation(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	evaluationID, ok := shared.PathID(w, r, "evaluationID", requestID)
	if !ok {
		return
	}
	var payload reviewRequest
	if !shared.DecodeAndValidate(w, r, &payload, requestID) {
		return
	}
	reviewed, err := h.Service.ReviewEvaluation(r.Context(), evaluationID, payload.Status)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	h.notifyEmployees(r.Context(), []string{reviewed.EvaluatorID},
		notifications.TypeEvaluationReviewed,
		"Evaluation reviewed",
		fmt.Sprintf("Your %s evaluation for period %s was marked %s.", reviewed.EvaluationType, reviewed.Period, reviewed.Status))
	shared.RecordAudit(r, h.Audit, actor(r), audit.ActionReview, "evaluation", evaluationID, nil, reviewed)
	api.Success(w, reviewed, requestID)
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	evaluationID, ok := shared.PathID(w, r, "evaluationID", requestID)
	if !ok {
		return
	}
	filePath, err := h.Service.GenerateReport(r.Context(), evaluationID, h.ReportsDir)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", filepath.Base(filePath)))
	http.ServeFile(w, r, filePath)
}
