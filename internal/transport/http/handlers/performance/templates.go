package performancehandler

import (
	"net/http"

	"hrportal/internal/domain/audit"
	"hrportal/internal/domain/performance"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

type criterionRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
	MinRating   int    `json:"minRating" validate:"gte=0"`
	MaxRating   int    `json:"maxRating" validate:"gt=0"`
}

type categoryRequest struct {
	Name        string             `json:"name" validate:"required,max=200"`
	Description string             `json:"description"`
	Weight      float64            `json:"weight" validate:"gte=0,lte=100"`
	Criteria    []criterionRequest `json:"criteria" validate:"required,min=1,dive"`
}

type templateRequest struct {
	Title       string            `json:"title" validate:"required,max=200"`
	Description string            `json:"description"`
	Categories  []categoryRequest `json:"categories" validate:"required,min=1,dive"`
	IsActive    *bool             `json:"isActive"`
}

func (p templateRequest) toTemplate() performance.Template {
	t := performance.Template{
		Title:       p.Title,
		Description: p.Description,
		Categories:  make([]performance.Category, 0, len(p.Categories)),
		IsActive:    true,
	}
	if p.IsActive != nil {
		t.IsActive = *p.IsActive
	}
	for _, c := range p.Categories {
		category := performance.Category{
			Name:        c.Name,
			Description: c.Description,
			Weight:      c.Weight,
			Criteria:    make([]performance.Criterion, 0, len(c.Criteria)),
		}
		for _, cr := range c.Criteria {
			category.Criteria = append(category.Criteria, performance.Criterion{
				Title:       cr.Title,
				Description: cr.Description,
				MinRating:   cr.MinRating,
				MaxRating:   cr.MaxRating,
			})
		}
		t.Categories = append(t.Categories, category)
	}
	return t
}

func (h *Handler) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	items, meta, err := h.Service.ListTemplates(r.Context(), shared.ParseListParams(r))
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Paginated(w, items, meta, requestID)
}

func (h *Handler) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	templateID, ok := shared.PathID(w, r, "templateID", requestID)
	if !ok {
		return
	}
	t, err := h.Service.GetTemplate(r.Context(), templateID)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	api.Success(w, t, requestID)
}

func (h *Handler) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload templateRequest
	if !shared.DecodeAndValidate(w, r, &payload, requestID) {
		return
	}
	created, err := h.Service.CreateTemplate(r.Context(), payload.toTemplate())
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	shared.RecordAudit(r, h.Audit, actor(r), audit.ActionCreate, "template", created.ID, nil, created)
	api.Created(w, created, requestID)
}

func (h *Handler) handleUpdateTemplate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	templateID, ok := shared.PathID(w, r, "templateID", requestID)
	if !ok {
		return
	}
	var payload templateRequest
	if !shared.DecodeAndValidate(w, r, &payload, requestID) {
		return
	}
	before, err := h.Service.GetTemplate(r.Context(), templateID)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	t := payload.toTemplate()
	t.ID = templateID
	if payload.IsActive == nil {
		t.IsActive = before.IsActive
	}
	updated, err := h.Service.UpdateTemplate(r.Context(), t)
	if err != nil {
		api.FailError(w, err, requestID)
		return
	}
	shared.RecordAudit(r, h.Audit, actor(r), audit.ActionUpdate, "template", templateID, before, updated)
	api.Success(w, updated, requestID)
}

func (h *Handler) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	templateID, ok := shared.PathID(w, r, "templateID", requestID)
	if !ok {
		return
	}
	if err := h.Service.DeleteTemplate(r.Context(), templateID); err != nil {
		api.FailError(w, err, requestID)
		return
	}
	shared.RecordAudit(r, h.Audit, actor(r), audit.ActionDelete, "template", templateID, nil, nil)
	api.Success(w, map[string]string{"id": templateID}, requestID)
}
