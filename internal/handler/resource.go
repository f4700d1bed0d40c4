package handler

import (
	"log/slog"
	"net/http"

	"learnnote/internal/domain/models"
	"learnnote/internal/httputil"
	"learnnote/internal/service"
)

// ResourceHandler handles resource HTTP requests
type ResourceHandler struct {
	resourceService service.ResourceService
	logger          *slog.Logger
}

// NewResourceHandler creates a new resource handler
func NewResourceHandler(resourceService service.ResourceService, logger *slog.Logger) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService, logger: logger}
}

// ListResources lists the caller's resources with nested parent topics
// GET /api/resources?limit=&orderBy=
func (h *ResourceHandler) ListResources(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	resources, err := h.resourceService.List(r.Context(), identity.ID, listOptions(r))
	if err != nil {
		handleError(w, err)
		return
	}

	views := make([]models.ResourceView, 0, len(resources))
	for i := range resources {
		views = append(views, resources[i].View())
	}

	httputil.RespondJSON(w, http.StatusOK, views)
}

// GetResource fetches one resource
// GET /api/resources/{id}
func (h *ResourceHandler) GetResource(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	resource, err := h.resourceService.Get(r.Context(), identity.ID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resource.View())
}

// CreateResource creates a new resource, inferring its type when absent
// POST /api/resources
func (h *ResourceHandler) CreateResource(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req service.ResourceRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resource, err := h.resourceService.Create(r.Context(), identity.ID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, resource.View())
}

// UpdateResource updates any subset of the resource's mutable fields
// PUT /api/resources/{id}
func (h *ResourceHandler) UpdateResource(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req service.ResourceRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resource, err := h.resourceService.Update(r.Context(), identity.ID, id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, resource.View())
}

// DeleteResource deletes a resource
// DELETE /api/resources/{id}
func (h *ResourceHandler) DeleteResource(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.resourceService.Delete(r.Context(), identity.ID, id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
