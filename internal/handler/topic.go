package handler

import (
	"log/slog"
	"net/http"

	"learnnote/internal/domain/models"
	"learnnote/internal/httputil"
	"learnnote/internal/service"
)

// TopicHandler handles topic HTTP requests
type TopicHandler struct {
	topicService service.TopicService
	logger       *slog.Logger
}

// NewTopicHandler creates a new topic handler
func NewTopicHandler(topicService service.TopicService, logger *slog.Logger) *TopicHandler {
	return &TopicHandler{topicService: topicService, logger: logger}
}

// ListTopics lists the caller's topics. The large notebook and resourceOrder
// fields ride along only when their flags are truthy.
// GET /api/topics?notebooks=&resourceOrder=&limit=&orderBy=
func (h *TopicHandler) ListTopics(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	topics, err := h.topicService.List(r.Context(), identity.ID, listOptions(r))
	if err != nil {
		handleError(w, err)
		return
	}

	flags := models.TopicViewFlags{
		Notebook:      flagEnabled(r, "notebooks", "notebook"),
		ResourceOrder: flagEnabled(r, "resourceOrder"),
	}
	views := make([]models.TopicView, 0, len(topics))
	for i := range topics {
		views = append(views, topics[i].View(flags))
	}

	httputil.RespondJSON(w, http.StatusOK, views)
}

// GetTopic fetches one topic. Notebook, resourceOrder and the nested
// resources array are default-visible and suppressed by falsy flags.
// GET /api/topics/{id}?notebook=&resourceOrder=&resources=
func (h *TopicHandler) GetTopic(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	flags := models.TopicViewFlags{
		Notebook:      !flagDisabled(r, "notebook", "notebooks"),
		ResourceOrder: !flagDisabled(r, "resourceOrder"),
		Resources:     !flagDisabled(r, "resources"),
	}

	topic, err := h.topicService.Get(r.Context(), identity.ID, id, flags.Resources)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, topic.View(flags))
}

// CreateTopic creates a new topic
// POST /api/topics
func (h *TopicHandler) CreateTopic(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req service.TopicRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	topic, err := h.topicService.Create(r.Context(), identity.ID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, topic.View(models.TopicViewFlags{
		Notebook:      true,
		ResourceOrder: true,
	}))
}

// UpdateTopic updates any subset of {title, parent, notebook, resourceOrder}
// PUT /api/topics/{id}
func (h *TopicHandler) UpdateTopic(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req service.TopicRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	topic, err := h.topicService.Update(r.Context(), identity.ID, id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, topic.View(models.TopicViewFlags{
		Notebook:      true,
		ResourceOrder: true,
	}))
}

// DeleteTopic deletes a topic and, by cascade, its resources
// DELETE /api/topics/{id}
func (h *TopicHandler) DeleteTopic(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.topicService.Delete(r.Context(), identity.ID, id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
