package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"learnnote/internal/httputil"
)

// MetaHandler resolves page titles for candidate resource URIs
type MetaHandler struct {
	client *http.Client
	logger *slog.Logger
}

// NewMetaHandler creates a new meta handler
func NewMetaHandler(logger *slog.Logger) *MetaHandler {
	return &MetaHandler{
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

// PageTitle fetches a URI and returns its HTML title together with the final
// URL after redirects, so clients can pre-fill resource forms.
// GET /api/meta?uri=
func (h *MetaHandler) PageTitle(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireIdentity(w, r); !ok {
		return
	}

	uri := r.URL.Query().Get("uri")
	if uri == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Uri is required")
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, uri, nil)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Uri is invalid")
		return
	}

	resp, err := h.client.Do(req)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Uri could not be fetched")
		return
	}
	defer resp.Body.Close()

	title := extractTitle(resp)
	httputil.RespondJSON(w, http.StatusOK, map[string]string{
		"title": title,
		"uri":   resp.Request.URL.String(),
	})
}

// extractTitle streams the response body until the first <title> element.
// A missing title is an empty string, not an error.
func extractTitle(resp *http.Response) string {
	tokenizer := html.NewTokenizer(resp.Body)
	inTitle := false
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			inTitle = string(name) == "title"
		case html.TextToken:
			if inTitle {
				return strings.TrimSpace(string(tokenizer.Text()))
			}
		case html.EndTagToken:
			inTitle = false
		}
	}
}
