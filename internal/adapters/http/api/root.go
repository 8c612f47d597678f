package api

import "net/http"

type rootResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// RootHandler answers the liveness banner at "/".
type RootHandler struct{}

// NewRootHandler creates a new root handler.
func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

// HandleRoot handles GET / requests. Any other path under "/" is a 404.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" || r.Method != http.MethodGet {
		writeError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	writeJSON(w, http.StatusOK, rootResponse{Status: "ok", Message: "Backend is running!"})
}
