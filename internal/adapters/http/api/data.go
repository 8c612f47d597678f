package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/slen516-afk/fraudboard/internal/adapters/repository"
	"github.com/slen516-afk/fraudboard/internal/domain/model"
	"github.com/slen516-afk/fraudboard/internal/domain/types"
)

// DashboardBuilder produces the dashboard payload.
type DashboardBuilder interface {
	Dashboard(ctx context.Context) (*types.Payload, error)
}

// DataHandler serves the aggregated dashboard payload.
type DataHandler struct {
	builder DashboardBuilder
}

// NewDataHandler creates a new data handler.
func NewDataHandler(builder DashboardBuilder) *DataHandler {
	return &DataHandler{builder: builder}
}

// HandleData handles GET /api/data requests.
func (h *DataHandler) HandleData(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_data"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	payload, err := h.builder.Dashboard(r.Context())
	if err != nil {
		status, code, kind := classify(err)
		writeError(w, status, code, WrapKind(op, kind, err))
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

// classify maps a build failure to a status, a response code and an error kind.
func classify(err error) (int, string, error) {
	switch {
	case errors.Is(err, model.ErrSchema):
		return http.StatusInternalServerError, "schema_error", ErrSchema
	case errors.Is(err, repository.ErrUnavailable):
		return http.StatusServiceUnavailable, "unavailable", ErrUnavailable
	case errors.Is(err, repository.ErrFetch), errors.Is(err, context.DeadlineExceeded):
		return http.StatusBadGateway, "upstream_error", ErrUpstream
	default:
		return http.StatusInternalServerError, "internal_error", ErrInternal
	}
}
