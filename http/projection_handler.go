package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"launchpilot/apperrors"
	"launchpilot/domain"
)

const maxRequestBodyBytes = 1 << 20

type ProjectionService interface {
	ProjectRequest(ctx context.Context, req domain.ProjectionRequest) (domain.Projection, error)
	Get(ctx context.Context, id string) (domain.Projection, error)
}

type ProjectionHandler struct {
	service ProjectionService
	logger  *zap.Logger
}

func NewProjectionHandler(service ProjectionService, logger *zap.Logger) *ProjectionHandler {
	return &ProjectionHandler{service: service, logger: logger}
}

type projectionResponse struct {
	Success bool `json:"success"`
	domain.Projection
}

func (h *ProjectionHandler) CreateProjection(w http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json", nil)
		return
	}

	var req domain.ProjectionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)).Decode(&req); err != nil {
		h.logger.Debug("error decoding request body",
			zap.String("request_id", RequestIDFrom(r.Context())),
			zap.Error(err))
		writeError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	projection, err := h.service.ProjectRequest(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respond(w, r, projection)
}

func (h *ProjectionHandler) GetProjection(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	projection, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respond(w, r, projection)
}

func (h *ProjectionHandler) respond(w http.ResponseWriter, r *http.Request, projection domain.Projection) {
	if err := writeJSON(w, http.StatusOK, projectionResponse{Success: true, Projection: projection}); err != nil {
		h.logger.Error("error writing response",
			zap.String("request_id", RequestIDFrom(r.Context())),
			zap.Error(err))
	}
}

func (h *ProjectionHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperrors.From(err)
	if appErr.Kind == apperrors.KindInternal {
		h.logger.Error("projection request failed",
			zap.String("request_id", RequestIDFrom(r.Context())),
			zap.Error(err))
	}
	writeError(w, appErr.HTTPStatus(), appErr.Message, appErr.Details)
}
