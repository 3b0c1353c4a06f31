package handler

import (
	"log/slog"
	"net/http"

	"github.com/asset-tracking-api/internal/domain"
	"github.com/asset-tracking-api/internal/dto"
	"github.com/asset-tracking-api/internal/service"
	"github.com/go-playground/validator/v10"
)

type RequestHandler struct {
	requestService service.RequestService
	validator      *validator.Validate
	logger         *slog.Logger
}

func NewRequestHandler(requestService service.RequestService, logger *slog.Logger) *RequestHandler {
	return &RequestHandler{
		requestService: requestService,
		validator:      validator.New(),
		logger:         logger,
	}
}

func (h *RequestHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitRequestRequest
	if err := decodeStrict(r, &req); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	request, err := h.requestService.Submit(r.Context(), &req)
	if err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusCreated, toRequestResponse(request))
}

func (h *RequestHandler) Accept(w http.ResponseWriter, r *http.Request, requestID string) {
	request, asset, err := h.requestService.Accept(r.Context(), requestID, actorFromRequest(r))
	if err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, dto.AcceptResponse{
		Request:      toRequestResponse(request),
		UpdatedAsset: asset,
	})
}

func (h *RequestHandler) Reject(w http.ResponseWriter, r *http.Request, requestID string) {
	request, err := h.requestService.Reject(r.Context(), requestID, actorFromRequest(r))
	if err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, dto.RejectResponse{
		Message: "request rejected",
		Request: toRequestResponse(request),
	})
}

func (h *RequestHandler) ListForUser(w http.ResponseWriter, r *http.Request, userID string) {
	requests, counts, err := h.requestService.ListForUser(r.Context(), userID)
	if err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	resp := dto.RequestListResponse{
		Requests: make([]dto.RequestResponse, len(requests)),
		Counts:   counts,
		Total:    len(requests),
	}
	for i := range requests {
		resp.Requests[i] = toRequestResponse(&requests[i])
	}

	respondJSON(h.logger, w, http.StatusOK, resp)
}

func (h *RequestHandler) ListLogs(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		respondError(h.logger, w, http.StatusBadRequest, "userId query parameter is required", "")
		return
	}

	logs, err := h.requestService.ListLogsForUser(r.Context(), userID)
	if err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, dto.RequestLogListResponse{
		Logs:  logs,
		Total: len(logs),
	})
}

func toRequestResponse(request *domain.Request) dto.RequestResponse {
	return dto.RequestResponse{
		ID:                 request.ID,
		AssetID:            request.AssetTag,
		Type:               string(request.Type),
		Priority:           request.Priority,
		Description:        request.Description,
		ExpectedCompletion: request.ExpectedCompletion.Format("2006-01-02"),
		Participants: dto.Participants{
			RequestedByID: request.RequestedByID,
			RequestedToID: request.RequestedToID,
			DepartmentID:  request.DepartmentID,
		},
		Status:    string(request.Status),
		CreatedAt: request.CreatedAt,
		UpdatedAt: request.UpdatedAt,
	}
}
