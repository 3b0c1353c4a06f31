package handler

import (
	"log/slog"
	"net/http"

	"github.com/asset-tracking-api/internal/domain"
	"github.com/asset-tracking-api/internal/dto"
	"github.com/asset-tracking-api/internal/service"
	"github.com/go-playground/validator/v10"
)

type DepartmentHandler struct {
	deptService service.DepartmentService
	validator   *validator.Validate
	logger      *slog.Logger
}

func NewDepartmentHandler(deptService service.DepartmentService, logger *slog.Logger) *DepartmentHandler {
	return &DepartmentHandler{
		deptService: deptService,
		validator:   validator.New(),
		logger:      logger,
	}
}

func (h *DepartmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDepartmentRequest
	if err := decodeStrict(r, &req); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	dept, err := h.deptService.Create(r.Context(), &req, actorFromRequest(r))
	if err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusCreated, toDepartmentResponse(dept))
}

func (h *DepartmentHandler) GetByID(w http.ResponseWriter, r *http.Request, departmentID string) {
	dept, err := h.deptService.GetByID(r.Context(), departmentID)
	if err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, toDepartmentResponse(dept))
}

func (h *DepartmentHandler) Update(w http.ResponseWriter, r *http.Request, departmentID string) {
	var req dto.UpdateDepartmentRequest
	if err := decodeStrict(r, &req); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	dept, err := h.deptService.Update(r.Context(), departmentID, &req, actorFromRequest(r))
	if err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, toDepartmentResponse(dept))
}

func (h *DepartmentHandler) Delete(w http.ResponseWriter, r *http.Request, departmentID string) {
	if err := h.deptService.Delete(r.Context(), departmentID, actorFromRequest(r)); err != nil {
		handleServiceError(h.logger, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toDepartmentResponse(dept *domain.Department) dto.DepartmentResponse {
	return dto.DepartmentResponse{
		DepartmentID: dept.DepartmentID,
		Name:         dept.Name,
		Description:  dept.Description,
		Manager:      dto.DepartmentManager{UserID: dept.ManagerUserID},
		Stats: dto.DepartmentStats{
			EmployeeCount: dept.EmployeeCount,
			Budget:        dept.Budget,
		},
		Positions: dept.Positions,
		CreatedAt: dept.CreatedAt,
		UpdatedAt: dept.UpdatedAt,
	}
}
