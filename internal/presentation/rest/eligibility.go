package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ciran541/loan-eligibility/internal/application/dto"
	"github.com/ciran541/loan-eligibility/internal/application/usecase"
	"github.com/ciran541/loan-eligibility/internal/domain/model"
	"github.com/ciran541/loan-eligibility/pkg/auth"
)

const maxBodyBytes = 1 << 20

// EligibilityHandler exposes eligibility operations as JSON over HTTP.
type EligibilityHandler struct {
	assess      *usecase.AssessEligibilityUseCase
	listRegimes *usecase.ListRegimesUseCase
	validator   *auth.Validator
	logger      *slog.Logger
}

// NewEligibilityHandler creates the handler. A nil validator leaves the
// routes unauthenticated.
func NewEligibilityHandler(
	assess *usecase.AssessEligibilityUseCase,
	listRegimes *usecase.ListRegimesUseCase,
	validator *auth.Validator,
	logger *slog.Logger,
) *EligibilityHandler {
	return &EligibilityHandler{
		assess:      assess,
		listRegimes: listRegimes,
		validator:   validator,
		logger:      logger,
	}
}

// RegisterRoutes attaches the eligibility routes to the given mux.
func (h *EligibilityHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("POST /v1/eligibility/assessments", h.protect(auth.ScopeAssess, h.assessEligibility))
	mux.Handle("GET /v1/eligibility/regimes", h.protect(auth.ScopeReadRegimes, h.regimes))
}

func (h *EligibilityHandler) protect(scope string, fn http.HandlerFunc) http.Handler {
	if h.validator == nil {
		return fn
	}
	return auth.RequireScope(h.validator, scope)(fn)
}

func (h *EligibilityHandler) assessEligibility(w http.ResponseWriter, r *http.Request) {
	var req dto.AssessEligibilityRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body: "+err.Error())
		return
	}

	resp, err := h.assess.Execute(r.Context(), req)
	if err != nil {
		h.writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *EligibilityHandler) regimes(w http.ResponseWriter, r *http.Request) {
	resp, err := h.listRegimes.Execute(r.Context(), dto.ListRegimesRequest{})
	if err != nil {
		h.writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *EligibilityHandler) writeUseCaseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrDegenerateInput):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.logger.Error("eligibility request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
