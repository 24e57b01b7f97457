package grpc

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ciran541/loan-eligibility/internal/application/dto"
	"github.com/ciran541/loan-eligibility/internal/application/usecase"
	"github.com/ciran541/loan-eligibility/internal/domain/model"
)

// EligibilityHandler is the gRPC handler for eligibility operations.
type EligibilityHandler struct {
	UnimplementedEligibilityServiceServer

	assess      *usecase.AssessEligibilityUseCase
	listRegimes *usecase.ListRegimesUseCase
	logger      *slog.Logger
}

// NewEligibilityHandler creates a new handler with all use-case dependencies.
func NewEligibilityHandler(
	assess *usecase.AssessEligibilityUseCase,
	listRegimes *usecase.ListRegimesUseCase,
	logger *slog.Logger,
) *EligibilityHandler {
	return &EligibilityHandler{
		assess:      assess,
		listRegimes: listRegimes,
		logger:      logger,
	}
}

// Assess runs an eligibility assessment.
func (h *EligibilityHandler) Assess(ctx context.Context, req *dto.AssessEligibilityRequest) (*dto.AssessEligibilityResponse, error) {
	resp, err := h.assess.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus("Assess", err)
	}
	return &resp, nil
}

// ListRegimes returns the configured regulatory parameter sets.
func (h *EligibilityHandler) ListRegimes(ctx context.Context, req *dto.ListRegimesRequest) (*dto.ListRegimesResponse, error) {
	resp, err := h.listRegimes.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus("ListRegimes", err)
	}
	return &resp, nil
}

func (h *EligibilityHandler) toStatus(method string, err error) error {
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, model.ErrDegenerateInput):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		h.logger.Error("eligibility request failed", "method", method, "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}
