package usecase

import (
	"context"

	"github.com/ciran541/loan-eligibility/internal/application/dto"
	"github.com/ciran541/loan-eligibility/internal/domain/model"
	"github.com/ciran541/loan-eligibility/internal/domain/service"
)

// ListRegimesUseCase reports the configured regulatory parameter sets.
type ListRegimesUseCase struct {
	engine  *service.EligibilityEngine
	regimes []model.RegulatoryParams
}

// NewListRegimesUseCase wires dependencies.
func NewListRegimesUseCase(engine *service.EligibilityEngine, regimes []model.RegulatoryParams) *ListRegimesUseCase {
	return &ListRegimesUseCase{engine: engine, regimes: regimes}
}

// Execute lists every regime in evaluation order.
func (uc *ListRegimesUseCase) Execute(_ context.Context, _ dto.ListRegimesRequest) (dto.ListRegimesResponse, error) {
	policy := uc.engine.Policy()

	resp := dto.ListRegimesResponse{
		Regimes:               make([]dto.RegimeResponse, 0, len(uc.regimes)),
		StressTestAnnualRate:  policy.StressTestAnnualRate,
		InstallmentAnnualRate: policy.InstallmentAnnualRate,
		InstallmentBasis:      string(policy.InstallmentBasis),
		MSRLimit:              policy.MSRLimit,
		TDSRLimit:             policy.TDSRLimit,
	}
	for _, p := range uc.regimes {
		resp.Regimes = append(resp.Regimes, dto.RegimeResponse{
			Variant:           p.Variant.String(),
			MaxLoanPercentage: p.MaxLoanPercentage,
			MinCashPercentage: p.MinCashPercentage,
			MaxAgeLimit:       p.MaxAgeLimit,
			TenurePrivate:     p.TenurePrivate,
			TenureHDB:         p.TenureHDB,
		})
	}
	return resp, nil
}
