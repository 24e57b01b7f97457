package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ciran541/loan-eligibility/internal/application/dto"
	"github.com/ciran541/loan-eligibility/internal/domain/model"
	"github.com/ciran541/loan-eligibility/internal/domain/port"
	"github.com/ciran541/loan-eligibility/internal/domain/service"
	"github.com/ciran541/loan-eligibility/internal/domain/valueobject"
	"github.com/ciran541/loan-eligibility/pkg/money"
)

const tracerName = "github.com/ciran541/loan-eligibility/internal/application/usecase"

// AssessEligibilityUseCase parses an assessment request, runs the engine for
// each requested regulatory variant and serves repeats from the cache.
type AssessEligibilityUseCase struct {
	engine   *service.EligibilityEngine
	regimes  []model.RegulatoryParams
	cache    port.AssessmentCache
	cacheTTL time.Duration
	recorder port.AssessmentRecorder
	logger   *slog.Logger
	tracer   trace.Tracer
	now      func() time.Time
}

// NewAssessEligibilityUseCase wires dependencies. regimes are evaluated in
// the order given when a request does not name variants.
func NewAssessEligibilityUseCase(
	engine *service.EligibilityEngine,
	regimes []model.RegulatoryParams,
	cache port.AssessmentCache,
	cacheTTL time.Duration,
	recorder port.AssessmentRecorder,
	logger *slog.Logger,
) *AssessEligibilityUseCase {
	return &AssessEligibilityUseCase{
		engine:   engine,
		regimes:  regimes,
		cache:    cache,
		cacheTTL: cacheTTL,
		recorder: recorder,
		logger:   logger,
		tracer:   otel.Tracer(tracerName),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Execute assesses the request under each selected variant.
func (uc *AssessEligibilityUseCase) Execute(
	ctx context.Context,
	req dto.AssessEligibilityRequest,
) (dto.AssessEligibilityResponse, error) {
	ctx, span := uc.tracer.Start(ctx, "AssessEligibility")
	defer span.End()

	// 1. Parse the request into domain values.
	app, err := toApplication(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return dto.AssessEligibilityResponse{}, fmt.Errorf("parse request: %w", err)
	}
	params, err := uc.selectRegimes(req.Variants)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return dto.AssessEligibilityResponse{}, fmt.Errorf("select variants: %w", err)
	}

	key, err := cacheKey(uc.engine.Policy(), app, params)
	if err != nil {
		return dto.AssessEligibilityResponse{}, fmt.Errorf("build cache key: %w", err)
	}

	resp := dto.AssessEligibilityResponse{
		AssessmentID: uuid.NewString(),
		Currency:     money.SGD.Code(),
		AssessedAt:   uc.now(),
	}

	// 2. Serve a repeat from the cache.
	if results, ok := uc.cached(ctx, key); ok {
		span.SetAttributes(attribute.Bool("eligibility.cached", true))
		resp.Results = results
		resp.Cached = true
		uc.logger.Info("eligibility assessed",
			"assessment_id", resp.AssessmentID,
			"variants", len(results),
			"cached", true,
		)
		return resp, nil
	}

	// 3. Run the engine once per variant. A variant that cannot be computed
	// is reported in place; the request fails only when none can.
	resp.Results = make([]dto.EligibilityResultResponse, 0, len(params))
	var failures []error
	for _, p := range params {
		result, err := uc.compute(ctx, app, p)
		if err != nil {
			var compErr *model.ComputationError
			if !errors.As(err, &compErr) {
				span.SetStatus(codes.Error, err.Error())
				return dto.AssessEligibilityResponse{}, fmt.Errorf("compute %s: %w", p.Variant, err)
			}
			failures = append(failures, fmt.Errorf("compute %s: %w", p.Variant, err))
			resp.Results = append(resp.Results, dto.EligibilityResultResponse{
				Variant: p.Variant.String(),
				Error:   &dto.VariantError{Step: compErr.Step, Reason: compErr.Reason},
			})
			continue
		}
		resp.Results = append(resp.Results, toResultResponse(result))
	}
	if len(failures) == len(params) {
		err := errors.Join(failures...)
		span.SetStatus(codes.Error, err.Error())
		return dto.AssessEligibilityResponse{}, err
	}

	// 4. Remember the results; a cache failure never fails the request.
	if payload, err := json.Marshal(resp.Results); err == nil {
		if err := uc.cache.Set(ctx, key, payload, uc.cacheTTL); err != nil {
			uc.logger.Warn("cache write failed", "error", err)
		}
	}

	uc.logger.Info("eligibility assessed",
		"assessment_id", resp.AssessmentID,
		"variants", len(resp.Results),
		"failed_variants", len(failures),
		"cached", false,
	)
	return resp, nil
}

func (uc *AssessEligibilityUseCase) compute(
	ctx context.Context,
	app model.Application,
	params model.RegulatoryParams,
) (model.EligibilityResult, error) {
	ctx, span := uc.tracer.Start(ctx, "ComputeEligibility",
		trace.WithAttributes(attribute.String("eligibility.variant", params.Variant.String())))
	defer span.End()

	start := time.Now()
	result, err := uc.engine.Compute(app, params)
	elapsed := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		uc.recorder.RecordAssessment(ctx, params.Variant.String(), outcomeOf(err), elapsed)
		return model.EligibilityResult{}, err
	}

	outcome := port.OutcomeShortfall
	if result.QualifiesForMaximum {
		outcome = port.OutcomeQualified
	}
	span.SetAttributes(
		attribute.Int("eligibility.tenure_years", result.LoanTenureYears),
		attribute.Bool("eligibility.qualifies_for_maximum", result.QualifiesForMaximum),
	)
	uc.recorder.RecordAssessment(ctx, params.Variant.String(), outcome, elapsed)

	uc.logger.Debug("variant computed",
		"variant", params.Variant.String(),
		"final_loan", money.New(result.FinalLoanAmount, money.SGD).Format(),
		"tenure_years", result.LoanTenureYears,
	)
	return result, nil
}

func (uc *AssessEligibilityUseCase) cached(ctx context.Context, key string) ([]dto.EligibilityResultResponse, bool) {
	payload, ok, err := uc.cache.Get(ctx, key)
	if err != nil {
		uc.logger.Warn("cache read failed", "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var results []dto.EligibilityResultResponse
	if err := json.Unmarshal(payload, &results); err != nil {
		uc.logger.Warn("discarding unreadable cache entry", "error", err)
		return nil, false
	}
	return results, true
}

// selectRegimes returns the configured parameter sets named by variants, in
// request order without duplicates, or all of them when variants is empty.
func (uc *AssessEligibilityUseCase) selectRegimes(variants []string) ([]model.RegulatoryParams, error) {
	if len(variants) == 0 {
		return uc.regimes, nil
	}

	selected := make([]model.RegulatoryParams, 0, len(variants))
	seen := make(map[valueobject.Variant]bool, len(variants))
	for _, raw := range variants {
		v, err := valueobject.NewVariant(raw)
		if err != nil {
			return nil, &model.ValidationError{Field: "variants", Reason: err.Error()}
		}
		if seen[v] {
			continue
		}
		seen[v] = true

		p, ok := findRegime(uc.regimes, v)
		if !ok {
			return nil, &model.ValidationError{Field: "variants", Reason: fmt.Sprintf("variant %s is not configured", v)}
		}
		selected = append(selected, p)
	}
	return selected, nil
}

func findRegime(regimes []model.RegulatoryParams, v valueobject.Variant) (model.RegulatoryParams, bool) {
	for _, p := range regimes {
		if p.Variant.Equal(v) {
			return p, true
		}
	}
	return model.RegulatoryParams{}, false
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		return port.OutcomeInvalid
	case errors.Is(err, model.ErrDegenerateInput):
		return port.OutcomeDegenerate
	default:
		return port.OutcomeError
	}
}

// ---------------------------------------------------------------------------
// Request parsing
// ---------------------------------------------------------------------------

func toApplication(req dto.AssessEligibilityRequest) (model.Application, error) {
	app := model.Application{Borrowers: make([]model.BorrowerProfile, 0, len(req.Borrowers))}

	for i, in := range req.Borrowers {
		prefix := "borrowers[" + strconv.Itoa(i) + "]."
		b := model.BorrowerProfile{Age: in.Age}

		var err error
		if b.EmploymentStatus, err = valueobject.NewEmploymentStatus(in.EmploymentStatus); err != nil {
			return model.Application{}, &model.ValidationError{Field: prefix + "employment_status", Reason: err.Error()}
		}
		if b.ResidencyStatus, err = valueobject.NewResidencyStatus(in.ResidencyStatus); err != nil {
			return model.Application{}, &model.ValidationError{Field: prefix + "residency_status", Reason: err.Error()}
		}
		if b.BasicMonthlySalary, err = parseAmount(prefix+"basic_monthly_salary", in.BasicMonthlySalary); err != nil {
			return model.Application{}, err
		}
		if b.AnnualSupplementaryIncome, err = parseAmount(prefix+"annual_supplementary_income", in.AnnualSupplementaryIncome); err != nil {
			return model.Application{}, err
		}
		if b.MonthlyCommitments, err = parseAmount(prefix+"monthly_commitments", in.MonthlyCommitments); err != nil {
			return model.Application{}, err
		}
		app.Borrowers = append(app.Borrowers, b)
	}

	propertyType, err := valueobject.NewPropertyType(req.Property.Type)
	if err != nil {
		return model.Application{}, &model.ValidationError{Field: "property.type", Reason: err.Error()}
	}
	value, err := parseAmount("property.value", req.Property.Value)
	if err != nil {
		return model.Application{}, err
	}
	app.Property = model.PropertyProfile{Type: propertyType, Value: value}
	return app, nil
}

func parseAmount(field, raw string) (decimal.Decimal, error) {
	m, err := money.Parse(raw, money.SGD)
	if err != nil {
		return decimal.Zero, &model.ValidationError{Field: field, Reason: err.Error()}
	}
	return m.Amount(), nil
}

// cacheKey digests the normalized application, the selected variants and the
// whole policy, so "1,200,000" and "1200000.00" share an entry while
// differently configured instances sharing Redis do not.
func cacheKey(policy model.Policy, app model.Application, params []model.RegulatoryParams) (string, error) {
	type borrower struct {
		Age         int    `json:"age"`
		Employment  string `json:"employment"`
		Salary      string `json:"salary"`
		NOA         string `json:"noa"`
		Residency   string `json:"residency"`
		Commitments string `json:"commitments"`
	}
	type regime struct {
		Variant string `json:"variant"`
		MaxLoan string `json:"max_loan"`
		MinCash string `json:"min_cash"`
		MaxAge  int    `json:"max_age"`
		Private int    `json:"private"`
		HDB     int    `json:"hdb"`
	}
	canonical := struct {
		Borrowers []borrower   `json:"borrowers"`
		Property  string       `json:"property"`
		Value     string       `json:"value"`
		Regimes   []regime     `json:"regimes"`
		Policy    model.Policy `json:"policy"`
	}{
		Property: app.Property.Type.String(),
		Value:    app.Property.Value.String(),
		Policy:   policy,
	}
	for _, b := range app.Borrowers {
		canonical.Borrowers = append(canonical.Borrowers, borrower{
			Age:         b.Age,
			Employment:  b.EmploymentStatus.String(),
			Salary:      b.BasicMonthlySalary.String(),
			NOA:         b.AnnualSupplementaryIncome.String(),
			Residency:   b.ResidencyStatus.String(),
			Commitments: b.MonthlyCommitments.String(),
		})
	}
	for _, p := range params {
		canonical.Regimes = append(canonical.Regimes, regime{
			Variant: p.Variant.String(),
			MaxLoan: p.MaxLoanPercentage.String(),
			MinCash: p.MinCashPercentage.String(),
			MaxAge:  p.MaxAgeLimit,
			Private: p.TenurePrivate,
			HDB:     p.TenureHDB,
		})
	}

	payload, err := json.Marshal(canonical)
	if err != nil {
		return "", err
	}
	return "eligibility:" + strconv.FormatUint(xxhash.Sum64(payload), 16), nil
}

// ---------------------------------------------------------------------------
// Response mapping
// ---------------------------------------------------------------------------

func cents(d decimal.Decimal) decimal.Decimal {
	return money.New(d, money.SGD).Round().Amount()
}

func toResultResponse(r model.EligibilityResult) dto.EligibilityResultResponse {
	resp := dto.EligibilityResultResponse{
		Variant:                    r.Variant.String(),
		WeightedAverageAge:         r.WeightedAverageAge,
		LoanTenureYears:            r.LoanTenureYears,
		PropertyValue:              cents(r.PropertyValue),
		TotalMonthlyIncome:         cents(r.TotalMonthlyIncome),
		TotalCommitments:           cents(r.TotalCommitments),
		MonthlyPaymentCapacity:     cents(r.MonthlyPaymentCapacity),
		PureIncomeBasedEligibility: cents(r.PureIncomeBasedEligibility),
		MaxPossibleLoan:            cents(r.MaxPossibleLoan),
		FinalLoanAmount:            cents(r.FinalLoanAmount),
		LoanShortfall:              cents(r.LoanShortfall),
		QualifiesForMaximum:        r.QualifiesForMaximum,
		MonthlyInstallment:         cents(r.MonthlyInstallment),
		ActualLTVPercent:           r.ActualLTVPercent.Round(2),
		MinCashDownpayment:         cents(r.MinCashDownpayment),
		BalanceDownpayment:         cents(r.BalanceDownpayment),
		BalanceDownpaymentPercent:  r.BalanceDownpaymentPercent.Round(2),
		LegalFee:                   cents(r.LegalFee),
		ValuationFee:               cents(r.ValuationFee),
		ValuationFeeOpenEnded:      r.ValuationFeeOpenEnded,
		BuyerStampDuty:             cents(r.BuyerStampDuty),
		AdditionalBuyerStampDuty:   cents(r.AdditionalBuyerStampDuty),
	}
	if r.PledgeFund != nil {
		resp.PledgeFund = &dto.PledgeFundResponse{
			PledgeFund: cents(r.PledgeFund.PledgeFund),
			ShowFund:   cents(r.PledgeFund.ShowFund),
		}
	}
	return resp
}
