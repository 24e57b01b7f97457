package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ciran541/loan-eligibility/internal/domain/model"
)

// ---------------------------------------------------------------------------
// EligibilityEngine – domain service for mortgage eligibility
// ---------------------------------------------------------------------------

var (
	hundred       = decimal.NewFromInt(100)
	monthsPerYear = decimal.NewFromInt(12)
)

// EligibilityEngine turns borrower and property profiles into eligibility
// figures for a regulatory parameter set. It holds only its immutable policy,
// so one engine may serve concurrent callers.
type EligibilityEngine struct {
	policy model.Policy
}

// NewEligibilityEngine returns an engine for the given policy after
// validating it.
func NewEligibilityEngine(policy model.Policy) (*EligibilityEngine, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &EligibilityEngine{policy: policy}, nil
}

// NewDefaultEligibilityEngine returns an engine using model.DefaultPolicy.
func NewDefaultEligibilityEngine() *EligibilityEngine {
	return &EligibilityEngine{policy: model.DefaultPolicy()}
}

// Policy returns a copy of the engine's policy.
func (e *EligibilityEngine) Policy() model.Policy {
	return e.policy
}

// Compute evaluates the application under one parameter set.
//
// Pipeline:
//
//	income -> weighted age -> tenure -> TDSR/MSR capacity
//	-> stress-tested PV -> LTV cap -> installment -> downpayment
//	-> pledge/show fund -> fees and stamp duties
//
// Invalid input yields a *model.ValidationError; zero income or a
// non-positive tenure yields a *model.ComputationError.
func (e *EligibilityEngine) Compute(app model.Application, params model.RegulatoryParams) (model.EligibilityResult, error) {
	if err := params.Validate(); err != nil {
		return model.EligibilityResult{}, err
	}
	if err := app.Validate(); err != nil {
		return model.EligibilityResult{}, err
	}

	propertyType := app.Property.Type
	propertyValue := app.Property.Value

	totalIncome := e.TotalMonthlyIncome(app.Borrowers)
	if !totalIncome.IsPositive() {
		return model.EligibilityResult{}, &model.ComputationError{
			Step:   "income",
			Reason: "total monthly income is zero",
		}
	}

	age, err := e.WeightedAverageAge(app.Borrowers)
	if err != nil {
		return model.EligibilityResult{}, err
	}

	tenure := LoanTenure(params, propertyType, age)
	if tenure <= 0 {
		return model.EligibilityResult{}, &model.ComputationError{
			Step: "tenure",
			Reason: fmt.Sprintf("weighted average age %d leaves no tenure under the %d-year age limit",
				age, params.MaxAgeLimit),
		}
	}
	periods := tenure * 12

	commitments := TotalCommitments(app.Borrowers)
	capacity := e.MonthlyPaymentCapacity(totalIncome, commitments, propertyType)

	pure := model.PresentValue(capacity, model.MonthlyRate(e.policy.StressTestAnnualRate), periods)
	maxLoan := propertyValue.Mul(params.MaxLoanPercentage)
	final := decimal.Min(pure, maxLoan)

	minCash := propertyValue.Mul(params.MinCashPercentage)
	ltv := final.Div(propertyValue).Mul(hundred)
	valuationFee, openEnded := e.ValuationFee(propertyType, propertyValue)

	return model.EligibilityResult{
		Variant:                    params.Variant,
		WeightedAverageAge:         age,
		LoanTenureYears:            tenure,
		PropertyValue:              propertyValue,
		TotalMonthlyIncome:         totalIncome,
		TotalCommitments:           commitments,
		MonthlyPaymentCapacity:     capacity,
		PureIncomeBasedEligibility: pure,
		MaxPossibleLoan:            maxLoan,
		FinalLoanAmount:            final,
		LoanShortfall:              maxLoan.Sub(final),
		QualifiesForMaximum:        pure.GreaterThanOrEqual(maxLoan),
		MonthlyInstallment:         e.MonthlyInstallment(pure, final, periods),
		ActualLTVPercent:           ltv,
		MinCashDownpayment:         minCash,
		BalanceDownpayment:         propertyValue.Sub(final.Add(minCash)),
		BalanceDownpaymentPercent:  hundred.Sub(params.MinCashPercentage.Mul(hundred)).Sub(ltv),
		PledgeFund:                 e.PledgeFunds(pure, maxLoan, capacity, periods, propertyType),
		LegalFee:                   e.LegalFee(propertyType),
		ValuationFee:               valuationFee,
		ValuationFeeOpenEnded:      openEnded,
		BuyerStampDuty:             e.BuyerStampDuty(propertyValue),
		AdditionalBuyerStampDuty:   e.AdditionalBuyerStampDuty(propertyValue, app.Borrowers),
	}, nil
}

// ComputeAll evaluates the application once per parameter set, in order.
func (e *EligibilityEngine) ComputeAll(app model.Application, params ...model.RegulatoryParams) ([]model.EligibilityResult, error) {
	results := make([]model.EligibilityResult, 0, len(params))
	for _, p := range params {
		r, err := e.Compute(app, p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.Variant, err)
		}
		results = append(results, r)
	}
	return results, nil
}

// MonthlyInstallment quotes the repayment at the actual (non-stress) rate on
// the principal selected by the policy's installment basis.
func (e *EligibilityEngine) MonthlyInstallment(pure, final decimal.Decimal, periods int) decimal.Decimal {
	principal := pure
	if e.policy.InstallmentBasis == model.InstallmentOnFinalLoan {
		principal = final
	}
	return model.AmortizedPayment(principal, model.MonthlyRate(e.policy.InstallmentAnnualRate), periods)
}
