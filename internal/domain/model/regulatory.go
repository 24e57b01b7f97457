package model

import (
	"github.com/shopspring/decimal"

	"github.com/ciran541/loan-eligibility/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// RegulatoryParams – per-variant limits
// ---------------------------------------------------------------------------

// RegulatoryParams holds the limits that differ between regulatory variants.
// Values are passed by copy and never mutated after construction.
type RegulatoryParams struct {
	Variant           valueobject.Variant
	MaxLoanPercentage decimal.Decimal
	MinCashPercentage decimal.Decimal
	MaxAgeLimit       int
	TenurePrivate     int
	TenureHDB         int
}

// StandardParams returns the 75% LTV parameter set.
func StandardParams() RegulatoryParams {
	return RegulatoryParams{
		Variant:           valueobject.VariantStandard,
		MaxLoanPercentage: decimal.RequireFromString("0.75"),
		MinCashPercentage: decimal.RequireFromString("0.05"),
		MaxAgeLimit:       65,
		TenurePrivate:     30,
		TenureHDB:         25,
	}
}

// AlternativeParams returns the 55% LTV parameter set.
func AlternativeParams() RegulatoryParams {
	return RegulatoryParams{
		Variant:           valueobject.VariantAlternative,
		MaxLoanPercentage: decimal.RequireFromString("0.55"),
		MinCashPercentage: decimal.RequireFromString("0.10"),
		MaxAgeLimit:       75,
		TenurePrivate:     35,
		TenureHDB:         30,
	}
}

// TenureCap returns the maximum tenure in years for the property type.
func (p RegulatoryParams) TenureCap(propertyType valueobject.PropertyType) int {
	if propertyType.IsHDB() {
		return p.TenureHDB
	}
	return p.TenurePrivate
}

// Validate checks the parameter set for values the engine cannot work with.
func (p RegulatoryParams) Validate() error {
	one := decimal.NewFromInt(1)
	switch {
	case p.Variant.IsZero():
		return newValidationError("params.variant", "is required")
	case !p.MaxLoanPercentage.IsPositive() || p.MaxLoanPercentage.GreaterThan(one):
		return newValidationError("params.max_loan_percentage", "must be in (0, 1], got %s", p.MaxLoanPercentage)
	case p.MinCashPercentage.IsNegative() || p.MinCashPercentage.Add(p.MaxLoanPercentage).GreaterThan(one):
		return newValidationError("params.min_cash_percentage",
			"must be non-negative and leave room for the loan, got %s", p.MinCashPercentage)
	case p.MaxAgeLimit <= 0:
		return newValidationError("params.max_age_limit", "must be positive, got %d", p.MaxAgeLimit)
	case p.TenurePrivate <= 0:
		return newValidationError("params.tenure_private", "must be positive, got %d", p.TenurePrivate)
	case p.TenureHDB <= 0:
		return newValidationError("params.tenure_hdb", "must be positive, got %d", p.TenureHDB)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Policy – constants shared by every variant
// ---------------------------------------------------------------------------

// InstallmentBasis selects the principal the monthly installment is quoted on.
type InstallmentBasis string

const (
	// InstallmentOnIncomeEligibility quotes the installment on the uncapped
	// income-based eligibility.
	InstallmentOnIncomeEligibility InstallmentBasis = "income_eligibility"
	// InstallmentOnFinalLoan quotes the installment on the LTV-capped loan.
	InstallmentOnFinalLoan InstallmentBasis = "final_loan"
)

// StampDutyBracket taxes the slice of property value up to UpTo at Rate.
// A zero UpTo marks the open-ended top bracket.
type StampDutyBracket struct {
	UpTo decimal.Decimal
	Rate decimal.Decimal
}

// ValuationTier charges Fee for property values strictly below Below.
// A zero Below marks the catch-all tier.
type ValuationTier struct {
	Below decimal.Decimal
	Fee   decimal.Decimal
}

// Policy carries the rates, limits and fee schedules common to all variants.
type Policy struct {
	InstallmentBasis InstallmentBasis

	StressTestAnnualRate  decimal.Decimal
	InstallmentAnnualRate decimal.Decimal
	MSRLimit              decimal.Decimal
	TDSRLimit             decimal.Decimal
	NOAFactor             decimal.Decimal

	PledgeFundMonths     int
	PledgeDivisorHDB     decimal.Decimal
	PledgeDivisorPrivate decimal.Decimal
	ShowFundDivisor      decimal.Decimal
	ShortfallThreshold   decimal.Decimal

	BuyerStampDuty        []StampDutyBracket
	ABSDForeigner         decimal.Decimal
	ABSDPermanentResident decimal.Decimal

	LegalFeeHDB            decimal.Decimal
	LegalFeePrivate        decimal.Decimal
	ValuationFeeHDB        decimal.Decimal
	ValuationTiersPrivate  []ValuationTier
	ValuationOpenEndedFrom decimal.Decimal
}

// DefaultPolicy returns the published constants. The stress-test rate is
// 4.0%; an older schedule used 4.2% and can be restored through configuration.
func DefaultPolicy() Policy {
	d := decimal.RequireFromString
	return Policy{
		InstallmentBasis:      InstallmentOnIncomeEligibility,
		StressTestAnnualRate:  d("0.040"),
		InstallmentAnnualRate: d("0.025"),
		MSRLimit:              d("0.30"),
		TDSRLimit:             d("0.55"),
		NOAFactor:             d("0.7"),
		PledgeFundMonths:      48,
		PledgeDivisorHDB:      d("0.30"),
		PledgeDivisorPrivate:  d("0.55"),
		ShowFundDivisor:       d("0.3"),
		ShortfallThreshold:    d("1"),
		BuyerStampDuty: []StampDutyBracket{
			{UpTo: d("180000"), Rate: d("0.01")},
			{UpTo: d("360000"), Rate: d("0.02")},
			{UpTo: d("1000000"), Rate: d("0.03")},
			{UpTo: d("1500000"), Rate: d("0.04")},
			{UpTo: d("3000000"), Rate: d("0.05")},
			{Rate: d("0.06")},
		},
		ABSDForeigner:         d("0.60"),
		ABSDPermanentResident: d("0.05"),
		LegalFeeHDB:           d("1800"),
		LegalFeePrivate:       d("2500"),
		ValuationFeeHDB:       d("120"),
		ValuationTiersPrivate: []ValuationTier{
			{Below: d("1000000"), Fee: d("300")},
			{Below: d("2000000"), Fee: d("400")},
			{Fee: d("500")},
		},
		ValuationOpenEndedFrom: d("2000000"),
	}
}

// Validate checks the policy for values that would make the engine divide by
// zero or misread a schedule.
func (p Policy) Validate() error {
	one := decimal.NewFromInt(1)

	switch p.InstallmentBasis {
	case InstallmentOnIncomeEligibility, InstallmentOnFinalLoan:
	default:
		return newValidationError("policy.installment_basis", "unknown basis %q", p.InstallmentBasis)
	}

	rates := []struct {
		field string
		value decimal.Decimal
	}{
		{"policy.stress_test_annual_rate", p.StressTestAnnualRate},
		{"policy.installment_annual_rate", p.InstallmentAnnualRate},
		{"policy.absd_foreigner", p.ABSDForeigner},
		{"policy.absd_permanent_resident", p.ABSDPermanentResident},
		{"policy.shortfall_threshold", p.ShortfallThreshold},
		{"policy.legal_fee_hdb", p.LegalFeeHDB},
		{"policy.legal_fee_private", p.LegalFeePrivate},
		{"policy.valuation_fee_hdb", p.ValuationFeeHDB},
	}
	for _, r := range rates {
		if r.value.IsNegative() {
			return newValidationError(r.field, "must not be negative, got %s", r.value)
		}
	}

	limits := []struct {
		field string
		value decimal.Decimal
	}{
		{"policy.msr_limit", p.MSRLimit},
		{"policy.tdsr_limit", p.TDSRLimit},
		{"policy.noa_factor", p.NOAFactor},
	}
	for _, l := range limits {
		if !l.value.IsPositive() || l.value.GreaterThan(one) {
			return newValidationError(l.field, "must be in (0, 1], got %s", l.value)
		}
	}

	divisors := []struct {
		field string
		value decimal.Decimal
	}{
		{"policy.pledge_divisor_hdb", p.PledgeDivisorHDB},
		{"policy.pledge_divisor_private", p.PledgeDivisorPrivate},
		{"policy.show_fund_divisor", p.ShowFundDivisor},
	}
	for _, dv := range divisors {
		if !dv.value.IsPositive() {
			return newValidationError(dv.field, "must be positive, got %s", dv.value)
		}
	}

	if p.PledgeFundMonths <= 0 {
		return newValidationError("policy.pledge_fund_months", "must be positive, got %d", p.PledgeFundMonths)
	}
	if err := validateBrackets(p.BuyerStampDuty); err != nil {
		return err
	}
	return validateTiers(p.ValuationTiersPrivate)
}

func validateBrackets(brackets []StampDutyBracket) error {
	if len(brackets) == 0 {
		return newValidationError("policy.buyer_stamp_duty", "at least one bracket is required")
	}
	prev := decimal.Zero
	for i, b := range brackets {
		last := i == len(brackets)-1
		if b.Rate.IsNegative() {
			return newValidationError("policy.buyer_stamp_duty", "bracket %d has negative rate %s", i, b.Rate)
		}
		if last {
			if !b.UpTo.IsZero() {
				return newValidationError("policy.buyer_stamp_duty", "top bracket must be open-ended")
			}
			break
		}
		if !b.UpTo.GreaterThan(prev) {
			return newValidationError("policy.buyer_stamp_duty", "bracket %d upper bound %s is not ascending", i, b.UpTo)
		}
		prev = b.UpTo
	}
	return nil
}

func validateTiers(tiers []ValuationTier) error {
	if len(tiers) == 0 {
		return newValidationError("policy.valuation_tiers_private", "at least one tier is required")
	}
	prev := decimal.Zero
	for i, t := range tiers {
		last := i == len(tiers)-1
		if t.Fee.IsNegative() {
			return newValidationError("policy.valuation_tiers_private", "tier %d has negative fee %s", i, t.Fee)
		}
		if last {
			if !t.Below.IsZero() {
				return newValidationError("policy.valuation_tiers_private", "last tier must be a catch-all")
			}
			break
		}
		if !t.Below.GreaterThan(prev) {
			return newValidationError("policy.valuation_tiers_private", "tier %d bound %s is not ascending", i, t.Below)
		}
		prev = t.Below
	}
	return nil
}
