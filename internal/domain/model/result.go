package model

import (
	"github.com/shopspring/decimal"

	"github.com/ciran541/loan-eligibility/internal/domain/valueobject"
)

// PledgeFund is the supplementary asset requirement that lifts an
// income-limited loan up to the LTV cap: either pledge PledgeFund for the
// pledge window or show ShowFund in assets.
type PledgeFund struct {
	PledgeFund decimal.Decimal
	ShowFund   decimal.Decimal
}

// EligibilityResult is the engine output for one regulatory variant.
type EligibilityResult struct {
	Variant valueobject.Variant

	WeightedAverageAge int
	LoanTenureYears    int

	PropertyValue          decimal.Decimal
	TotalMonthlyIncome     decimal.Decimal
	TotalCommitments       decimal.Decimal
	MonthlyPaymentCapacity decimal.Decimal

	PureIncomeBasedEligibility decimal.Decimal
	MaxPossibleLoan            decimal.Decimal
	FinalLoanAmount            decimal.Decimal
	LoanShortfall              decimal.Decimal
	QualifiesForMaximum        bool
	MonthlyInstallment         decimal.Decimal

	ActualLTVPercent          decimal.Decimal
	MinCashDownpayment        decimal.Decimal
	BalanceDownpayment        decimal.Decimal
	BalanceDownpaymentPercent decimal.Decimal

	// PledgeFund is nil when the borrower already qualifies for the LTV cap or
	// the shortfall is negligible.
	PledgeFund *PledgeFund

	LegalFee                 decimal.Decimal
	ValuationFee             decimal.Decimal
	ValuationFeeOpenEnded    bool
	BuyerStampDuty           decimal.Decimal
	AdditionalBuyerStampDuty decimal.Decimal
}
