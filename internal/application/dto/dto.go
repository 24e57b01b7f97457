package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// BorrowerInput carries one borrower as entered. Amounts are SGD strings and
// may contain grouping commas; an empty amount is zero.
type BorrowerInput struct {
	Age                       int    `json:"age"`
	EmploymentStatus          string `json:"employment_status"`
	BasicMonthlySalary        string `json:"basic_monthly_salary,omitempty"`
	AnnualSupplementaryIncome string `json:"annual_supplementary_income,omitempty"`
	ResidencyStatus           string `json:"residency_status"`
	MonthlyCommitments        string `json:"monthly_commitments,omitempty"`
}

// PropertyInput carries the property being financed.
type PropertyInput struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// AssessEligibilityRequest carries one or two borrowers and a property.
// Variants restricts the regulatory parameter sets evaluated; empty means all.
type AssessEligibilityRequest struct {
	Borrowers []BorrowerInput `json:"borrowers"`
	Property  PropertyInput   `json:"property"`
	Variants  []string        `json:"variants,omitempty"`
}

// ListRegimesRequest is empty; it exists so the RPC surface stays uniform.
type ListRegimesRequest struct{}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// PledgeFundResponse is the supplementary asset requirement for a shortfall.
type PledgeFundResponse struct {
	PledgeFund decimal.Decimal `json:"pledge_fund"`
	ShowFund   decimal.Decimal `json:"show_fund"`
}

// VariantError explains why one variant produced no figures, for example a
// borrower too old for its age limit.
type VariantError struct {
	Step   string `json:"step"`
	Reason string `json:"reason"`
}

// EligibilityResultResponse is the external representation of one variant's
// result. Money fields are rounded to cents. When Error is set the figures
// are zero.
type EligibilityResultResponse struct {
	Variant                    string              `json:"variant"`
	Error                      *VariantError       `json:"error,omitempty"`
	WeightedAverageAge         int                 `json:"weighted_average_age"`
	LoanTenureYears            int                 `json:"loan_tenure_years"`
	PropertyValue              decimal.Decimal     `json:"property_value"`
	TotalMonthlyIncome         decimal.Decimal     `json:"total_monthly_income"`
	TotalCommitments           decimal.Decimal     `json:"total_commitments"`
	MonthlyPaymentCapacity     decimal.Decimal     `json:"monthly_payment_capacity"`
	PureIncomeBasedEligibility decimal.Decimal     `json:"pure_income_based_eligibility"`
	MaxPossibleLoan            decimal.Decimal     `json:"max_possible_loan"`
	FinalLoanAmount            decimal.Decimal     `json:"final_loan_amount"`
	LoanShortfall              decimal.Decimal     `json:"loan_shortfall"`
	QualifiesForMaximum        bool                `json:"qualifies_for_maximum"`
	MonthlyInstallment         decimal.Decimal     `json:"monthly_installment"`
	ActualLTVPercent           decimal.Decimal     `json:"actual_ltv_percent"`
	MinCashDownpayment         decimal.Decimal     `json:"min_cash_downpayment"`
	BalanceDownpayment         decimal.Decimal     `json:"balance_downpayment"`
	BalanceDownpaymentPercent  decimal.Decimal     `json:"balance_downpayment_percent"`
	PledgeFund                 *PledgeFundResponse `json:"pledge_fund,omitempty"`
	LegalFee                   decimal.Decimal     `json:"legal_fee"`
	ValuationFee               decimal.Decimal     `json:"valuation_fee"`
	ValuationFeeOpenEnded      bool                `json:"valuation_fee_open_ended"`
	BuyerStampDuty             decimal.Decimal     `json:"buyer_stamp_duty"`
	AdditionalBuyerStampDuty   decimal.Decimal     `json:"additional_buyer_stamp_duty"`
}

// AssessEligibilityResponse wraps the per-variant results of one assessment.
type AssessEligibilityResponse struct {
	AssessmentID string                      `json:"assessment_id"`
	Currency     string                      `json:"currency"`
	Results      []EligibilityResultResponse `json:"results"`
	Cached       bool                        `json:"cached"`
	AssessedAt   time.Time                   `json:"assessed_at"`
}

// RegimeResponse describes one regulatory parameter set.
type RegimeResponse struct {
	Variant           string          `json:"variant"`
	MaxLoanPercentage decimal.Decimal `json:"max_loan_percentage"`
	MinCashPercentage decimal.Decimal `json:"min_cash_percentage"`
	MaxAgeLimit       int             `json:"max_age_limit"`
	TenurePrivate     int             `json:"tenure_private"`
	TenureHDB         int             `json:"tenure_hdb"`
}

// ListRegimesResponse lists the configured parameter sets and the rates
// shared by all of them.
type ListRegimesResponse struct {
	Regimes               []RegimeResponse `json:"regimes"`
	StressTestAnnualRate  decimal.Decimal  `json:"stress_test_annual_rate"`
	InstallmentAnnualRate decimal.Decimal  `json:"installment_annual_rate"`
	InstallmentBasis      string           `json:"installment_basis"`
	MSRLimit              decimal.Decimal  `json:"msr_limit"`
	TDSRLimit             decimal.Decimal  `json:"tdsr_limit"`
}
