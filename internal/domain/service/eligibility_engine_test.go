package service_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ciran541/loan-eligibility/internal/domain/model"
	"github.com/ciran541/loan-eligibility/internal/domain/service"
	"github.com/ciran541/loan-eligibility/internal/domain/valueobject"
	"github.com/ciran541/loan-eligibility/pkg/testutil"
)

func TestEligibilityEngine_Compute_PrivateQualifiesForMaximum(t *testing.T) {
	engine := service.NewDefaultEligibilityEngine()
	app := application(valueobject.PropertyPrivate, "1200000",
		withCommitments(employed(35, "8000", "24000", valueobject.ResidencyCitizen), "500"))

	r, err := engine.Compute(app, model.StandardParams())
	require.NoError(t, err)

	assert.Equal(t, valueobject.VariantStandard, r.Variant)
	assert.Equal(t, 35, r.WeightedAverageAge)
	assert.Equal(t, 30, r.LoanTenureYears)
	testutil.AssertDecimalEqual(t, "9400", r.TotalMonthlyIncome)
	testutil.AssertDecimalEqual(t, "4670", r.MonthlyPaymentCapacity)

	// 4,670/month over 360 months at 4.0%/12.
	testutil.AssertDecimalNear(t, 978183.99, r.PureIncomeBasedEligibility, 0.01)
	testutil.AssertDecimalEqual(t, "900000", r.MaxPossibleLoan)
	testutil.AssertDecimalEqual(t, "900000", r.FinalLoanAmount)
	testutil.AssertDecimalEqual(t, "0", r.LoanShortfall)
	assert.True(t, r.QualifiesForMaximum)
	assert.Nil(t, r.PledgeFund)

	// Installment is quoted on the uncapped eligibility at 2.5%.
	testutil.AssertDecimalNear(t, 3865.01, r.MonthlyInstallment, 0.01)

	testutil.AssertDecimalEqual(t, "75", r.ActualLTVPercent)
	testutil.AssertDecimalEqual(t, "60000", r.MinCashDownpayment)
	testutil.AssertDecimalEqual(t, "240000", r.BalanceDownpayment)
	testutil.AssertDecimalEqual(t, "20", r.BalanceDownpaymentPercent)

	testutil.AssertDecimalEqual(t, "2500", r.LegalFee)
	testutil.AssertDecimalEqual(t, "400", r.ValuationFee)
	assert.False(t, r.ValuationFeeOpenEnded)
	testutil.AssertDecimalEqual(t, "32600", r.BuyerStampDuty)
	testutil.AssertDecimalEqual(t, "0", r.AdditionalBuyerStampDuty)
}

func TestEligibilityEngine_Compute_HDBShortfall(t *testing.T) {
	engine := service.NewDefaultEligibilityEngine()
	app := application(valueobject.PropertyHDB, "600000",
		employed(40, "4000", "0", valueobject.ResidencyPermanentResident))

	t.Run("standard", func(t *testing.T) {
		r, err := engine.Compute(app, model.StandardParams())
		require.NoError(t, err)

		assert.Equal(t, 25, r.LoanTenureYears)
		// MSR (30%) binds before TDSR (55%).
		testutil.AssertDecimalEqual(t, "1200", r.MonthlyPaymentCapacity)
		testutil.AssertDecimalNear(t, 227342.98, r.PureIncomeBasedEligibility, 0.01)
		testutil.AssertDecimalEqual(t, "450000", r.MaxPossibleLoan)
		assert.True(t, r.FinalLoanAmount.Equal(r.PureIncomeBasedEligibility))
		assert.False(t, r.QualifiesForMaximum)
		testutil.AssertDecimalNear(t, 450000-227342.98, r.LoanShortfall, 0.01)

		require.NotNil(t, r.PledgeFund)
		testutil.AssertDecimalNear(t, 188042.53, r.PledgeFund.PledgeFund, 0.01)
		testutil.AssertDecimalNear(t, 626808.42, r.PledgeFund.ShowFund, 0.01)

		testutil.AssertDecimalEqual(t, "1800", r.LegalFee)
		testutil.AssertDecimalEqual(t, "120", r.ValuationFee)
		testutil.AssertDecimalEqual(t, "30000", r.AdditionalBuyerStampDuty)
	})

	t.Run("alternative", func(t *testing.T) {
		r, err := engine.Compute(app, model.AlternativeParams())
		require.NoError(t, err)

		assert.Equal(t, valueobject.VariantAlternative, r.Variant)
		assert.Equal(t, 30, r.LoanTenureYears)
		testutil.AssertDecimalNear(t, 251353.49, r.PureIncomeBasedEligibility, 0.01)
		testutil.AssertDecimalEqual(t, "330000", r.MaxPossibleLoan)
		testutil.AssertDecimalEqual(t, "60000", r.MinCashDownpayment)
		require.NotNil(t, r.PledgeFund)
	})
}

func TestEligibilityEngine_Compute_NoIncomeHeadroomAmortizesWholeShortfall(t *testing.T) {
	engine := service.NewDefaultEligibilityEngine()
	app := application(valueobject.PropertyPrivate, "1000000",
		withCommitments(employed(30, "2000", "0", valueobject.ResidencyCitizen), "2000"))

	r, err := engine.Compute(app, model.StandardParams())
	require.NoError(t, err)

	assert.True(t, r.MonthlyPaymentCapacity.IsZero())
	assert.True(t, r.PureIncomeBasedEligibility.IsZero())
	assert.True(t, r.FinalLoanAmount.IsZero())
	assert.True(t, r.MonthlyInstallment.IsZero())
	testutil.AssertDecimalEqual(t, "750000", r.LoanShortfall)
	testutil.AssertDecimalEqual(t, "0", r.ActualLTVPercent)
	testutil.AssertDecimalEqual(t, "950000", r.BalanceDownpayment)
	testutil.AssertDecimalEqual(t, "95", r.BalanceDownpaymentPercent)

	require.NotNil(t, r.PledgeFund)
	testutil.AssertDecimalNear(t, 312490.01, r.PledgeFund.PledgeFund, 0.01)
	testutil.AssertDecimalNear(t, 1041633.37, r.PledgeFund.ShowFund, 0.01)
}

func TestEligibilityEngine_Compute_JointBorrowers(t *testing.T) {
	engine := service.NewDefaultEligibilityEngine()
	app := application(valueobject.PropertyPrivate, "2500000",
		employed(30, "5000", "24000", valueobject.ResidencyCitizen),
		selfEmployed(40, "24000", valueobject.ResidencyForeigner),
	)

	r, err := engine.Compute(app, model.StandardParams())
	require.NoError(t, err)

	// ceil((30*6400 + 40*1400) / 7800) = ceil(31.79) = 32
	assert.Equal(t, 32, r.WeightedAverageAge)
	assert.Equal(t, 30, r.LoanTenureYears)
	testutil.AssertDecimalEqual(t, "7800", r.TotalMonthlyIncome)
	testutil.AssertDecimalEqual(t, "1500000", r.AdditionalBuyerStampDuty)
	testutil.AssertDecimalEqual(t, "500", r.ValuationFee)
	assert.True(t, r.ValuationFeeOpenEnded)
}

func TestEligibilityEngine_Compute_InstallmentOnFinalLoan(t *testing.T) {
	policy := model.DefaultPolicy()
	policy.InstallmentBasis = model.InstallmentOnFinalLoan
	engine, err := service.NewEligibilityEngine(policy)
	require.NoError(t, err)

	app := application(valueobject.PropertyPrivate, "1200000",
		withCommitments(employed(35, "8000", "24000", valueobject.ResidencyCitizen), "500"))

	r, err := engine.Compute(app, model.StandardParams())
	require.NoError(t, err)

	want := model.AmortizedPayment(r.FinalLoanAmount, model.MonthlyRate(policy.InstallmentAnnualRate), 360)
	assert.True(t, want.Equal(r.MonthlyInstallment), "want %s, got %s", want, r.MonthlyInstallment)
	assert.True(t, r.MonthlyInstallment.LessThan(dec("3865")))
}

func TestEligibilityEngine_Compute_LoanNeverExceedsEitherCap(t *testing.T) {
	engine := service.NewDefaultEligibilityEngine()

	apps := map[string]model.Application{
		"income bound":   application(valueobject.PropertyHDB, "800000", employed(45, "3000", "6000", valueobject.ResidencyCitizen)),
		"ltv bound":      application(valueobject.PropertyPrivate, "500000", employed(28, "20000", "120000", valueobject.ResidencyCitizen)),
		"self employed":  application(valueobject.PropertyPrivate, "1800000", selfEmployed(50, "300000", valueobject.ResidencyPermanentResident)),
		"heavy debt":     application(valueobject.PropertyPrivate, "900000", withCommitments(employed(33, "7000", "0", valueobject.ResidencyCitizen), "3500")),
		"joint hdb":      application(valueobject.PropertyHDB, "550000", employed(29, "4200", "8000", valueobject.ResidencyCitizen), employed(31, "3800", "0", valueobject.ResidencyCitizen)),
		"near age limit": application(valueobject.PropertyPrivate, "1000000", employed(63, "15000", "0", valueobject.ResidencyCitizen)),
	}

	for name, app := range apps {
		for _, params := range []model.RegulatoryParams{model.StandardParams(), model.AlternativeParams()} {
			t.Run(name+"/"+params.Variant.String(), func(t *testing.T) {
				r, err := engine.Compute(app, params)
				require.NoError(t, err)

				assert.True(t, r.FinalLoanAmount.LessThanOrEqual(r.MaxPossibleLoan))
				assert.True(t, r.FinalLoanAmount.LessThanOrEqual(r.PureIncomeBasedEligibility))
				if r.PureIncomeBasedEligibility.GreaterThanOrEqual(r.MaxPossibleLoan) {
					assert.Nil(t, r.PledgeFund)
					assert.True(t, r.QualifiesForMaximum)
				}
				assert.True(t, r.LoanShortfall.GreaterThanOrEqual(decimal.Zero))
			})
		}
	}
}

func TestEligibilityEngine_Compute_Deterministic(t *testing.T) {
	engine := service.NewDefaultEligibilityEngine()
	app := application(valueobject.PropertyHDB, "650000",
		employed(38, "5200", "9000", valueobject.ResidencyCitizen),
		selfEmployed(41, "60000", valueobject.ResidencyPermanentResident),
	)

	first, err := engine.Compute(app, model.StandardParams())
	require.NoError(t, err)
	second, err := engine.Compute(app, model.StandardParams())
	require.NoError(t, err)

	assert.Equal(t, first, second)

	other, err := service.NewEligibilityEngine(model.DefaultPolicy())
	require.NoError(t, err)
	third, err := other.Compute(app, model.StandardParams())
	require.NoError(t, err)
	assert.Equal(t, first, third)
}

func TestEligibilityEngine_Compute_Errors(t *testing.T) {
	engine := service.NewDefaultEligibilityEngine()

	t.Run("zero income is a computation error", func(t *testing.T) {
		app := application(valueobject.PropertyPrivate, "1000000",
			employed(35, "0", "0", valueobject.ResidencyCitizen))

		_, err := engine.Compute(app, model.StandardParams())
		require.Error(t, err)

		var compErr *model.ComputationError
		require.True(t, errors.As(err, &compErr))
		assert.Equal(t, "income", compErr.Step)
		assert.ErrorIs(t, err, model.ErrDegenerateInput)
	})

	t.Run("joint zero income is a computation error", func(t *testing.T) {
		app := application(valueobject.PropertyHDB, "500000",
			selfEmployed(35, "0", valueobject.ResidencyCitizen),
			employed(37, "0", "0", valueobject.ResidencyCitizen),
		)

		_, err := engine.Compute(app, model.AlternativeParams())
		assert.ErrorIs(t, err, model.ErrDegenerateInput)
	})

	t.Run("age at the limit leaves no tenure", func(t *testing.T) {
		app := application(valueobject.PropertyPrivate, "1000000",
			employed(65, "10000", "0", valueobject.ResidencyCitizen))

		_, err := engine.Compute(app, model.StandardParams())

		var compErr *model.ComputationError
		require.True(t, errors.As(err, &compErr))
		assert.Equal(t, "tenure", compErr.Step)

		// The alternative age limit of 75 still leaves ten years.
		r, err := engine.Compute(app, model.AlternativeParams())
		require.NoError(t, err)
		assert.Equal(t, 10, r.LoanTenureYears)
	})

	tests := []struct {
		name  string
		app   model.Application
		field string
	}{
		{
			name:  "no borrowers",
			app:   application(valueobject.PropertyPrivate, "1000000"),
			field: "borrowers",
		},
		{
			name: "three borrowers",
			app: application(valueobject.PropertyPrivate, "1000000",
				employed(30, "1", "0", valueobject.ResidencyCitizen),
				employed(30, "1", "0", valueobject.ResidencyCitizen),
				employed(30, "1", "0", valueobject.ResidencyCitizen)),
			field: "borrowers",
		},
		{
			name:  "zero property value",
			app:   application(valueobject.PropertyPrivate, "0", employed(30, "5000", "0", valueobject.ResidencyCitizen)),
			field: "property.value",
		},
		{
			name:  "missing property type",
			app:   application(valueobject.PropertyType{}, "500000", employed(30, "5000", "0", valueobject.ResidencyCitizen)),
			field: "property.type",
		},
		{
			name:  "non-positive age",
			app:   application(valueobject.PropertyHDB, "500000", employed(0, "5000", "0", valueobject.ResidencyCitizen)),
			field: "borrowers[0].age",
		},
		{
			name: "negative commitments on second borrower",
			app: application(valueobject.PropertyHDB, "500000",
				employed(30, "5000", "0", valueobject.ResidencyCitizen),
				withCommitments(employed(32, "4000", "0", valueobject.ResidencyCitizen), "-1")),
			field: "borrowers[1].monthly_commitments",
		},
		{
			name: "missing residency",
			app: application(valueobject.PropertyHDB, "500000",
				model.BorrowerProfile{Age: 30, EmploymentStatus: valueobject.EmploymentEmployed}),
			field: "borrowers[0].residency_status",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Compute(tt.app, model.StandardParams())

			var valErr *model.ValidationError
			require.True(t, errors.As(err, &valErr), "got %v", err)
			assert.Equal(t, tt.field, valErr.Field)
			assert.ErrorIs(t, err, model.ErrInvalidInput)
		})
	}

	t.Run("invalid params", func(t *testing.T) {
		params := model.StandardParams()
		params.MaxLoanPercentage = dec("1.2")
		app := application(valueobject.PropertyHDB, "500000", employed(30, "5000", "0", valueobject.ResidencyCitizen))

		_, err := engine.Compute(app, params)
		testutil.AssertErrorContains(t, err, "params.max_loan_percentage")
	})
}

func TestEligibilityEngine_ComputeAll(t *testing.T) {
	engine := service.NewDefaultEligibilityEngine()
	app := application(valueobject.PropertyHDB, "600000",
		employed(40, "4000", "0", valueobject.ResidencyCitizen))

	results, err := engine.ComputeAll(app, model.StandardParams(), model.AlternativeParams())
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, valueobject.VariantStandard, results[0].Variant)
	assert.Equal(t, valueobject.VariantAlternative, results[1].Variant)

	old := application(valueobject.PropertyHDB, "600000",
		employed(70, "4000", "0", valueobject.ResidencyCitizen))
	_, err = engine.ComputeAll(old, model.StandardParams(), model.AlternativeParams())
	testutil.AssertErrorContains(t, err, "STANDARD")
	assert.ErrorIs(t, err, model.ErrDegenerateInput)
}

func TestNewEligibilityEngine_RejectsInvalidPolicy(t *testing.T) {
	policy := model.DefaultPolicy()
	policy.ShowFundDivisor = decimal.Zero

	_, err := service.NewEligibilityEngine(policy)
	testutil.AssertErrorContains(t, err, "policy.show_fund_divisor")
}
