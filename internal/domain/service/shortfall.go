package service

import (
	"github.com/shopspring/decimal"

	"github.com/ciran541/loan-eligibility/internal/domain/model"
	"github.com/ciran541/loan-eligibility/internal/domain/valueobject"
)

// PledgeFunds sizes the pledge and show funds that would lift an
// income-limited loan to the LTV cap. It returns nil when income already
// supports the cap, when the shortfall is within the policy threshold, or
// when either fund rounds away to nothing.
//
// The monthly payment the shortfall would need is found by scaling the
// payment capacity by shortfall/eligibility; with no eligibility at all the
// whole shortfall is amortized at the stress rate instead. That payment,
// carried over the pledge window and grossed up by the servicing ratio,
// gives the pledge fund; the show fund grosses the pledge fund up again.
func (e *EligibilityEngine) PledgeFunds(
	pure, maxLoan, capacity decimal.Decimal,
	periods int,
	propertyType valueobject.PropertyType,
) *model.PledgeFund {
	if !pure.LessThan(maxLoan) {
		return nil
	}
	shortfall := maxLoan.Sub(pure)
	if !shortfall.GreaterThan(e.policy.ShortfallThreshold) {
		return nil
	}

	var payment decimal.Decimal
	if pure.IsZero() {
		payment = model.AmortizedPayment(shortfall, model.MonthlyRate(e.policy.StressTestAnnualRate), periods)
	} else {
		payment = capacity.Mul(shortfall.Div(pure))
	}

	divisor := e.policy.PledgeDivisorPrivate
	if propertyType.IsHDB() {
		divisor = e.policy.PledgeDivisorHDB
	}

	pledge := decimal.Max(decimal.Zero,
		payment.Mul(decimal.NewFromInt(int64(e.policy.PledgeFundMonths))).Div(divisor))
	show := decimal.Max(decimal.Zero, pledge.Div(e.policy.ShowFundDivisor))

	threshold := e.policy.ShortfallThreshold
	if !pledge.GreaterThan(threshold) || !show.GreaterThan(threshold) {
		return nil
	}
	return &model.PledgeFund{PledgeFund: pledge, ShowFund: show}
}
