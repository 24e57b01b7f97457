package service

import (
	"github.com/shopspring/decimal"

	"github.com/ciran541/loan-eligibility/internal/domain/valueobject"
)

// MonthlyPaymentCapacity returns the largest monthly mortgage payment the
// borrowers can service. TDSR headroom is income*TDSR less commitments,
// floored at zero; HDB purchases are further limited by MSR.
func (e *EligibilityEngine) MonthlyPaymentCapacity(
	totalIncome, totalCommitments decimal.Decimal,
	propertyType valueobject.PropertyType,
) decimal.Decimal {
	tdsr := decimal.Max(totalIncome.Mul(e.policy.TDSRLimit).Sub(totalCommitments), decimal.Zero)
	if !propertyType.IsHDB() {
		return tdsr
	}
	msr := totalIncome.Mul(e.policy.MSRLimit)
	return decimal.Min(msr, tdsr)
}
