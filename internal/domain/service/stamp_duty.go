package service

import (
	"github.com/shopspring/decimal"

	"github.com/ciran541/loan-eligibility/internal/domain/model"
	"github.com/ciran541/loan-eligibility/internal/domain/valueobject"
)

// BuyerStampDuty applies the progressive bracket schedule to the property
// value. Each bracket taxes only the slice of value inside it; the walk stops
// at the bracket containing the value.
//
// Default schedule:
//
//	first 180,000           1%
//	next  180,000 (360K)    2%
//	next  640,000 (1M)      3%
//	next  500,000 (1.5M)    4%
//	next  1,500,000 (3M)    5%
//	remainder               6%
func (e *EligibilityEngine) BuyerStampDuty(propertyValue decimal.Decimal) decimal.Decimal {
	duty := decimal.Zero
	lower := decimal.Zero
	for _, b := range e.policy.BuyerStampDuty {
		if b.UpTo.IsZero() || propertyValue.LessThanOrEqual(b.UpTo) {
			return duty.Add(propertyValue.Sub(lower).Mul(b.Rate))
		}
		duty = duty.Add(b.UpTo.Sub(lower).Mul(b.Rate))
		lower = b.UpTo
	}
	return duty
}

// AdditionalBuyerStampDuty charges the highest rate triggered by any borrower:
// a foreigner anywhere on the application outranks a permanent resident, and
// an all-citizen application pays nothing.
func (e *EligibilityEngine) AdditionalBuyerStampDuty(
	propertyValue decimal.Decimal,
	borrowers []model.BorrowerProfile,
) decimal.Decimal {
	var hasPR bool
	for _, b := range borrowers {
		switch {
		case b.ResidencyStatus.Equal(valueobject.ResidencyForeigner):
			return propertyValue.Mul(e.policy.ABSDForeigner)
		case b.ResidencyStatus.Equal(valueobject.ResidencyPermanentResident):
			hasPR = true
		}
	}
	if hasPR {
		return propertyValue.Mul(e.policy.ABSDPermanentResident)
	}
	return decimal.Zero
}
