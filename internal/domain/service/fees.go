package service

import (
	"github.com/shopspring/decimal"

	"github.com/ciran541/loan-eligibility/internal/domain/valueobject"
)

// LegalFee returns the flat conveyancing fee for the property type.
func (e *EligibilityEngine) LegalFee(propertyType valueobject.PropertyType) decimal.Decimal {
	if propertyType.IsHDB() {
		return e.policy.LegalFeeHDB
	}
	return e.policy.LegalFeePrivate
}

// ValuationFee returns the valuation fee and whether it is only a starting
// figure ("onwards"). HDB is flat; private property is tiered by value.
func (e *EligibilityEngine) ValuationFee(
	propertyType valueobject.PropertyType,
	propertyValue decimal.Decimal,
) (fee decimal.Decimal, openEnded bool) {
	if propertyType.IsHDB() {
		return e.policy.ValuationFeeHDB, false
	}

	openEnded = !e.policy.ValuationOpenEndedFrom.IsZero() &&
		propertyValue.GreaterThanOrEqual(e.policy.ValuationOpenEndedFrom)

	for _, t := range e.policy.ValuationTiersPrivate {
		if t.Below.IsZero() || propertyValue.LessThan(t.Below) {
			return t.Fee, openEnded
		}
	}
	return decimal.Zero, openEnded
}
