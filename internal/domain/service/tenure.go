package service

import (
	"github.com/ciran541/loan-eligibility/internal/domain/model"
	"github.com/ciran541/loan-eligibility/internal/domain/valueobject"
)

// LoanTenure returns the tenure in years: the years left before the age
// limit, capped by the property type's maximum tenure. The result is not
// floored; callers treat a non-positive tenure as degenerate.
func LoanTenure(params model.RegulatoryParams, propertyType valueobject.PropertyType, weightedAge int) int {
	return min(params.MaxAgeLimit-weightedAge, params.TenureCap(propertyType))
}
