package model

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ciran541/loan-eligibility/internal/domain/valueobject"
)

// MaxBorrowers is the largest number of joint borrowers on one application.
const MaxBorrowers = 2

// BorrowerProfile describes one borrower. BasicMonthlySalary only counts for
// employed borrowers; AnnualSupplementaryIncome is the NOA figure (annual
// bonus when employed, annual income when self-employed).
type BorrowerProfile struct {
	Age                       int
	EmploymentStatus          valueobject.EmploymentStatus
	BasicMonthlySalary        decimal.Decimal
	AnnualSupplementaryIncome decimal.Decimal
	ResidencyStatus           valueobject.ResidencyStatus
	MonthlyCommitments        decimal.Decimal
}

// PropertyProfile describes the property being financed.
type PropertyProfile struct {
	Type  valueobject.PropertyType
	Value decimal.Decimal
}

// Application is the full engine input: one or two borrowers and a property.
type Application struct {
	Borrowers []BorrowerProfile
	Property  PropertyProfile
}

// Validate checks the application and returns the first *ValidationError found.
func (a Application) Validate() error {
	if len(a.Borrowers) == 0 || len(a.Borrowers) > MaxBorrowers {
		return newValidationError("borrowers", "expected 1 to %d borrowers, got %d", MaxBorrowers, len(a.Borrowers))
	}
	for i, b := range a.Borrowers {
		if err := b.validate(fmt.Sprintf("borrowers[%d]", i)); err != nil {
			return err
		}
	}
	if a.Property.Type.IsZero() {
		return newValidationError("property.type", "is required")
	}
	if !a.Property.Value.IsPositive() {
		return newValidationError("property.value", "must be positive, got %s", a.Property.Value)
	}
	return nil
}

func (b BorrowerProfile) validate(prefix string) error {
	if b.Age <= 0 {
		return newValidationError(prefix+".age", "must be positive, got %d", b.Age)
	}
	if b.EmploymentStatus.IsZero() {
		return newValidationError(prefix+".employment_status", "is required")
	}
	if b.ResidencyStatus.IsZero() {
		return newValidationError(prefix+".residency_status", "is required")
	}
	amounts := []struct {
		field string
		value decimal.Decimal
	}{
		{"basic_monthly_salary", b.BasicMonthlySalary},
		{"annual_supplementary_income", b.AnnualSupplementaryIncome},
		{"monthly_commitments", b.MonthlyCommitments},
	}
	for _, a := range amounts {
		if a.value.IsNegative() {
			return newValidationError(prefix+"."+a.field, "must not be negative, got %s", a.value)
		}
	}
	return nil
}
