package service

import (
	"github.com/shopspring/decimal"

	"github.com/ciran541/loan-eligibility/internal/domain/model"
	"github.com/ciran541/loan-eligibility/internal/domain/valueobject"
)

// BorrowerMonthlyIncome returns the assessable monthly income. The NOA figure
// is haircut by the policy's NOA factor and spread over twelve months; basic
// salary only counts for employed borrowers.
func (e *EligibilityEngine) BorrowerMonthlyIncome(b model.BorrowerProfile) decimal.Decimal {
	variable := b.AnnualSupplementaryIncome.Mul(e.policy.NOAFactor).Div(monthsPerYear)
	if b.EmploymentStatus.Equal(valueobject.EmploymentEmployed) {
		return b.BasicMonthlySalary.Add(variable)
	}
	return variable
}

// TotalMonthlyIncome sums the assessable income of all borrowers.
func (e *EligibilityEngine) TotalMonthlyIncome(borrowers []model.BorrowerProfile) decimal.Decimal {
	total := decimal.Zero
	for _, b := range borrowers {
		total = total.Add(e.BorrowerMonthlyIncome(b))
	}
	return total
}

// TotalCommitments sums the borrowers' existing monthly debt obligations.
func TotalCommitments(borrowers []model.BorrowerProfile) decimal.Decimal {
	total := decimal.Zero
	for _, b := range borrowers {
		total = total.Add(b.MonthlyCommitments)
	}
	return total
}

// WeightedAverageAge returns a single borrower's age unchanged, or the
// income-weighted average age of joint borrowers rounded up to a whole year.
func (e *EligibilityEngine) WeightedAverageAge(borrowers []model.BorrowerProfile) (int, error) {
	if len(borrowers) == 1 {
		return borrowers[0].Age, nil
	}

	weighted := decimal.Zero
	total := decimal.Zero
	for _, b := range borrowers {
		income := e.BorrowerMonthlyIncome(b)
		weighted = weighted.Add(decimal.NewFromInt(int64(b.Age)).Mul(income))
		total = total.Add(income)
	}
	if !total.IsPositive() {
		return 0, &model.ComputationError{
			Step:   "weighted_average_age",
			Reason: "joint borrowers have zero total income",
		}
	}
	return int(weighted.Div(total).Ceil().IntPart()), nil
}
