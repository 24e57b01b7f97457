package service_test

import (
	"github.com/shopspring/decimal"

	"github.com/ciran541/loan-eligibility/internal/domain/model"
	"github.com/ciran541/loan-eligibility/internal/domain/valueobject"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func employed(age int, salary, noa string, residency valueobject.ResidencyStatus) model.BorrowerProfile {
	return model.BorrowerProfile{
		Age:                       age,
		EmploymentStatus:          valueobject.EmploymentEmployed,
		BasicMonthlySalary:        dec(salary),
		AnnualSupplementaryIncome: dec(noa),
		ResidencyStatus:           residency,
		MonthlyCommitments:        decimal.Zero,
	}
}

func selfEmployed(age int, noa string, residency valueobject.ResidencyStatus) model.BorrowerProfile {
	return model.BorrowerProfile{
		Age:                       age,
		EmploymentStatus:          valueobject.EmploymentSelfEmployed,
		AnnualSupplementaryIncome: dec(noa),
		ResidencyStatus:           residency,
	}
}

func withCommitments(b model.BorrowerProfile, amount string) model.BorrowerProfile {
	b.MonthlyCommitments = dec(amount)
	return b
}

func application(pt valueobject.PropertyType, value string, borrowers ...model.BorrowerProfile) model.Application {
	return model.Application{
		Borrowers: borrowers,
		Property:  model.PropertyProfile{Type: pt, Value: dec(value)},
	}
}

func decFromInt(v int64) decimal.Decimal { return decimal.NewFromInt(v) }
