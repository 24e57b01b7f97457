package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// EmploymentStatus – immutable value object
// ---------------------------------------------------------------------------

// EmploymentStatus determines how a borrower's income is assessed.
type EmploymentStatus struct {
	value string
}

const (
	employmentEmployed     = "EMPLOYED"
	employmentSelfEmployed = "SELF_EMPLOYED"
)

var (
	EmploymentEmployed     = EmploymentStatus{value: employmentEmployed}
	EmploymentSelfEmployed = EmploymentStatus{value: employmentSelfEmployed}
)

var validEmploymentStatuses = map[string]EmploymentStatus{
	employmentEmployed:     EmploymentEmployed,
	employmentSelfEmployed: EmploymentSelfEmployed,
}

// NewEmploymentStatus creates an EmploymentStatus from a raw string.
func NewEmploymentStatus(s string) (EmploymentStatus, error) {
	v, ok := validEmploymentStatuses[normalize(s)]
	if !ok {
		return EmploymentStatus{}, fmt.Errorf("invalid employment status: %q", s)
	}
	return v, nil
}

func (s EmploymentStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s EmploymentStatus) IsZero() bool { return s.value == "" }

func (s EmploymentStatus) Equal(other EmploymentStatus) bool { return s.value == other.value }

// ---------------------------------------------------------------------------
// ResidencyStatus – immutable value object
// ---------------------------------------------------------------------------

// ResidencyStatus drives the Additional Buyer's Stamp Duty rate.
type ResidencyStatus struct {
	value string
}

const (
	residencyCitizen           = "CITIZEN"
	residencyPermanentResident = "PERMANENT_RESIDENT"
	residencyForeigner         = "FOREIGNER"
)

var (
	ResidencyCitizen           = ResidencyStatus{value: residencyCitizen}
	ResidencyPermanentResident = ResidencyStatus{value: residencyPermanentResident}
	ResidencyForeigner         = ResidencyStatus{value: residencyForeigner}
)

var validResidencyStatuses = map[string]ResidencyStatus{
	residencyCitizen:           ResidencyCitizen,
	residencyPermanentResident: ResidencyPermanentResident,
	residencyForeigner:         ResidencyForeigner,
}

// NewResidencyStatus creates a ResidencyStatus from a raw string.
func NewResidencyStatus(s string) (ResidencyStatus, error) {
	v, ok := validResidencyStatuses[normalize(s)]
	if !ok {
		return ResidencyStatus{}, fmt.Errorf("invalid residency status: %q", s)
	}
	return v, nil
}

func (s ResidencyStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s ResidencyStatus) IsZero() bool { return s.value == "" }

func (s ResidencyStatus) Equal(other ResidencyStatus) bool { return s.value == other.value }
