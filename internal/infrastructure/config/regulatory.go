package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/ciran541/loan-eligibility/internal/domain/model"
	"github.com/ciran541/loan-eligibility/internal/domain/valueobject"
)

// Regulatory is the policy and the ordered regime list the engine runs with.
type Regulatory struct {
	Policy  model.Policy
	Regimes []model.RegulatoryParams
}

// RegulatoryFile is the YAML shape of REGULATORY_CONFIG. Every key is
// optional; an omitted key keeps its default.
type RegulatoryFile struct {
	StressTestAnnualRate  *decimal.Decimal `yaml:"stress_test_annual_rate"`
	InstallmentAnnualRate *decimal.Decimal `yaml:"installment_annual_rate"`
	InstallmentBasis      string           `yaml:"installment_basis"`
	MSRLimit              *decimal.Decimal `yaml:"msr_limit"`
	TDSRLimit             *decimal.Decimal `yaml:"tdsr_limit"`
	NOAFactor             *decimal.Decimal `yaml:"noa_factor"`

	PledgeFundMonths     *int             `yaml:"pledge_fund_months"`
	PledgeDivisorHDB     *decimal.Decimal `yaml:"pledge_divisor_hdb"`
	PledgeDivisorPrivate *decimal.Decimal `yaml:"pledge_divisor_private"`
	ShowFundDivisor      *decimal.Decimal `yaml:"show_fund_divisor"`
	ShortfallThreshold   *decimal.Decimal `yaml:"shortfall_threshold"`

	BuyerStampDuty []StampDutyBracketFile `yaml:"buyer_stamp_duty"`
	ABSD           struct {
		Foreigner         *decimal.Decimal `yaml:"foreigner"`
		PermanentResident *decimal.Decimal `yaml:"permanent_resident"`
	} `yaml:"absd"`
	LegalFees struct {
		HDB     *decimal.Decimal `yaml:"hdb"`
		Private *decimal.Decimal `yaml:"private"`
	} `yaml:"legal_fees"`
	ValuationFees struct {
		HDB           *decimal.Decimal    `yaml:"hdb"`
		Private       []ValuationTierFile `yaml:"private"`
		OpenEndedFrom *decimal.Decimal    `yaml:"open_ended_from"`
	} `yaml:"valuation_fees"`

	Regimes []RegimeFile `yaml:"regimes"`
}

// StampDutyBracketFile is one BSD bracket; omit up_to on the top bracket.
type StampDutyBracketFile struct {
	UpTo decimal.Decimal `yaml:"up_to"`
	Rate decimal.Decimal `yaml:"rate"`
}

// ValuationTierFile is one private valuation tier; omit below on the last tier.
type ValuationTierFile struct {
	Below decimal.Decimal `yaml:"below"`
	Fee   decimal.Decimal `yaml:"fee"`
}

// RegimeFile overrides the parameter set named by Variant. Disabled drops the
// variant from the evaluated list.
type RegimeFile struct {
	Variant           string           `yaml:"variant"`
	Disabled          bool             `yaml:"disabled"`
	MaxLoanPercentage *decimal.Decimal `yaml:"max_loan_percentage"`
	MinCashPercentage *decimal.Decimal `yaml:"min_cash_percentage"`
	MaxAgeLimit       *int             `yaml:"max_age_limit"`
	TenurePrivate     *int             `yaml:"tenure_private"`
	TenureHDB         *int             `yaml:"tenure_hdb"`
}

// DefaultRegulatory returns the built-in policy with both regimes enabled.
func DefaultRegulatory() Regulatory {
	return Regulatory{
		Policy:  model.DefaultPolicy(),
		Regimes: []model.RegulatoryParams{model.StandardParams(), model.AlternativeParams()},
	}
}

// LoadRegulatory builds the regulatory setup from the defaults, the optional
// YAML file at path and the STRESS_TEST_RATE / INSTALLMENT_BASIS overrides,
// then validates the result.
func (c Config) LoadRegulatory() (Regulatory, error) {
	reg := DefaultRegulatory()

	if c.RegulatoryFile != "" {
		data, err := os.ReadFile(c.RegulatoryFile)
		if err != nil {
			return Regulatory{}, fmt.Errorf("read regulatory config: %w", err)
		}
		var file RegulatoryFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return Regulatory{}, fmt.Errorf("parse regulatory config: %w", err)
		}
		if err := file.apply(&reg); err != nil {
			return Regulatory{}, fmt.Errorf("apply regulatory config: %w", err)
		}
	}

	if c.StressTestRate != "" {
		rate, err := decimal.NewFromString(c.StressTestRate)
		if err != nil {
			return Regulatory{}, fmt.Errorf("STRESS_TEST_RATE: %w", err)
		}
		reg.Policy.StressTestAnnualRate = rate
	}
	if c.InstallmentBasis != "" {
		reg.Policy.InstallmentBasis = model.InstallmentBasis(c.InstallmentBasis)
	}

	if err := reg.Validate(); err != nil {
		return Regulatory{}, err
	}
	return reg, nil
}

// Validate checks the policy, every regime and that at least one is enabled.
func (r Regulatory) Validate() error {
	if err := r.Policy.Validate(); err != nil {
		return err
	}
	if len(r.Regimes) == 0 {
		return fmt.Errorf("at least one regime must be enabled")
	}
	for _, p := range r.Regimes {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("regime %s: %w", p.Variant, err)
		}
	}
	return nil
}

func (f RegulatoryFile) apply(reg *Regulatory) error {
	p := &reg.Policy

	setDecimal(&p.StressTestAnnualRate, f.StressTestAnnualRate)
	setDecimal(&p.InstallmentAnnualRate, f.InstallmentAnnualRate)
	if f.InstallmentBasis != "" {
		p.InstallmentBasis = model.InstallmentBasis(f.InstallmentBasis)
	}
	setDecimal(&p.MSRLimit, f.MSRLimit)
	setDecimal(&p.TDSRLimit, f.TDSRLimit)
	setDecimal(&p.NOAFactor, f.NOAFactor)

	setInt(&p.PledgeFundMonths, f.PledgeFundMonths)
	setDecimal(&p.PledgeDivisorHDB, f.PledgeDivisorHDB)
	setDecimal(&p.PledgeDivisorPrivate, f.PledgeDivisorPrivate)
	setDecimal(&p.ShowFundDivisor, f.ShowFundDivisor)
	setDecimal(&p.ShortfallThreshold, f.ShortfallThreshold)

	if len(f.BuyerStampDuty) > 0 {
		p.BuyerStampDuty = make([]model.StampDutyBracket, 0, len(f.BuyerStampDuty))
		for _, b := range f.BuyerStampDuty {
			p.BuyerStampDuty = append(p.BuyerStampDuty, model.StampDutyBracket{UpTo: b.UpTo, Rate: b.Rate})
		}
	}
	setDecimal(&p.ABSDForeigner, f.ABSD.Foreigner)
	setDecimal(&p.ABSDPermanentResident, f.ABSD.PermanentResident)

	setDecimal(&p.LegalFeeHDB, f.LegalFees.HDB)
	setDecimal(&p.LegalFeePrivate, f.LegalFees.Private)
	setDecimal(&p.ValuationFeeHDB, f.ValuationFees.HDB)
	setDecimal(&p.ValuationOpenEndedFrom, f.ValuationFees.OpenEndedFrom)
	if len(f.ValuationFees.Private) > 0 {
		p.ValuationTiersPrivate = make([]model.ValuationTier, 0, len(f.ValuationFees.Private))
		for _, t := range f.ValuationFees.Private {
			p.ValuationTiersPrivate = append(p.ValuationTiersPrivate, model.ValuationTier{Below: t.Below, Fee: t.Fee})
		}
	}

	for _, rf := range f.Regimes {
		v, err := valueobject.NewVariant(rf.Variant)
		if err != nil {
			return err
		}
		i := indexOf(reg.Regimes, v)
		if i < 0 {
			continue
		}
		if rf.Disabled {
			reg.Regimes = append(reg.Regimes[:i], reg.Regimes[i+1:]...)
			continue
		}
		r := &reg.Regimes[i]
		setDecimal(&r.MaxLoanPercentage, rf.MaxLoanPercentage)
		setDecimal(&r.MinCashPercentage, rf.MinCashPercentage)
		setInt(&r.MaxAgeLimit, rf.MaxAgeLimit)
		setInt(&r.TenurePrivate, rf.TenurePrivate)
		setInt(&r.TenureHDB, rf.TenureHDB)
	}
	return nil
}

func indexOf(regimes []model.RegulatoryParams, v valueobject.Variant) int {
	for i, p := range regimes {
		if p.Variant.Equal(v) {
			return i
		}
	}
	return -1
}

func setDecimal(dst *decimal.Decimal, src *decimal.Decimal) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}
