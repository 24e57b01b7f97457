package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ciran541/loan-eligibility/internal/domain/model"
	"github.com/ciran541/loan-eligibility/internal/domain/service"
	"github.com/ciran541/loan-eligibility/internal/domain/valueobject"
	"github.com/ciran541/loan-eligibility/pkg/testutil"
)

func TestBuyerStampDuty(t *testing.T) {
	engine := service.NewDefaultEligibilityEngine()

	tests := []struct {
		value string
		want  string
	}{
		{"100000", "1000"},
		{"180000", "1800"},
		{"360000", "5400"},
		{"600000", "12600"},
		{"1000000", "24600"},
		{"1500000", "44600"},
		{"3000000", "119600"},
		{"3500000", "149600"},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			testutil.AssertDecimalEqual(t, tt.want, engine.BuyerStampDuty(dec(tt.value)))
		})
	}
}

func TestBuyerStampDuty_Monotonic(t *testing.T) {
	engine := service.NewDefaultEligibilityEngine()

	prev := engine.BuyerStampDuty(dec("1"))
	for v := int64(50000); v <= 5000000; v += 50000 {
		duty := engine.BuyerStampDuty(decFromInt(v))
		assert.True(t, duty.GreaterThan(prev), "duty at %d should exceed duty below it", v)
		prev = duty
	}
}

func TestAdditionalBuyerStampDuty(t *testing.T) {
	engine := service.NewDefaultEligibilityEngine()
	citizen := employed(30, "5000", "0", valueobject.ResidencyCitizen)
	pr := employed(30, "5000", "0", valueobject.ResidencyPermanentResident)
	foreigner := employed(30, "5000", "0", valueobject.ResidencyForeigner)

	tests := []struct {
		name      string
		borrowers []model.BorrowerProfile
		want      string
	}{
		{"citizen", []model.BorrowerProfile{citizen}, "0"},
		{"two citizens", []model.BorrowerProfile{citizen, citizen}, "0"},
		{"permanent resident", []model.BorrowerProfile{pr}, "50000"},
		{"citizen with permanent resident", []model.BorrowerProfile{citizen, pr}, "50000"},
		{"foreigner", []model.BorrowerProfile{foreigner}, "600000"},
		{"permanent resident with foreigner", []model.BorrowerProfile{pr, foreigner}, "600000"},
		{"citizen with foreigner", []model.BorrowerProfile{citizen, foreigner}, "600000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertDecimalEqual(t, tt.want, engine.AdditionalBuyerStampDuty(dec("1000000"), tt.borrowers))
		})
	}
}
