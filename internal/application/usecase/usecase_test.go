package usecase_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ciran541/loan-eligibility/internal/application/dto"
)

// --- Mock implementations ---

type mockAssessmentCache struct {
	getFunc func(ctx context.Context, key string) ([]byte, bool, error)
	setFunc func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	entries map[string][]byte
	sets    int
	lastTTL time.Duration
}

func newMockAssessmentCache() *mockAssessmentCache {
	return &mockAssessmentCache{entries: make(map[string][]byte)}
}

func (m *mockAssessmentCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, key)
	}
	v, ok := m.entries[key]
	return v, ok, nil
}

func (m *mockAssessmentCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.sets++
	m.lastTTL = ttl
	if m.setFunc != nil {
		return m.setFunc(ctx, key, value, ttl)
	}
	m.entries[key] = value
	return nil
}

type recordedAssessment struct {
	variant string
	outcome string
}

type mockAssessmentRecorder struct {
	records []recordedAssessment
}

func (m *mockAssessmentRecorder) RecordAssessment(_ context.Context, variant, outcome string, _ time.Duration) {
	m.records = append(m.records, recordedAssessment{variant: variant, outcome: outcome})
}

// --- Helpers ---

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func citizenRequest(propertyType, value string, salary, noa, commitments string, age int) dto.AssessEligibilityRequest {
	return dto.AssessEligibilityRequest{
		Borrowers: []dto.BorrowerInput{{
			Age:                       age,
			EmploymentStatus:          "employed",
			BasicMonthlySalary:        salary,
			AnnualSupplementaryIncome: noa,
			ResidencyStatus:           "citizen",
			MonthlyCommitments:        commitments,
		}},
		Property: dto.PropertyInput{Type: propertyType, Value: value},
	}
}

var errCacheDown = fmt.Errorf("cache unavailable")
