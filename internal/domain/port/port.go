package port

import (
	"context"
	"time"
)

// ---------------------------------------------------------------------------
// Cache port (driven/secondary adapter)
// ---------------------------------------------------------------------------

// AssessmentCache stores serialized assessment results keyed by a digest of
// the normalized request. A miss is reported with ok == false and a nil error.
type AssessmentCache interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// ---------------------------------------------------------------------------
// Telemetry port
// ---------------------------------------------------------------------------

// Assessment outcomes reported to an AssessmentRecorder.
const (
	OutcomeQualified  = "qualified"
	OutcomeShortfall  = "shortfall"
	OutcomeInvalid    = "invalid"
	OutcomeDegenerate = "degenerate"
	OutcomeError      = "error"
)

// AssessmentRecorder records one data point per variant assessed.
type AssessmentRecorder interface {
	RecordAssessment(ctx context.Context, variant, outcome string, elapsed time.Duration)
}
