package testutil

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RequireNoError fails the test immediately if err is not nil.
func RequireNoError(t *testing.T, err error, msgAndArgs ...interface{}) {
	t.Helper()
	require.NoError(t, err, msgAndArgs...)
}

// AssertErrorContains checks that err contains the expected substring.
func AssertErrorContains(t *testing.T, err error, expected string) {
	t.Helper()
	assert.Error(t, err)
	if err != nil {
		assert.Contains(t, err.Error(), expected)
	}
}

// AssertDecimalEqual checks that got equals the decimal literal want exactly,
// ignoring representation (so "1800" equals "1800.00").
func AssertDecimalEqual(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) bool {
	t.Helper()
	w := decimal.RequireFromString(want)
	return assert.Truef(t, w.Equal(got), "want %s, got %s %v", w, got, msgAndArgs)
}

// AssertDecimalNear checks that got is within delta of want. Use it for
// figures that pass through float64 powers.
func AssertDecimalNear(t *testing.T, want float64, got decimal.Decimal, delta float64, msgAndArgs ...interface{}) bool {
	t.Helper()
	return assert.InDelta(t, want, got.InexactFloat64(), delta, msgAndArgs...)
}
