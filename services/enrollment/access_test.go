package enrollment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms/models"
)

func TestEvaluateUnlimitedAccess(t *testing.T) {
	accessible, days := Evaluate(models.Enrollment{ExpirationDate: nil}, time.Now())

	assert.True(t, accessible)
	assert.Nil(t, days)
}

func TestEvaluateActiveWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	expiration := now.Add(10*24*time.Hour + 6*time.Hour)

	accessible, days := Evaluate(models.Enrollment{ExpirationDate: &expiration}, now)

	assert.True(t, accessible)
	require.NotNil(t, days)
	assert.Equal(t, 10, *days) // partial days are floored, never rounded up
}

func TestEvaluateExpiresExactlyNow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	expiration := now

	accessible, days := Evaluate(models.Enrollment{ExpirationDate: &expiration}, now)

	assert.False(t, accessible, "access ends at the expiration instant itself")
	require.NotNil(t, days)
	assert.Equal(t, 0, *days)
}

func TestEvaluateExpired(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	expiration := now.Add(-3*24*time.Hour - time.Hour)

	accessible, days := Evaluate(models.Enrollment{ExpirationDate: &expiration}, now)

	assert.False(t, accessible)
	require.NotNil(t, days)
	assert.Equal(t, -4, *days) // floor moves negative remainders further down
}

func TestEvaluateExpiredUnderADay(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	expiration := now.Add(-time.Hour)

	accessible, days := Evaluate(models.Enrollment{ExpirationDate: &expiration}, now)

	assert.False(t, accessible)
	require.NotNil(t, days)
	assert.Equal(t, -1, *days)
}

func TestEvaluateLastPartialDay(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	expiration := now.Add(time.Hour)

	accessible, days := Evaluate(models.Enrollment{ExpirationDate: &expiration}, now)

	assert.True(t, accessible)
	require.NotNil(t, days)
	assert.Equal(t, 0, *days)
}
