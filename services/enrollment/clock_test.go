package enrollment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClockDefaultsToInstituteZone(t *testing.T) {
	clock, err := NewClock("")
	require.NoError(t, err)

	assert.Equal(t, DefaultTimezone, clock.Now().Location().String())
}

func TestNewClockCustomZone(t *testing.T) {
	clock, err := NewClock("UTC")
	require.NoError(t, err)

	assert.Equal(t, "UTC", clock.Now().Location().String())
}

func TestNewClockRejectsUnknownZone(t *testing.T) {
	_, err := NewClock("Mars/Olympus_Mons")
	assert.Error(t, err)
}
