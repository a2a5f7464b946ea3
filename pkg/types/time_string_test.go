package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Validate(t *testing.T) {
	valid := []string{"00:00", "07:00", "12:30", "23:59"}
	for _, s := range valid {
		assert.NoError(t, TimeString(s).Validate(), s)
	}

	invalid := []string{"24:00", "12:60", "7:00", "12:3", "1200", "12.00", "", "ab:cd"}
	for _, s := range invalid {
		assert.ErrorIs(t, TimeString(s).Validate(), ErrInvalidTimeString, s)
	}
}

// Minutes и NewTimeStringFromMinutes — точные обратные операции на 0..1439
func TestTimeString_MinutesRoundTrip(t *testing.T) {
	for m := 0; m < 24*60; m++ {
		ts, err := NewTimeStringFromMinutes(m)
		require.NoError(t, err)

		got, err := ts.Minutes()
		require.NoError(t, err)
		require.Equal(t, m, got)
	}

	_, err := NewTimeStringFromMinutes(-1)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
	_, err = NewTimeStringFromMinutes(24 * 60)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts, err := TimeString("10:00").AddMinutes(75)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:15"), ts)

	ts, err = TimeString("10:30").AddMinutes(-45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:45"), ts)

	// За пределы суток не выходим
	_, err = TimeString("23:30").AddMinutes(45)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("07:00").IsBefore("19:00"))
	assert.True(t, TimeString("19:00").IsAfter("07:00"))
	assert.False(t, TimeString("09:30").IsBefore("09:30"))
	assert.False(t, TimeString("09:30").IsAfter("09:30"))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("14:30:00"))
	assert.Equal(t, TimeString("14:30"), ts)

	require.NoError(t, ts.Scan([]byte("09:05")))
	assert.Equal(t, TimeString("09:05"), ts)

	require.NoError(t, ts.Scan(time.Date(2025, 11, 20, 16, 45, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("16:45"), ts)

	assert.Error(t, ts.Scan(123))
}

func TestNewTimeString(t *testing.T) {
	assert.Equal(t, TimeString("08:05"), NewTimeString(time.Date(2025, 11, 20, 8, 5, 0, 0, time.UTC)))
}
