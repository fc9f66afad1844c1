package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("10:00")
	require.NoError(t, err)
	assert.Equal(t, 10, ts.Hour())
	assert.True(t, ts.IsWholeHour())
	assert.Equal(t, "10:00", ts.String())

	end, err := NewTimeStringFromString("24:00")
	require.NoError(t, err)
	assert.Equal(t, 24, end.Hour())

	_, err = NewTimeStringFromString("25:00")
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = NewTimeStringFromString("ten")
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_AddHours(t *testing.T) {
	start := MustTimeString("18:00")

	end, err := start.AddHours(2)
	require.NoError(t, err)
	assert.Equal(t, "20:00", end.String())

	_, err = start.AddHours(7)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_Compare(t *testing.T) {
	a := MustTimeString("10:00")
	b := MustTimeString("12:00")

	assert.True(t, a.IsBefore(b))
	assert.True(t, b.IsAfter(a))
	assert.False(t, a.IsBefore(a))
	assert.True(t, a.Equal(MustTimeString("10:00")))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("14:00:00"))
	assert.Equal(t, "14:00", ts.String())

	require.NoError(t, ts.Scan([]byte("09:00:00")))
	assert.Equal(t, "09:00", ts.String())

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 16, 0, 0, 0, time.UTC)))
	assert.Equal(t, "16:00", ts.String())

	require.NoError(t, ts.Scan(time.Date(0, 1, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "24:00", ts.String())

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())
}

func TestTimeString_Value(t *testing.T) {
	v, err := MustTimeString("08:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "08:00:00", v)

	v, err = TimeString{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestTimeString_JSONText(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.UnmarshalText([]byte("11:00")))
	out, err := ts.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "11:00", string(out))
}
