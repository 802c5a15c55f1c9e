package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "canonical", input: "11:30", want: "11:30"},
		{name: "with seconds", input: "11:30:00", want: "11:30"},
		{name: "single digit hour", input: "9:05", want: "09:05"},
		{name: "garbage", input: "11h30", wantErr: true},
		{name: "out of range", input: "25:00", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("11:50").AddMinutes(20)
	require.NoError(t, err)
	assert.Equal(t, TimeString("12:10"), got)

	_, err = TimeString("23:50").AddMinutes(20)
	assert.ErrorIs(t, err, ErrTimeOverflow)

	_, err = TimeString("bad").AddMinutes(20)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("11:30").IsBefore("11:50"))
	assert.False(t, TimeString("11:50").IsBefore("11:50"))
	assert.True(t, TimeString("13:00").IsAfter("12:50"))
	assert.False(t, TimeString("09:00").IsAfter("10:00"))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("12:10:00")))
	assert.Equal(t, TimeString("12:10"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 12, 30, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("12:30"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("11:30").Value()
	require.NoError(t, err)
	assert.Equal(t, "11:30", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
