package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		value   TimeString
		wantErr error
	}{
		{name: "valid morning", value: "09:00"},
		{name: "valid midnight", value: "00:00"},
		{name: "valid end of day", value: "24:00"},
		{name: "valid last minute", value: "23:59"},
		{name: "missing leading zero", value: "9:00", wantErr: ErrInvalidTimeString},
		{name: "no colon", value: "0900!", wantErr: ErrInvalidTimeString},
		{name: "minutes out of range", value: "10:60", wantErr: ErrInvalidTimeString},
		{name: "hours out of range", value: "25:00", wantErr: ErrInvalidTimeString},
		{name: "past end of day", value: "24:01", wantErr: ErrTimeOutOfRange},
		{name: "empty", value: "", wantErr: ErrInvalidTimeString},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.value.Validate()
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	testCases := []struct {
		name    string
		value   TimeString
		add     int
		want    TimeString
		wantErr error
	}{
		{name: "within hour", value: "09:00", add: 30, want: "09:30"},
		{name: "across hour", value: "09:45", add: 30, want: "10:15"},
		{name: "to end of day", value: "23:00", add: 60, want: "24:00"},
		{name: "past end of day", value: "23:30", add: 60, wantErr: ErrTimeOutOfRange},
		{name: "negative shift", value: "10:00", add: -15, want: "09:45"},
		{name: "before start of day", value: "00:10", add: -20, wantErr: ErrTimeOutOfRange},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.value.AddMinutes(tc.add)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTimeString_Comparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("18:30").IsAfter("18:00"))
	assert.True(t, TimeString("10:00").Equal("10:00"))
	assert.False(t, TimeString("10:00").Equal("10:01"))
}

func TestTimeString_OnDate(t *testing.T) {
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	got := TimeString("10:30").OnDate(date)

	assert.Equal(t, time.Date(2026, 9, 15, 10, 30, 0, 0, time.UTC), got)
}

func TestTimeString_Scan(t *testing.T) {
	testCases := []struct {
		name    string
		src     interface{}
		want    TimeString
		wantErr bool
	}{
		{name: "plain string", src: "10:00", want: "10:00"},
		{name: "postgres time with seconds", src: "10:00:00", want: "10:00"},
		{name: "bytes", src: []byte("18:45"), want: "18:45"},
		{name: "nil", src: nil, want: ""},
		{name: "time value", src: time.Date(2026, 9, 15, 9, 30, 0, 0, time.UTC), want: "09:30"},
		{name: "garbage", src: "abcde", wantErr: true},
		{name: "unsupported type", src: 42, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var ts TimeString
			err := ts.Scan(tc.src)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, ts)
		})
	}
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("10:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("25:00").Value()
	assert.Error(t, err)
}
