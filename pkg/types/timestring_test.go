package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Validate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "valid morning", value: "09:30", wantErr: false},
		{name: "valid midnight", value: "00:00", wantErr: false},
		{name: "valid last minute", value: "23:59", wantErr: false},
		{name: "hour out of range", value: "24:00", wantErr: true},
		{name: "minute out of range", value: "12:60", wantErr: true},
		{name: "missing leading zero", value: "9:30", wantErr: true},
		{name: "with seconds", value: "09:30:00", wantErr: true},
		{name: "empty", value: "", wantErr: true},
		{name: "garbage", value: "ab:cd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := TimeString(tt.value).Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTimeString_ToMinutes(t *testing.T) {
	tests := []struct {
		value    string
		expected int
	}{
		{value: "00:00", expected: 0},
		{value: "01:00", expected: 60},
		{value: "09:30", expected: 570},
		{value: "23:59", expected: 1439},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := TimeString(tt.value).ToMinutes()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, err := TimeString("25:00").ToMinutes()
	assert.Error(t, err)
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("09:30").AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), got)

	got, err = TimeString("10:00").AddMinutes(-30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:30"), got)

	// Crossing midnight is not a valid same-day range.
	_, err = TimeString("23:30").AddMinutes(60)
	assert.Error(t, err)
}

func TestTimeString_Comparison(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("10:30").IsAfter("10:00"))
	assert.False(t, TimeString("10:00").IsAfter("10:00"))
}

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2024, 6, 3, 14, 7, 59, 0, time.UTC))
	assert.Equal(t, TimeString("14:07"), ts)
}
