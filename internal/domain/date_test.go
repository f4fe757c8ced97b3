package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDateContext_Valid(t *testing.T) {
	d, err := NewDateContext(12, 11, 2024)
	require.NoError(t, err)
	assert.Equal(t, 12, d.Day())
	assert.Equal(t, 11, d.Month())
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, "November", d.MonthName())
	assert.Equal(t, "November-2024/12-11-2024.json", d.Path())
}

func TestNewDateContext_PadsDayAndMonth(t *testing.T) {
	d, err := NewDateContext(5, 6, 2023)
	require.NoError(t, err)
	assert.Equal(t, "June-2023/05-06-2023.json", d.Path())
	assert.Equal(t, "05-06-2023", d.String())
}

func TestNewDateContext_Invalid(t *testing.T) {
	tests := []struct {
		name             string
		day, month, year int
		wantMsg          string
	}{
		{"day too large", 32, 1, 2024, "Invalid date"},
		{"day zero", 0, 1, 2024, "Invalid date"},
		{"month too large", 1, 13, 2024, "Invalid month"},
		{"month zero", 1, 0, 2024, "Invalid month"},
		{"year too small", 1, 1, 1999, "Invalid year"},
		{"year too large", 1, 1, 2101, "Invalid year"},
		{"day checked first", 40, 13, 1900, "Invalid date"},
		{"month checked before year", 1, 13, 1900, "Invalid month"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDateContext(tt.day, tt.month, tt.year)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidArgument))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestNewDateContext_Bounds(t *testing.T) {
	_, err := NewDateContext(1, 1, 2000)
	assert.NoError(t, err)
	_, err = NewDateContext(31, 12, 2100)
	assert.NoError(t, err)
}

func TestDateContextFor(t *testing.T) {
	d, err := DateContextFor(time.Date(2024, time.March, 7, 23, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "March-2024/07-03-2024.json", d.Path())
}

func TestParsePublished(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-11-12T10:30:00Z", time.Date(2024, 11, 12, 10, 30, 0, 0, time.UTC)},
		{"2024-11-12T10:30:00.250Z", time.Date(2024, 11, 12, 10, 30, 0, 250_000_000, time.UTC)},
		{"2024-11-12T12:30:00+02:00", time.Date(2024, 11, 12, 10, 30, 0, 0, time.UTC)},
		{"2024-11-12T10:30:00", time.Date(2024, 11, 12, 10, 30, 0, 0, time.UTC)},
		{"2024-11-12 10:30:00", time.Date(2024, 11, 12, 10, 30, 0, 0, time.UTC)},
		{" 2024-11-12 ", time.Date(2024, 11, 12, 0, 0, 0, 0, time.UTC)},
		{"Tue, 12 Nov 2024 10:30:00 +0000", time.Date(2024, 11, 12, 10, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := ParsePublished(tt.in)
		require.NoError(t, err, tt.in)
		assert.True(t, tt.want.Equal(got), "%s: got %s", tt.in, got)
	}

	_, err := ParsePublished("yesterday")
	assert.Error(t, err)
	_, err = NewsItem{}.PublishedAt()
	assert.Error(t, err)
}
