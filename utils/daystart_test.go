package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func ptr(n int) *int { return &n }

func TestNormalizeDayStart(t *testing.T) {
	instant := time.Date(2024, 3, 1, 23, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		in     time.Time
		offset *int
		want   time.Time
	}{
		{
			name:   "unknown offset falls back to UTC date",
			in:     instant,
			offset: nil,
			want:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "zero offset behaves like unknown",
			in:     instant,
			offset: ptr(0),
			want:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			// 23:30Z at UTC+3 is already 02:30 the next local day, so the
			// day key is local midnight of March 2 = 21:00Z March 1.
			name:   "positive offset rolls into next local day",
			in:     instant,
			offset: ptr(180),
			want:   time.Date(2024, 3, 1, 21, 0, 0, 0, time.UTC),
		},
		{
			name:   "negative offset rolls back into previous local day",
			in:     time.Date(2024, 3, 2, 1, 0, 0, 0, time.UTC),
			offset: ptr(-300),
			want:   time.Date(2024, 3, 1, 5, 0, 0, 0, time.UTC),
		},
		{
			name:   "minimum offset boundary",
			in:     instant,
			offset: ptr(MinUTCOffsetMinutes),
			want:   time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			name:   "maximum offset boundary",
			in:     instant,
			offset: ptr(MaxUTCOffsetMinutes),
			want:   time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDayStart(tt.in, tt.offset)
			require.True(t, got.Equal(tt.want), "got %v want %v", got, tt.want)
		})
	}
}

func TestNormalizeDayStartDeterministic(t *testing.T) {
	in := time.Date(2024, 7, 15, 9, 45, 12, 0, time.UTC)
	a := NormalizeDayStart(in, ptr(330))
	b := NormalizeDayStart(in, ptr(330))
	require.True(t, a.Equal(b))
}

func TestParseFlexibleDate(t *testing.T) {
	got, err := ParseFlexibleDate("2024-03-02")
	require.NoError(t, err)
	require.True(t, got.Equal(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)))

	got, err = ParseFlexibleDate("2024-03-01T23:30:00Z")
	require.NoError(t, err)
	require.True(t, got.Equal(time.Date(2024, 3, 1, 23, 30, 0, 0, time.UTC)))

	got, err = ParseFlexibleDate("2024-03-01T23:30:00+03:00")
	require.NoError(t, err)
	require.True(t, got.Equal(time.Date(2024, 3, 1, 20, 30, 0, 0, time.UTC)))

	_, err = ParseFlexibleDate("yesterday")
	require.Error(t, err)
}

func TestDateOnlyStringLandsOnNamedLocalDay(t *testing.T) {
	// A date-only string parses independent of the offset; normalization
	// then keys it to that calendar date's local midnight.
	parsed, err := ParseFlexibleDate("2024-03-02")
	require.NoError(t, err)

	got := NormalizeDayStart(parsed, ptr(180))
	require.True(t, got.Equal(time.Date(2024, 3, 1, 21, 0, 0, 0, time.UTC)))
}
