package dateparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{
			name:  "ISO date",
			input: "2025-01-14",
			want:  date(2025, time.January, 14, 0, 0),
			ok:    true,
		},
		{
			name:  "ISO date-time",
			input: "2025-01-14T08:23",
			want:  date(2025, time.January, 14, 8, 23),
			ok:    true,
		},
		{
			name:  "ISO date-time with seconds",
			input: "2025-01-14 08:23:45",
			want:  time.Date(2025, time.January, 14, 8, 23, 45, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "long form with time and suffix",
			input: "17 de noviembre de 2025 08:23 hs.",
			want:  date(2025, time.November, 17, 8, 23),
			ok:    true,
		},
		{
			name:  "long form without time",
			input: "17 de noviembre de 2025",
			want:  date(2025, time.November, 17, 0, 0),
			ok:    true,
		},
		{
			name:  "long form abbreviated month and two-digit year",
			input: "1 ene 25",
			want:  date(2025, time.January, 1, 0, 0),
			ok:    true,
		},
		{
			name:  "long form alternate september spelling",
			input: "3 de setiembre de 2024",
			want:  date(2024, time.September, 3, 0, 0),
			ok:    true,
		},
		{
			name:  "long form mixed case with comma",
			input: "17 de Noviembre, 2025",
			want:  date(2025, time.November, 17, 0, 0),
			ok:    true,
		},
		{
			name:  "numeric day first",
			input: "14/1/2025",
			want:  date(2025, time.January, 14, 0, 0),
			ok:    true,
		},
		{
			name:  "numeric year first",
			input: "2025/1/14",
			want:  date(2025, time.January, 14, 0, 0),
			ok:    true,
		},
		{
			name:  "numeric with dashes and time",
			input: "14-01-2025 08:23",
			want:  date(2025, time.January, 14, 8, 23),
			ok:    true,
		},
		{
			name:  "numeric with dots",
			input: "14.1.2025",
			want:  date(2025, time.January, 14, 0, 0),
			ok:    true,
		},
		{
			name:  "numeric two-digit year",
			input: "14/1/25",
			want:  date(2025, time.January, 14, 0, 0),
			ok:    true,
		},
		{
			name:  "numeric year-last beyond 31 expands too",
			input: "14/1/99",
			want:  date(2099, time.January, 14, 0, 0),
			ok:    true,
		},
		{
			name:  "empty string",
			input: "",
		},
		{
			name:  "whitespace only",
			input: "   ",
		},
		{
			name:  "not a date",
			input: "not a date",
		},
		{
			name:  "impossible day and month",
			input: "32/13/2025",
		},
		{
			name:  "day invalid for month",
			input: "31/4/2025",
		},
		{
			name:  "unknown month name",
			input: "17 de brumario de 2025",
		},
		{
			name:  "hour out of range",
			input: "14/1/2025 25:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.input)
			if !tt.ok {
				assert.False(t, ok, "expected parse failure for %q", tt.input)
				return
			}
			require.True(t, ok, "expected parse success for %q", tt.input)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_StrategyOrder(t *testing.T) {
	// An ISO string that the numeric strategy could also consume must route
	// through the ISO attempt first and keep the ISO field ordering.
	got, ok := Parse("2025-01-14")
	require.True(t, ok)
	assert.Equal(t, 2025, got.Year())
	assert.Equal(t, time.January, got.Month())
	assert.Equal(t, 14, got.Day())
}

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "collapses whitespace", input: "  17  de   noviembre ", want: "17 de noviembre"},
		{name: "strips hs suffix", input: "08:23 hs.", want: "08:23"},
		{name: "strips hr suffix", input: "08:23 hr", want: "08:23"},
		{name: "keeps interior h token", input: "hotel 14/1/2025", want: "hotel 14/1/2025"},
		{name: "lower-cases", input: "14 ENE 2025", want: "14 ene 2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clean(tt.input))
		})
	}
}
