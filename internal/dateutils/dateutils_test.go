package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatementDate(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected time.Time
		wantErr  bool
	}{
		{"DashDayFirst", "15-01-2024", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), false},
		{"SlashDayFirst", "15/01/2024", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), false},
		{"ISO", "2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), false},
		{"MonthName", "15-Jan-2024", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), false},
		{"ExtraWhitespace", "  15-01-2024  ", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), false},
		{"Empty", "", time.Time{}, true},
		{"Garbage", "yesterday", time.Time{}, true},
		{"MonthOutOfRange", "13-28-2024", time.Time{}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseStatementDate(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.expected.Equal(got), "expected %s, got %s", tc.expected, got)
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"AlreadyNormalized", "15-01-2024", "15-01-2024"},
		{"SlashToDash", "15/01/2024", "15-01-2024"},
		{"ISOToDayFirst", "2024-01-15", "15-01-2024"},
		{"MonthName", "05-Mar-2023", "05-03-2023"},
		{"UnparseableKeptVerbatim", "Value Dt", "Value Dt"},
		{"UnparseableTrimmed", "  n/a  ", "n/a"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizeDate(tc.input))
		})
	}
}

func TestToStatementFormat(t *testing.T) {
	assert.Equal(t, "01-02-2024", ToStatementFormat(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "", ToStatementFormat(time.Time{}))
}

func TestCleanDateString(t *testing.T) {
	assert.Equal(t, "15-01-2024", CleanDateString("  15-01-2024 "))
	assert.Equal(t, "15 Jan 2024", CleanDateString("15   Jan\t2024"))
}
