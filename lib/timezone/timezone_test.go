package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPuzzleDate(t *testing.T) {
	cases := []struct {
		now    time.Time
		expect string
	}{
		{
			now:    time.Date(2024, time.August, 26, 12, 0, 0, 0, time.UTC),
			expect: "2024-08-26",
		},
		{
			// 01:30 UTC is still the previous evening in New York
			now:    time.Date(2024, time.August, 26, 1, 30, 0, 0, time.UTC),
			expect: "2024-08-25",
		},
		{
			now:    time.Date(2024, time.December, 31, 23, 59, 0, 0, Location),
			expect: "2024-12-31",
		},
	}

	for _, test := range cases {
		require.Equal(t, test.expect, PuzzleDate(test.now))
	}
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2024-03-10")
	require.NoError(t, err)
	require.True(t, time.Date(2024, time.March, 10, 0, 0, 0, 0, Location).Equal(parsed))
	require.Equal(t, "2024-03-10", PuzzleDate(parsed))

	_, err = ParseDate("03/10/2024")
	require.Error(t, err)
}
