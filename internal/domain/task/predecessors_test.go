package task

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePredecessors(t *testing.T) {
	cases := []struct {
		raw  string
		want []int64
	}{
		{"", nil},
		{"[]", nil},
		{"7", []int64{7}},
		{"1,2,3", []int64{1, 2, 3}},
		{"[1, 2, 3]", []int64{1, 2, 3}},
		{`["4", "5"]`, []int64{4, 5}},
		{"1, 1, 2", []int64{1, 2}},
		{"not a list", nil},
		{"[1, oops, 3]", []int64{1, 3}},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, ParsePredecessors(tc.raw), "raw=%q", tc.raw)
	}
}

func TestFormatPredecessorsRoundTrip(t *testing.T) {
	ids := []int64{3, 1, 9}
	require.Equal(t, ids, ParsePredecessors(FormatPredecessors(ids)))
	require.Equal(t, "", FormatPredecessors(nil))
}

func TestDedupePredecessors(t *testing.T) {
	require.Equal(t, []int64{2, 3}, DedupePredecessors(1, []int64{2, 1, 3, 2}))
}
