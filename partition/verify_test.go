// SPDX-License-Identifier: MIT

package partition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ldblocks/partition"
)

// labelsOf builds an index-ordered label table from block IDs.
func labelsOf(ids ...int) []partition.Label {
	out := make([]partition.Label, len(ids))
	for i, id := range ids {
		out[i] = partition.Label{Index: i, Block: id}
	}
	return out
}

func TestVerify(t *testing.T) {
	require.NoError(t, partition.Verify(nil, 0))
	require.NoError(t, partition.Verify(labelsOf(1, 1, 2, 3, 3), 5))

	cases := map[string]struct {
		labels []partition.Label
		n      int
	}{
		"short":         {labelsOf(1, 1), 3},
		"starts at 2":   {labelsOf(2, 2), 2},
		"gap":           {labelsOf(1, 3), 2},
		"decreasing":    {labelsOf(1, 2, 1), 3},
		"index swapped": {[]partition.Label{{Index: 1, Block: 1}, {Index: 0, Block: 1}}, 2},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, partition.Verify(tc.labels, tc.n), partition.ErrBrokenPartition)
		})
	}
}

func TestSpansFromLabels(t *testing.T) {
	spans, err := partition.SpansFromLabels(labelsOf(1, 1, 1, 2, 3, 3))
	require.NoError(t, err)
	assert.Equal(t, []partition.Span{
		{ID: 1, Start: 0, End: 3},
		{ID: 2, Start: 3, End: 4},
		{ID: 3, Start: 4, End: 6},
	}, spans)
	assert.Equal(t, 2, spans[0].Last())
	assert.Equal(t, 1, spans[1].Size())

	spans, err = partition.SpansFromLabels(nil)
	require.NoError(t, err)
	assert.Empty(t, spans)

	_, err = partition.SpansFromLabels(labelsOf(1, 3))
	assert.ErrorIs(t, err, partition.ErrBrokenPartition)
}
