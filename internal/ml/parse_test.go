package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProductIDs(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []uint
	}{
		{name: "plain list", raw: "[1, 15, 25, 33, 42]", want: []uint{1, 15, 25, 33, 42}},
		{name: "wrapped in prose", raw: "Sure! Here you go: [3, 25, 7]. Enjoy.", want: []uint{3, 25, 7}},
		{name: "digit strings kept", raw: `["4", 25, "x", -2, 1.5, null]`, want: []uint{4, 25}},
		{name: "empty list", raw: "[]", want: []uint{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := ParseProductIDs(tt.raw).(ParsedList[uint])
			require.True(t, ok)
			assert.Equal(t, tt.want, result.Items)
		})
	}
}

func TestParseProductIDsFailure(t *testing.T) {
	for _, raw := range []string{"no list here", "[1, 2", "] backwards ["} {
		result, ok := ParseProductIDs(raw).(ParseFailure[uint])
		require.True(t, ok, raw)
		assert.Equal(t, raw, result.Raw)
		assert.Error(t, result.Err)
	}
}

func TestParseSimilarProductsCapsAtFive(t *testing.T) {
	raw := `[{"product_id": 1, "similarity": 0.95}, {"product_id": "2", "similarity": 0.9},
		{"product_id": 3}, {"name": "no id"}, {"product_id": 5, "similarity": 0.5},
		{"product_id": 6, "similarity": 0.4}]`

	result, ok := ParseSimilarProducts(raw).(ParsedList[SimilarProduct])
	require.True(t, ok)
	assert.Equal(t, []SimilarProduct{
		{ProductID: 1, Similarity: 0.95},
		{ProductID: 2, Similarity: 0.9},
		{ProductID: 3},
		{ProductID: 5, Similarity: 0.5},
	}, result.Items)
}

func TestParseSimilarProductsFailure(t *testing.T) {
	_, ok := ParseSimilarProducts("I see a teddy bear").(ParseFailure[SimilarProduct])
	assert.True(t, ok)
}
