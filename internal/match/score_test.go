package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIdent(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"OrderToDTO", "ordertodto"},
		{"order_to_dto", "ordertodto"},
		{"order-to-dto", "ordertodto"},
		{"getHTTPResponse", "gethttpresponse"},
		{"OrderID", "orderid"},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeIdent(tc.in), "input %q", tc.in)
	}
}

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "abc", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Levenshtein(tc.a, tc.b), "%q vs %q", tc.a, tc.b)
	}
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("order", "order"), 1e-9)
	assert.InDelta(t, 1.0, Similarity("", ""), 1e-9)
	assert.InDelta(t, 0.0, Similarity("ab", ""), 1e-9)
	assert.Greater(t, Similarity("orderline", "orderlines"), Similarity("orderline", "customer"))
}

func TestScoreEmbeddedProperty(t *testing.T) {
	// The property name embedded in mapping verbiage should still score
	// close to a full match.
	embedded := Score("orderLineToDTO", "orderLine")
	unrelated := Score("customerToDTO", "orderLine")

	assert.InDelta(t, 1.0, embedded, 1e-9)
	assert.Greater(t, embedded, unrelated)
}

func TestScoreEmptyInputs(t *testing.T) {
	assert.Zero(t, Score("", "orderLine"))
	assert.Zero(t, Score("orderLineToDTO", ""))
}

func TestBestUnique(t *testing.T) {
	names := []string{"customerToDTO", "orderLineToDTO", "priceToDTO"}

	assert.Equal(t, 1, BestUnique(names, "orderLine", nil))
}

func TestBestUniqueTie(t *testing.T) {
	// Two identical names tie; a tie yields no winner.
	names := []string{"orderToDTO", "orderToDTO"}

	assert.Equal(t, -1, BestUnique(names, "order", nil))
}

func TestBestUniqueCustomScorer(t *testing.T) {
	constant := func(string, string) float64 { return 0.5 }

	assert.Equal(t, -1, BestUnique([]string{"a", "b"}, "x", constant))
	assert.Equal(t, 0, BestUnique([]string{"a"}, "x", constant))
}
