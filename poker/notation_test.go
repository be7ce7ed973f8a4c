package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHoleNotation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		cards string
		want  string
	}{
		{"AsAh", "AA"},
		{"KsAs", "AKs"},
		{"Ah2c", "A2o"},
		{"9d8d", "98s"},
		{"2c7h", "72o"},
	}
	for _, tt := range tests {
		c := MustParseCards(tt.cards)
		got, err := HoleNotation(c[0], c[1])
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.cards)

		hi, lo, suited, err := ParseHoleNotation(got)
		require.NoError(t, err)
		assert.Equal(t, c[0].Suit() == c[1].Suit() && hi != lo, suited)
		assert.GreaterOrEqual(t, hi, lo)
	}

	c := MustParseCards("AsAs")
	_, err := HoleNotation(c[0], c[1])
	assert.ErrorIs(t, err, ErrInvalidInput)

	for _, bad := range []string{"", "A", "AAs", "AKx", "AKQ", "1Ks"} {
		_, _, _, err := ParseHoleNotation(bad)
		assert.ErrorIs(t, err, ErrInvalidInput, bad)
	}
}
