package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		want Action
		code string
	}{
		{"fold", Fold, "d"},
		{"call", Call, "l"},
		{"bigone", BigOne, "e"},
		{"bigfour", BigFour, "r"},
		{"bigtwenty", BigTwenty, "y"},
		{"raiseh", RaiseHalfPot, "h"},
		{"raiseo", RaisePot, "o"},
		{"allin", AllIn, "n"},
		{"None", Pass, "e"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := ParseAction(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, a)
			assert.Equal(t, tt.name, a.String())
			assert.Equal(t, tt.code, a.Code())
		})
	}

	for _, bad := range []string{"", "raise", "FOLD", "check"} {
		_, err := ParseAction(bad)
		assert.ErrorIs(t, err, ErrUnrecognizedAction, bad)
	}
}

func TestActionIsRaise(t *testing.T) {
	t.Parallel()
	assert.True(t, BigFour.IsRaise())
	assert.True(t, RaisePot.IsRaise())
	assert.False(t, AllIn.IsRaise())
	assert.False(t, Call.IsRaise())
}

func TestStageRound(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0, PreFlop.Round())
	assert.Equal(t, 4, ShowDown.Round())
	assert.Equal(t, -1, Terminal.Round())
	assert.Equal(t, "show_down", ShowDown.String())
}
