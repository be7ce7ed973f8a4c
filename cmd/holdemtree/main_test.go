package main

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdemtree/internal/game"
	"github.com/lox/holdemtree/poker"
)

func testGlobals(t *testing.T, out *bytes.Buffer) *Globals {
	t.Helper()
	return &Globals{
		Config:   filepath.Join(t.TempDir(), "missing.hcl"),
		LogLevel: "error",
		NoColor:  true,
		Out:      out,
	}
}

func TestParseHole(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "AsKd", want: "As Kd"},
		{input: "As Kd", want: "As Kd"},
		{input: "AKs", want: "Ah Kh"},
		{input: "T6o", want: "Th 6s"},
		{input: "AA", want: "Ah As"},
		{input: "AK", wantErr: true},
		{input: "As", wantErr: true},
		{input: "AsKdQh", wantErr: true},
		{input: "AsXx", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			hole, err := parseHole(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, poker.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, hole[0].String()+" "+hole[1].String())
		})
	}
}

func TestParseActions(t *testing.T) {
	actions, err := parseActions("call  call raiseh")
	require.NoError(t, err)
	assert.Equal(t, []game.Action{game.Call, game.Call, game.RaiseHalfPot}, actions)

	actions, err = parseActions("")
	require.NoError(t, err)
	assert.Empty(t, actions)

	_, err = parseActions("call limp")
	assert.ErrorIs(t, err, game.ErrUnrecognizedAction)
}

func TestSeedOrNow(t *testing.T) {
	assert.Equal(t, int64(42), seedOrNow(42))
	assert.NotZero(t, seedOrNow(0))
}

func TestGenCanonicalCmd(t *testing.T) {
	var out bytes.Buffer
	path := filepath.Join(t.TempDir(), "hands.txt")

	cmd := &GenCanonicalCmd{Out: path}
	require.NoError(t, cmd.Run(testGlobals(t, &out)))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	require.NoError(t, scanner.Err())
	require.Len(t, lines, 169)
	assert.Equal(t, "Ah As", lines[0])
}

func TestGenCanonicalCmdShortDeck(t *testing.T) {
	var out bytes.Buffer
	path := filepath.Join(t.TempDir(), "hands.txt")

	cmd := &GenCanonicalCmd{Out: path, Ranks: []int{10, 11, 12, 13, 14}}
	require.NoError(t, cmd.Run(testGlobals(t, &out)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 25, bytes.Count(data, []byte("\n")))
}

func TestBucketCmdLossless(t *testing.T) {
	var out bytes.Buffer
	cmd := &BucketCmd{Hole: "Th6s"}
	require.NoError(t, cmd.Run(context.Background(), testGlobals(t, &out)))

	assert.Contains(t, out.String(), "Th 6s")
	assert.Contains(t, out.String(), "T6o")
	assert.Contains(t, out.String(), "97")
}

func TestBucketCmdAcceptsHoldingClass(t *testing.T) {
	var out bytes.Buffer
	cmd := &BucketCmd{Hole: "AA"}
	require.NoError(t, cmd.Run(context.Background(), testGlobals(t, &out)))

	assert.Contains(t, out.String(), "Ah As")
	assert.Contains(t, out.String(), "lossless")
	assert.Contains(t, out.String(), " 1")
}

func TestBucketCmdRejectsBadHole(t *testing.T) {
	var out bytes.Buffer
	cmd := &BucketCmd{Hole: "Th"}
	err := cmd.Run(context.Background(), testGlobals(t, &out))
	assert.ErrorIs(t, err, poker.ErrInvalidInput)
}

func TestWalkCmd(t *testing.T) {
	if testing.Short() {
		t.Skip("generates the rank table")
	}

	var out bytes.Buffer
	cmd := &WalkCmd{Seed: 7, Actions: "call call"}
	require.NoError(t, cmd.Run(context.Background(), testGlobals(t, &out)))

	s := out.String()
	assert.Contains(t, s, "Hand 7")
	assert.Contains(t, s, "pre_flop")
	assert.Contains(t, s, "call")
}

func TestWalkCmdSession(t *testing.T) {
	if testing.Short() {
		t.Skip("generates the rank table")
	}

	var out bytes.Buffer
	cmd := &WalkCmd{Seed: 3, Hands: 20}
	require.NoError(t, cmd.Run(context.Background(), testGlobals(t, &out)))

	s := out.String()
	assert.Contains(t, s, "Session 3")
	assert.Contains(t, s, "20")
	assert.Contains(t, s, "show_down")
}
