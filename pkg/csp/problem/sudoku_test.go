package problem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gocsp/pkg/csp"
)

func TestSamplePuzzle_KnownNames(t *testing.T) {
	_, ok := SamplePuzzle("easy")
	assert.True(t, ok)
	_, ok = SamplePuzzle("hard")
	assert.True(t, ok)
	_, ok = SamplePuzzle("bogus")
	assert.False(t, ok)
}

func TestParseBoard_RejectsWrongLength(t *testing.T) {
	_, err := ParseBoard("12345")
	require.Error(t, err)
}

func TestParseBoard_RejectsInvalidCharacter(t *testing.T) {
	board, _ := SamplePuzzle("easy")
	bad := "x" + board[1:]
	_, err := ParseBoard(bad)
	require.Error(t, err)
}

func TestParseBoard_SkipsBlanksKeepsGivens(t *testing.T) {
	board, ok := SamplePuzzle("easy")
	require.True(t, ok)

	givens, err := ParseBoard(board)
	require.NoError(t, err)
	assert.Equal(t, 5, givens[Cell{Row: 0, Col: 0}])
	assert.Equal(t, 7, givens[Cell{Row: 0, Col: 4}])
	_, blank := givens[Cell{Row: 0, Col: 2}]
	assert.False(t, blank, "position 2 of the easy board is '0'")
}

func TestSudoku_RejectsConflictingGivens(t *testing.T) {
	givens := map[Cell]int{
		{Row: 0, Col: 0}: 5,
		{Row: 0, Col: 1}: 5, // same row, same value
	}
	_, err := Sudoku(givens)
	require.Error(t, err)
}

func TestSudoku_BuildsSolvableCSPFromSample(t *testing.T) {
	board, ok := SamplePuzzle("easy")
	require.True(t, ok)
	givens, err := ParseBoard(board)
	require.NoError(t, err)

	built, err := Sudoku(givens)
	require.NoError(t, err)

	cfg := csp.DefaultConfig()
	cfg.Inference = csp.InferenceMAC
	cfg.VariableOrder = csp.VariableOrderMRV
	assignment, stats, err := csp.Solve(built, cfg)
	require.NoError(t, err)
	require.Equal(t, csp.StatusSolved, stats.Status)
	assert.Len(t, assignment, 81)

	for cell, v := range givens {
		assert.Equal(t, v, assignment[cell], "givens must never be overwritten")
	}
}

func TestFormatBoard_RoundTrips(t *testing.T) {
	board, ok := SamplePuzzle("easy")
	require.True(t, ok)
	givens, err := ParseBoard(board)
	require.NoError(t, err)

	assignment := make(map[Cell]int, 81)
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			assignment[Cell{Row: r, Col: c}] = 0
		}
	}
	for cell, v := range givens {
		assignment[cell] = v
	}

	assert.Equal(t, board, FormatBoard(assignment))
}

func TestCell_String(t *testing.T) {
	assert.Equal(t, "(2,5)", Cell{Row: 2, Col: 5}.String())
}
