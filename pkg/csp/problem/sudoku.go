package problem

import (
	"fmt"

	"github.com/pkg/errors"

	"gocsp/pkg/csp"
)

// Cell addresses a Sudoku board position, the variable type for every
// Sudoku CSP this package builds.
type Cell struct {
	Row, Col int
}

var samplePuzzles = map[string]string{
	// 0 marks a blank cell. Classic "easy" newspaper puzzle.
	"easy": "530070000" +
		"600195000" +
		"098000060" +
		"800060003" +
		"400803001" +
		"700020006" +
		"060000280" +
		"000419005" +
		"000080079",
	// A commonly-cited "hard" instance with only 28 givens.
	"hard": "000000907" +
		"000420180" +
		"000705026" +
		"100904000" +
		"050000040" +
		"000507009" +
		"920108000" +
		"034059000" +
		"507000000",
}

// SamplePuzzle returns one of the bundled 81-character board strings
// ("easy" or "hard"), ok is false for any other name.
func SamplePuzzle(name string) (string, bool) {
	s, ok := samplePuzzles[name]
	return s, ok
}

// ParseBoard decodes an 81-character board string, row-major, digits 1-9
// for givens and '0' or '.' for blanks, into a Cell->value map suitable for
// Sudoku. It rejects anything that isn't exactly 81 recognized characters.
func ParseBoard(board string) (map[Cell]int, error) {
	if len(board) != 81 {
		return nil, errors.Errorf("sudoku: board must be 81 characters, got %d", len(board))
	}
	givens := make(map[Cell]int)
	for i, ch := range board {
		row, col := i/9, i%9
		switch {
		case ch == '0' || ch == '.':
			continue
		case ch >= '1' && ch <= '9':
			givens[Cell{Row: row, Col: col}] = int(ch - '0')
		default:
			return nil, errors.Errorf("sudoku: invalid character %q at position %d", ch, i)
		}
	}
	return givens, nil
}

// Sudoku frames a 9x9 Sudoku board as a binary CSP: one variable per cell,
// domain {1,...,9} (or the singleton {v} for a given), a NotEqual
// constraint between every pair of cells sharing a row, column, or 3x3 box.
// It rejects givens that already conflict with each other before building
// any constraint, so a malformed puzzle fails fast with a precise reason
// rather than surfacing as a confusing Unsolvable from Solve.
func Sudoku(givens map[Cell]int) (*csp.CSP[Cell, int], error) {
	if err := checkGivensConsistent(givens); err != nil {
		return nil, err
	}

	builder := csp.NewBuilder[Cell, int]()
	full := []int{1, 2, 3, 4, 5, 6, 7, 8, 9}

	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			cell := Cell{Row: r, Col: c}
			if v, ok := givens[cell]; ok {
				builder.AddVariable(cell, csp.NewDomain(v))
			} else {
				builder.AddVariable(cell, csp.NewDomain(full...))
			}
		}
	}

	for r := 0; r < 9; r++ {
		for c1 := 0; c1 < 9; c1++ {
			for c2 := c1 + 1; c2 < 9; c2++ {
				builder.AddConstraint(csp.NewNotEqual[Cell, int](Cell{r, c1}, Cell{r, c2}))
			}
		}
	}
	for c := 0; c < 9; c++ {
		for r1 := 0; r1 < 9; r1++ {
			for r2 := r1 + 1; r2 < 9; r2++ {
				builder.AddConstraint(csp.NewNotEqual[Cell, int](Cell{r1, c}, Cell{r2, c}))
			}
		}
	}
	for boxRow := 0; boxRow < 3; boxRow++ {
		for boxCol := 0; boxCol < 3; boxCol++ {
			var cells []Cell
			for r := boxRow * 3; r < boxRow*3+3; r++ {
				for c := boxCol * 3; c < boxCol*3+3; c++ {
					cells = append(cells, Cell{Row: r, Col: c})
				}
			}
			for i := 0; i < len(cells); i++ {
				for j := i + 1; j < len(cells); j++ {
					builder.AddConstraint(csp.NewNotEqual[Cell, int](cells[i], cells[j]))
				}
			}
		}
	}

	built, err := builder.Build()
	if err != nil {
		return nil, errors.Wrap(err, "sudoku")
	}
	return built, nil
}

// checkGivensConsistent rejects a board whose pre-filled cells already
// violate the row/column/box rule among themselves, before the CSP is ever
// built — a malformed puzzle, per spec §7's MalformedCSP error kind.
func checkGivensConsistent(givens map[Cell]int) error {
	rows := make(map[int]map[int]Cell, 9)
	cols := make(map[int]map[int]Cell, 9)
	boxes := make(map[int]map[int]Cell, 9)

	for cell, v := range givens {
		if v < 1 || v > 9 {
			return errors.Errorf("sudoku: value %d at %v out of range 1-9", v, cell)
		}
		box := (cell.Row/3)*3 + cell.Col/3

		if rows[cell.Row] == nil {
			rows[cell.Row] = map[int]Cell{}
		}
		if other, seen := rows[cell.Row][v]; seen {
			return errors.Errorf("sudoku: %v and %v both given %d in row %d", other, cell, v, cell.Row)
		}
		rows[cell.Row][v] = cell

		if cols[cell.Col] == nil {
			cols[cell.Col] = map[int]Cell{}
		}
		if other, seen := cols[cell.Col][v]; seen {
			return errors.Errorf("sudoku: %v and %v both given %d in column %d", other, cell, v, cell.Col)
		}
		cols[cell.Col][v] = cell

		if boxes[box] == nil {
			boxes[box] = map[int]Cell{}
		}
		if other, seen := boxes[box][v]; seen {
			return errors.Errorf("sudoku: %v and %v both given %d in box %d", other, cell, v, box)
		}
		boxes[box][v] = cell
	}
	return nil
}

// FormatBoard renders a complete assignment back into an 81-character
// board string, row-major, for display or round-tripping.
func FormatBoard(assignment map[Cell]int) string {
	out := make([]byte, 81)
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			v := assignment[Cell{Row: r, Col: c}]
			out[r*9+c] = byte('0' + v)
		}
	}
	return string(out)
}

// String renders a Cell as "(row,col)" for log lines and error messages.
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}
