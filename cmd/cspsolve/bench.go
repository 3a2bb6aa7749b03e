package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gocsp/internal/bench"
	"gocsp/pkg/csp"
	"gocsp/pkg/csp/problem"
)

var (
	benchProblemFlag string
	benchTrialsFlag   int
	benchWorkersFlag  int
	benchCBJFlag      bool
	benchOutFlag      string

	benchCmd = &cobra.Command{
		Use:   "bench",
		Short: "Sweep the solver configuration matrix and report aggregate statistics",
		RunE:  runBench,
	}
)

func init() {
	benchCmd.Flags().StringVar(&benchProblemFlag, "problem", "color", "color or sudoku")
	benchCmd.Flags().IntVar(&benchTrialsFlag, "trials", 10, "number of trials per configuration")
	benchCmd.Flags().IntVar(&benchWorkersFlag, "workers", 0, "worker pool size, 0 for NumCPU")
	benchCmd.Flags().BoolVar(&benchCBJFlag, "cbj", false, "also sweep CBJ variants")
	benchCmd.Flags().StringVar(&benchOutFlag, "out", "", "CSV output path, empty for stdout")

	benchCmd.Flags().IntVar(&colorNFlag, "n", 20, "number of vertices")
	benchCmd.Flags().Float64Var(&colorPFlag, "p", 0.3, "edge probability")
	benchCmd.Flags().IntVar(&colorKFlag, "k", 3, "number of colors")
	benchCmd.Flags().StringVar(&sudokuSampleFlag, "sample", "easy", "bundled puzzle name, when --problem=sudoku")
}

func runBench(cmd *cobra.Command, args []string) error {
	matrix := bench.DefaultConfigMatrix(benchCBJFlag)

	var summaries []bench.Summary
	var err error

	switch benchProblemFlag {
	case "sudoku":
		board, ok := problem.SamplePuzzle(sudokuSampleFlag)
		if !ok {
			return fmt.Errorf("unknown sample puzzle %q", sudokuSampleFlag)
		}
		givens, perr := problem.ParseBoard(board)
		if perr != nil {
			return perr
		}
		summaries, err = bench.RunExperiment(benchTrialsFlag, benchWorkersFlag,
			func(trial int) *csp.CSP[problem.Cell, int] {
				instance, _ := problem.Sudoku(givens)
				return instance
			}, matrix)
	default:
		summaries, err = bench.RunExperiment(benchTrialsFlag, benchWorkersFlag,
			func(trial int) *csp.CSP[int, int] {
				instance, _, _ := problem.RandomGraphColoring(colorNFlag, colorPFlag, colorKFlag, int64(trial))
				return instance
			}, matrix)
	}
	if err != nil {
		return err
	}

	out := os.Stdout
	if benchOutFlag != "" {
		f, ferr := os.Create(benchOutFlag)
		if ferr != nil {
			return ferr
		}
		defer f.Close()
		return bench.WriteSummariesCSV(f, summaries)
	}
	return bench.WriteSummariesCSV(out, summaries)
}
