package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gocsp/pkg/csp"
	"gocsp/pkg/csp/problem"
)

var (
	inferenceFlag string
	varOrderFlag  string
	valOrderFlag  string
	cbjFlag       bool
	seedFlag      int64
	maxStepsFlag  int
	timeLimitFlag time.Duration
	formatFlag    string

	sudokuSampleFlag string
	sudokuBoardFlag  string

	colorNFlag    int
	colorPFlag    float64
	colorKFlag    int

	solveCmd = &cobra.Command{
		Use:   "solve",
		Short: "Solve a single CSP instance",
	}

	solveSudokuCmd = &cobra.Command{
		Use:   "sudoku",
		Short: "Solve a Sudoku board",
		RunE:  runSolveSudoku,
	}

	solveColorCmd = &cobra.Command{
		Use:   "color",
		Short: "Solve a random graph-coloring instance",
		RunE:  runSolveColor,
	}
)

func init() {
	for _, cmd := range []*cobra.Command{solveSudokuCmd, solveColorCmd} {
		cmd.Flags().StringVar(&inferenceFlag, "inference", "mac", "none, fc, mac, or min_conflicts")
		cmd.Flags().StringVar(&varOrderFlag, "variable-order", "mrv", "default, mrv, or dom_wdeg")
		cmd.Flags().StringVar(&valOrderFlag, "value-order", "lcv", "default or lcv")
		cmd.Flags().BoolVar(&cbjFlag, "cbj", false, "enable conflict-directed backjumping")
		cmd.Flags().Int64Var(&seedFlag, "seed", 0, "random seed (min_conflicts only)")
		cmd.Flags().IntVar(&maxStepsFlag, "max-steps", 100000, "step budget (min_conflicts only)")
		cmd.Flags().DurationVar(&timeLimitFlag, "time-limit", 0, "wall-clock budget, 0 for unbounded")
		cmd.Flags().StringVar(&formatFlag, "format", "text", "output format: text or json")
		_ = viper.BindPFlag(cmd.Name()+".inference", cmd.Flags().Lookup("inference"))
	}

	solveSudokuCmd.Flags().StringVar(&sudokuSampleFlag, "sample", "", "bundled puzzle name: easy or hard")
	solveSudokuCmd.Flags().StringVar(&sudokuBoardFlag, "board", "", "81-character board string, 0 or . for blanks")

	solveColorCmd.Flags().IntVar(&colorNFlag, "n", 20, "number of vertices")
	solveColorCmd.Flags().Float64Var(&colorPFlag, "p", 0.3, "edge probability")
	solveColorCmd.Flags().IntVar(&colorKFlag, "k", 3, "number of colors")

	solveCmd.AddCommand(solveSudokuCmd)
	solveCmd.AddCommand(solveColorCmd)
}

// solveResult is the --format=json encoding of a single Solve call: every
// Statistics field the text path prints, plus a format-specific solution
// payload (a board string for sudoku, a vertex->color map for graph
// coloring), omitted when Solve didn't reach StatusSolved.
type solveResult struct {
	Status           string      `json:"status"`
	RuntimeSeconds   float64     `json:"runtime_seconds"`
	Assignments      int         `json:"assignments"`
	Backtracks       int         `json:"backtracks"`
	ConstraintChecks int         `json:"constraint_checks"`
	Propagations     int         `json:"propagations"`
	Solution         interface{} `json:"solution,omitempty"`
}

// printResult renders stats either as JSON (--format=json, solution built by
// the caller from the solved assignment) or by calling text, which owns the
// command-specific plain-text rendering.
func printResult(stats *csp.Statistics, solution interface{}, text func()) error {
	if formatFlag != "json" {
		text()
		return nil
	}
	encoded, err := json.MarshalIndent(solveResult{
		Status:           stats.Status.String(),
		RuntimeSeconds:   stats.RuntimeSeconds,
		Assignments:      stats.Assignments,
		Backtracks:       stats.Backtracks,
		ConstraintChecks: stats.ConstraintChecks,
		Propagations:     stats.Propagations,
		Solution:         solution,
	}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}

// buildConfigFromFlags resolves --inference through viper rather than the
// flag var directly, so a --config YAML file's "<command>.inference" key
// can supply a default the user didn't pass explicitly on the line.
func buildConfigFromFlags(cmd *cobra.Command) (csp.Config, error) {
	inferenceValue := inferenceFlag
	if key := cmd.Name() + ".inference"; viper.IsSet(key) && !cmd.Flags().Changed("inference") {
		inferenceValue = viper.GetString(key)
	}

	family, inference, err := csp.ParseInference(inferenceValue)
	if err != nil {
		return csp.Config{}, err
	}
	varOrder, err := csp.ParseVariableOrder(varOrderFlag)
	if err != nil {
		return csp.Config{}, err
	}
	valOrder, err := csp.ParseValueOrder(valOrderFlag)
	if err != nil {
		return csp.Config{}, err
	}

	cfg := csp.DefaultConfig()
	cfg.Family = family
	cfg.Inference = inference
	cfg.VariableOrder = varOrder
	cfg.ValueOrder = valOrder
	cfg.UseCBJ = cbjFlag
	cfg.Seed = seedFlag
	cfg.MaxSteps = maxStepsFlag
	cfg.TimeLimit = timeLimitFlag
	cfg.Logger = logger
	return cfg, nil
}

func runSolveSudoku(cmd *cobra.Command, args []string) error {
	board := sudokuBoardFlag
	if board == "" {
		name := sudokuSampleFlag
		if name == "" {
			name = "easy"
		}
		sample, ok := problem.SamplePuzzle(name)
		if !ok {
			return fmt.Errorf("unknown sample puzzle %q", name)
		}
		board = sample
	}

	givens, err := problem.ParseBoard(board)
	if err != nil {
		return err
	}
	instance, err := problem.Sudoku(givens)
	if err != nil {
		return err
	}

	cfg, err := buildConfigFromFlags(cmd)
	if err != nil {
		return err
	}

	assignment, stats, err := csp.Solve(instance, cfg)
	if err != nil {
		return err
	}

	var solution interface{}
	if stats.Status == csp.StatusSolved {
		solution = map[string]string{"board": problem.FormatBoard(assignment)}
	}
	return printResult(stats, solution, func() {
		fmt.Printf("status=%s runtime=%.4fs assignments=%d backtracks=%d checks=%d propagations=%d\n",
			stats.Status, stats.RuntimeSeconds, stats.Assignments, stats.Backtracks, stats.ConstraintChecks, stats.Propagations)
		if stats.Status == csp.StatusSolved {
			fmt.Println(problem.FormatBoard(assignment))
		}
	})
}

func runSolveColor(cmd *cobra.Command, args []string) error {
	instance, edges, err := problem.RandomGraphColoring(colorNFlag, colorPFlag, colorKFlag, seedFlag)
	if err != nil {
		return err
	}

	cfg, err := buildConfigFromFlags(cmd)
	if err != nil {
		return err
	}

	assignment, stats, err := csp.Solve(instance, cfg)
	if err != nil {
		return err
	}

	var solution interface{}
	if stats.Status == csp.StatusSolved {
		solution = assignment
	}
	return printResult(stats, solution, func() {
		fmt.Printf("vertices=%d edges=%d colors=%d status=%s runtime=%.4fs assignments=%d backtracks=%d checks=%d\n",
			colorNFlag, len(edges), colorKFlag, stats.Status, stats.RuntimeSeconds, stats.Assignments, stats.Backtracks, stats.ConstraintChecks)
		if stats.Status == csp.StatusSolved {
			for _, v := range instance.Variables() {
				fmt.Printf("  vertex %d -> color %d\n", v, assignment[v])
			}
		}
	})
}
