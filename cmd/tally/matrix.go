package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/tally/internal/config"
	"github.com/verte-zerg/tally/internal/generator"
	"github.com/verte-zerg/tally/internal/matrix"
	"github.com/verte-zerg/tally/internal/matrixui"
)

type matrixOp string

const (
	opAdd    matrixOp = "add"
	opMul    matrixOp = "mul"
	opMatMul matrixOp = "matmul"
	opSub    matrixOp = "sub"
	opDiv    matrixOp = "div"
)

const (
	defaultRandMin = 0.0
	defaultRandMax = 1.0
)

var (
	calcOut string

	showPlain bool

	randRows    int
	randCols    int
	randSeed    int64
	randMin     float64
	randMax     float64
	randInt     bool
	randZeroPct float64
	randOut     string
)

func newMatrixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Matrix arithmetic on TOML grid files",
	}
	cmd.AddCommand(newMatrixCalcCmd())
	cmd.AddCommand(newMatrixShowCmd())
	cmd.AddCommand(newMatrixViewCmd())
	cmd.AddCommand(newMatrixRandCmd())
	return cmd
}

func newMatrixCalcCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc A.toml OP B.toml",
		Short: "Combine two matrices (add, mul, matmul, sub, div)",
		Args:  cobra.ExactArgs(3),
		RunE:  runMatrixCalcCmd,
	}
	cmd.Flags().StringVar(&calcOut, "out", "", "write the tab-delimited result to this file")
	return cmd
}

func runMatrixCalcCmd(cmd *cobra.Command, args []string) error {
	op, err := parseOp(args[1])
	if err != nil {
		return err
	}
	left, err := loadMatrix(args[0])
	if err != nil {
		return err
	}
	right, err := loadMatrix(args[2])
	if err != nil {
		return err
	}
	result, err := applyOp(op, left, right)
	if err != nil {
		return fmt.Errorf("failed to %s %s and %s: %w", op, args[0], args[2], err)
	}
	if calcOut != "" {
		if err := result.WriteToFile(calcOut); err != nil {
			return err
		}
		logErrf("Wrote %s\n", calcOut)
		return nil
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), result.String()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func parseOp(value string) (matrixOp, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "add", "+":
		return opAdd, nil
	case "mul", "*":
		return opMul, nil
	case "matmul", "@":
		return opMatMul, nil
	case "sub", "-":
		return opSub, nil
	case "div", "/":
		return opDiv, nil
	default:
		return "", fmt.Errorf("unknown operation %q (want add, mul, matmul, sub, or div)", value)
	}
}

func applyOp(op matrixOp, left, right *matrix.FunctionalArithmetic) (*matrix.FunctionalArithmetic, error) {
	switch op {
	case opAdd:
		return left.Add(right)
	case opMul:
		return left.Mul(right)
	case opMatMul:
		return left.MatMul(right)
	case opSub:
		return left.Sub(right)
	case opDiv:
		return left.Div(right)
	default:
		return nil, fmt.Errorf("unknown operation %q", op)
	}
}

func loadMatrix(path string) (*matrix.FunctionalArithmetic, error) {
	grid, err := config.LoadGrid(path)
	if err != nil {
		return nil, err
	}
	m, err := matrix.NewFunctionalArithmetic(grid)
	if err != nil {
		return nil, fmt.Errorf("invalid matrix %s: %w", path, err)
	}
	return m, nil
}

func newMatrixShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show A.toml",
		Short: "Print a matrix",
		Args:  cobra.ExactArgs(1),
		RunE:  runMatrixShowCmd,
	}
	cmd.Flags().BoolVar(&showPlain, "plain", false, "tab-delimited output even on a terminal")
	return cmd
}

func runMatrixShowCmd(cmd *cobra.Command, args []string) error {
	m, err := loadMatrix(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	text := m.String()
	if !showPlain && isTerminal(out) {
		text = matrixui.RenderTable(m)
	}
	if _, err := fmt.Fprintln(out, text); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func newMatrixViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view A.toml",
		Short: "Browse a matrix interactively",
		Args:  cobra.ExactArgs(1),
		RunE:  runMatrixViewCmd,
	}
}

func runMatrixViewCmd(_ *cobra.Command, args []string) error {
	m, err := loadMatrix(args[0])
	if err != nil {
		return err
	}
	return matrixui.Run(args[0], m)
}

func newMatrixRandCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rand",
		Short: "Generate a random matrix file",
		Args:  cobra.NoArgs,
		RunE:  runMatrixRandCmd,
	}
	cmd.Flags().IntVar(&randRows, "rows", 3, "number of rows")
	cmd.Flags().IntVar(&randCols, "cols", 3, "number of columns")
	cmd.Flags().Int64Var(&randSeed, "seed", 0, "random seed (default: time based)")
	cmd.Flags().Float64Var(&randMin, "min", defaultRandMin, "lowest value")
	cmd.Flags().Float64Var(&randMax, "max", defaultRandMax, "highest value")
	cmd.Flags().BoolVar(&randInt, "int", false, "whole numbers only")
	cmd.Flags().Float64Var(&randZeroPct, "zero", 0, "probability of a zero cell (0-1)")
	cmd.Flags().StringVar(&randOut, "out", "", "write the TOML grid to this file")
	return cmd
}

func runMatrixRandCmd(cmd *cobra.Command, _ []string) error {
	gen := generator.New()
	if cmd.Flags().Changed("seed") {
		gen = generator.NewSeeded(randSeed)
	}
	grid, err := gen.Grid(generator.Options{
		Rows:    randRows,
		Cols:    randCols,
		Min:     randMin,
		Max:     randMax,
		Integer: randInt,
		ZeroPct: randZeroPct,
	})
	if err != nil {
		return fmt.Errorf("invalid matrix options: %w", err)
	}
	if randOut != "" {
		if err := config.SaveGrid(randOut, grid); err != nil {
			return err
		}
		logErrf("Wrote %s\n", randOut)
		return nil
	}
	return config.EncodeGrid(cmd.OutOrStdout(), grid)
}
