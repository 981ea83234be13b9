// Command litmuseval is scaffolding for manual smoke-testing of the
// litmus-condition evaluation pipeline (SPEC_FULL §13): it wires a toy
// in-memory page table and a handful of built-in litmus expressions
// through the real eval/primitive/pagetable packages using the stub
// collab.Memory/collab.Solver/collab.Disassembler implementations, and
// prints the resulting litmus.Partial. It is not the production front
// end — the real HTTP/worker front end and the litmus/cat-file parsers
// remain out of scope (spec §1).
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/openisla/litmuscore/config"
	"github.com/openisla/litmuscore/eval"
	"github.com/openisla/litmuscore/litmus"
)

func main() {
	cfg := config.Load()

	app := &cli.App{
		Name:  "litmuseval",
		Usage: "evaluate a builtin demo litmus expression against a toy page table",
		Description: "Environment: LITMUS_OBJDUMP_PATH (objdump text file for label lookup), " +
			"LITMUS_SOLVER_PATH (unused by the stub solver), LITMUS_VERBOSE (stderr tracing).",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "expr",
				Usage: fmt.Sprintf("demo expression to evaluate (one of: %s)", exprNames()),
				Value: "walk",
			},
		},
		Action: func(c *cli.Context) error {
			return runEval(c.String("expr"), cfg)
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "litmuseval:", err)
		os.Exit(1)
	}
}

func exprNames() string {
	names := make([]string, 0, len(demoExpressions))
	for name := range demoExpressions {
		names = append(names, name)
	}
	sort.Strings(names)
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}

func runEval(name string, cfg config.Config) error {
	expr, ok := demoExpressions[name]
	if !ok {
		return fmt.Errorf("unknown demo expression %q (try one of: %s)", name, exprNames())
	}

	objdump := ""
	if cfg.ObjdumpPath != "" {
		text, err := readObjdumpFile(cfg.ObjdumpPath)
		if err != nil {
			return fmt.Errorf("reading LITMUS_OBJDUMP_PATH: %w", err)
		}
		objdump = text
	}

	env := sampleEnv(objdump)
	if cfg.Verbose {
		fmt.Fprintf(os.Stderr, "litmuseval: evaluating %q\n", name)
	}

	partial, err := eval.PartialEval(expr, env)
	if err != nil {
		return err
	}
	fmt.Println(formatPartial(partial))
	return nil
}

// formatPartial renders a litmus.Partial[uint64] the way the teacher's
// verbose trace lines render a value: the tagged-sum's active variant
// followed by its payload, not raw Go %#v struct dump (Partial keeps its
// fields unexported precisely so nothing outside the litmus package prints
// or inspects them directly).
func formatPartial(p litmus.Partial[uint64]) string {
	if p.IsEvaluated() {
		return fmt.Sprintf("Evaluated(%s)", p.Value())
	}
	expr, err := p.IntoExpr()
	if err != nil {
		return fmt.Sprintf("Unevaluated(<residualisation error: %v>)", err)
	}
	return fmt.Sprintf("Unevaluated(%s)", describeExpr(expr))
}

func describeExpr(e litmus.Expr[uint64]) string {
	switch e.Kind {
	case litmus.KindTrue:
		return "True"
	case litmus.KindFalse:
		return "False"
	case litmus.KindBits64:
		return fmt.Sprintf("0x%x/%d", e.BitsVal, e.Width)
	case litmus.KindNat:
		return fmt.Sprintf("%d", e.Nat)
	case litmus.KindEqLoc:
		return fmt.Sprintf("EqLoc(%s, %s)", describeLocation(*e.Loc), describeExpr(*e.Sub))
	case litmus.KindNot:
		return fmt.Sprintf("Not(%s)", describeExpr(*e.Sub))
	case litmus.KindImplies:
		return fmt.Sprintf("Implies(%s, %s)", describeExpr(*e.Lhs), describeExpr(*e.Rhs))
	case litmus.KindAnd:
		return fmt.Sprintf("And%s", describeExprList(e.List))
	case litmus.KindOr:
		return fmt.Sprintf("Or%s", describeExprList(e.List))
	case litmus.KindApp:
		return fmt.Sprintf("App(%s, ...)", e.Fn)
	default:
		return fmt.Sprintf("<kind %d>", e.Kind)
	}
}

func describeExprList(list []litmus.Expr[uint64]) string {
	out := "("
	for i, e := range list {
		if i > 0 {
			out += ", "
		}
		out += describeExpr(e)
	}
	return out + ")"
}

func describeLocation(loc litmus.Location[uint64]) string {
	if loc.Kind == litmus.LocRegister {
		return fmt.Sprintf("Register{%s, thread %d}", loc.Reg, loc.ThreadID)
	}
	return fmt.Sprintf("LastWriteTo(0x%x, %d bytes)", loc.Address, loc.Bytes)
}
