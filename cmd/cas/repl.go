package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/asiyen02/cas/internal/config"
	"github.com/asiyen02/cas/internal/grapher"
	"github.com/asiyen02/cas/pkg/cas"
)

type repl struct {
	engine *cas.Engine
	cfg    *config.Config
	out    io.Writer
}

func newREPL(engine *cas.Engine, cfg *config.Config, out io.Writer) *repl {
	return &repl{engine: engine, cfg: cfg, out: out}
}

func printBanner(w io.Writer) {
	fmt.Fprintln(w, "cas: interactive computer algebra system")
	fmt.Fprintln(w, "Type 'help' for available commands, Ctrl+D to exit.")
	fmt.Fprintln(w)
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  parse <expr>           - Parse and display expression")
	fmt.Fprintln(w, "  eval <expr>            - Evaluate expression")
	fmt.Fprintln(w, "  diff <expr>            - Differentiate with respect to x")
	fmt.Fprintln(w, "  integrate <expr>       - Integrate with respect to x")
	fmt.Fprintln(w, "  simplify <expr>        - Simplify expression")
	fmt.Fprintln(w, "  solve <expr>           - Solve expr = 0 for x")
	fmt.Fprintln(w, "  factor <expr>          - Factor expression")
	fmt.Fprintln(w, "  all <expr>             - Show parse, derivative, and integral")
	fmt.Fprintln(w, "  graph <expr> [options] - Plot expression in the terminal")
	fmt.Fprintln(w, "  let <name> = <expr>    - Store a named definition")
	fmt.Fprintln(w, "  unlet <name>           - Remove a named definition")
	fmt.Fprintln(w, "  vars                   - List named definitions")
	fmt.Fprintln(w, "  help                   - Show this menu")
	fmt.Fprintln(w, "  quit/exit              - Exit")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Graph options (after expression):")
	fmt.Fprintln(w, "  xmin:<value> xmax:<value> ymin:<value> ymax:<value>")
	fmt.Fprintln(w, "  width:<cols> height:<rows>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  diff x^2 + 2*x + 1")
	fmt.Fprintln(w, "  integrate sin(x)")
	fmt.Fprintln(w, "  graph sin(x) xmin:-6.28 xmax:6.28 ymin:-2 ymax:2")
	fmt.Fprintln(w)
}

func runREPL(r *repl) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		printBanner(r.out)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(r.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if quit := r.dispatch(line); quit {
			return
		}
	}
}

// dispatch runs one command line. Returns true when the session
// should end.
func (r *repl) dispatch(line string) bool {
	command, rest := splitCommand(line)

	switch command {
	case "quit", "exit":
		fmt.Fprintln(r.out, "Goodbye!")
		return true
	case "help":
		printHelp(r.out)
	case "parse":
		r.cmdParse(rest)
	case "eval":
		r.cmdEval(rest)
	case "diff":
		r.cmdDiff(rest)
	case "integrate":
		r.cmdIntegrate(rest)
	case "simplify":
		r.cmdSimplify(rest)
	case "solve":
		r.cmdSolve(rest)
	case "factor":
		r.cmdFactor(rest)
	case "all":
		r.cmdAll(rest)
	case "graph":
		r.cmdGraph(rest)
	case "let":
		r.cmdLet(rest)
	case "unlet":
		r.cmdUnlet(rest)
	case "vars":
		r.cmdVars()
	default:
		// A bare expression behaves like eval
		if _, err := r.engine.Parse(line); err == nil {
			r.cmdEval(line)
		} else {
			fmt.Fprintf(r.out, "Unknown command: %s (type 'help')\n", command)
		}
	}
	return false
}

func splitCommand(line string) (command, rest string) {
	fields := strings.SplitN(line, " ", 2)
	command = fields[0]
	if len(fields) == 2 {
		rest = strings.TrimSpace(fields[1])
	}
	return command, rest
}

func (r *repl) requireExpr(expression string) bool {
	if expression == "" {
		fmt.Fprintln(r.out, "Error: Please provide an expression")
		return false
	}
	return true
}

func (r *repl) cmdParse(expression string) {
	if !r.requireExpr(expression) {
		return
	}
	if !r.engine.ParseFromString(expression) {
		fmt.Fprintf(r.out, "Parse error: %v\n", r.engine.LastError())
		return
	}
	fmt.Fprintln(r.out, "Parsed successfully")
	fmt.Fprintf(r.out, "  AST: %s\n", r.engine.String())
}

func (r *repl) cmdEval(expression string) {
	if !r.requireExpr(expression) {
		return
	}
	if !r.engine.ParseFromString(expression) {
		fmt.Fprintf(r.out, "Parse error: %v\n", r.engine.LastError())
		return
	}
	result, err := r.engine.Evaluate(r.bindings())
	if err != nil {
		fmt.Fprintf(r.out, "Evaluation error: %v\n", err)
		return
	}
	fmt.Fprintf(r.out, "  Result: %g\n", result)
}

func (r *repl) cmdDiff(expression string) {
	if !r.requireExpr(expression) {
		return
	}
	if !r.engine.ParseFromString(expression) {
		fmt.Fprintf(r.out, "Parse error: %v\n", r.engine.LastError())
		return
	}
	derivative, err := r.engine.Differentiate("x")
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(r.out, "  d/dx of (%s):\n", expression)
	fmt.Fprintf(r.out, "  = %s\n", derivative.String())

	if simplified, err := derivative.Simplify(); err == nil {
		fmt.Fprintf(r.out, "  Simplified: %s\n", simplified.String())
	}
}

func (r *repl) cmdIntegrate(expression string) {
	if !r.requireExpr(expression) {
		return
	}
	if !r.engine.ParseFromString(expression) {
		fmt.Fprintf(r.out, "Parse error: %v\n", r.engine.LastError())
		return
	}
	integral, err := r.engine.Integrate("x")
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(r.out, "  Integral of (%s) dx:\n", expression)
	fmt.Fprintf(r.out, "  = %s\n", integral.String())

	if simplified, err := integral.Simplify(); err == nil {
		fmt.Fprintf(r.out, "  Simplified: %s + C\n", simplified.String())
	}
}

func (r *repl) cmdSimplify(expression string) {
	if !r.requireExpr(expression) {
		return
	}
	if !r.engine.ParseFromString(expression) {
		fmt.Fprintf(r.out, "Parse error: %v\n", r.engine.LastError())
		return
	}
	simplified, err := r.engine.Simplify()
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(r.out, "  Original:   %s\n", expression)
	fmt.Fprintf(r.out, "  Simplified: %s\n", simplified.String())
}

func (r *repl) cmdSolve(expression string) {
	if !r.requireExpr(expression) {
		return
	}
	if !r.engine.ParseFromString(expression) {
		fmt.Fprintf(r.out, "Parse error: %v\n", r.engine.LastError())
		return
	}
	solution, err := r.engine.Solve("x")
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(r.out, "  %s = 0\n", expression)
	fmt.Fprintf(r.out, "  x = %s\n", solution.String())

	if simplified, err := solution.Simplify(); err == nil {
		fmt.Fprintf(r.out, "  Simplified: x = %s\n", simplified.String())
	}
}

func (r *repl) cmdFactor(expression string) {
	if !r.requireExpr(expression) {
		return
	}
	if !r.engine.ParseFromString(expression) {
		fmt.Fprintf(r.out, "Parse error: %v\n", r.engine.LastError())
		return
	}
	factors, err := r.engine.Factor()
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	parts := make([]string, len(factors))
	for i, f := range factors {
		parts[i] = "(" + f.String() + ")"
	}
	fmt.Fprintf(r.out, "  Factors: %s\n", strings.Join(parts, " * "))
}

func (r *repl) cmdAll(expression string) {
	if !r.requireExpr(expression) {
		return
	}

	rule := strings.Repeat("=", 50)
	fmt.Fprintf(r.out, "\n%s\n", rule)
	fmt.Fprintf(r.out, "Expression: %s\n", expression)
	fmt.Fprintln(r.out, rule)

	if !r.engine.ParseFromString(expression) {
		fmt.Fprintf(r.out, "Parse error: %v\n", r.engine.LastError())
		return
	}

	fmt.Fprintln(r.out, "1. Parsed form:")
	fmt.Fprintf(r.out, "   %s\n", r.engine.String())

	if derivative, err := r.engine.Differentiate("x"); err != nil {
		fmt.Fprintf(r.out, "\n2. Derivative: Error - %v\n", err)
	} else {
		fmt.Fprintln(r.out, "\n2. Derivative (d/dx):")
		fmt.Fprintf(r.out, "   %s\n", derivative.String())
		if simplified, err := derivative.Simplify(); err == nil {
			fmt.Fprintf(r.out, "   Simplified: %s\n", simplified.String())
		}
	}

	if integral, err := r.engine.Integrate("x"); err != nil {
		fmt.Fprintf(r.out, "\n3. Integral: Error - %v\n", err)
	} else {
		fmt.Fprintln(r.out, "\n3. Integral (dx):")
		fmt.Fprintf(r.out, "   %s\n", integral.String())
		if simplified, err := integral.Simplify(); err == nil {
			fmt.Fprintf(r.out, "   Simplified: %s + C\n", simplified.String())
		}
	}

	fmt.Fprintf(r.out, "%s\n\n", rule)
}

var graphOptionKeys = []string{"xmin:", "xmax:", "ymin:", "ymax:", "width:", "height:"}

func (r *repl) cmdGraph(expression string) {
	if !r.requireExpr(expression) {
		return
	}

	expr, options := splitGraphOptions(expression)

	settings := grapher.DefaultSettings()
	settings.XMin = r.cfg.Graph.XMin
	settings.XMax = r.cfg.Graph.XMax
	settings.YMin = r.cfg.Graph.YMin
	settings.YMax = r.cfg.Graph.YMax
	settings.Width = r.cfg.Graph.Width
	settings.Height = r.cfg.Graph.Height

	userYRange := false
	for _, opt := range strings.Fields(options) {
		key, value, found := strings.Cut(opt, ":")
		if !found {
			continue
		}
		switch key {
		case "xmin":
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				settings.XMin = v
			}
		case "xmax":
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				settings.XMax = v
			}
		case "ymin":
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				settings.YMin = v
				userYRange = true
			}
		case "ymax":
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				settings.YMax = v
				userYRange = true
			}
		case "width":
			if v, err := strconv.Atoi(value); err == nil {
				settings.Width = v
			}
		case "height":
			if v, err := strconv.Atoi(value); err == nil {
				settings.Height = v
			}
		default:
			fmt.Fprintf(r.out, "Warning: Could not parse option %s\n", opt)
		}
	}

	node, err := r.engine.Parse(expr)
	if err != nil {
		fmt.Fprintf(r.out, "Parse error: %v\n", err)
		return
	}

	if !userYRange {
		if yMin, yMax, ok := grapher.AutoRange(node, settings.XMin, settings.XMax); ok {
			settings.YMin = yMin
			settings.YMax = yMax
			fmt.Fprintf(r.out, "Auto-adjusted y-range to [%g, %g]\n", yMin, yMax)
		} else {
			fmt.Fprintln(r.out, "Warning: Could not sample function values. Using default y-range.")
		}
	}

	console := grapher.New(settings)
	if err := console.AddFunction(expr, expr, '*'); err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	console.Plot(r.out)
}

// splitGraphOptions separates the expression from trailing key:value
// plot options.
func splitGraphOptions(input string) (expr, options string) {
	optionStart := -1
	for _, keyword := range graphOptionKeys {
		if pos := strings.Index(input, keyword); pos >= 0 {
			if optionStart < 0 || pos < optionStart {
				optionStart = pos
			}
		}
	}
	if optionStart < 0 {
		return input, ""
	}
	space := strings.LastIndex(input[:optionStart], " ")
	if space < 0 {
		return input, ""
	}
	return strings.TrimSpace(input[:space]), input[space+1:]
}

func (r *repl) cmdLet(rest string) {
	name, source, found := strings.Cut(rest, "=")
	name = strings.TrimSpace(name)
	source = strings.TrimSpace(source)
	if !found || name == "" || source == "" {
		fmt.Fprintln(r.out, "Usage: let <name> = <expr>")
		return
	}
	if err := r.engine.Define(name, source); err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(r.out, "  %s = %s\n", name, source)
}

func (r *repl) cmdUnlet(rest string) {
	name := strings.TrimSpace(rest)
	if name == "" {
		fmt.Fprintln(r.out, "Usage: unlet <name>")
		return
	}
	if err := r.engine.Undefine(name); err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
	}
}

func (r *repl) cmdVars() {
	names, err := r.engine.Definitions()
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	if len(names) == 0 {
		fmt.Fprintln(r.out, "  (no definitions)")
		return
	}
	for _, name := range names {
		source, err := r.engine.Lookup(name)
		if err != nil {
			continue
		}
		fmt.Fprintf(r.out, "  %s = %s\n", name, source)
	}
}

// bindings evaluates stored definitions and returns the constant ones
// as variable bindings for eval.
func (r *repl) bindings() map[string]float64 {
	names, err := r.engine.Definitions()
	if err != nil || len(names) == 0 {
		return nil
	}
	vars := make(map[string]float64)
	for _, name := range names {
		source, err := r.engine.Lookup(name)
		if err != nil || source == "" {
			continue
		}
		node, err := r.engine.Parse(source)
		if err != nil {
			continue
		}
		if value, err := node.Eval(nil); err == nil {
			vars[name] = value
		}
	}
	return vars
}
