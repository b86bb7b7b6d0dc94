package cas

import (
	"errors"

	"github.com/asiyen02/cas/internal/ast"
	"github.com/asiyen02/cas/internal/parser"
	"github.com/asiyen02/cas/internal/store"
	"github.com/asiyen02/cas/internal/symbolic"
	"github.com/asiyen02/cas/internal/token"
)

// ErrNoExpression is returned by transformations called before a
// successful parse.
var ErrNoExpression = errors.New("no expression parsed")

// Engine is the symbolic computation engine. It holds the most
// recently parsed expression and applies transformations to it.
type Engine struct {
	store   store.Store
	funcs   token.Registry
	expr    symbolic.Expr
	lastErr error
}

// New creates a new engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.funcs == nil {
		e.funcs = token.DefaultRegistry()
	}
	return e
}

// Parse parses text into an AST without changing the held expression.
func (e *Engine) Parse(text string) (ast.Node, error) {
	return parser.NewWithFunctions(text, e.funcs).Parse()
}

// ParseFromString parses text and holds the resulting expression.
// Returns false on failure; the error is available via LastError.
func (e *Engine) ParseFromString(text string) bool {
	node, err := e.Parse(text)
	if err != nil {
		e.expr = nil
		e.lastErr = err
		return false
	}
	return e.ParseFromAST(node)
}

// ParseFromAST converts an AST and holds the resulting expression.
func (e *Engine) ParseFromAST(n ast.Node) bool {
	expr, err := symbolic.FromAST(n)
	if err != nil {
		e.expr = nil
		e.lastErr = err
		return false
	}
	e.expr = expr
	e.lastErr = nil
	return true
}

// HasExpression reports whether a parse has succeeded.
func (e *Engine) HasExpression() bool {
	return e.expr != nil
}

// Expression returns a deep copy of the held expression, or nil.
func (e *Engine) Expression() symbolic.Expr {
	if e.expr == nil {
		return nil
	}
	return e.expr.Clone()
}

// LastError returns the error from the most recent failed parse.
func (e *Engine) LastError() error {
	return e.lastErr
}

// String renders the held expression, or "" when none is held.
func (e *Engine) String() string {
	if e.expr == nil {
		return ""
	}
	return e.expr.String()
}

// Evaluate evaluates the held expression with the given bindings.
func (e *Engine) Evaluate(vars map[string]float64) (float64, error) {
	if e.expr == nil {
		return 0, ErrNoExpression
	}
	return e.expr.Eval(vars)
}

// Differentiate differentiates the held expression with respect to
// the given variable. The result is not simplified.
func (e *Engine) Differentiate(variable string) (symbolic.Expr, error) {
	if e.expr == nil {
		return nil, ErrNoExpression
	}
	return e.expr.Differentiate(variable)
}

// Integrate integrates the held expression with respect to the given
// variable. Only recognized closed forms succeed.
func (e *Engine) Integrate(variable string) (symbolic.Expr, error) {
	if e.expr == nil {
		return nil, ErrNoExpression
	}
	return e.expr.Integrate(variable)
}

// Simplify simplifies the held expression.
func (e *Engine) Simplify() (symbolic.Expr, error) {
	if e.expr == nil {
		return nil, ErrNoExpression
	}
	return e.expr.Simplify()
}

// Solve treats the held expression as the left side of "expr = 0"
// and tries to isolate the variable.
func (e *Engine) Solve(variable string) (symbolic.Expr, error) {
	if e.expr == nil {
		return nil, ErrNoExpression
	}
	return symbolic.Solve(e.expr, variable)
}

// Factor attempts to factor the held expression.
func (e *Engine) Factor() ([]symbolic.Expr, error) {
	if e.expr == nil {
		return nil, ErrNoExpression
	}
	return symbolic.Factor(e.expr)
}

// Define stores a named definition after validating that it parses.
func (e *Engine) Define(name, source string) error {
	if e.store == nil {
		return errors.New("no store configured")
	}
	if _, err := e.Parse(source); err != nil {
		return err
	}
	return e.store.Put(name, source)
}

// Lookup retrieves a named definition. Returns "" if not found.
func (e *Engine) Lookup(name string) (string, error) {
	if e.store == nil {
		return "", errors.New("no store configured")
	}
	return e.store.Get(name)
}

// Undefine removes a named definition.
func (e *Engine) Undefine(name string) error {
	if e.store == nil {
		return errors.New("no store configured")
	}
	return e.store.Delete(name)
}

// Definitions lists all stored definition names.
func (e *Engine) Definitions() ([]string, error) {
	if e.store == nil {
		return nil, nil
	}
	return e.store.List()
}

// Close releases resources.
func (e *Engine) Close() error {
	if e.store != nil {
		return e.store.Close()
	}
	return nil
}
