package filter

import (
	"errors"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/file"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/petpy/petfinder"
	"github.com/s0up4200/petpy/table"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	envPool    *sync.Pool
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache[string, CompiledFilter](size)
		}
	}
}

// WithCustomFunctions adds helper functions available to every expression
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.helpers, funcs)
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		helpers: staticHelpers(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.envPool = &sync.Pool{
		New: func() any {
			return make(map[string]any, 64)
		},
	}

	return c
}

type exprCompiler struct {
	helpers map[string]any
	cache   *lruCache[string, CompiledFilter]
	envPool *sync.Pool
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	// Row columns are only known at run time.
	opts := []expr.Option{
		expr.Env(c.compileEnv()),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	}
	for _, name := range columnBuiltins {
		opts = append(opts, expr.DisableBuiltin(name))
	}

	program, err := expr.Compile(expression, opts...)
	if err != nil {
		cerr := &CompilationError{
			Expression: expression,
			Reason:     err.Error(),
			Err:        err,
		}
		var fileErr *file.Error
		if errors.As(err, &fileErr) {
			cerr.Reason = fileErr.Message
			cerr.Column = fileErr.Column + 1
		}
		return nil, cerr
	}

	f := &exprFilter{
		expression: expression,
		program:    program,
		envPool:    c.envPool,
	}

	if c.cache != nil {
		c.cache.Put(expression, f)
	}

	return f, nil
}

// compileEnv declares the helpers, including the per-row ones, so calls to
// them type check.
func (c *exprCompiler) compileEnv() map[string]any {
	env := maps.Clone(c.helpers)
	addRowHelpers(env, table.Row{})
	return env
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Len()
	}
	return 0
}

// Evaluate reports whether the row matches, treating runtime errors as no match
func (f *exprFilter) Evaluate(row table.Row) bool {
	ok, err := f.Match(row)
	return err == nil && ok
}

// Match evaluates the filter against a row
func (f *exprFilter) Match(row table.Row) (bool, error) {
	env := f.envPool.Get().(map[string]any)
	defer func() {
		clear(env)
		f.envPool.Put(env)
	}()

	fillEnvironment(env, row)

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false, err
	}
	return result.(bool), nil
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// columnBuiltins are expr builtins that share their name with a record
// column. They are disabled so the name resolves to the column.
var columnBuiltins = []string{"type"}

// Identifier turns a column name into the variable name used in expressions:
// contact.address.city becomes contact_address_city.
func Identifier(column string) string {
	var sb strings.Builder
	for i, r := range column {
		switch {
		case r == '_' || unicode.IsLetter(r):
			sb.WriteRune(r)
		case unicode.IsDigit(r):
			if i == 0 {
				sb.WriteRune('_')
			}
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	return sb.String()
}

// fillEnvironment exposes the row's columns and helpers to an expression.
func fillEnvironment(env map[string]any, row table.Row) {
	for col, v := range row {
		env[Identifier(col)] = table.Normalize(v)
	}
	env["row"] = row
	addStaticHelpers(env)
	addRowHelpers(env, row)
}

func staticHelpers() map[string]any {
	env := make(map[string]any, 16)
	addStaticHelpers(env)
	return env
}

func addStaticHelpers(env map[string]any) {
	// Date helpers
	env["daysSince"] = func(v any) int {
		t, ok := toTime(v)
		if !ok {
			return -1
		}
		return int(time.Since(t).Hours() / 24)
	}
	env["daysAgo"] = func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	}
	env["parseDate"] = func(v any) time.Time {
		t, _ := toTime(v)
		return t
	}
	env["now"] = time.Now

	// String helpers, all case-insensitive. contains, startsWith and endsWith
	// are expr operators, so these use other names.
	env["containsText"] = func(v any, substr string) bool {
		if list, ok := v.([]any); ok {
			return slices.ContainsFunc(list, func(elem any) bool {
				return strings.Contains(strings.ToLower(table.Cell(elem)), strings.ToLower(substr))
			})
		}
		return strings.Contains(strings.ToLower(table.Cell(v)), strings.ToLower(substr))
	}
	env["anyEqual"] = func(v any, want string) bool {
		list, _ := v.([]any)
		return slices.ContainsFunc(list, func(elem any) bool {
			return strings.EqualFold(table.Cell(elem), want)
		})
	}
	env["hasPrefix"] = func(v any, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(table.Cell(v)), strings.ToLower(prefix))
	}
	env["hasSuffix"] = func(v any, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(table.Cell(v)), strings.ToLower(suffix))
	}
	env["lower"] = func(v any) string {
		return strings.ToLower(table.Cell(v))
	}
	env["upper"] = func(v any) string {
		return strings.ToUpper(table.Cell(v))
	}
}

// addRowHelpers adds helpers that close over the current row.
func addRowHelpers(env map[string]any, row table.Row) {
	env["get"] = func(column string) any {
		return table.Normalize(row[column])
	}
	env["has"] = func(column string) bool {
		v, ok := row[column]
		if !ok || v == nil {
			return false
		}
		if s, isString := v.(string); isString {
			return s != ""
		}
		return true
	}
	env["hasTag"] = func(tag string) bool {
		tags, _ := row["tags"].([]any)
		return slices.ContainsFunc(tags, func(t any) bool {
			return strings.EqualFold(table.Cell(t), tag)
		})
	}
}

var dateLayouts = []string{"2006-01-02", time.DateTime}

func toTime(v any) (time.Time, bool) {
	switch v := v.(type) {
	case time.Time:
		return v, !v.IsZero()
	case string:
		if t, err := petfinder.ParseTimestamp(v); err == nil {
			return t, true
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
