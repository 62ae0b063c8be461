package filter

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/s0up4200/petpy/table"
)

// Manager holds named filter presets and applies filters to tables
type Manager struct {
	compiler  Compiler
	evaluator *ConcurrentEvaluator
	presets   map[string]CompiledFilter
	mu        sync.RWMutex
}

// ManagerOption configures a filter manager
type ManagerOption func(*Manager)

// WithCompiler sets a custom compiler
func WithCompiler(compiler Compiler) ManagerOption {
	return func(m *Manager) {
		m.compiler = compiler
	}
}

// WithEvaluator sets a custom evaluator
func WithEvaluator(evaluator *ConcurrentEvaluator) ManagerOption {
	return func(m *Manager) {
		m.evaluator = evaluator
	}
}

// NewManager creates a new filter manager
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		presets: make(map[string]CompiledFilter),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.compiler == nil {
		m.compiler = NewExprCompiler(WithCache(100))
	}
	if m.evaluator == nil {
		m.evaluator = NewConcurrentEvaluator()
	}

	return m
}

// RegisterPresets compiles every preset before registering any of them.
func (m *Manager) RegisterPresets(presets map[string]string) error {
	compiled := make(map[string]CompiledFilter, len(presets))

	for _, name := range slices.Sorted(maps.Keys(presets)) {
		f, err := m.compiler.Compile(presets[name])
		if err != nil {
			return fmt.Errorf("failed to compile preset '%s': %w", name, err)
		}
		compiled[strings.ToLower(name)] = f
	}

	m.mu.Lock()
	maps.Copy(m.presets, compiled)
	m.mu.Unlock()

	return nil
}

// Preset returns a registered preset by name
func (m *Manager) Preset(name string) (CompiledFilter, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.presets[strings.ToLower(name)]
	return f, ok
}

// Presets returns the registered preset names, sorted
func (m *Manager) Presets() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.presets))
}

// Apply filters t with the named preset and the expression, in that order.
// Empty arguments are skipped.
func (m *Manager) Apply(ctx context.Context, t *table.Table, preset, expression string) (*table.Table, error) {
	if preset != "" {
		f, ok := m.Preset(preset)
		if !ok {
			return nil, fmt.Errorf("filter preset '%s' not found", preset)
		}

		var err error
		if t, err = m.evaluator.Evaluate(ctx, f, t); err != nil {
			return nil, err
		}
	}

	if strings.TrimSpace(expression) != "" {
		f, err := m.compiler.Compile(expression)
		if err != nil {
			return nil, err
		}
		if t, err = m.evaluator.Evaluate(ctx, f, t); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// Close gracefully shuts down the manager
func (m *Manager) Close(ctx context.Context) error {
	return m.evaluator.Stop(ctx)
}
