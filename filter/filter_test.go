package filter

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/petpy/table"
)

func testRow() table.Row {
	return table.Row{
		"id":                   json.Number("42"),
		"name":                 "Mochi",
		"type":                 "Cat",
		"age":                  "Baby",
		"tags":                 []any{"Playful", "Cute"},
		"distance":             3.5,
		"contact.address.city": "Seattle",
		"description":          nil,
		"published_at":         time.Now().AddDate(0, 0, -10).UTC().Format("2006-01-02T15:04:05-0700"),
		"breeds.primary":       "Siamese",
	}
}

func TestCompile(t *testing.T) {
	compiler := NewExprCompiler()

	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{
			name:       "valid expression",
			expression: `hasTag("cute")`,
		},
		{
			name:        "empty expression",
			expression:  "  ",
			wantErr:     true,
			errContains: "empty expression",
		},
		{
			name:       "invalid syntax",
			expression: `hasTag("unclosed`,
			wantErr:    true,
		},
		{
			name:       "not boolean",
			expression: `1 + 2`,
			wantErr:    true,
		},
		{
			name:       "complex expression",
			expression: `hasTag("playful") and age == "Baby" and daysSince(published_at) < 30`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := compiler.Compile(tt.expression)
			if tt.wantErr {
				require.Error(t, err)
				var cerr *CompilationError
				require.ErrorAs(t, err, &cerr)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expression, f.Expression())
		})
	}
}

func TestEvaluate(t *testing.T) {
	compiler := NewExprCompiler()
	row := testRow()

	tests := []struct {
		expression string
		expected   bool
	}{
		{`hasTag("cute")`, true},
		{`hasTag("grumpy")`, false},
		{`age == "Baby"`, true},
		{`id == 42`, true},
		{`distance < 5`, true},
		{`contact_address_city == "Seattle"`, true},
		{`get("contact.address.city") == "Seattle"`, true},
		{`has("description")`, false},
		{`has("name")`, true},
		{`has("missing")`, false},
		{`containsText(name, "moc")`, true},
		{`containsText(tags, "PLAY")`, true},
		{`anyEqual(tags, "playful")`, true},
		{`anyEqual(tags, "play")`, false},
		{`anyEqual(name, "Mochi")`, false},
		{`hasPrefix(breeds_primary, "sia")`, true},
		{`hasSuffix(name, "CHI")`, true},
		{`name contains "och"`, true},
		{`name startsWith "Mo"`, true},
		{`name endsWith "chi"`, true},
		{`type == "Cat"`, true},
		{`type in ["Dog", "Cat"]`, true},
		{`lower(type) == "cat" and type != "Dog"`, true},
		{`lower(name) == "mochi"`, true},
		{`upper(age) == "BABY"`, true},
		{`daysSince(published_at) >= 9 and daysSince(published_at) <= 11`, true},
		{`parseDate(published_at) > daysAgo(30)`, true},
		{`parseDate("2020-01-01") < now()`, true},
		{`daysSince("not a date") == -1`, true},
		{`missing_column == nil`, true},
	}

	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			f, err := compiler.Compile(tt.expression)
			require.NoError(t, err)

			ok, err := f.Match(row)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ok)
			assert.Equal(t, tt.expected, f.Evaluate(row))
		})
	}
}

func TestRuntimeErrorDoesNotMatch(t *testing.T) {
	f, err := NewExprCompiler().Compile(`name > 3`)
	require.NoError(t, err)

	_, err = f.Match(testRow())
	assert.Error(t, err)
	assert.False(t, f.Evaluate(testRow()))
}

func TestIdentifier(t *testing.T) {
	assert.Equal(t, "contact_address_city", Identifier("contact.address.city"))
	assert.Equal(t, "_links_self_href", Identifier("_links.self.href"))
	assert.Equal(t, "breed0", Identifier("breed0"))
	assert.Equal(t, "_0", Identifier("0"))
}

func TestCompilerCache(t *testing.T) {
	compiler := NewExprCompiler(WithCache(2))

	first, err := compiler.Compile(`age == "Baby"`)
	require.NoError(t, err)
	again, err := compiler.Compile(`  age == "Baby" `)
	require.NoError(t, err)
	assert.Same(t, first, again)

	_, err = compiler.Compile(`age == "Young"`)
	require.NoError(t, err)
	_, err = compiler.Compile(`age == "Adult"`)
	require.NoError(t, err)
	assert.Equal(t, 2, compiler.Size())

	compiler.Clear()
	assert.Equal(t, 0, compiler.Size())
}

func TestLRUCacheEviction(t *testing.T) {
	c := newLRUCache[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)
	_, _ = c.Get("a")
	c.Put("c", 3)

	_, ok := c.Get("b")
	assert.False(t, ok)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 2, c.Len())
}

func generateTable(n int) *table.Table {
	rows := make([]table.Row, n)
	for i := range n {
		rows[i] = table.Row{
			"id":   i,
			"name": fmt.Sprintf("Pet %d", i),
			"age":  []string{"Baby", "Young", "Adult", "Senior"}[i%4],
		}
	}
	return table.FromRows(rows...)
}

func TestConcurrentEvaluator(t *testing.T) {
	ctx := context.Background()
	f, err := NewExprCompiler().Compile(`age == "Baby"`)
	require.NoError(t, err)

	for _, n := range []int{0, 10, 1000} {
		t.Run(fmt.Sprintf("%d rows", n), func(t *testing.T) {
			e := NewConcurrentEvaluator(WithWorkers(4), WithBatchSize(50))
			defer e.Stop(ctx)

			out, err := e.Evaluate(ctx, f, generateTable(n))
			require.NoError(t, err)
			require.Equal(t, (n+3)/4, out.Len())
			for i, row := range out.Rows {
				assert.Equal(t, i*4, row["id"])
			}
		})
	}

	t.Run("cancelled context", func(t *testing.T) {
		e := NewConcurrentEvaluator(WithWorkers(2), WithBatchSize(10))
		defer e.Stop(ctx)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := e.Evaluate(cancelled, f, generateTable(500))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestStrictEvaluator(t *testing.T) {
	ctx := context.Background()
	f, err := NewExprCompiler().Compile(`id < 500 or name > 3`)
	require.NoError(t, err)

	for _, batch := range []int{10, 5000} {
		t.Run(fmt.Sprintf("batch %d", batch), func(t *testing.T) {
			e := NewConcurrentEvaluator(WithWorkers(4), WithBatchSize(batch), WithStrict())
			defer e.Stop(ctx)

			_, err := e.Evaluate(ctx, f, generateTable(1000))
			var eerr *EvaluationError
			require.ErrorAs(t, err, &eerr)
			assert.Equal(t, 500, eerr.Row)
		})
	}

	lenient := NewConcurrentEvaluator(WithBatchSize(10))
	defer lenient.Stop(ctx)
	out, err := lenient.Evaluate(ctx, f, generateTable(1000))
	require.NoError(t, err)
	assert.Equal(t, 500, out.Len())
}

func TestManager(t *testing.T) {
	ctx := context.Background()
	m := NewManager()
	defer m.Close(ctx)

	require.NoError(t, m.RegisterPresets(map[string]string{
		"Babies": `age == "Baby"`,
		"early":  `id < 20`,
	}))
	assert.Equal(t, []string{"babies", "early"}, m.Presets())

	out, err := m.Apply(ctx, generateTable(100), "babies", `id < 20`)
	require.NoError(t, err)
	assert.Equal(t, 5, out.Len())

	out, err = m.Apply(ctx, generateTable(8), "", "")
	require.NoError(t, err)
	assert.Equal(t, 8, out.Len())

	_, err = m.Apply(ctx, generateTable(8), "nope", "")
	assert.EqualError(t, err, "filter preset 'nope' not found")

	err = m.RegisterPresets(map[string]string{"broken": `age ==`})
	var cerr *CompilationError
	assert.ErrorAs(t, err, &cerr)
	_, ok := m.Preset("broken")
	assert.False(t, ok)
}
