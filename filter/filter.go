// Package filter compiles expr expressions used to narrow fetched movie
// listings client-side, e.g. `ReleaseYear > 2020 && hasSubstring(Title, "night")`.
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/clapperhq/clapper/api"
)

// Filter is a compiled movie predicate
type Filter struct {
	expression string
	program    *vm.Program
}

// helperFunctions are available inside every expression. The substring
// helpers are case-insensitive, unlike the language's own `contains` and
// `startsWith` operators, and must not reuse those operator names.
func helperFunctions() map[string]any {
	return map[string]any{
		"hasSubstring": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"hasPrefix": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
		"daysSince": func(t time.Time) int {
			return int(time.Since(t).Hours() / 24)
		},
		"now": time.Now,
	}
}

// Compile compiles a filter expression
func Compile(expression string) (*Filter, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, fmt.Errorf("empty filter expression")
	}

	program, err := expr.Compile(expression,
		expr.Env(helperFunctions()),
		expr.AllowUndefinedVariables(), // movie properties
		expr.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compile filter expression: %w", err)
	}

	return &Filter{expression: expression, program: program}, nil
}

// String returns the source expression
func (f *Filter) String() string {
	return f.expression
}

// Match evaluates the filter against one movie
func (f *Filter) Match(movie api.Movie) (bool, error) {
	env := helperFunctions()
	env["ID"] = movie.ID
	env["Title"] = movie.Title
	env["Genre"] = movie.Genre
	env["Region"] = movie.Region
	env["ReleaseYear"] = movie.ReleaseYear
	env["PublishedAt"] = movie.PublishedAt
	env["Rating"] = movie.Rating
	env["Tags"] = movie.Tags
	env["Monetization"] = string(movie.MonetizationType)
	env["IsVIP"] = movie.IsVIP()

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false, fmt.Errorf("failed to evaluate filter: %w", err)
	}

	matched, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("filter expression did not evaluate to a boolean")
	}
	return matched, nil
}

// Apply returns the movies matching the filter, preserving order
func (f *Filter) Apply(movies []api.Movie) ([]api.Movie, error) {
	var out []api.Movie
	for _, movie := range movies {
		ok, err := f.Match(movie)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, movie)
		}
	}
	return out, nil
}
