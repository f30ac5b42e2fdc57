// Package listing provides the generic filter and pagination engine used
// by all collection views. Filtering is pure and order-preserving.
package listing

import "strings"

// All is the sentinel filter value that disables a clause.
const All = "all"

// Query holds the filter parameters of a list request. Zero values and
// the All sentinel disable the corresponding clause; active clauses are
// combined with AND.
type Query struct {
	// Text is matched case-insensitively as a substring of the
	// configured text fields.
	Text string

	// Status restricts to records with this exact status.
	Status string

	// Category restricts to records with this exact category.
	Category string

	// Expr is an optional CEL expression evaluated per record.
	Expr string
}

// Predicates adapts a record type to the engine. Nil accessors disable
// the corresponding clause entirely.
type Predicates[T any] struct {
	// TextFields returns the fields searched by Query.Text.
	TextFields func(T) []string

	// StatusOf returns the record status compared to Query.Status.
	StatusOf func(T) string

	// CategoryOf returns the record category compared to Query.Category.
	CategoryOf func(T) string

	// Vars exposes the record to CEL expressions as the variable "r".
	Vars func(T) map[string]any
}

// Apply filters items by q, preserving input order. It returns a
// validation error when q.Expr does not compile or does not evaluate to
// a boolean.
func Apply[T any](items []T, q Query, p Predicates[T]) ([]T, error) {
	var prg program
	if q.Expr != "" {
		var err error
		prg, err = compileExpr(q.Expr)
		if err != nil {
			return nil, err
		}
	}

	text := strings.ToLower(strings.TrimSpace(q.Text))

	out := make([]T, 0, len(items))
	for _, it := range items {
		if text != "" && p.TextFields != nil && !matchText(p.TextFields(it), text) {
			continue
		}
		if active(q.Status) && p.StatusOf != nil && p.StatusOf(it) != q.Status {
			continue
		}
		if active(q.Category) && p.CategoryOf != nil && p.CategoryOf(it) != q.Category {
			continue
		}
		if prg != nil {
			vars := map[string]any{}
			if p.Vars != nil {
				vars = p.Vars(it)
			}
			ok, err := evalExpr(prg, vars)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		out = append(out, it)
	}
	return out, nil
}

func active(clause string) bool {
	return clause != "" && clause != All
}

func matchText(fields []string, needle string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
