package collections

import (
	"fmt"

	"github.com/vmunix/collectarr/internal/library"
	"github.com/vmunix/collectarr/internal/query"
)

// Definition is a collection as configured: a name, a source library, and
// a filter expression.
type Definition struct {
	Name  string
	From  string
	Query string
	Scope string // optional; empty derives from the library type
}

// Spec is a compiled definition, ready to reconcile. A definition that
// fails to compile still yields a Spec, with Err set, so one bad filter
// never blocks the others.
type Spec struct {
	Name  string
	From  string
	Scope library.Scope
	Query *query.Query
	Raw   string
	Err   error
}

// BuildSpecs compiles definitions in order. Failures are carried on the
// spec, not returned.
func BuildSpecs(defs []Definition) []Spec {
	specs := make([]Spec, 0, len(defs))
	for _, d := range defs {
		specs = append(specs, buildSpec(d))
	}
	return specs
}

func buildSpec(d Definition) Spec {
	spec := Spec{Name: d.Name, From: d.From, Raw: d.Query}

	if d.Scope != "" {
		scope := library.ParseScope(d.Scope)
		if scope == library.ScopeUnknown {
			spec.Err = fmt.Errorf("unknown scope %q", d.Scope)
			return spec
		}
		spec.Scope = scope
	}

	q, err := query.Compile(d.Query)
	if err != nil {
		spec.Err = fmt.Errorf("compile query: %w", err)
		return spec
	}
	spec.Query = q
	return spec
}
