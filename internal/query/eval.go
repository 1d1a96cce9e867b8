package query

import (
	"strings"

	"github.com/vmunix/collectarr/internal/library"
)

// Match reports whether the item satisfies every condition in the query.
// Conditions are checked left to right, stopping at the first miss. A field
// that does not apply to the item's scope, or an optional attribute the
// server did not report, is a miss rather than an error.
func (q *Query) Match(item library.Item) bool {
	for i := range q.Conditions {
		if !q.Conditions[i].match(item) {
			return false
		}
	}
	return true
}

func (c *Condition) match(item library.Item) bool {
	if !c.Field.appliesTo(item.Scope) {
		return false
	}
	got, ok := fieldValue(c.Field.Name, item)
	if !ok {
		return false
	}
	switch got.Type {
	case TypeBool:
		return compareBool(got.Bool, c.Op, c.Value.Bool)
	case TypeString:
		return compareString(got.Str, c.Op, c.Value.Str)
	case TypeInt:
		return compareInt(got.Int, c.Op, c.Value.Int)
	}
	return false
}

// fieldValue looks up the item attribute behind a registered field name.
// The second return is false when the attribute is absent on this item.
func fieldValue(name string, item library.Item) (Value, bool) {
	switch name {
	case "Name":
		return Value{Type: TypeString, Str: item.Name}, true
	case "Played":
		return Value{Type: TypeBool, Bool: item.Played}, true
	case "SeriesName":
		if !item.HasSeriesName {
			return Value{}, false
		}
		return Value{Type: TypeString, Str: item.SeriesName}, true
	case "ProductionYear":
		if !item.HasProductionYear {
			return Value{}, false
		}
		return Value{Type: TypeInt, Int: item.ProductionYear}, true
	}
	return Value{}, false
}

func compareBool(got bool, op Operator, want bool) bool {
	switch op {
	case OpEq:
		return got == want
	case OpNe:
		return got != want
	}
	return false
}

func compareInt(got int, op Operator, want int) bool {
	switch op {
	case OpEq:
		return got == want
	case OpNe:
		return got != want
	case OpGt:
		return got > want
	case OpLt:
		return got < want
	case OpGe:
		return got >= want
	case OpLe:
		return got <= want
	}
	return false
}

// compareString treats LIKE as case-insensitive substring containment, not a
// wildcard pattern. Equality is exact.
func compareString(got string, op Operator, want string) bool {
	switch op {
	case OpEq:
		return got == want
	case OpNe:
		return got != want
	case OpLike:
		return strings.Contains(strings.ToLower(got), strings.ToLower(want))
	}
	return false
}
