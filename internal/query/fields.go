package query

import (
	"sort"

	"github.com/vmunix/collectarr/internal/library"
)

// Type is the value type a field carries.
type Type int

const (
	TypeInvalid Type = iota
	TypeBool
	TypeString
	TypeInt
)

func (t Type) String() string {
	switch t {
	case TypeBool:
		return "boolean"
	case TypeString:
		return "string"
	case TypeInt:
		return "integer"
	default:
		return "invalid"
	}
}

// Field describes one queryable catalog attribute: its declared value type
// and the scopes it applies to.
type Field struct {
	Name   string
	Type   Type
	Scopes []library.Scope
}

func (f Field) appliesTo(s library.Scope) bool {
	for _, fs := range f.Scopes {
		if fs == s {
			return true
		}
	}
	return false
}

// fields is the attribute registry. Field names are case-sensitive keywords;
// the registry is immutable after package init.
var fields = map[string]Field{
	"Name": {
		Name:   "Name",
		Type:   TypeString,
		Scopes: []library.Scope{library.ScopeMovie, library.ScopeEpisode, library.ScopeSeries},
	},
	"Played": {
		Name:   "Played",
		Type:   TypeBool,
		Scopes: []library.Scope{library.ScopeMovie, library.ScopeEpisode, library.ScopeSeries},
	},
	"SeriesName": {
		Name:   "SeriesName",
		Type:   TypeString,
		Scopes: []library.Scope{library.ScopeEpisode, library.ScopeSeries},
	},
	"ProductionYear": {
		Name:   "ProductionYear",
		Type:   TypeInt,
		Scopes: []library.Scope{library.ScopeMovie, library.ScopeEpisode, library.ScopeSeries},
	},
}

// LookupField returns the registry entry for an attribute name.
func LookupField(name string) (Field, bool) {
	f, ok := fields[name]
	return f, ok
}

// FieldNames lists the registered attribute names in sorted order.
func FieldNames() []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
