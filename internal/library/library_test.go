package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseScope(t *testing.T) {
	tests := []struct {
		input string
		want  Scope
	}{
		{"movies", ScopeMovie},
		{"movie", ScopeMovie},
		{"Movies", ScopeMovie},
		{"episodes", ScopeEpisode},
		{"episode", ScopeEpisode},
		{"series", ScopeSeries},
		{"shows", ScopeSeries},
		{" series ", ScopeSeries},
		{"", ScopeUnknown},
		{"albums", ScopeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseScope(tt.input))
		})
	}
}

func TestScopeString(t *testing.T) {
	assert.Equal(t, "movies", ScopeMovie.String())
	assert.Equal(t, "episodes", ScopeEpisode.String())
	assert.Equal(t, "series", ScopeSeries.String())
	assert.Equal(t, "unknown", ScopeUnknown.String())
	assert.Equal(t, "unknown", Scope(99).String())
}
