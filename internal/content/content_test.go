package content

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin(t *testing.T) {
	s, err := Builtin()
	require.NoError(t, err)

	assert.Len(t, s.Hero.Slides, 4)
	assert.NotEmpty(t, s.Hero.Label)
	require.Len(t, s.Plans, 3)
	assert.False(t, s.Plans[0].Lazy, "the default plan tab is built eagerly")
	assert.True(t, s.Plans[1].Lazy)
	assert.NotEmpty(t, s.Tools)

	slides := s.CarouselSlides()
	require.Len(t, slides, 4)
	assert.Equal(t, "copilot", slides[0].ID)
	assert.Equal(t, "Code assistants", slides[0].Title)
	assert.Equal(t, 1200, slides[0].Media.Width)

	tool, ok := s.Tool("sqlpal")
	require.True(t, ok)
	assert.Equal(t, "SQL Pal", tool.Name)
	_, ok = s.Tool("missing")
	assert.False(t, ok)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "showcase.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
hero:
  slides:
    - {id: a, title: A}
plans:
  - {value: free, label: Free}
`), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, s.Hero.Slides, 1)
	assert.Empty(t, s.Tools)
}

func TestLoad_EmptyPathUsesBuiltin(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)
	assert.Len(t, s.Hero.Slides, 4)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		invalid bool
	}{
		{"duplicate slide", "hero:\n  slides:\n    - {id: a}\n    - {id: a}\n", true},
		{"duplicate plan", "plans:\n  - {value: x}\n  - {value: x}\n", true},
		{"missing tool id", "tools:\n  - {name: nameless}\n", true},
		{"unknown field", "hero:\n  colour: red\n", false},
		{"malformed", "hero: [", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Equal(t, tt.invalid, errors.Is(err, ErrInvalid), "%v", err)
		})
	}
}
