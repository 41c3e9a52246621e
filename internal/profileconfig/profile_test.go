package profileconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jarredhawkins/blocklocate/internal/lexpair"
	"github.com/jarredhawkins/blocklocate/internal/profileconfig"
	"github.com/jarredhawkins/blocklocate/internal/rubylex"
)

func TestDiscover(t *testing.T) {
	t.Run("finds a profile in an ancestor directory", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, profileconfig.FileName), []byte("extra_openers: {}\n"), 0o644))

		nested := filepath.Join(root, "a", "b", "c")
		require.NoError(t, os.MkdirAll(nested, 0o755))

		found, err := profileconfig.Discover(nested)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, profileconfig.FileName), found)
	})

	t.Run("returns empty string with no error when nothing found", func(t *testing.T) {
		found, err := profileconfig.Discover(t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}

func TestLoad(t *testing.T) {
	t.Run("parses extra openers", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, profileconfig.FileName)
		require.NoError(t, os.WriteFile(path, []byte("extra_openers:\n  for: while-end\n  until: while-end\n"), 0o644))

		p, err := profileconfig.Load(path)
		require.NoError(t, err)
		assert.Equal(t, "while-end", p.ExtraOpeners["for"])
		assert.Equal(t, "while-end", p.ExtraOpeners["until"])
	})

	t.Run("rejects an unknown kind name", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, profileconfig.FileName)
		require.NoError(t, os.WriteFile(path, []byte("extra_openers:\n  for: not-a-real-kind\n"), 0o644))

		_, err := profileconfig.Load(path)
		assert.Error(t, err)
	})

	t.Run("rejects an empty keyword", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, profileconfig.FileName)
		require.NoError(t, os.WriteFile(path, []byte("extra_openers:\n  \"\": while-end\n"), 0o644))

		_, err := profileconfig.Load(path)
		assert.Error(t, err)
	})
}

func TestApply(t *testing.T) {
	t.Run("registers every opener onto the lexer", func(t *testing.T) {
		lx := rubylex.New()
		p := &profileconfig.Profile{ExtraOpeners: map[string]string{"for": "while-end"}}

		profileconfig.Apply(lx, p)

		events, err := lx.Tokenize("for x in xs")
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, lexpair.WhileEnd, events[0].Kind)
		assert.Equal(t, lexpair.Open, events[0].Role)
	})

	t.Run("nil profile is a no-op", func(t *testing.T) {
		lx := rubylex.New()
		profileconfig.Apply(lx, nil)

		events, err := lx.Tokenize("for x in xs")
		require.NoError(t, err)
		assert.Empty(t, events)
	})
}
