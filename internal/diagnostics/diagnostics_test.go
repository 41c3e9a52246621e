package diagnostics_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jarredhawkins/blocklocate"
	"github.com/jarredhawkins/blocklocate/internal/diagnostics"
)

func TestFormatRanges(t *testing.T) {
	styles := diagnostics.NewStyles(false)

	t.Run("no ranges", func(t *testing.T) {
		got := styles.FormatRanges("foo.rb", nil, "def foo\nend\n")
		assert.Contains(t, got, "no suspect ranges found")
	})

	t.Run("renders every spanned line", func(t *testing.T) {
		src := "def foo\n  1 + 1\nend\n"
		got := styles.FormatRanges("foo.rb", []blocklocate.Range{{Start: 1, End: 1}}, src)
		assert.Contains(t, got, "foo.rb:1:1")
		assert.Contains(t, got, "def foo")
		assert.NotContains(t, got, "1 + 1")
	})
}

func TestExcise(t *testing.T) {
	src := "a\nb\nc\nd\n"
	got := diagnostics.Excise(src, []blocklocate.Range{{Start: 2, End: 3}})
	assert.Equal(t, "a\nd\n", got)
}

func TestUnifiedDiff(t *testing.T) {
	src := "def foo\n  1 + 1\n"
	patch, err := diagnostics.UnifiedDiff("foo.rb", src, []blocklocate.Range{{Start: 1, End: 1}})
	require.NoError(t, err)
	assert.Contains(t, patch, "a/foo.rb")
	assert.Contains(t, patch, "b/foo.rb")
	assert.Contains(t, patch, "-def foo")

	styles := diagnostics.NewStyles(false)
	styled := styles.StyleUnifiedDiff(patch)
	assert.True(t, strings.Contains(styled, "def foo"))
}
