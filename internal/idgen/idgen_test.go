package idgen

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUsesAlphabet(t *testing.T) {
	t.Parallel()

	id, err := Generate()
	require.NoError(t, err)
	assert.Len(t, id, Length)
	assert.Regexp(t, regexp.MustCompile(`^[a-z0-9]+$`), id)
}

func TestHistoryFilenameIsUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{}, 100)
	for range 100 {
		name, err := HistoryFilename()
		require.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^vton-history-[a-z0-9]{10}\.png$`), name)
		seen[name] = struct{}{}
	}
	assert.Len(t, seen, 100)
}
