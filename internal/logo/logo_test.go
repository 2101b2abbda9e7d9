package logo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex_URL(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"duke.png", "North_Carolina.png", "readme.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "kansas.png"), 0o755))

	idx, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, idx.Len())

	assert.Equal(t, "/logos/duke.png", idx.URL("duke"))
	assert.Equal(t, "/logos/North_Carolina.png", idx.URL("north-carolina"))
	assert.Equal(t, DefaultURL, idx.URL("kansas"))
	assert.Equal(t, DefaultURL, idx.URL("gonzaga"))
}

func TestLoad_MissingDirectory(t *testing.T) {
	idx, err := Load(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
	require.NotNil(t, idx)
	assert.Equal(t, DefaultURL, idx.URL("duke"))

	empty, err := Load("")
	assert.NoError(t, err)
	assert.Equal(t, 0, empty.Len())

	var nilIdx *Index
	assert.Equal(t, DefaultURL, nilIdx.URL("duke"))
}
