package identity

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/cbb-data/internal/source"
)

func testMapping(t *testing.T) *Mapping {
	t.Helper()
	m, err := NewMapping(map[string]Entry{
		"Connecticut": {Slug: "uconn", Display: "UConn", Aliases: []string{"UConn", "Connecticut", "CONN"}},
		"Duke":        {Slug: "duke", Display: "Duke", Aliases: []string{"Duke Blue Devils"}},
		"Saint Mary's": {
			Slug:    "saint-marys",
			Display: "Saint Mary's",
			Aliases: []string{"St. Mary's", "Saint Mary's (CA)", "SAINT MARY'S"},
		},
	})
	require.NoError(t, err)
	return m
}

func TestResolver_Resolve(t *testing.T) {
	r := NewResolver(testMapping(t))

	t.Run("exact key", func(t *testing.T) {
		res := r.Resolve("Duke")
		assert.Equal(t, "duke", res.Slug)
		assert.Equal(t, MethodExact, res.Method)
		assert.Equal(t, "Duke", res.DisplayName())
		assert.Equal(t, []string{"Duke Blue Devils"}, res.AltNames())
	})

	t.Run("case-insensitive alias", func(t *testing.T) {
		res := r.Resolve("st. mary's")
		assert.Equal(t, "saint-marys", res.Slug)
		assert.Equal(t, MethodAlias, res.Method)
		assert.Equal(t, "Saint Mary's", res.DisplayName())
	})

	t.Run("identity stability across spellings", func(t *testing.T) {
		a := r.Resolve("UConn")
		b := r.Resolve("Connecticut")
		c := r.Resolve("CONN")
		assert.Equal(t, "uconn", a.Slug)
		assert.Equal(t, a.Slug, b.Slug)
		assert.Equal(t, a.Slug, c.Slug)
	})

	t.Run("fallback slugify", func(t *testing.T) {
		res := r.Resolve("  Texas A&M-Corpus Christi ")
		assert.Equal(t, "texas-a-m-corpus-christi", res.Slug)
		assert.Equal(t, MethodFallback, res.Method)
		assert.Nil(t, res.Entry)
		assert.Equal(t, "Texas A&M-Corpus Christi", res.DisplayName())
		assert.Equal(t, []string{"Texas A&M-Corpus Christi"}, res.AltNames())
	})

	t.Run("idempotent", func(t *testing.T) {
		for _, name := range []string{"Duke", "conn", "Some New School"} {
			assert.Equal(t, r.Resolve(name), r.Resolve(name))
		}
	})

	t.Run("nil mapping always falls back", func(t *testing.T) {
		res := NewResolver(nil).Resolve("Duke")
		assert.Equal(t, "duke", res.Slug)
		assert.Equal(t, MethodFallback, res.Method)
	})
}

func TestSlugify(t *testing.T) {
	testCases := map[string]string{
		"Duke":                 "duke",
		"St. John's":           "st-john-s",
		"--Miami (FL)--":       "miami-fl",
		"UNC   Wilmington":     "unc-wilmington",
		"Louisiana–Lafayette":  "louisiana-lafayette",
		"":                     "",
		"!!!":                  "",
		"Texas A&M":            "texas-a-m",
		"Cal St. Bakersfield ": "cal-st-bakersfield",
	}
	for in, want := range testCases {
		assert.Equal(t, want, Slugify(in), "input %q", in)
	}
}

func TestNewMapping_Invariants(t *testing.T) {
	t.Run("duplicate slug", func(t *testing.T) {
		_, err := NewMapping(map[string]Entry{
			"Miami FL":  {Slug: "miami", Display: "Miami (FL)"},
			"Miami OH":  {Slug: "miami", Display: "Miami (OH)"},
			"Miami Fla": {Slug: "miami-fla", Display: "Miami"},
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMappingInvalid))
	})

	t.Run("alias shared by different display names", func(t *testing.T) {
		_, err := NewMapping(map[string]Entry{
			"Miami FL": {Slug: "miami-fl", Display: "Miami (FL)", Aliases: []string{"Miami"}},
			"Miami OH": {Slug: "miami-oh", Display: "Miami (OH)", Aliases: []string{"MIAMI"}},
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMappingInvalid))
	})

	t.Run("alias casing overlap inside one entry is fine", func(t *testing.T) {
		m, err := NewMapping(map[string]Entry{
			"Connecticut": {Slug: "uconn", Display: "UConn", Aliases: []string{"UConn", "UCONN", "uconn"}},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, m.Len())
	})

	t.Run("invalid slug format", func(t *testing.T) {
		for _, slug := range []string{"", "Duke", "duke blue", "-duke", "duke--blue"} {
			_, err := NewMapping(map[string]Entry{"Duke": {Slug: slug, Display: "Duke"}})
			assert.True(t, errors.Is(err, ErrMappingInvalid), "slug %q", slug)
		}
	})
}

func TestLoadMapping(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "map.json")
		require.NoError(t, os.WriteFile(path, []byte(`{
			"Duke": {"slug": "duke", "display": "Duke", "aliases": ["Duke"]},
			"North Carolina": {"slug": "north-carolina", "display": "North Carolina", "aliases": ["UNC"]}
		}`), 0o644))

		m, err := LoadMapping(path)
		require.NoError(t, err)
		assert.Equal(t, 2, m.Len())
		assert.Equal(t, "north-carolina", NewResolver(m).Resolve("unc").Slug)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadMapping(filepath.Join(dir, "missing.json"))
		assert.True(t, errors.Is(err, source.ErrSourceUnavailable))
	})

	t.Run("bad json", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"Duke": [`), 0o644))
		_, err := LoadMapping(path)
		assert.True(t, errors.Is(err, source.ErrSourceMalformed))
	})
}

func TestLoadMapping_RepositoryTable(t *testing.T) {
	m, err := LoadMapping(filepath.Join("..", "..", "data", "team-name-map.json"))
	require.NoError(t, err)
	assert.Positive(t, m.Len())

	r := NewResolver(m)
	assert.Equal(t, "miami-fl", r.Resolve("Miami").Slug)
	assert.Equal(t, "miami-oh", r.Resolve("Miami (OH)").Slug)
	assert.Equal(t, "texas-am", r.Resolve("Texas A&M").Slug)
}
