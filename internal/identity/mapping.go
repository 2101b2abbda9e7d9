// Package identity maps raw team-name strings from any source to one
// canonical team slug.
package identity

import (
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/albapepper/cbb-data/internal/source"
)

// ErrMappingInvalid marks a mapping table that violates its invariants.
var ErrMappingInvalid = errors.New("team name mapping invalid")

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Entry is one curated team: the canonical slug, its display name and the
// alternate spellings that resolve to it.
type Entry struct {
	Slug    string   `json:"slug" validate:"required,slug"`
	Display string   `json:"display" validate:"required"`
	Aliases []string `json:"aliases" validate:"dive,required"`
}

// Mapping is the read-only team-name table, keyed by source team name.
// Build it once with LoadMapping or NewMapping and share it.
type Mapping struct {
	entries map[string]Entry
	aliases map[string]string // lower-cased alias -> entry key
}

// LoadMapping reads and validates the JSON mapping file at path.
func LoadMapping(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "read team name mapping %s", path), source.ErrSourceUnavailable)
	}

	var entries map[string]Entry
	if err := sonic.Unmarshal(data, &entries); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "decode team name mapping %s", path), source.ErrSourceMalformed)
	}

	m, err := NewMapping(entries)
	if err != nil {
		return nil, errors.Wrapf(err, "team name mapping %s", path)
	}
	return m, nil
}

// NewMapping validates entries and builds the alias index.
func NewMapping(entries map[string]Entry) (*Mapping, error) {
	v := validator.New()
	if err := v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	}); err != nil {
		return nil, errors.Wrap(err, "register slug validation")
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	m := &Mapping{
		entries: make(map[string]Entry, len(entries)),
		aliases: make(map[string]string),
	}
	slugOwner := make(map[string]string, len(entries))

	for _, key := range keys {
		e := entries[key]
		if err := v.Struct(e); err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "entry %q", key), ErrMappingInvalid)
		}
		if owner, dup := slugOwner[e.Slug]; dup {
			return nil, errors.Mark(
				errors.Newf("slug %q used by both %q and %q", e.Slug, owner, key),
				ErrMappingInvalid,
			)
		}
		slugOwner[e.Slug] = key

		for _, alias := range e.Aliases {
			folded := strings.ToLower(strings.TrimSpace(alias))
			if prev, seen := m.aliases[folded]; seen && prev != key {
				if entries[prev].Display != e.Display {
					return nil, errors.Mark(
						errors.Newf("alias %q resolves to both %q and %q", alias, entries[prev].Display, e.Display),
						ErrMappingInvalid,
					)
				}
				// Same display under two keys: the first key in sort order keeps it.
				continue
			}
			m.aliases[folded] = key
		}
		m.entries[key] = e
	}
	return m, nil
}

// Len returns the number of curated entries.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Lookup returns the entry stored under an exact source-name key.
func (m *Mapping) Lookup(key string) (Entry, bool) {
	if m == nil {
		return Entry{}, false
	}
	e, ok := m.entries[key]
	return e, ok
}

// lookupAlias matches any alias case-insensitively.
func (m *Mapping) lookupAlias(name string) (Entry, bool) {
	if m == nil {
		return Entry{}, false
	}
	key, ok := m.aliases[strings.ToLower(name)]
	if !ok {
		return Entry{}, false
	}
	return m.entries[key], true
}
