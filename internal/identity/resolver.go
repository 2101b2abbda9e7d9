package identity

import "strings"

// Method records which resolution step produced a slug.
type Method string

const (
	MethodExact    Method = "exact"
	MethodAlias    Method = "alias"
	MethodFallback Method = "fallback"
)

// Resolution is the outcome of resolving one raw team name.
type Resolution struct {
	RawName string
	Slug    string
	Method  Method
	Entry   *Entry // nil on the fallback path
}

// DisplayName is the curated display name, or the raw name when the mapping
// has no entry for it.
func (r Resolution) DisplayName() string {
	if r.Entry != nil {
		return r.Entry.Display
	}
	return r.RawName
}

// AltNames is the curated alias list, or just the raw name.
func (r Resolution) AltNames() []string {
	if r.Entry != nil && len(r.Entry.Aliases) > 0 {
		out := make([]string, len(r.Entry.Aliases))
		copy(out, r.Entry.Aliases)
		return out
	}
	return []string{r.RawName}
}

// Resolver turns raw names into slugs against a fixed mapping.
type Resolver struct {
	mapping *Mapping
}

// NewResolver returns a resolver over m. A nil mapping resolves everything
// through the slugify fallback.
func NewResolver(m *Mapping) *Resolver {
	return &Resolver{mapping: m}
}

// Resolve applies, in order: exact key match, case-insensitive alias match,
// slugify fallback. It never fails and always returns the same slug for the
// same input.
//
// The fallback can split one team into two slugs when sources spell it in
// ways the mapping does not cover yet. Callers log fallbacks so the mapping
// can be extended; no fuzzy matching is attempted here.
func (r *Resolver) Resolve(rawName string) Resolution {
	name := strings.TrimSpace(rawName)

	if e, ok := r.mapping.Lookup(name); ok {
		return Resolution{RawName: name, Slug: e.Slug, Method: MethodExact, Entry: &e}
	}
	if e, ok := r.mapping.lookupAlias(name); ok {
		return Resolution{RawName: name, Slug: e.Slug, Method: MethodAlias, Entry: &e}
	}
	return Resolution{RawName: name, Slug: Slugify(name), Method: MethodFallback}
}

// Slugify lowercases s, collapses every run of characters outside [a-z0-9]
// into one hyphen and trims hyphens from both ends.
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pendingHyphen := false
	for _, c := range strings.ToLower(s) {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(c)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}
