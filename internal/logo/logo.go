// Package logo resolves the public logo path for a team slug from the
// downloaded logo directory.
package logo

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
)

const (
	publicPrefix = "/logos/"
	// DefaultURL is served for teams without a logo file.
	DefaultURL = publicPrefix + "default.png"
)

// Index is a snapshot of the logo directory listing.
type Index struct {
	files   map[string]struct{}
	byLoose map[string]string // normalized stem -> file name
}

// Load lists dir once. An empty dir yields an empty index; a missing
// directory is returned as an error so the caller can decide to warn.
func Load(dir string) (*Index, error) {
	idx := &Index{files: map[string]struct{}{}, byLoose: map[string]string{}}
	if dir == "" {
		return idx, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return idx, errors.Wrapf(err, "list logo directory %s", dir)
	}
	// ReadDir returns entries sorted by name, so the first loose match wins
	// deterministically.
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".png") {
			continue
		}
		idx.files[e.Name()] = struct{}{}
		stem := looseStem(e.Name())
		if _, taken := idx.byLoose[stem]; !taken {
			idx.byLoose[stem] = e.Name()
		}
	}
	return idx, nil
}

// URL returns /logos/<slug>.png when that file exists, otherwise a file whose
// name matches the slug after lowercasing and turning underscores into
// hyphens, otherwise DefaultURL.
func (i *Index) URL(slug string) string {
	if i == nil {
		return DefaultURL
	}
	if _, ok := i.files[slug+".png"]; ok {
		return publicPrefix + slug + ".png"
	}
	if name, ok := i.byLoose[slug]; ok {
		return publicPrefix + name
	}
	return DefaultURL
}

// Len is the number of logo files indexed.
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.files)
}

func looseStem(name string) string {
	stem := strings.ToLower(name)
	stem = strings.TrimSuffix(stem, ".png")
	return strings.ReplaceAll(stem, "_", "-")
}
