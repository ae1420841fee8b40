// Package intake loads organization profiles from YAML or JSON files and
// normalizes the identifiers they contain.
package intake

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/dbartell/employarmor-sub003/internal/schema"
)

// ErrUnsupportedFormat is returned for profile files that are neither YAML
// nor JSON.
var ErrUnsupportedFormat = errors.New("unsupported profile format")

// Document is a loaded profile file with derived metadata.
type Document struct {
	Path    string
	Hash    string // "sha256:<hex>" of the raw file
	Profile schema.Profile
}

// Load reads a profile file from disk, decodes it and normalizes it.
func Load(path string) (*Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
	default:
		return nil, fmt.Errorf("%w: %q (want .yaml, .yml or .json)", ErrUnsupportedFormat, filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile file: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing profile %s: %w", path, err)
	}

	return &Document{
		Path:    path,
		Hash:    fmt.Sprintf("sha256:%x", sha256.Sum256(data)),
		Profile: p,
	}, nil
}

// Parse decodes a YAML or JSON profile document and normalizes it. Unknown
// fields are rejected so that typos in field names surface.
func Parse(data []byte) (schema.Profile, error) {
	var p schema.Profile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return schema.Profile{}, nil
		}
		return schema.Profile{}, err
	}
	return Normalize(p), nil
}

// Normalize applies Unicode NFKC normalization and trims every entry,
// upper-cases jurisdiction codes and lower-cases tool ids and usage tags.
// Blank entries are dropped. Order and duplicates are kept.
func Normalize(p schema.Profile) schema.Profile {
	upper := cases.Upper(language.Und)
	lower := cases.Lower(language.Und)
	return schema.Profile{
		Jurisdictions: normalizeAll(p.Jurisdictions, upper),
		Tools:         normalizeAll(p.Tools, lower),
		Usages:        normalizeAll(p.Usages, lower),
		EmployeeTier:  clean(p.EmployeeTier),
	}
}

// Extend returns p with the extra entries appended and normalized.
func Extend(p schema.Profile, jurisdictions, tools, usages []string) schema.Profile {
	return Normalize(schema.Profile{
		Jurisdictions: append(append([]string(nil), p.Jurisdictions...), jurisdictions...),
		Tools:         append(append([]string(nil), p.Tools...), tools...),
		Usages:        append(append([]string(nil), p.Usages...), usages...),
		EmployeeTier:  p.EmployeeTier,
	})
}

func normalizeAll(in []string, c cases.Caser) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = clean(s); s != "" {
			out = append(out, c.String(s))
		}
	}
	return out
}

func clean(s string) string {
	return strings.TrimSpace(norm.NFKC.String(s))
}
