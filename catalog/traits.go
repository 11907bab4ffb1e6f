package catalog

import (
	"bufio"
	"bytes"
	"embed"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/carbocation/pfx"
)

//go:embed lookups/*
var embeddedLookups embed.FS

// TraitFilter decides whether a catalog trait is one we score. A trait is
// accepted when its normalized, overridden name equals the normalized,
// overridden name of an allow-list entry.
type TraitFilter struct {
	// Normalized canonical name => catalog spelling
	overrides map[string]string
	accepted  map[string]struct{}
}

// Normalize lowercases and trims a trait name.
func Normalize(trait string) string {
	return strings.ToLower(strings.TrimSpace(trait))
}

// NewTraitFilter builds a filter from an allow-list and an override table.
// The override table must be injective: two canonical names may not share a
// catalog spelling.
func NewTraitFilter(allowList []string, overrides map[string]string) (*TraitFilter, error) {
	tf := &TraitFilter{
		overrides: make(map[string]string, len(overrides)),
		accepted:  make(map[string]struct{}, len(allowList)),
	}

	seen := make(map[string]string, len(overrides))
	for from, to := range overrides {
		from, to = Normalize(from), Normalize(to)
		if prior, exists := seen[to]; exists && prior != from {
			return nil, fmt.Errorf("trait overrides %q and %q both map to %q", prior, from, to)
		}
		seen[to] = from
		tf.overrides[from] = to
	}

	for _, trait := range allowList {
		if Normalize(trait) == "" {
			continue
		}
		tf.accepted[tf.Canonical(trait)] = struct{}{}
	}

	return tf, nil
}

// DefaultTraitFilter uses the embedded allow-list and overrides.
func DefaultTraitFilter() (*TraitFilter, error) {
	list, err := DefaultTraitList()
	if err != nil {
		return nil, err
	}
	overrides, err := DefaultOverrides()
	if err != nil {
		return nil, err
	}

	return NewTraitFilter(list, overrides)
}

// DefaultTraitList is the embedded allow-list.
func DefaultTraitList() ([]string, error) {
	traits, err := embeddedLookups.ReadFile("lookups/traits.txt")
	if err != nil {
		return nil, pfx.Err(err)
	}

	return ReadTraitList(bytes.NewReader(traits))
}

// DefaultOverrides is the embedded override table, mapping allow-list names
// to the spelling the GWAS catalog uses.
func DefaultOverrides() (map[string]string, error) {
	overrides, err := embeddedLookups.ReadFile("lookups/overrides.tsv")
	if err != nil {
		return nil, pfx.Err(err)
	}

	return ReadOverrides(bytes.NewReader(overrides))
}

// TraitFilterFromReaders reads an allow-list (one trait per line, # comments)
// and an override table (tab-delimited, header row, canonical then catalog
// spelling). overrides may be nil.
func TraitFilterFromReaders(allowList, overrides io.Reader) (*TraitFilter, error) {
	list, err := ReadTraitList(allowList)
	if err != nil {
		return nil, err
	}

	ov := map[string]string{}
	if overrides != nil {
		if ov, err = ReadOverrides(overrides); err != nil {
			return nil, err
		}
	}

	return NewTraitFilter(list, ov)
}

// ReadTraitList reads one trait per line, skipping blanks and # comments.
func ReadTraitList(r io.Reader) ([]string, error) {
	out := make([]string, 0)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, pfx.Err(err)
	}

	return out, nil
}

// ReadOverrides reads a two-column, tab-delimited override table whose first
// row is a header.
func ReadOverrides(r io.Reader) (map[string]string, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = 2
	cr.Comment = '#'
	entries, err := cr.ReadAll()
	if err != nil {
		return nil, pfx.Err(err)
	}

	out := make(map[string]string)
	for i, v := range entries {
		if i == 0 {
			continue
		}
		out[v[0]] = v[1]
	}

	return out, nil
}

// Canonical normalizes a trait and applies the override table.
func (tf *TraitFilter) Canonical(trait string) string {
	n := Normalize(trait)
	if to, exists := tf.overrides[n]; exists {
		return to
	}

	return n
}

// Accepts reports whether a catalog trait is on the allow-list.
func (tf *TraitFilter) Accepts(trait string) bool {
	_, exists := tf.accepted[tf.Canonical(trait)]
	return exists
}

// Len is the number of distinct accepted traits.
func (tf *TraitFilter) Len() int {
	return len(tf.accepted)
}
