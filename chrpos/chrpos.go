// Package chrpos knows which chromosomes are autosomes and how long each one
// is in the supported reference assemblies.
package chrpos

import (
	"bytes"
	"embed"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
)

// NAutosomes is the number of human autosomes.
const NAutosomes = 22

//go:embed lookups/*
var embeddedTemplates embed.FS

// Locus spans one whole chromosome.
type Locus struct {
	chrom string
	end   int
}

func (l Locus) Chrom() string {
	return l.chrom
}

func (l Locus) End() uint32 {
	return uint32(l.end)
}

// Reference holds the chromosome lengths of one assembly.
type Reference struct {
	Assembly string
	loci     map[string]Locus
}

// Assemblies lists the names accepted by Load.
func Assemblies() []string {
	return []string{"grch37", "grch38"}
}

// Load reads the embedded chromosome lengths for assembly (grch37 or grch38).
func Load(assembly string) (*Reference, error) {
	loci, err := chrPosSlice(strings.ToLower(assembly))
	if err != nil {
		return nil, fmt.Errorf("chrpos: assembly %q: %w (valid assemblies: %s)", assembly, err, strings.Join(Assemblies(), ", "))
	}

	ref := &Reference{
		Assembly: strings.ToLower(assembly),
		loci:     make(map[string]Locus, len(loci)),
	}
	for _, locus := range loci {
		ref.loci[locus.Chrom()] = locus
	}

	return ref, nil
}

func chrPosSlice(assembly string) ([]Locus, error) {
	fileBytes, err := embeddedTemplates.ReadFile("lookups/" + assembly)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(bytes.NewReader(fileBytes))
	cr.Comma = '\t'
	entries, err := cr.ReadAll()
	if err != nil {
		return nil, pfx.Err(err)
	}

	loci := make([]Locus, 0, len(entries))
	header := make(map[string]int)

	for i, v := range entries {
		if i == 0 {
			for key, name := range v {
				header[name] = key
			}
			continue
		}

		end, err := strconv.Atoi(v[header["chromEnd"]])
		if err != nil {
			return nil, err
		}
		loci = append(loci, Locus{chrom: v[header["name"]], end: end})
	}

	return loci, nil
}

// Length returns the length of a chromosome, which may be given with or
// without a chr prefix.
func (r *Reference) Length(chromosome string) (int, bool) {
	locus, exists := r.loci[Canonical(chromosome)]
	if !exists {
		return 0, false
	}

	return locus.end, true
}

// Contains reports whether position is a valid 1-based coordinate on
// chromosome.
func (r *Reference) Contains(chromosome string, position int) bool {
	length, exists := r.Length(chromosome)
	return exists && position >= 1 && position <= length
}

// LongestAutosome returns the length of the longest autosome.
func (r *Reference) LongestAutosome() int {
	longest := 0
	for i := 1; i <= NAutosomes; i++ {
		if locus := r.loci[strconv.Itoa(i)]; locus.end > longest {
			longest = locus.end
		}
	}

	return longest
}

// Canonical strips the common chrom_ and chr prefixes and any leading zeroes
// from numeric chromosome names, so "chr01" becomes "1". Non-numeric names
// are upper-cased.
func Canonical(chromosome string) string {
	c := strings.TrimSpace(chromosome)
	c = strings.TrimPrefix(c, "chrom_")
	c = strings.TrimPrefix(c, "chr")

	if n, err := strconv.Atoi(c); err == nil {
		return strconv.Itoa(n)
	}

	return strings.ToUpper(c)
}

// ParseAutosome returns the autosome number for a chromosome label, and false
// for sex chromosomes, mitochondria and anything else outside 1..22.
func ParseAutosome(chromosome string) (int, bool) {
	n, err := strconv.Atoi(Canonical(chromosome))
	if err != nil || n < 1 || n > NAutosomes {
		return 0, false
	}

	return n, true
}
