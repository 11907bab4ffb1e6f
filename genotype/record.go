// Package genotype reads personal SNP microarray exports, keeps the
// autosomal, fully called genotypes, and describes what survived.
package genotype

import (
	"strconv"
	"strings"

	"github.com/carbocation/snprisk"
)

// Column names expected in a genotype export.
const (
	ColRSID       = "RSID"
	ColChromosome = "CHROMOSOME"
	ColPosition   = "POSITION"
	ColGenotype   = "GENOTYPE"
)

// MissingCall is the genotype written by the array when no call was made.
const MissingCall = "--"

// Record is one genotype call. Row holds the untouched input row so that the
// cleaned output keeps every column of the export in its original order.
type Record struct {
	RSID       string
	Chromosome string
	Position   int // 0 when the cell did not parse
	Genotype   string
	Row        []string
}

// Set is a header plus the records underneath it.
type Set struct {
	Header  []string
	Records []Record
}

// ReadRaw converts a genotype table into records. CHROMOSOME, GENOTYPE and
// POSITION are required; RSID is carried when present.
func ReadRaw(t *snprisk.Table) (Set, error) {
	cols, err := t.Columns(ColChromosome, ColGenotype, ColPosition)
	if err != nil {
		return Set{}, err
	}
	chromCol, genotypeCol, positionCol := cols[0], cols[1], cols[2]

	rsidCol := -1
	if t.Has(ColRSID) {
		rsidCol, _ = t.Column(ColRSID)
	}

	out := Set{
		Header:  t.Header,
		Records: make([]Record, 0, len(t.Rows)),
	}

	for _, row := range t.Rows {
		rec := Record{
			RSID:       strings.TrimSpace(snprisk.Cell(row, rsidCol)),
			Chromosome: strings.TrimSpace(snprisk.Cell(row, chromCol)),
			Genotype:   strings.TrimSpace(snprisk.Cell(row, genotypeCol)),
			Row:        row,
		}

		// Malformed positions are kept as 0; whether that matters is up to
		// the cleaner's options.
		if pos, err := strconv.Atoi(strings.TrimSpace(snprisk.Cell(row, positionCol))); err == nil {
			rec.Position = pos
		}

		out.Records = append(out.Records, rec)
	}

	return out, nil
}
