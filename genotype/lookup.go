package genotype

import (
	"strings"

	"github.com/carbocation/snprisk"
)

// Lookup maps an RSID to its genotype. When an RSID occurs more than once,
// the last record wins. Records without an RSID are not indexed.
type Lookup map[string]string

// NewLookup indexes records by RSID.
func NewLookup(records []Record) Lookup {
	out := make(Lookup, len(records))
	for _, rec := range records {
		if rec.RSID == "" {
			continue
		}
		out[rec.RSID] = rec.Genotype
	}

	return out
}

// LookupFromTable indexes a cleaned genotype table, which must have RSID and
// GENOTYPE columns.
func LookupFromTable(t *snprisk.Table) (Lookup, error) {
	cols, err := t.Columns(ColRSID, ColGenotype)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		records = append(records, Record{
			RSID:     strings.TrimSpace(snprisk.Cell(row, cols[0])),
			Genotype: strings.TrimSpace(snprisk.Cell(row, cols[1])),
		})
	}

	return NewLookup(records), nil
}

// Genotype returns the genotype for rsid and whether it was present.
func (l Lookup) Genotype(rsid string) (string, bool) {
	g, exists := l[rsid]
	return g, exists
}
