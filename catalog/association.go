// Package catalog restricts a GWAS association catalog to an allow-list of
// traits and extracts the risk allele and effect size of each association.
package catalog

import (
	"bytes"
	"encoding/csv"
	"io"
	"regexp"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/carbocation/snprisk"
	"github.com/gocarina/gocsv"
)

// Association is one catalog row that survived filtering.
type Association struct {
	RSID        string  `csv:"RSID"`
	RiskAllele  string  `csv:"RISK_ALLELE"`
	EffectValue float64 `csv:"EFFECT_VALUE"`
	Trait       string  `csv:"DISEASE/TRAIT"`
}

var snpRiskAllele = regexp.MustCompile(`(rs\d+)-([ACGT])`)

// ParseSNPRiskAllele extracts the RSID and risk allele from a combined
// "rs<digits>-<base>" field such as "rs7329174-G". ok is false when the field
// carries no such pattern (e.g. "rs7329174-?" or "chr13:40983974-G").
func ParseSNPRiskAllele(field string) (rsid, riskAllele string, ok bool) {
	m := snpRiskAllele.FindStringSubmatch(field)
	if m == nil {
		return "", "", false
	}

	return m[1], m[2], true
}

// ParseEffect converts an effect-size cell. Anything that is not a finite
// number becomes 0.
func ParseEffect(cell string) float64 {
	return snprisk.ParseEffect(cell)
}

// Stats counts what happened to the catalog rows during filtering.
type Stats struct {
	Rows         int
	EffectColumn string
	NoRiskAllele int
	OffList      int
	Kept         int
}

// Filter keeps the catalog rows that have a parseable SNP-risk-allele field
// and a trait accepted by tf. The effect column is chosen once, from the
// header, and applied to every row.
func Filter(t *snprisk.Table, layout Layout, tf *TraitFilter) ([]Association, Stats, error) {
	stats := Stats{Rows: len(t.Rows)}

	cols, err := t.Columns(layout.ColSNPRiskAllele, layout.ColTrait)
	if err != nil {
		return nil, stats, err
	}
	snpCol, traitCol := cols[0], cols[1]

	effectName, err := layout.ResolveEffectColumn(t)
	if err != nil {
		return nil, stats, err
	}
	effectCol, _ := t.Column(effectName)
	stats.EffectColumn = effectName

	out := make([]Association, 0)
	for _, row := range t.Rows {
		rsid, allele, ok := ParseSNPRiskAllele(snprisk.Cell(row, snpCol))
		if !ok {
			stats.NoRiskAllele++
			continue
		}

		trait := snprisk.Cell(row, traitCol)
		if !tf.Accepts(trait) {
			stats.OffList++
			continue
		}

		out = append(out, Association{
			RSID:        rsid,
			RiskAllele:  allele,
			EffectValue: ParseEffect(snprisk.Cell(row, effectCol)),
			Trait:       trait,
		})
	}
	stats.Kept = len(out)

	return out, stats, nil
}

// WriteAssociations writes the filtered catalog as CSV.
func WriteAssociations(w io.Writer, associations []Association) error {
	if err := gocsv.Marshal(&associations, w); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// ReadAssociations reads a table written by WriteAssociations. Every column
// is required.
func ReadAssociations(r io.Reader, source string) ([]Association, error) {
	contents, err := io.ReadAll(r)
	if err != nil {
		return nil, pfx.Err(err)
	}

	header, err := csv.NewReader(bytes.NewReader(contents)).Read()
	if err != nil && err != io.EOF {
		return nil, pfx.Err(err)
	}
	present := make(map[string]struct{}, len(header))
	for _, name := range header {
		present[strings.TrimSpace(name)] = struct{}{}
	}
	for _, name := range []string{"RSID", "RISK_ALLELE", "EFFECT_VALUE", "DISEASE/TRAIT"} {
		if _, exists := present[name]; !exists {
			return nil, &snprisk.MissingColumnError{Source: source, Column: name}
		}
	}

	out := make([]Association, 0)
	if err := gocsv.UnmarshalBytes(contents, &out); err != nil {
		return nil, pfx.Err(err)
	}
	for i := range out {
		if !snprisk.IsFinite(out[i].EffectValue) {
			out[i].EffectValue = 0.0
		}
	}

	return out, nil
}
