// Package phenotype scores a person against a curated table of phenotypes,
// each listing the SNPs, risk alleles and effect sizes associated with it.
package phenotype

import (
	"strings"

	"github.com/carbocation/snprisk"
)

// Column names expected in the phenotype table.
const (
	ColPhenotype  = "Phenotype"
	ColRSID       = "rsID"
	ColRiskAllele = "Genotype"
	ColEffectSize = "effect_size"
)

// SNP is one risk entry for a phenotype.
type SNP struct {
	RSID       string
	RiskAllele string // one or two bases
	EffectSize float64
}

// Phenotype groups its SNP entries in table order.
type Phenotype struct {
	Name string
	SNPs []SNP
}

// Table holds phenotypes in the order they were first seen.
type Table struct {
	Phenotypes []Phenotype
	index      map[string]int
}

func NewTable() *Table {
	return &Table{
		Phenotypes: make([]Phenotype, 0),
		index:      make(map[string]int),
	}
}

// Add appends snp to the named phenotype, creating it if needed.
func (t *Table) Add(phenotype string, snp SNP) {
	i, exists := t.index[phenotype]
	if !exists {
		i = len(t.Phenotypes)
		t.index[phenotype] = i
		t.Phenotypes = append(t.Phenotypes, Phenotype{Name: phenotype})
	}

	t.Phenotypes[i].SNPs = append(t.Phenotypes[i].SNPs, snp)
}

// ReadTable groups a phenotype/effect table by phenotype. Missing or
// non-finite effect sizes become 0.
func ReadTable(t *snprisk.Table) (*Table, error) {
	cols, err := t.Columns(ColPhenotype, ColRSID, ColRiskAllele, ColEffectSize)
	if err != nil {
		return nil, err
	}

	out := NewTable()
	for _, row := range t.Rows {
		effect := snprisk.ParseEffect(snprisk.Cell(row, cols[3]))

		out.Add(strings.TrimSpace(snprisk.Cell(row, cols[0])), SNP{
			RSID:       strings.TrimSpace(snprisk.Cell(row, cols[1])),
			RiskAllele: strings.TrimSpace(snprisk.Cell(row, cols[2])),
			EffectSize: effect,
		})
	}

	return out, nil
}
