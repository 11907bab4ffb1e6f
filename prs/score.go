// Package prs computes a polygenic risk score for one person by joining their
// genotypes to catalog associations on RSID and summing dosage-weighted
// effect sizes.
//
// Effect values are used as linear weights whether the catalog reported an
// odds ratio or a beta coefficient.
package prs

import (
	"strings"

	"github.com/carbocation/snprisk/catalog"
	"github.com/carbocation/snprisk/genotype"
	"gonum.org/v1/gonum/floats"
)

// DefaultTopN is how many traits the report ranks.
const DefaultTopN = 20

// Contribution is one association joined to the person's genotype.
type Contribution struct {
	RSID         string  `csv:"RSID"`
	Trait        string  `csv:"DISEASE/TRAIT"`
	Genotype     string  `csv:"GENOTYPE"`
	RiskAllele   string  `csv:"RISK_ALLELE"`
	Dosage       int     `csv:"Dosage"`
	EffectValue  float64 `csv:"EFFECT_VALUE"`
	Contribution float64 `csv:"PRS_Component"`
}

// Result is the scored join. Total is the sum of every Contribution.
type Result struct {
	Contributions []Contribution
	Total         float64
}

// Dosage counts the copies of riskAllele in genotype, ignoring case. For a
// diploid call and a single-base allele this is 0, 1 or 2.
func Dosage(genotype, riskAllele string) int {
	if riskAllele == "" {
		return 0
	}

	return strings.Count(strings.ToUpper(genotype), strings.ToUpper(riskAllele))
}

// Score joins associations to genotypes on RSID. Associations whose RSID was
// not genotyped contribute nothing and are not reported. Association order
// is preserved.
func Score(genotypes genotype.Lookup, associations []catalog.Association) Result {
	out := Result{
		Contributions: make([]Contribution, 0),
	}

	for _, a := range associations {
		g, exists := genotypes.Genotype(a.RSID)
		if !exists {
			continue
		}

		dosage := Dosage(g, a.RiskAllele)
		out.Contributions = append(out.Contributions, Contribution{
			RSID:         a.RSID,
			Trait:        a.Trait,
			Genotype:     g,
			RiskAllele:   a.RiskAllele,
			Dosage:       dosage,
			EffectValue:  a.EffectValue,
			Contribution: float64(dosage) * a.EffectValue,
		})
	}

	out.Total = floats.Sum(out.values())

	return out
}

func (r Result) values() []float64 {
	out := make([]float64, 0, len(r.Contributions))
	for _, c := range r.Contributions {
		out = append(out, c.Contribution)
	}

	return out
}
