package phenotype

import (
	"math"
	"sort"
	"strings"

	"github.com/carbocation/snprisk/genotype"
	"gonum.org/v1/gonum/floats"
)

// Detail is the outcome for one SNP entry of a phenotype.
type Detail struct {
	SNP
	Genotype string
	Found    bool // the RSID was genotyped
	Matched  bool // Found, and the genotype carries the risk allele
}

// Result summarizes one phenotype. RiskPercentage is only meaningful when
// Defined, which requires a positive total effect.
type Result struct {
	Phenotype string
	Details   []Detail

	MatchedCount int
	FoundCount   int
	TotalCount   int

	MatchedEffect float64
	TotalEffect   float64

	RiskPercentage float64
	Defined        bool
}

// HasRiskAllele reports whether the genotype carries the risk allele. A
// single-base risk allele must appear in the genotype; for a two-base risk
// allele it is enough that any one of its bases appears.
func HasRiskAllele(genotype, riskAllele string) bool {
	switch len(riskAllele) {
	case 0:
		return false
	case 1:
		return strings.Contains(genotype, riskAllele)
	default:
		return strings.ContainsAny(genotype, riskAllele)
	}
}

// Match scores every phenotype of t against genotypes, in table order. Every
// entry adds to the total effect; only genotyped entries carrying the risk
// allele add to the matched effect.
func Match(genotypes genotype.Lookup, t *Table) []Result {
	out := make([]Result, 0, len(t.Phenotypes))
	for _, p := range t.Phenotypes {
		out = append(out, matchOne(genotypes, p))
	}

	return out
}

func matchOne(genotypes genotype.Lookup, p Phenotype) Result {
	res := Result{
		Phenotype:  p.Name,
		Details:    make([]Detail, 0, len(p.SNPs)),
		TotalCount: len(p.SNPs),
	}

	all := make([]float64, 0, len(p.SNPs))
	matched := make([]float64, 0, len(p.SNPs))

	for _, snp := range p.SNPs {
		all = append(all, snp.EffectSize)

		d := Detail{SNP: snp}
		d.Genotype, d.Found = genotypes.Genotype(snp.RSID)
		if d.Found {
			res.FoundCount++
			d.Matched = HasRiskAllele(d.Genotype, snp.RiskAllele)
		}
		if d.Matched {
			res.MatchedCount++
			matched = append(matched, snp.EffectSize)
		}

		res.Details = append(res.Details, d)
	}

	res.TotalEffect = floats.Sum(all)
	res.MatchedEffect = floats.Sum(matched)

	if res.TotalEffect > 0 {
		res.Defined = true
		res.RiskPercentage = clampPercentage(100 * res.MatchedEffect / res.TotalEffect)
	}

	return res
}

// Negative effect sizes can push the ratio outside [0,100].
func clampPercentage(pct float64) float64 {
	if pct < 0 || math.IsNaN(pct) {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// RiskLevel labels a risk percentage: above 60 is High, above 30 is Medium,
// anything else Low.
func RiskLevel(pct float64) string {
	switch {
	case pct > 60:
		return "High"
	case pct > 30:
		return "Medium"
	default:
		return "Low"
	}
}

// Ranked returns the defined results, highest risk percentage first. Equal
// percentages keep their table order.
func Ranked(results []Result) []Result {
	out := make([]Result, 0, len(results))
	for _, r := range results {
		if r.Defined {
			out = append(out, r)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RiskPercentage > out[j].RiskPercentage
	})

	return out
}
