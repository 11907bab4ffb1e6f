package genotype

import (
	"github.com/carbocation/snprisk/chrpos"
)

// Options tune the cleaner beyond its fixed filters.
type Options struct {
	// Reference, when set, also drops calls whose position is not on the
	// chromosome in that assembly.
	Reference *chrpos.Reference
}

// Clean keeps the records on autosomes 1..22 whose genotype is a full call of
// one or two A/C/G/T bases. Everything else, including X, Y and MT, missing
// calls ("--") and indel or no-call codes, is dropped without being reported.
// Clean is idempotent.
func Clean(in Set, opts Options) Set {
	out := Set{
		Header:  in.Header,
		Records: make([]Record, 0, len(in.Records)),
	}

	for _, rec := range in.Records {
		if !Keep(rec, opts) {
			continue
		}

		out.Records = append(out.Records, rec)
	}

	return out
}

// Keep reports whether a single record survives cleaning.
func Keep(rec Record, opts Options) bool {
	if _, ok := chrpos.ParseAutosome(rec.Chromosome); !ok {
		return false
	}

	if !ValidGenotype(rec.Genotype) {
		return false
	}

	if opts.Reference != nil && !opts.Reference.Contains(rec.Chromosome, rec.Position) {
		return false
	}

	return true
}

// ValidGenotype reports whether g is a called genotype of one or two bases,
// each of them A, C, G or T.
func ValidGenotype(g string) bool {
	if g == MissingCall || len(g) == 0 || len(g) > 2 {
		return false
	}

	for i := 0; i < len(g); i++ {
		switch g[i] {
		case 'A', 'C', 'G', 'T':
		default:
			return false
		}
	}

	return true
}

// IsHomozygous is true when the genotype has exactly two identical bases.
func IsHomozygous(g string) bool {
	return len(g) == 2 && g[0] == g[1]
}

// IsHeterozygous is true when the genotype has exactly two different bases.
func IsHeterozygous(g string) bool {
	return len(g) == 2 && g[0] != g[1]
}
