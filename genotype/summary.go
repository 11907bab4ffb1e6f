package genotype

import (
	"bufio"
	"fmt"
	"io"

	"github.com/carbocation/pfx"
	"github.com/carbocation/snprisk/chrpos"
)

// ChromosomeCount is the number of retained calls on one autosome.
type ChromosomeCount struct {
	Chromosome int
	Count      int
}

// Summary describes a cleaned genotype set.
type Summary struct {
	Read          int
	Retained      int
	PerChromosome []ChromosomeCount // ascending by chromosome, zero counts omitted
	Homozygous    int
	Heterozygous  int
}

// Dropped is the number of input records that failed a filter.
func (s Summary) Dropped() int {
	return s.Read - s.Retained
}

// Summarize counts the calls in cleaned, which was derived from read.
func Summarize(read, cleaned Set) Summary {
	s := Summary{
		Read:     len(read.Records),
		Retained: len(cleaned.Records),
	}

	var counts [chrpos.NAutosomes + 1]int
	for _, rec := range cleaned.Records {
		if n, ok := chrpos.ParseAutosome(rec.Chromosome); ok {
			counts[n]++
		}

		if IsHomozygous(rec.Genotype) {
			s.Homozygous++
		} else if IsHeterozygous(rec.Genotype) {
			s.Heterozygous++
		}
	}

	for chrom, count := range counts {
		if count > 0 {
			s.PerChromosome = append(s.PerChromosome, ChromosomeCount{Chromosome: chrom, Count: count})
		}
	}

	return s
}

// Write prints the descriptive statistics.
func (s Summary) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Total number of SNPs: %d\n", s.Retained)
	fmt.Fprintf(bw, "Dropped by filters: %d of %d\n", s.Dropped(), s.Read)
	fmt.Fprintf(bw, "Number of unique chromosomes: %d\n", len(s.PerChromosome))
	fmt.Fprintln(bw, "SNPs per chromosome:")
	for _, cc := range s.PerChromosome {
		fmt.Fprintf(bw, "  Chromosome %d: %d SNPs\n", cc.Chromosome, cc.Count)
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "Genotype Counts:")
	fmt.Fprintf(bw, "  Homozygous: %d\n", s.Homozygous)
	fmt.Fprintf(bw, "  Heterozygous: %d\n", s.Heterozygous)

	if err := bw.Flush(); err != nil {
		return pfx.Err(err)
	}

	return nil
}
