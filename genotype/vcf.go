package genotype

import (
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/carbocation/vcfgo"
)

// VCFHeader is the header of the genotype table produced by FromVCF.
var VCFHeader = []string{ColRSID, ColChromosome, ColPosition, ColGenotype}

// FromVCF converts one sample of a VCF into genotype records laid out like an
// array export. If sample is empty, the first sample is used. Calls with a
// missing allele become "--" so that Clean drops them.
func FromVCF(r io.Reader, sample string) (Set, error) {
	rdr, err := vcfgo.NewReader(r, false)
	if err != nil {
		if rdr == nil {
			return Set{}, pfx.Err(err)
		}
		log.Printf("Invalid VCF. Attempting to continue. Invalid features include:\n%s\n", err)
		rdr.Clear()
	}

	sampleIdx := 0
	if sample != "" {
		sampleIdx = -1
		for i, name := range rdr.Header.SampleNames {
			if name == sample {
				sampleIdx = i
				break
			}
		}
		if sampleIdx < 0 {
			return Set{}, fmt.Errorf("sample %q is not in the VCF (samples: %s)", sample, strings.Join(rdr.Header.SampleNames, ", "))
		}
	} else if len(rdr.Header.SampleNames) == 0 {
		return Set{}, fmt.Errorf("the VCF has no samples")
	}

	out := Set{
		Header:  VCFHeader,
		Records: make([]Record, 0),
	}

	for {
		variant := rdr.Read()
		if variant == nil {
			break
		}

		if sampleIdx >= len(variant.Samples) || variant.Samples[sampleIdx] == nil {
			continue
		}

		alleles := append([]string{variant.Ref()}, variant.Alt()...)
		rec := Record{
			RSID:       variant.Id(),
			Chromosome: variant.Chrom(),
			Position:   int(variant.Pos),
			Genotype:   GenotypeFromGT(alleles, variant.Samples[sampleIdx].GT),
		}
		rec.Row = []string{rec.RSID, rec.Chromosome, strconv.Itoa(rec.Position), rec.Genotype}

		out.Records = append(out.Records, rec)
	}

	if err := rdr.Error(); err != nil {
		return out, pfx.Err(err)
	}

	return out, nil
}

// GenotypeFromGT spells out a VCF GT as bases, e.g. ref A, alt G and GT 0/1
// give "AG". Any missing or out-of-range allele index yields MissingCall.
func GenotypeFromGT(alleles []string, gt []int) string {
	if len(gt) == 0 {
		return MissingCall
	}

	b := strings.Builder{}
	for _, idx := range gt {
		if idx < 0 || idx >= len(alleles) {
			return MissingCall
		}
		b.WriteString(strings.ToUpper(alleles[idx]))
	}

	return b.String()
}
