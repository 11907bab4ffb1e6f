package prs

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
	"github.com/montanaflynn/stats"
)

const rule = "----------------------------------------"

// WriteBreakdown writes one CSV row per scored association.
func WriteBreakdown(w io.Writer, r Result) error {
	if err := gocsv.Marshal(&r.Contributions, w); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// WriteReport writes the plain-text PRS report: the total, a short summary
// of the contributions, every contribution, and the topN traits.
func WriteReport(w io.Writer, r Result, topN int) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "Polygenic Risk Score Report")
	fmt.Fprintln(bw, "===========================")
	fmt.Fprintln(bw)
	fmt.Fprintf(bw, "Total Polygenic Risk Score (PRS): %.4f\n", r.Total)
	fmt.Fprintln(bw)

	fmt.Fprintf(bw, "Scored associations: %d\n", len(r.Contributions))
	if contributions := stats.Float64Data(r.values()); contributions.Len() > 0 {
		mean, err := contributions.Mean()
		if err != nil {
			return pfx.Err(err)
		}
		median, err := contributions.Median()
		if err != nil {
			return pfx.Err(err)
		}
		fmt.Fprintf(bw, "Mean contribution: %.4f\n", mean)
		fmt.Fprintf(bw, "Median contribution: %.4f\n", median)
	}
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "Trait-Level Contributions:")
	fmt.Fprintln(bw, rule)
	for _, c := range r.Contributions {
		fmt.Fprintf(bw, "RSID: %s\n", c.RSID)
		fmt.Fprintf(bw, "Trait: %s\n", c.Trait)
		fmt.Fprintf(bw, "Genotype: %s | Risk Allele: %s\n", c.Genotype, c.RiskAllele)
		fmt.Fprintf(bw, "Dosage: %d | Effect Size: %s | Contribution to PRS: %.4f\n", c.Dosage, strconv.FormatFloat(c.EffectValue, 'f', -1, 64), c.Contribution)
		fmt.Fprintln(bw, rule)
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "Top Risk-Contributing Traits:")
	fmt.Fprintln(bw, strings.Repeat("=", len(rule)))
	WriteTopTraits(bw, r.Top(topN))

	if err := bw.Flush(); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// WriteTopTraits writes "trait: score" lines.
func WriteTopTraits(w io.Writer, ranked []TraitScore) {
	for _, ts := range ranked {
		fmt.Fprintf(w, "%s: %.4f\n", ts.Trait, ts.Score)
	}
}
