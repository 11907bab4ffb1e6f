package phenotype

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/montanaflynn/stats"
)

// WriteDetails prints every SNP entry of every phenotype with its match
// status, followed by a one-line summary per phenotype.
func WriteDetails(w io.Writer, results []Result) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "Detailed Phenotype-SNP Analysis:")
	fmt.Fprintln(bw, "Phenotype SNP Genotype Risk_Allele Effect_Size Match")
	fmt.Fprintln(bw, strings.Repeat("-", 80))

	for _, r := range results {
		fmt.Fprintf(bw, "\n%s:\n", r.Phenotype)

		for _, d := range r.Details {
			effect := strconv.FormatFloat(d.EffectSize, 'f', -1, 64)
			if !d.Found {
				fmt.Fprintf(bw, "  %s Not found %s %s N/A\n", d.RSID, d.RiskAllele, effect)
				continue
			}

			status := "No"
			if d.Matched {
				status = "Yes"
			}
			fmt.Fprintf(bw, "  %s %s %s %s %s\n", d.RSID, d.Genotype, d.RiskAllele, effect, status)
		}

		if r.Defined {
			fmt.Fprintf(bw, "  Summary: %d/%d SNPs matched, Risk Score: %.1f%%\n", r.MatchedCount, r.TotalCount, r.RiskPercentage)
		} else {
			fmt.Fprintln(bw, "  Summary: No valid SNPs found")
		}
	}

	if err := bw.Flush(); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// WriteSummary prints the defined phenotypes ranked by risk percentage, each
// with its risk level.
func WriteSummary(w io.Writer, results []Result) error {
	ranked := Ranked(results)
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, strings.Repeat("=", 60))
	fmt.Fprintln(bw, "PHENOTYPE RISK SUMMARY:")
	fmt.Fprintln(bw, strings.Repeat("-", 60))
	fmt.Fprintln(bw, "Phenotype Risk Score")
	fmt.Fprintln(bw, strings.Repeat("-", 60))

	percentages := make(stats.Float64Data, 0, len(ranked))
	for _, r := range ranked {
		fmt.Fprintf(bw, "%s %.1f%% (%s)\n", r.Phenotype, r.RiskPercentage, RiskLevel(r.RiskPercentage))
		percentages = append(percentages, r.RiskPercentage)
	}

	if percentages.Len() > 0 {
		mean, err := percentages.Mean()
		if err != nil {
			return pfx.Err(err)
		}
		fmt.Fprintln(bw, strings.Repeat("-", 60))
		fmt.Fprintf(bw, "Scored phenotypes: %d of %d, mean risk score %.1f%%\n", len(ranked), len(results), mean)
	}

	if err := bw.Flush(); err != nil {
		return pfx.Err(err)
	}

	return nil
}
