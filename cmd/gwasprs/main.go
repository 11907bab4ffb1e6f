// gwasprs filters a GWAS catalog to an allow-list of traits, joins it to a
// cleaned genotype table on RSID, and writes a polygenic risk score report.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/snprisk"
	"github.com/carbocation/snprisk/catalog"
	_ "github.com/carbocation/snprisk/compileinfoprint"
	"github.com/carbocation/snprisk/genotype"
	"github.com/carbocation/snprisk/prs"
)

var (
	BufferSize = 4096
	STDOUT     = bufio.NewWriterSize(os.Stdout, BufferSize)
)

var client *storage.Client

func main() {
	defer STDOUT.Flush()

	var (
		catalogPath   string
		genotypePath  string
		filteredPath  string
		breakdownPath string
		reportPath    string
		layoutName    string
		traitsPath    string
		overridesPath string
		topN          int
		skipFilter    bool
	)
	flag.StringVar(&catalogPath, "catalog", "gwas_catalog.tsv", "GWAS catalog associations file. Optionally, may be a google storage URL (gs://)")
	flag.StringVar(&genotypePath, "genotypes", "cleaned_snp_data.csv", "Cleaned genotype table from snpclean")
	flag.StringVar(&filteredPath, "filtered", "gwas_catalog_filtered.csv", "Where to write the filtered catalog (or, with --skip-filter, where to read it from)")
	flag.StringVar(&breakdownPath, "breakdown", "prs_trait_breakdown.csv", "Where to write the per-association breakdown")
	flag.StringVar(&reportPath, "report", "polygenic_risk_score_report.txt", "Where to write the text report")
	flag.StringVar(&layoutName, "layout", catalog.DefaultLayout, fmt.Sprint("Layout of the catalog. Options: ", catalog.LayoutNames()))
	flag.StringVar(&traitsPath, "traits", "", "Optional: file with one accepted trait per line, replacing the built-in list")
	flag.StringVar(&overridesPath, "overrides", "", "Optional: tab-delimited trait\\tcatalog_trait file, replacing the built-in overrides")
	flag.IntVar(&topN, "top", prs.DefaultTopN, "Number of traits to rank in the report")
	flag.BoolVar(&skipFilter, "skip-filter", false, "Read an already filtered catalog from --filtered instead of filtering --catalog")
	flag.Parse()

	for _, path := range []string{catalogPath, genotypePath, filteredPath, traitsPath, overridesPath} {
		if strings.HasPrefix(path, "gs://") {
			var err error
			client, err = storage.NewClient(context.Background())
			if err != nil {
				log.Fatalln(err)
			}
			break
		}
	}

	var associations []catalog.Association
	var err error
	if skipFilter {
		associations, err = readFiltered(filteredPath)
	} else {
		associations, err = filterCatalog(catalogPath, filteredPath, layoutName, traitsPath, overridesPath)
	}
	if err != nil {
		log.Fatalln(err)
	}

	tbl, err := snprisk.OpenTable(genotypePath, client)
	if err != nil {
		log.Fatalln(err)
	}
	genotypes, err := genotype.LookupFromTable(tbl)
	if err != nil {
		log.Fatalln(err)
	}
	log.Printf("Loaded %d genotyped RSIDs from %s\n", len(genotypes), genotypePath)

	result := prs.Score(genotypes, associations)
	log.Printf("%d of %d associations matched a genotyped RSID\n", len(result.Contributions), len(associations))

	if err := snprisk.WriteFile(breakdownPath, func(w io.Writer) error {
		return prs.WriteBreakdown(w, result)
	}); err != nil {
		log.Fatalln(err)
	}

	if err := snprisk.WriteFile(reportPath, func(w io.Writer) error {
		return prs.WriteReport(w, result, topN)
	}); err != nil {
		log.Fatalln(err)
	}

	fmt.Fprintln(STDOUT, "PRS computation complete. Outputs:")
	fmt.Fprintf(STDOUT, "- Polygenic Risk Score: %.4f\n", result.Total)
	fmt.Fprintf(STDOUT, "- Report file: %s\n", reportPath)
	fmt.Fprintf(STDOUT, "- Breakdown (table) file: %s\n", breakdownPath)

	fmt.Fprintf(STDOUT, "\nTop %d Risk-Contributing Traits:\n", topN)
	fmt.Fprintln(STDOUT, "----------------------------------------")
	prs.WriteTopTraits(STDOUT, result.Top(topN))
}

func filterCatalog(catalogPath, filteredPath, layoutName, traitsPath, overridesPath string) ([]catalog.Association, error) {
	layout, err := catalog.LookupLayout(layoutName)
	if err != nil {
		return nil, err
	}

	tf, err := loadTraitFilter(traitsPath, overridesPath)
	if err != nil {
		return nil, err
	}
	log.Printf("Accepting %d distinct traits\n", tf.Len())

	tbl, err := snprisk.OpenTable(catalogPath, client)
	if err != nil {
		return nil, err
	}

	associations, stats, err := catalog.Filter(tbl, layout, tf)
	if err != nil {
		return nil, err
	}
	log.Printf("Catalog: %d rows, %d without an rsID-allele, %d with other traits, %d kept. Effect sizes from %q\n",
		stats.Rows, stats.NoRiskAllele, stats.OffList, stats.Kept, stats.EffectColumn)

	if err := snprisk.WriteFile(filteredPath, func(w io.Writer) error {
		return catalog.WriteAssociations(w, associations)
	}); err != nil {
		return nil, err
	}

	return associations, nil
}

func readFiltered(filteredPath string) ([]catalog.Association, error) {
	fd, err := snprisk.Open(filteredPath, client)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	return catalog.ReadAssociations(fd, filteredPath)
}

func loadTraitFilter(traitsPath, overridesPath string) (*catalog.TraitFilter, error) {
	var list []string
	var overrides map[string]string
	var err error

	if traitsPath == "" {
		list, err = catalog.DefaultTraitList()
	} else {
		list, err = readWith(traitsPath, catalog.ReadTraitList)
	}
	if err != nil {
		return nil, err
	}

	if overridesPath == "" {
		overrides, err = catalog.DefaultOverrides()
	} else {
		overrides, err = readWith(overridesPath, catalog.ReadOverrides)
	}
	if err != nil {
		return nil, err
	}

	return catalog.NewTraitFilter(list, overrides)
}

func readWith[T any](path string, read func(io.Reader) (T, error)) (T, error) {
	fd, err := snprisk.Open(path, client)
	if err != nil {
		var zero T
		return zero, err
	}
	defer fd.Close()

	return read(fd)
}
