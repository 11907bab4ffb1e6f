// phenorisk matches a cleaned genotype table against a curated phenotype
// table of risk alleles and effect sizes, and prints a risk percentage for
// every phenotype.
package main

import (
	"bufio"
	"context"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/carbocation/snprisk"
	_ "github.com/carbocation/snprisk/compileinfoprint"
	"github.com/carbocation/snprisk/genotype"
	"github.com/carbocation/snprisk/phenotype"
)

var (
	BufferSize = 4096
	STDOUT     = bufio.NewWriterSize(os.Stdout, BufferSize)
)

var client *storage.Client

func main() {
	defer STDOUT.Flush()
	started := time.Now()

	var genotypePath, phenotypePath string
	flag.StringVar(&genotypePath, "genotypes", "cleaned_snp_data.csv", "Cleaned genotype table from snpclean. Optionally, may be a google storage URL (gs://)")
	flag.StringVar(&phenotypePath, "phenotypes", "combined_phenotypes_rsid_effect.csv", "Table with Phenotype, rsID, Genotype (risk allele) and effect_size columns")
	flag.Parse()

	if strings.HasPrefix(genotypePath, "gs://") || strings.HasPrefix(phenotypePath, "gs://") {
		var err error
		client, err = storage.NewClient(context.Background())
		if err != nil {
			log.Fatalln(err)
		}
	}

	tbl, err := snprisk.OpenTable(genotypePath, client)
	if err != nil {
		log.Fatalln(err)
	}
	genotypes, err := genotype.LookupFromTable(tbl)
	if err != nil {
		log.Fatalln(err)
	}

	ptbl, err := snprisk.OpenTable(phenotypePath, client)
	if err != nil {
		log.Fatalln(err)
	}
	phenotypes, err := phenotype.ReadTable(ptbl)
	if err != nil {
		log.Fatalln(err)
	}
	log.Printf("Loaded %d genotyped RSIDs and %d phenotypes\n", len(genotypes), len(phenotypes.Phenotypes))

	results := phenotype.Match(genotypes, phenotypes)

	if err := phenotype.WriteDetails(STDOUT, results); err != nil {
		log.Fatalln(err)
	}
	if err := phenotype.WriteSummary(STDOUT, results); err != nil {
		log.Fatalln(err)
	}

	log.Printf("Run time duration: %.2f seconds\n", time.Since(started).Seconds())
}
