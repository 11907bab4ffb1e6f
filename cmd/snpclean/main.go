// snpclean keeps the autosomal, fully called genotypes of a microarray export,
// prints descriptive statistics about them, plots their positions, and saves
// the cleaned table for gwasprs and phenorisk.
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
	"github.com/carbocation/snprisk/chrpos"
	_ "github.com/carbocation/snprisk/compileinfoprint"
	"github.com/carbocation/snprisk/genotype"
)

var (
	BufferSize = 4096
	STDOUT     = bufio.NewWriterSize(os.Stdout, BufferSize)
)

var client *storage.Client

func main() {
	defer STDOUT.Flush()

	var input, output, plotPath, assembly string
	var checkBounds bool
	flag.StringVar(&input, "input", "307383_mavi_seq.csv", "Genotype export with CHROMOSOME, GENOTYPE, POSITION (and RSID) columns. Optionally, may be a google storage URL (gs://)")
	flag.StringVar(&output, "output", "cleaned_snp_data.csv", "Path to the cleaned genotype table")
	flag.StringVar(&plotPath, "plot", "snp_scatter_plot.png", "Path to the position-by-chromosome scatter plot. Empty to skip")
	flag.StringVar(&assembly, "assembly", "grch37", fmt.Sprint("Reference assembly of the positions. Options: ", strings.Join(chrpos.Assemblies(), ", ")))
	flag.BoolVar(&checkBounds, "check-bounds", false, "Also drop calls whose position is not on the chromosome in --assembly")
	flag.Parse()

	if input == "" || output == "" {
		flag.PrintDefaults()
		log.Fatalln("Please provide --input and --output")
	}

	if strings.HasPrefix(input, "gs://") {
		var err error
		client, err = storage.NewClient(context.Background())
		if err != nil {
			log.Fatalln(err)
		}
	}

	ref, err := chrpos.Load(assembly)
	if err != nil {
		log.Fatalln(err)
	}

	tbl, err := snprisk.OpenTable(input, client)
	if err != nil {
		log.Fatalln(err)
	}
	log.Printf("Read %d genotype rows from %s\n", len(tbl.Rows), input)

	raw, err := genotype.ReadRaw(tbl)
	if err != nil {
		log.Fatalln(err)
	}

	opts := genotype.Options{}
	if checkBounds {
		opts.Reference = ref
	}
	cleaned := genotype.Clean(raw, opts)

	if err := genotype.Summarize(raw, cleaned).Write(STDOUT); err != nil {
		log.Fatalln(err)
	}

	if plotPath != "" {
		err := snprisk.WriteFile(plotPath, func(w io.Writer) error {
			return genotype.Scatter(w, cleaned.Records, ref)
		})
		if err != nil {
			log.Println("Could not render the scatter plot:", err)
		} else {
			log.Printf("Scatter plot saved to %s\n", plotPath)
		}
	}

	if err := snprisk.WriteFile(output, func(w io.Writer) error {
		return genotype.WriteCleaned(w, cleaned)
	}); err != nil {
		log.Fatalln(err)
	}

	fmt.Fprintf(STDOUT, "Cleaned data saved to '%s'\n", output)
}
