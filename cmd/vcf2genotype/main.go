// vcf2genotype turns one sample of a VCF into a genotype table with the same
// RSID, CHROMOSOME, POSITION and GENOTYPE columns as a microarray export, so
// that it can be fed to snpclean.
package main

import (
	"bufio"
	"context"
	"flag"
	"io"
	"log"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/snprisk"
	_ "github.com/carbocation/snprisk/compileinfoprint"
	"github.com/carbocation/snprisk/genotype"
)

var BufferSize = 4096 * 8

var client *storage.Client

func main() {
	var vcfPath, sample, output string
	var clean bool
	flag.StringVar(&vcfPath, "vcf", "", "Path to a VCF, optionally compressed. Optionally, may be a google storage URL (gs://)")
	flag.StringVar(&sample, "sample", "", "Sample to extract. Defaults to the first sample in the VCF")
	flag.StringVar(&output, "output", "", "Path to the genotype table to write")
	flag.BoolVar(&clean, "clean", false, "Drop non-autosomal and incompletely called genotypes before writing")
	flag.Parse()

	if vcfPath == "" || output == "" {
		flag.PrintDefaults()
		log.Fatalln("Please provide --vcf and --output")
	}

	if strings.HasPrefix(vcfPath, "gs://") {
		var err error
		client, err = storage.NewClient(context.Background())
		if err != nil {
			log.Fatalln(err)
		}
	}

	fd, err := snprisk.Open(vcfPath, client)
	if err != nil {
		log.Fatalln(err)
	}

	set, err := genotype.FromVCF(bufio.NewReaderSize(fd, BufferSize), sample)
	fd.Close()
	if err != nil {
		log.Fatalln(err)
	}
	log.Printf("Read %d variants from %s\n", len(set.Records), vcfPath)

	if clean {
		set = genotype.Clean(set, genotype.Options{})
		log.Printf("Kept %d variants after cleaning\n", len(set.Records))
	}

	if err := snprisk.WriteFile(output, func(w io.Writer) error {
		return genotype.WriteCleaned(w, set)
	}); err != nil {
		log.Fatalln(err)
	}
}
