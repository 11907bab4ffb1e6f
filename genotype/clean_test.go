package genotype

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/carbocation/snprisk"
	"github.com/carbocation/snprisk/chrpos"
)

const rawExport = `RSID,CHROMOSOME,POSITION,GENOTYPE
rs1,1,752566,AG
rs2,1,776546,AA
rs3,X,2700157,AA
rs4,Y,2655180,T
rs5,MT,73,A
rs6,2,1000,--
rs7,3,2000,AN
rs8,4,3000,DI
rs9,5,4000,C
rs10,22,5000,CT
rs11,chr7,6000,GG
rs12,6,7000,AGT
rs13,8,8000,ag
`

func readExport(t *testing.T, input string) Set {
	t.Helper()

	tbl, err := snprisk.ReadTableWithDelimiter(strings.NewReader(input), "export.csv", ',')
	if err != nil {
		t.Fatal(err)
	}

	raw, err := ReadRaw(tbl)
	if err != nil {
		t.Fatal(err)
	}

	return raw
}

func rsids(s Set) []string {
	out := make([]string, 0, len(s.Records))
	for _, rec := range s.Records {
		out = append(out, rec.RSID)
	}
	return out
}

func TestClean(t *testing.T) {
	cleaned := Clean(readExport(t, rawExport), Options{})

	expected := []string{"rs1", "rs2", "rs9", "rs10", "rs11"}
	if got := rsids(cleaned); !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}

	for _, rec := range cleaned.Records {
		switch rec.Chromosome {
		case "X", "Y", "MT":
			t.Errorf("%s: chromosome %s should have been dropped", rec.RSID, rec.Chromosome)
		}
		if rec.Genotype == MissingCall || len(rec.Genotype) > 2 {
			t.Errorf("%s: genotype %s should have been dropped", rec.RSID, rec.Genotype)
		}
	}
}

func TestCleanIsIdempotent(t *testing.T) {
	once := Clean(readExport(t, rawExport), Options{})
	twice := Clean(once, Options{})

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Cleaning twice changed the result: %v vs %v", rsids(once), rsids(twice))
	}
}

func TestInvalidBaseIsAlwaysDropped(t *testing.T) {
	ref, err := chrpos.Load("grch37")
	if err != nil {
		t.Fatal(err)
	}

	rec := Record{RSID: "rs7", Chromosome: "3", Position: 2000, Genotype: "AN"}
	for _, opts := range []Options{{}, {Reference: ref}} {
		if Keep(rec, opts) {
			t.Errorf("Genotype AN should never be kept (options %+v)", opts)
		}
	}
}

func TestCleanWithReference(t *testing.T) {
	ref, err := chrpos.Load("grch37")
	if err != nil {
		t.Fatal(err)
	}

	input := "RSID,CHROMOSOME,POSITION,GENOTYPE\nrs1,1,100,AG\nrs2,21,48129896,AG\nrs3,2,notanumber,CC\n"
	cleaned := Clean(readExport(t, input), Options{Reference: ref})

	if got := rsids(cleaned); !reflect.DeepEqual(got, []string{"rs1"}) {
		t.Errorf("Expected only rs1 to be on-chromosome, got %v", got)
	}

	// Without a reference, unparseable positions are kept
	if got := rsids(Clean(readExport(t, input), Options{})); len(got) != 3 {
		t.Errorf("Expected all 3 records without a reference, got %v", got)
	}
}

func TestReadRawRequiresColumns(t *testing.T) {
	tbl, err := snprisk.ReadTableWithDelimiter(strings.NewReader("RSID,CHROMOSOME,GENOTYPE\nrs1,1,AG\n"), "export.csv", ',')
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ReadRaw(tbl); err == nil {
		t.Error("Expected a missing POSITION column to be fatal")
	}
}

func TestWriteCleanedKeepsRows(t *testing.T) {
	input := "RSID\tCHROMOSOME\tPOSITION\tGENOTYPE\textra\nrs1\t1\t100\tAG\tx\nrs2\tX\t200\tAA\ty\n"
	tbl, err := snprisk.ReadTableWithDelimiter(strings.NewReader(input), "export.tsv", '\t')
	if err != nil {
		t.Fatal(err)
	}
	raw, err := ReadRaw(tbl)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteCleaned(&buf, Clean(raw, Options{})); err != nil {
		t.Fatal(err)
	}

	if expected := "RSID,CHROMOSOME,POSITION,GENOTYPE,extra\nrs1,1,100,AG,x\n"; buf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buf.String())
	}
}

func TestValidGenotype(t *testing.T) {
	cases := map[string]bool{
		"AG": true,
		"T":  true,
		"--": false,
		"":   false,
		"AN": false,
		"II": false,
		"ag": false,
		"AC ": false,
		"ACG": false,
	}

	for g, want := range cases {
		if got := ValidGenotype(g); got != want {
			t.Errorf("ValidGenotype(%q) = %v, expected %v", g, got, want)
		}
	}
}
