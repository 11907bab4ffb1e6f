package genotype

import (
	"bytes"
	"testing"

	"github.com/carbocation/snprisk/chrpos"
)

func TestScatterRendersPNG(t *testing.T) {
	ref, err := chrpos.Load("grch37")
	if err != nil {
		t.Fatal(err)
	}

	records := []Record{
		{Chromosome: "1", Position: 752566},
		{Chromosome: "2", Position: 1000000},
		{Chromosome: "22", Position: 51000000},
	}

	var buf bytes.Buffer
	if err := Scatter(&buf, records, ref); err != nil {
		t.Fatal(err)
	}

	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("Expected PNG output")
	}
}

func TestScatterNeedsPoints(t *testing.T) {
	ref, err := chrpos.Load("grch37")
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Scatter(&buf, []Record{{Chromosome: "X", Position: 1}}, ref); err == nil {
		t.Error("Expected an error when nothing can be plotted")
	}
}
