package chrpos

import (
	"strconv"
	"testing"
)

func TestParseAutosome(t *testing.T) {
	cases := []struct {
		label string
		want  int
		ok    bool
	}{
		{"1", 1, true},
		{"22", 22, true},
		{"chr7", 7, true},
		{"chrom_3", 3, true},
		{"01", 1, true},
		{"X", 0, false},
		{"Y", 0, false},
		{"MT", 0, false},
		{"23", 0, false},
		{"0", 0, false},
		{"", 0, false},
	}

	for _, c := range cases {
		got, ok := ParseAutosome(c.label)
		if got != c.want || ok != c.ok {
			t.Errorf("ParseAutosome(%q) = %d,%v; expected %d,%v", c.label, got, ok, c.want, c.ok)
		}
	}
}

func TestLoad(t *testing.T) {
	for _, assembly := range Assemblies() {
		ref, err := Load(assembly)
		if err != nil {
			t.Fatal(err)
		}

		for i := 1; i <= NAutosomes; i++ {
			if _, ok := ref.Length(strconv.Itoa(i)); !ok {
				t.Errorf("%s: missing length for chromosome %d", assembly, i)
			}
		}

		if ref.LongestAutosome() < 240000000 {
			t.Errorf("%s: chromosome 1 should be the longest autosome, got %d", assembly, ref.LongestAutosome())
		}
	}
}

func TestContains(t *testing.T) {
	ref, err := Load("GRCh37")
	if err != nil {
		t.Fatal(err)
	}

	if !ref.Contains("chr1", 249250621) {
		t.Error("The last base of chromosome 1 should be contained")
	}
	if ref.Contains("1", 249250622) {
		t.Error("A position past the end of chromosome 1 should not be contained")
	}
	if ref.Contains("1", 0) {
		t.Error("Positions are 1-based")
	}
	if ref.Contains("MT", 100) {
		t.Error("MT is not part of the lookup")
	}
}

func TestUnknownAssembly(t *testing.T) {
	if _, err := Load("hg99"); err == nil {
		t.Error("Expected an error for an unknown assembly")
	}
}
