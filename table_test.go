package snprisk

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadTableWithDelimiter(t *testing.T) {
	input := "RSID,CHROMOSOME,POSITION,GENOTYPE\nrs1,1,100,AG\nrs2,X,200,AA\n"
	tbl, err := ReadTableWithDelimiter(strings.NewReader(input), "test.csv", ',')
	if err != nil {
		t.Fatal(err)
	}

	if len(tbl.Rows) != 2 {
		t.Errorf("Expected 2 rows, got %d", len(tbl.Rows))
	}

	idx, err := tbl.Column("GENOTYPE")
	if err != nil {
		t.Fatal(err)
	}
	if idx != 3 {
		t.Errorf("Expected GENOTYPE at column 3, got %d", idx)
	}
	if got := Cell(tbl.Rows[1], idx); got != "AA" {
		t.Errorf("Expected AA, got %s", got)
	}
}

func TestMissingColumn(t *testing.T) {
	tbl, err := ReadTableWithDelimiter(strings.NewReader("RSID\tGENOTYPE\nrs1\tAG\n"), "test.tsv", '\t')
	if err != nil {
		t.Fatal(err)
	}

	_, err = tbl.Columns("RSID", "CHROMOSOME")
	var mce *MissingColumnError
	if !errors.As(err, &mce) {
		t.Fatalf("Expected a MissingColumnError, got %v", err)
	}
	if mce.Column != "CHROMOSOME" {
		t.Errorf("Expected CHROMOSOME to be reported missing, got %s", mce.Column)
	}
}

func TestHeaderIsTrimmed(t *testing.T) {
	tbl, err := ReadTableWithDelimiter(strings.NewReader("\ufeffRSID , GENOTYPE\nrs1,AG\n"), "bom.csv", ',')
	if err != nil {
		t.Fatal(err)
	}

	if !tbl.Has("RSID") || !tbl.Has("GENOTYPE") {
		t.Errorf("Expected trimmed header names, got %q", tbl.Header)
	}
}

func TestJaggedRowsAreKept(t *testing.T) {
	tbl, err := ReadTableWithDelimiter(strings.NewReader("a,b,c\n1,2\n4,5,6\n"), "jagged.csv", ',')
	if err != nil {
		t.Fatal(err)
	}

	if len(tbl.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(tbl.Rows))
	}
	if got := Cell(tbl.Rows[0], 2); got != "" {
		t.Errorf("Expected an empty cell for a short row, got %q", got)
	}
}

func TestDetectDataType(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	gz.Write([]byte("RSID,GENOTYPE\n"))
	gz.Close()

	var zbuf bytes.Buffer
	zw := zlib.NewWriter(&zbuf)
	zw.Write([]byte("RSID,GENOTYPE\n"))
	zw.Close()

	cases := []struct {
		name  string
		input []byte
		want  DataType
	}{
		{"gzip", buf.Bytes(), DataTypeGzip},
		{"zlib", zbuf.Bytes(), DataTypeZlib},
		{"lzw", []byte{0x1f, 0x9d, 0x90, 0x52, 0x53, 0x49}, DataTypeNoCompression},
		{"plain", []byte("RSID,GENOTYPE\nrs1,AG\n"), DataTypeNoCompression},
		{"short", []byte("a"), DataTypeNoCompression},
		{"empty", []byte{}, DataTypeNoCompression},
	}

	for _, c := range cases {
		got, err := DetectDataType(bytes.NewReader(c.input))
		if err != nil {
			t.Errorf("%s: %v", c.name, err)
		}
		if got != c.want {
			t.Errorf("%s: expected %v, got %v", c.name, c.want, got)
		}
	}
}

func TestMaybeDecompressReadCloser(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genotypes.csv.gz")

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	gz := gzip.NewWriter(f)
	gz.Write([]byte("RSID,GENOTYPE\nrs1,AG\n"))
	gz.Close()
	f.Close()

	rsc, _, err := MaybeOpenSeekerFromGoogleStorage(path, nil)
	if err != nil {
		t.Fatal(err)
	}

	rc, err := MaybeDecompressReadCloser(rsc)
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()

	contents, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	if string(contents) != "RSID,GENOTYPE\nrs1,AG\n" {
		t.Errorf("Unexpected decompressed contents %q", contents)
	}
}

func TestGoogleStoragePathNeedsClient(t *testing.T) {
	if _, _, err := MaybeOpenSeekerFromGoogleStorage("gs://bucket/file.csv", nil); err == nil {
		t.Error("Expected an error for a gs:// path without a client")
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTable(&buf, []string{"RSID", "GENOTYPE"}, [][]string{{"rs1", "AG"}}); err != nil {
		t.Fatal(err)
	}

	if buf.String() != "RSID,GENOTYPE\nrs1,AG\n" {
		t.Errorf("Unexpected output %q", buf.String())
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	err := WriteFile(path, func(w io.Writer) error {
		return WriteTable(w, []string{"RSID"}, [][]string{{"rs1"}})
	})
	if err != nil {
		t.Fatal(err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(contents) != "RSID\nrs1\n" {
		t.Errorf("Unexpected file contents %q", contents)
	}
}

func TestMaybeDecompressZlib(t *testing.T) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	zw.Write([]byte("RSID,GENOTYPE\nrs1,AG\n"))
	zw.Close()

	path := filepath.Join(t.TempDir(), "genotypes.csv.zz")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	rc, err := Open(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()

	tbl, err := ReadTableWithDelimiter(rc, path, ',')
	if err != nil {
		t.Fatal(err)
	}
	if len(tbl.Rows) != 1 || Cell(tbl.Rows[0], 1) != "AG" {
		t.Errorf("Unexpected rows %v", tbl.Rows)
	}
}

func TestWriteFileRemovesOutputOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snp_scatter_plot.png")
	failure := errors.New("nothing to plot")

	err := WriteFile(path, func(w io.Writer) error {
		return failure
	})
	if !errors.Is(err, failure) {
		t.Errorf("Expected the write error to be returned, got %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Expected %s to be removed, stat returned %v", path, err)
	}
}
