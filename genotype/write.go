package genotype

import (
	"io"

	"github.com/carbocation/snprisk"
)

// WriteCleaned writes the header and the surviving rows, unchanged, as CSV.
func WriteCleaned(w io.Writer, s Set) error {
	rows := make([][]string, 0, len(s.Records))
	for _, rec := range s.Records {
		rows = append(rows, rec.Row)
	}

	return snprisk.WriteTable(w, s.Header, rows)
}
