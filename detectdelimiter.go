package snprisk

import (
	"io"

	"github.com/csimplestring/go-csv/detector"
)

// DetermineDelimiter returns the single most likely rune that would delimit the
// values in the reader, assuming a CSV-like file. Genotype exports and
// association catalogs are either tab- or comma-delimited, so those two win
// over any other candidate the detector reports.
func DetermineDelimiter(r io.Reader) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(r, '"')

	for _, preferred := range []string{"\t", ","} {
		for _, candidate := range delimiters {
			if candidate == preferred {
				return rune(preferred[0])
			}
		}
	}

	if len(delimiters) > 0 && len(delimiters[0]) > 0 {
		return rune(delimiters[0][0])
	}

	return ','
}
