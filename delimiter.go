package regulonmap

import (
	"io"

	"github.com/csimplestring/go-csv/detector"
)

// SniffDelimiter returns the single most likely rune delimiting the values
// in the reader, assuming a CSV-like file. Regulon exports are tab-separated
// by convention, so tab is the fallback when detection is inconclusive.
func SniffDelimiter(r io.Reader) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(r, '"')

	if len(delimiters) > 0 {
		return rune(delimiters[0][0])
	}

	return '\t'
}
