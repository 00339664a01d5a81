// Package corpus serializes sentence pairs as TSV, JSON Lines and merged
// multi-document datasets.
package corpus

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/hyperifyio/goalign/internal/pair"
)

var fieldSanitizer = strings.NewReplacer("\t", " ", "\r\n", " ", "\n", " ", "\r", " ")

// Sanitize replaces tabs and line breaks inside a field with single spaces.
func Sanitize(s string) string {
	return fieldSanitizer.Replace(s)
}

// WriteTSV writes one "source<TAB>target" line per pair.
func WriteTSV(w io.Writer, pairs []pair.Pair) error {
	bw := bufio.NewWriter(w)
	for _, p := range pairs {
		if _, err := fmt.Fprintf(bw, "%s\t%s\n", Sanitize(p.Source), Sanitize(p.Target)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadTSV parses lines written by WriteTSV, splitting on the first tab.
// Lines without a tab are skipped. When swap is true the columns are read
// as target then source.
func ReadTSV(r io.Reader, swap bool) ([]pair.Pair, error) {
	var out []pair.Pair
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		first, second, ok := strings.Cut(line, "\t")
		if !ok {
			continue
		}
		if swap {
			first, second = second, first
		}
		out = append(out, pair.Pair{Source: first, Target: second})
	}
	if err := sc.Err(); err != nil {
		return out, fmt.Errorf("read tsv: %w", err)
	}
	return out, nil
}
