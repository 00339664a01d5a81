package app

import (
	"fmt"
	"io"
)

// maxListedEmpty limits how many empty documents Report names.
const maxListedEmpty = 5

// Report prints a human-readable summary of the batch.
func (s Summary) Report(w io.Writer) {
	fmt.Fprintf(w, "Processed %d files\n", s.Files)
	if len(s.Empty) > 0 {
		fmt.Fprintf(w, "Files with no pairs: %d\n", len(s.Empty))
		for i, name := range s.Empty {
			if i == maxListedEmpty {
				fmt.Fprintf(w, "  ... and %d more\n", len(s.Empty)-maxListedEmpty)
				break
			}
			fmt.Fprintf(w, "  %s\n", name)
		}
	}
	if len(s.Failed) > 0 {
		fmt.Fprintf(w, "Failed files: %d\n", len(s.Failed))
		for _, name := range s.Failed {
			fmt.Fprintf(w, "  %s\n", name)
		}
	}
	fmt.Fprintf(w, "Total pairs: %d\n", s.Pairs)
	if s.Totals.SourceTokens > 0 || s.Totals.TargetWords > 0 {
		fmt.Fprintf(w, "Source morphemes: %d, target words: %d\n", s.Totals.SourceTokens, s.Totals.TargetWords)
	}
	if s.OutputDir != "" {
		fmt.Fprintf(w, "Output: %s\n", s.OutputDir)
	}
}
