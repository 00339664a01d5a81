package corpus

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/hyperifyio/goalign/internal/pair"
)

// MergedWriter concatenates documents into one JSON Lines dataset, writing a
// sentinel record after each document.
type MergedWriter struct {
	out      *JSONLWriter
	sentinel pair.Pair
	docs     int
	records  int
}

// NewMergedWriter wraps w. A zero sentinel uses DefaultSentinel.
func NewMergedWriter(w io.Writer, f Fields, sentinel pair.Pair) *MergedWriter {
	if sentinel.Source == "" && sentinel.Target == "" {
		sentinel = DefaultSentinel
	}
	return &MergedWriter{out: NewJSONLWriter(w, f), sentinel: sentinel}
}

// WriteDocument writes the pairs of one document followed by the sentinel.
// A document without pairs still gets its sentinel so document boundaries
// stay countable.
func (m *MergedWriter) WriteDocument(pairs []pair.Pair) error {
	if err := m.out.WriteAll(pairs); err != nil {
		return err
	}
	m.records += len(pairs)
	return m.endDocument()
}

// CopyDocument copies the non-blank lines of an existing JSON Lines file
// verbatim, then writes the sentinel.
func (m *MergedWriter) CopyDocument(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		if err := m.out.WriteRaw(line); err != nil {
			return err
		}
		m.records++
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("copy document: %w", err)
	}
	return m.endDocument()
}

func (m *MergedWriter) endDocument() error {
	if err := m.out.Write(m.sentinel); err != nil {
		return err
	}
	m.docs++
	return nil
}

// Documents returns how many documents were written.
func (m *MergedWriter) Documents() int { return m.docs }

// Records returns how many non-sentinel records were written.
func (m *MergedWriter) Records() int { return m.records }

// Flush writes any buffered data.
func (m *MergedWriter) Flush() error { return m.out.Flush() }

// IsSentinel reports whether p is the given end-of-document marker.
func IsSentinel(p, sentinel pair.Pair) bool {
	return p == sentinel
}
