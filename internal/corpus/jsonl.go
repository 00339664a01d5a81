package corpus

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hyperifyio/goalign/internal/pair"
)

// Fields names the JSON keys of a record.
type Fields struct {
	Source string
	Target string
}

// DefaultFields is the Japanese/English naming used by this corpus.
func DefaultFields() Fields {
	return Fields{Source: "ja", Target: "en"}
}

// DefaultSentinel marks the end of one work in a merged dataset.
var DefaultSentinel = pair.Pair{
	Source: "%%%%%%%%この作品ここまで%%%%%%%%",
	Target: "%%%%%%%%THISWORKENDSHERE%%%%%%%%",
}

func (f Fields) withDefaults() Fields {
	d := DefaultFields()
	if strings.TrimSpace(f.Source) == "" {
		f.Source = d.Source
	}
	if strings.TrimSpace(f.Target) == "" {
		f.Target = d.Target
	}
	return f
}

// Encode renders p as one JSON object, target key first. Non-ASCII text is
// kept verbatim and HTML characters are not escaped.
func (f Fields) Encode(p pair.Pair) ([]byte, error) {
	f = f.withDefaults()
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kv := range [][2]string{{f.Target, p.Target}, {f.Source, p.Source}} {
		if i > 0 {
			buf.WriteString(", ")
		}
		if err := writeJSONString(&buf, kv[0]); err != nil {
			return nil, err
		}
		buf.WriteString(": ")
		if err := writeJSONString(&buf, kv[1]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Decode parses one record produced by Encode (or any object with the
// configured keys).
func (f Fields) Decode(line []byte) (pair.Pair, error) {
	f = f.withDefaults()
	var m map[string]string
	if err := json.Unmarshal(line, &m); err != nil {
		return pair.Pair{}, fmt.Errorf("decode record: %w", err)
	}
	src, okS := m[f.Source]
	tgt, okT := m[f.Target]
	if !okS || !okT {
		return pair.Pair{}, errors.New("decode record: missing source or target key")
	}
	return pair.Pair{Source: src, Target: tgt}, nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encoder appends a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

// JSONLWriter writes one record per line.
type JSONLWriter struct {
	w      *bufio.Writer
	fields Fields
}

// NewJSONLWriter wraps w. Call Flush when done.
func NewJSONLWriter(w io.Writer, f Fields) *JSONLWriter {
	return &JSONLWriter{w: bufio.NewWriter(w), fields: f.withDefaults()}
}

// Write appends a single record.
func (j *JSONLWriter) Write(p pair.Pair) error {
	b, err := j.fields.Encode(p)
	if err != nil {
		return err
	}
	if _, err := j.w.Write(b); err != nil {
		return err
	}
	return j.w.WriteByte('\n')
}

// WriteAll appends every pair in order.
func (j *JSONLWriter) WriteAll(pairs []pair.Pair) error {
	for _, p := range pairs {
		if err := j.Write(p); err != nil {
			return err
		}
	}
	return nil
}

// WriteRaw appends an already-encoded record line verbatim.
func (j *JSONLWriter) WriteRaw(line []byte) error {
	if _, err := j.w.Write(line); err != nil {
		return err
	}
	return j.w.WriteByte('\n')
}

// Flush writes any buffered data.
func (j *JSONLWriter) Flush() error {
	return j.w.Flush()
}

// ReadJSONL decodes every non-blank line of r.
func ReadJSONL(r io.Reader, f Fields) ([]pair.Pair, error) {
	var out []pair.Pair
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for n := 1; sc.Scan(); n++ {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		p, err := f.Decode(line)
		if err != nil {
			return out, fmt.Errorf("line %d: %w", n, err)
		}
		out = append(out, p)
	}
	return out, sc.Err()
}
