package extract

import (
    "errors"
    "fmt"
    "io"
    "strings"
    "unicode/utf8"

    "golang.org/x/net/html/charset"
    "golang.org/x/text/encoding"
    "golang.org/x/text/transform"
)

// ErrUnknownEncoding is returned when an encoding label cannot be resolved.
var ErrUnknownEncoding = errors.New("unknown text encoding")

// Encoding decodes document bytes to text. Bytes that do not decode are
// dropped in place; decoding never fails on content.
type Encoding struct {
    // Name is the canonical WHATWG name, e.g. "utf-8" or "shift_jis".
    Name string
    enc  encoding.Encoding
}

// LookupEncoding resolves a label such as "utf-8", "sjis" or "Shift_JIS".
func LookupEncoding(label string) (Encoding, error) {
    l := strings.TrimSpace(label)
    if l == "" {
        l = "utf-8"
    }
    enc, name := charset.Lookup(l)
    if enc == nil {
        return Encoding{}, fmt.Errorf("%w: %q", ErrUnknownEncoding, label)
    }
    return Encoding{Name: name, enc: enc}, nil
}

func (e Encoding) isUTF8() bool {
    return e.enc == nil || e.Name == "utf-8"
}

// NewReader wraps r with a decoder. UTF-8 input is passed through and
// cleaned by Sanitize afterwards.
func (e Encoding) NewReader(r io.Reader) io.Reader {
    if e.isUTF8() {
        return r
    }
    return transform.NewReader(r, e.enc.NewDecoder())
}

// Decode converts raw bytes to text.
func (e Encoding) Decode(raw []byte) string {
    if e.isUTF8() {
        return e.Sanitize(raw)
    }
    // The decoders substitute U+FFFD rather than fail, so the error is only
    // ever a truncated tail; whatever was decoded is kept.
    out, _, _ := transform.Bytes(e.enc.NewDecoder(), raw)
    return e.Sanitize(out)
}

// Sanitize drops undecodable input from already-decoded bytes: invalid UTF-8
// sequences for UTF-8 input, replacement runes produced by other decoders.
// A leading byte order mark is removed.
func (e Encoding) Sanitize(decoded []byte) string {
    var s string
    if e.isUTF8() {
        s = string(decoded)
        if !utf8.ValidString(s) {
            s = strings.ToValidUTF8(s, "")
        }
    } else {
        s = strings.ReplaceAll(string(decoded), string(utf8.RuneError), "")
    }
    return strings.TrimPrefix(s, "\ufeff")
}
