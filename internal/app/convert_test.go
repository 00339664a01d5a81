package app

import (
    "context"
    "os"
    "path/filepath"
    "reflect"
    "testing"

    "github.com/hyperifyio/goalign/internal/corpus"
    "github.com/hyperifyio/goalign/internal/pair"
)

func TestConvertTSVDir_WritesJSONL(t *testing.T) {
    t.Parallel()
    in := writeInputs(t, map[string]string{
        "a.tsv":  "その本を読んだ。\tI read that book.\n",
        "b.tsv":  "I came.\t私は来た。\n",
        "c.alm":  "ignored",
    })
    out := filepath.Join(t.TempDir(), "jsonl")

    res, err := ConvertTSVDir(context.Background(), in, out, false, corpus.DefaultFields())
    if err != nil {
        t.Fatalf("ConvertTSVDir: %v", err)
    }
    if res.Files != 2 || res.Records != 2 {
        t.Fatalf("res=%+v", res)
    }
    b, err := os.ReadFile(filepath.Join(out, "a.jsonl"))
    if err != nil {
        t.Fatalf("read a.jsonl: %v", err)
    }
    if string(b) != `{"en": "I read that book.", "ja": "その本を読んだ。"}`+"\n" {
        t.Fatalf("a.jsonl=%s", b)
    }

    swapped := filepath.Join(t.TempDir(), "swapped")
    if _, err := ConvertTSVDir(context.Background(), in, swapped, true, corpus.DefaultFields()); err != nil {
        t.Fatalf("ConvertTSVDir swap: %v", err)
    }
    b, _ = os.ReadFile(filepath.Join(swapped, "b.jsonl"))
    if string(b) != `{"en": "I came.", "ja": "私は来た。"}`+"\n" {
        t.Fatalf("swapped b.jsonl=%s", b)
    }
}

func TestMergeJSONLDir_SentinelPerFile(t *testing.T) {
    t.Parallel()
    in := writeInputs(t, map[string]string{
        "2.jsonl": `{"en": "Second.", "ja": "二つ目。"}` + "\n",
        "1.jsonl": `{"en": "First.", "ja": "一つ目。"}` + "\n\n" + `{"en": "Again.", "ja": "もう一度。"}` + "\n",
    })
    outPath := filepath.Join(in, "merged.jsonl")
    sentinel := pair.Pair{Source: "終", Target: "END"}

    res, err := MergeJSONLDir(context.Background(), in, outPath, corpus.DefaultFields(), sentinel)
    if err != nil {
        t.Fatalf("MergeJSONLDir: %v", err)
    }
    if res.Files != 2 || res.Records != 3 {
        t.Fatalf("res=%+v", res)
    }
    f, err := os.Open(outPath)
    if err != nil {
        t.Fatalf("open: %v", err)
    }
    defer f.Close()
    got, err := corpus.ReadJSONL(f, corpus.DefaultFields())
    if err != nil {
        t.Fatalf("ReadJSONL: %v", err)
    }
    want := []pair.Pair{
        {Source: "一つ目。", Target: "First."},
        {Source: "もう一度。", Target: "Again."},
        sentinel,
        {Source: "二つ目。", Target: "Second."},
        sentinel,
    }
    if !reflect.DeepEqual(got, want) {
        t.Fatalf("got %+v\nwant %+v", got, want)
    }
}
