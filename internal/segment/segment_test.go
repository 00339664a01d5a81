package segment

import (
	"reflect"
	"testing"
)

func TestNormalizeNewlines(t *testing.T) {
	got := NormalizeNewlines("a\r\nb\rc\nd")
	if got != "a\nb\nc\nd" {
		t.Fatalf("got %q", got)
	}
}

func TestSplit_BlankLinesSeparateBlocks(t *testing.T) {
	text := "その本を読んだ。\nI read that book.\n\n\n  見て。  \nLook;\n over there.\n\n"
	blocks := Split(text)
	if len(blocks) != 3 {
		t.Fatalf("blocks=%d, want 3: %+v", len(blocks), blocks)
	}
	if want := []string{"その本を読んだ。", "I read that book."}; !reflect.DeepEqual(blocks[0].Lines, want) {
		t.Fatalf("block 0 = %q, want %q", blocks[0].Lines, want)
	}
	if want := []string{"見て。", "Look;", "over there."}; !reflect.DeepEqual(blocks[1].Lines, want) {
		t.Fatalf("block 1 = %q, want %q", blocks[1].Lines, want)
	}
	if len(blocks[2].Lines) != 0 {
		t.Fatalf("trailing block should be empty, got %q", blocks[2].Lines)
	}
	for i, b := range blocks {
		if b.Index != i {
			t.Fatalf("block %d has index %d", i, b.Index)
		}
	}
}

func TestSplit_WhitespaceOnlyLineDoesNotSplit(t *testing.T) {
	blocks := Split("一行目です。\n   \nSecond line.")
	if len(blocks) != 1 || len(blocks[0].Lines) != 2 {
		t.Fatalf("got %+v", blocks)
	}
}

func TestStripNotes_Headers(t *testing.T) {
	body := "本文です。\nBody text.\n"
	stripped := "本文です。\nBody text."
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"full-width colon", body + "\n注：\n1. 補足説明。\n", stripped},
		{"ascii colon", body + "\n注:\nfoo\n", stripped},
		{"bare label", body + "\n注\nfoo\n", stripped},
		{"notes", body + "\nNotes:\nSee appendix.\n", stripped},
		{"note lower", body + "\nnote\nSee appendix.\n", stripped},
		{"header at end", body + "\nNOTES", stripped},
		{"first header wins", body + "\nNotes\nx\n\n注：\ny\n", stripped},
		{"inline label kept", body + "\n注：補足はこちら\n", body + "\n注：補足はこちら\n"},
		{"notebook kept", body + "\nNotebook\n", body + "\nNotebook\n"},
		{"no blank line before", body + "注：\nfoo\n", body + "注：\nfoo\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := StripNotes(tc.in); got != tc.want {
				t.Fatalf("StripNotes=%q, want %q", got, tc.want)
			}
		})
	}
}

func TestSegment_TrailingNotesExcluded(t *testing.T) {
	doc := "その本を読んだ。\r\nI read that book.\r\n\r\n注：\r\n1\r\nこれは脚注です。\r\nThis is a footnote.\r\n"
	blocks := Segment(doc, Options{StripNotes: true})
	if len(blocks) != 1 {
		t.Fatalf("blocks=%d, want 1: %+v", len(blocks), blocks)
	}
	for _, l := range blocks[0].Lines {
		if l == "これは脚注です。" || l == "This is a footnote." {
			t.Fatalf("footnote line leaked into block: %q", l)
		}
	}

	kept := Segment(doc, Options{})
	if len(kept) != 2 {
		t.Fatalf("without StripNotes blocks=%d, want 2", len(kept))
	}
}
