package pair

import (
	"reflect"
	"testing"

	"github.com/hyperifyio/goalign/internal/classify"
)

func src(s string) classify.Line { return classify.Line{Text: s, Kind: classify.Source} }
func tgt(s string) classify.Line { return classify.Line{Text: s, Kind: classify.Target} }

func TestTierFor(t *testing.T) {
	tests := []struct {
		s, t  int
		fanIn bool
		want  Tier
	}{
		{0, 0, true, Empty},
		{0, 3, true, Empty},
		{2, 0, true, Empty},
		{1, 1, true, Equal},
		{3, 3, false, Equal},
		{1, 2, true, FanIn},
		{1, 2, false, Mismatched},
		{2, 1, true, Mismatched},
		{2, 5, true, Mismatched},
	}
	for _, tc := range tests {
		if got := TierFor(tc.s, tc.t, tc.fanIn); got != tc.want {
			t.Errorf("TierFor(%d,%d,%v)=%v, want %v", tc.s, tc.t, tc.fanIn, got, tc.want)
		}
	}
}

func TestReconcile_Equal(t *testing.T) {
	lines := []classify.Line{src("その本を読んだ。"), tgt("I read that book.")}
	got, tier := ReconcileWithTier(lines, DefaultOptions())
	want := []Pair{{Source: "その本を読んだ。", Target: "I read that book."}}
	if tier != Equal || !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v %+v, want equal %+v", tier, got, want)
	}
}

func TestReconcile_EqualInterleavedKeepsOrderAndFilters(t *testing.T) {
	lines := []classify.Line{
		src("一つ目の文。"), tgt("First one."),
		src("はい"), tgt("Yes."),
		src("三つ目の文。"), tgt("Third one."),
	}
	got := Reconcile(lines, DefaultOptions())
	want := []Pair{
		{Source: "一つ目の文。", Target: "First one."},
		{Source: "三つ目の文。", Target: "Third one."},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestReconcile_FanIn(t *testing.T) {
	lines := []classify.Line{src("見て。"), tgt("Look;"), tgt("over there.")}
	got, tier := ReconcileWithTier(lines, DefaultOptions())
	want := []Pair{{Source: "見て。", Target: "Look; over there."}}
	if tier != FanIn || !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v %+v, want fan-in %+v", tier, got, want)
	}
}

func TestJoinTargets_SemicolonSpacing(t *testing.T) {
	got := JoinTargets([]string{"one;two", "three;   four", "five"})
	if want := "one; two three; four five"; got != want {
		t.Fatalf("JoinTargets=%q, want %q", got, want)
	}
}

func TestReconcile_FanInDisabledFallsBack(t *testing.T) {
	lines := []classify.Line{src("見て。"), tgt("Look;"), tgt("over there.")}
	got, tier := ReconcileWithTier(lines, Options{MinChars: 3})
	want := []Pair{{Source: "見て。", Target: "Look;"}}
	if tier != Mismatched || !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v %+v, want mismatched %+v", tier, got, want)
	}
}

func TestReconcile_MismatchedUsesLeadingLines(t *testing.T) {
	lines := []classify.Line{
		src("最初の文。"), src("二番目の文。"), src("三番目の文。"),
		tgt("The first."), tgt("The second."),
	}
	got, tier := ReconcileWithTier(lines, DefaultOptions())
	want := []Pair{
		{Source: "最初の文。", Target: "The first."},
		{Source: "二番目の文。", Target: "The second."},
	}
	if tier != Mismatched || !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v %+v, want %+v", tier, got, want)
	}
}

func TestReconcile_EmptySides(t *testing.T) {
	for _, lines := range [][]classify.Line{
		nil,
		{src("日本語だけ。")},
		{tgt("English only."), tgt("Still English.")},
	} {
		got, tier := ReconcileWithTier(lines, DefaultOptions())
		if tier != Empty || len(got) != 0 {
			t.Fatalf("lines %+v: got %v %+v", lines, tier, got)
		}
	}
}

func TestReconcile_NoiseLinesIgnored(t *testing.T) {
	base := []classify.Line{src("その本を読んだ。"), tgt("I read that book.")}
	noisy := append([]classify.Line{{Text: "---", Kind: classify.Noise}}, base...)
	noisy = append(noisy, classify.Line{Text: "12", Kind: classify.Noise})
	if a, b := Reconcile(base, DefaultOptions()), Reconcile(noisy, DefaultOptions()); !reflect.DeepEqual(a, b) {
		t.Fatalf("noise changed output: %+v vs %+v", a, b)
	}
}

func TestReconcile_MinCharsCountsRunes(t *testing.T) {
	lines := []classify.Line{src("読む"), tgt("Read")}
	if got := Reconcile(lines, DefaultOptions()); len(got) != 0 {
		t.Fatalf("two-rune source should be dropped, got %+v", got)
	}
	lines = []classify.Line{src("読んだ"), tgt("Yes")}
	if got := Reconcile(lines, DefaultOptions()); len(got) != 1 {
		t.Fatalf("three-rune sides should be kept, got %+v", got)
	}
}
