package libdiff

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLines(t *testing.T) {
	got := Lines("a\nb\nc\n", "a\nc\nd")
	want := []Line{
		{Kind: Equal, Text: "a"},
		{Kind: Delete, Text: "b"},
		{Kind: Equal, Text: "c"},
		{Kind: Insert, Text: "d", NoEOL: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	ins, del := Stat(got)
	if ins != 1 || del != 1 {
		t.Errorf("stat +%d -%d", ins, del)
	}
}

func TestUnifiedEqual(t *testing.T) {
	if d := Unified("a", "b", "same\n", "same\n", DefaultContext, nil); d != "" {
		t.Errorf("expected no diff, got %q", d)
	}
}

func TestUnifiedInsert(t *testing.T) {
	from := "one\ntwo\nthree\n"
	to := "one\ntwo\nnew\nthree\n"
	want := strings.Join([]string{
		"--- a/f.tsx",
		"+++ b/f.tsx",
		"@@ -1,3 +1,4 @@",
		" one",
		" two",
		"+new",
		" three",
		"",
	}, "\n")
	got := Unified("a/f.tsx", "b/f.tsx", from, to, DefaultContext, nil)
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestUnifiedDeleteAll(t *testing.T) {
	got := Unified("a", "b", "x\n", "", DefaultContext, nil)
	want := "--- a\n+++ b\n@@ -1 +0,0 @@\n-x\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestHunksSplit(t *testing.T) {
	var from, to []string
	for i := 1; i <= 20; i++ {
		from = append(from, fmt.Sprint(i))
		switch i {
		case 2:
			to = append(to, "two")
		case 18:
			continue
		default:
			to = append(to, fmt.Sprint(i))
		}
	}
	lines := Lines(strings.Join(from, "\n")+"\n", strings.Join(to, "\n")+"\n")
	hunks := Hunks(lines, 1)
	if len(hunks) != 2 {
		t.Fatalf("got %d hunks, want 2", len(hunks))
	}
	h0, h1 := hunks[0], hunks[1]
	if h0.FromLine != 1 || h0.FromCount != 3 || h0.ToLine != 1 || h0.ToCount != 3 {
		t.Errorf("hunk 0 -%d,%d +%d,%d", h0.FromLine, h0.FromCount, h0.ToLine, h0.ToCount)
	}
	if h1.FromLine != 17 || h1.FromCount != 3 || h1.ToLine != 17 || h1.ToCount != 2 {
		t.Errorf("hunk 1 -%d,%d +%d,%d", h1.FromLine, h1.FromCount, h1.ToLine, h1.ToCount)
	}
	if merged := Hunks(lines, 10); len(merged) != 1 {
		t.Errorf("wide context: got %d hunks, want 1", len(merged))
	}
}
