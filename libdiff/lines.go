// Package libdiff renders the difference between two versions of a buffer
// as a unified diff.
package libdiff

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type Kind int

const (
	Equal Kind = iota
	Insert
	Delete
)

func (k Kind) prefix() string {
	switch k {
	case Insert:
		return "+"
	case Delete:
		return "-"
	default:
		return " "
	}
}

type Line struct {
	Kind Kind
	// Text excludes the line terminator.
	Text string
	// NoEOL marks a last line without a terminating newline.
	NoEOL bool
}

// Lines diffs from and to line by line.
func Lines(from, to string) []Line {
	diffCfg := diffpatch.New()
	a, b, lines := diffCfg.DiffLinesToChars(from, to)
	diffs := diffCfg.DiffMain(a, b, false)
	diffs = diffCfg.DiffCharsToLines(diffs, lines)
	res := make([]Line, 0, len(diffs))
	for i := range diffs {
		diff := &diffs[i]
		var k Kind
		switch diff.Type {
		case diffpatch.DiffInsert:
			k = Insert
		case diffpatch.DiffDelete:
			k = Delete
		default:
			k = Equal
		}
		text := diff.Text
		for text != "" {
			j := strings.IndexByte(text, '\n')
			if j == -1 {
				res = append(res, Line{Kind: k, Text: text, NoEOL: true})
				break
			}
			res = append(res, Line{Kind: k, Text: text[:j]})
			text = text[j+1:]
		}
	}
	return res
}

// Stat counts inserted and deleted lines.
func Stat(lines []Line) (inserted, deleted int) {
	for i := range lines {
		switch lines[i].Kind {
		case Insert:
			inserted++
		case Delete:
			deleted++
		}
	}
	return
}

// Hunk is a run of changed lines with surrounding context.  Line numbers
// are 1-based as in unified diff headers.
type Hunk struct {
	FromLine, FromCount int
	ToLine, ToCount     int
	Lines               []Line
}

// Hunks groups changes in lines, keeping context unchanged lines around
// each change.  Changes separated by at most 2*context unchanged lines share
// a hunk.
func Hunks(lines []Line, context int) []Hunk {
	n := len(lines)
	fromNo := make([]int, n+1)
	toNo := make([]int, n+1)
	for i, l := range lines {
		fromNo[i+1], toNo[i+1] = fromNo[i], toNo[i]
		if l.Kind != Insert {
			fromNo[i+1]++
		}
		if l.Kind != Delete {
			toNo[i+1]++
		}
	}
	var res []Hunk
	i := 0
	for i < n {
		for i < n && lines[i].Kind == Equal {
			i++
		}
		if i == n {
			break
		}
		start := max(0, i-context)
		last := i
		for {
			j := last + 1
			for j < n && lines[j].Kind == Equal {
				j++
			}
			if j < n && j-last-1 <= 2*context {
				last = j
				continue
			}
			break
		}
		stop := min(n, last+context+1)
		h := Hunk{
			FromLine:  fromNo[start] + 1,
			FromCount: fromNo[stop] - fromNo[start],
			ToLine:    toNo[start] + 1,
			ToCount:   toNo[stop] - toNo[start],
			Lines:     lines[start:stop],
		}
		if h.FromCount == 0 {
			h.FromLine--
		}
		if h.ToCount == 0 {
			h.ToLine--
		}
		res = append(res, h)
		i = stop
	}
	return res
}
