package anchor

import (
	"fmt"
	"strings"

	"github.com/signadot/anchorpatch/buffer"
	"github.com/signadot/anchorpatch/debug"
)

// Span is a half-open byte interval.
type Span struct {
	Start, End int
}

func (s Span) Len() int {
	return s.End - s.Start
}

// Match is the result of locating a Spec in one version of a buffer.
//
// For single markers and blocks, Start and End delimit the matched text.
// For pairs, Open and Close are the spans of the start and end markers and
// [Start, End) covers both markers and everything between them.
type Match struct {
	Spec    Spec
	Version int
	Start   int
	End     int
	Open    Span
	Close   Span
}

// Inner is the text between the markers of a pair, or the matched text
// otherwise.
func (m Match) Inner() Span {
	if m.Spec.Kind == MarkerPair {
		return Span{Start: m.Open.End, End: m.Close.Start}
	}
	return Span{Start: m.Start, End: m.End}
}

// LocateError describes why a Spec could not be located.  It wraps
// ErrNotFound or ErrAmbiguous.
type LocateError struct {
	Spec Spec
	// Which names the missing or ambiguous text ("start", "end" or "" for
	// single markers and blocks).
	Which string
	// Offsets of every occurrence when ambiguous.
	Offsets []int
	Err     error
}

func (e *LocateError) Error() string {
	what := e.Spec.String()
	if e.Which != "" {
		what = e.Which + " of " + what
	}
	if len(e.Offsets) > 0 {
		return fmt.Sprintf("%s: %v, %d occurrences at %v", e.Err, what, len(e.Offsets), e.Offsets)
	}
	return fmt.Sprintf("%s: %v", e.Err, what)
}

func (e *LocateError) Unwrap() error {
	return e.Err
}

// FindAll returns the offsets of the non-overlapping occurrences of needle
// in text, scanning left to right from from.
func FindAll(text, needle string, from int) []int {
	if needle == "" || from > len(text) {
		return nil
	}
	var res []int
	for i := from; i <= len(text)-len(needle); {
		j := strings.Index(text[i:], needle)
		if j == -1 {
			break
		}
		res = append(res, i+j)
		i += j + len(needle)
	}
	return res
}

// Locate finds the unique position of s in b.
func Locate(b buffer.Buffer, s Spec) (Match, error) {
	if err := s.Validate(); err != nil {
		return Match{}, err
	}
	var (
		m   Match
		err error
	)
	switch s.Kind {
	case MarkerPair:
		m, err = locatePair(b, s)
	default:
		m, err = locateUnique(b, s)
	}
	if debug.Locate() {
		if err != nil {
			debug.Logf("locate %s in v%d: %v\n", s, b.Version(), err)
		} else {
			debug.Logf("locate %s in v%d: [%d, %d)\n", s, b.Version(), m.Start, m.End)
		}
	}
	return m, err
}

func locateUnique(b buffer.Buffer, s Spec) (Match, error) {
	span, err := unique(b.String(), s.Text)
	if err != nil {
		err.Spec = s
		return Match{}, err
	}
	return Match{Spec: s, Version: b.Version(), Start: span.Start, End: span.End}, nil
}

func unique(text, needle string) (Span, *LocateError) {
	offs := FindAll(text, needle, 0)
	switch len(offs) {
	case 0:
		return Span{}, &LocateError{Err: ErrNotFound}
	case 1:
		return Span{Start: offs[0], End: offs[0] + len(needle)}, nil
	default:
		return Span{}, &LocateError{Offsets: offs, Err: ErrAmbiguous}
	}
}

// locatePair takes the first start marker and the nearest end marker after
// it.  Pairs are never ambiguous.
func locatePair(b buffer.Buffer, s Spec) (Match, error) {
	text := b.String()
	i := strings.Index(text, s.Start)
	if i == -1 {
		return Match{}, &LocateError{Spec: s, Which: "start", Err: ErrNotFound}
	}
	open := Span{Start: i, End: i + len(s.Start)}
	j := strings.Index(text[open.End:], s.End)
	if j == -1 {
		return Match{}, &LocateError{Spec: s, Which: "end", Err: ErrNotFound}
	}
	shut := Span{Start: open.End + j, End: open.End + j + len(s.End)}
	return Match{
		Spec:    s,
		Version: b.Version(),
		Start:   open.Start,
		End:     shut.End,
		Open:    open,
		Close:   shut,
	}, nil
}
