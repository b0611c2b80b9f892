// Package region turns a located anchor into the range an operation splices.
package region

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/signadot/anchorpatch/anchor"
	"github.com/signadot/anchorpatch/buffer"
	"github.com/signadot/anchorpatch/debug"
)

var ErrStaleMatch = errors.New("match is from another buffer version")

// Range is a half-open byte range of a buffer.
type Range struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

func (r Range) Len() int {
	return r.End - r.Start
}

func (r Range) Empty() bool {
	return r.Start == r.End
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}

// Mode places an operation relative to its anchor.
type Mode int

const (
	Before Mode = iota
	After
	Replace
)

var modeNames = map[Mode]string{
	Before:  "before",
	After:   "after",
	Replace: "replace",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return "Mode(" + strconv.Itoa(int(m)) + ")"
}

func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("invalid mode %q", s)
}

// Bounds selects which markers of a pair belong to the region.  It has no
// effect on single markers and blocks.
type Bounds int

const (
	BoundsExclusive Bounds = iota
	BoundsIncludeStart
	BoundsIncludeEnd
	BoundsInclusive
)

var boundsNames = map[Bounds]string{
	BoundsExclusive:    "exclusive",
	BoundsIncludeStart: "include-start",
	BoundsIncludeEnd:   "include-end",
	BoundsInclusive:    "inclusive",
}

func (b Bounds) String() string {
	if s, ok := boundsNames[b]; ok {
		return s
	}
	return "Bounds(" + strconv.Itoa(int(b)) + ")"
}

func ParseBounds(s string) (Bounds, error) {
	if s == "" {
		return BoundsExclusive, nil
	}
	for b, name := range boundsNames {
		if name == s {
			return b, nil
		}
	}
	return 0, fmt.Errorf("invalid bounds %q", s)
}

func (b Bounds) start() bool {
	return b == BoundsIncludeStart || b == BoundsInclusive
}

func (b Bounds) end() bool {
	return b == BoundsIncludeEnd || b == BoundsInclusive
}

// Resolve computes the range m denotes in b under mode and bounds.
func Resolve(b buffer.Buffer, m anchor.Match, mode Mode, bounds Bounds) (Range, error) {
	if m.Version != b.Version() {
		return Range{}, fmt.Errorf("%w: match v%d, buffer v%d", ErrStaleMatch, m.Version, b.Version())
	}
	span := anchor.Span{Start: m.Start, End: m.End}
	if m.Spec.Kind == anchor.MarkerPair {
		span = m.Inner()
		if bounds.start() {
			span.Start = m.Open.Start
		}
		if bounds.end() {
			span.End = m.Close.End
		}
	}
	var r Range
	switch mode {
	case Before:
		r = Range{Start: span.Start, End: span.Start}
	case After:
		r = Range{Start: span.End, End: span.End}
	case Replace:
		r = Range{Start: span.Start, End: span.End}
	default:
		return Range{}, fmt.Errorf("invalid mode %s", mode)
	}
	if err := b.Check(r.Start, r.End); err != nil {
		return Range{}, err
	}
	if debug.Resolve() {
		debug.Logf("resolve %s %s/%s in v%d: %s\n", m.Spec, mode, bounds, b.Version(), r)
	}
	return r, nil
}
