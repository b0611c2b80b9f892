// Package anchor locates literal anchors in a buffer.
//
// An anchor is one of three kinds: a single marker, a pair of start and end
// markers, or an exact block of text.  Matching is literal substring
// equality; there is no pattern syntax.  Locate never guesses: a single
// marker or block found more than once is reported as ambiguous.
package anchor

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrEmptyAnchor = errors.New("empty anchor")
	ErrNotFound    = errors.New("anchor not found")
	ErrAmbiguous   = errors.New("anchor ambiguous")
)

type Kind int

const (
	SingleMarker Kind = iota
	MarkerPair
	ExactBlock
)

func (k Kind) String() string {
	switch k {
	case SingleMarker:
		return "marker"
	case MarkerPair:
		return "pair"
	case ExactBlock:
		return "block"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Spec identifies the anchor of an operation.  The zero value is not a valid
// Spec; use Marker, Pair or Block.
type Spec struct {
	Kind  Kind
	Text  string
	Start string
	End   string
}

func Marker(text string) (Spec, error) {
	if text == "" {
		return Spec{}, fmt.Errorf("%w: marker", ErrEmptyAnchor)
	}
	return Spec{Kind: SingleMarker, Text: text}, nil
}

func Pair(start, end string) (Spec, error) {
	if start == "" {
		return Spec{}, fmt.Errorf("%w: pair start", ErrEmptyAnchor)
	}
	if end == "" {
		return Spec{}, fmt.Errorf("%w: pair end", ErrEmptyAnchor)
	}
	return Spec{Kind: MarkerPair, Start: start, End: end}, nil
}

func Block(text string) (Spec, error) {
	if text == "" {
		return Spec{}, fmt.Errorf("%w: block", ErrEmptyAnchor)
	}
	return Spec{Kind: ExactBlock, Text: text}, nil
}

// Validate reports whether s could have come from Marker, Pair or Block.
func (s Spec) Validate() error {
	var err error
	switch s.Kind {
	case SingleMarker:
		_, err = Marker(s.Text)
	case MarkerPair:
		_, err = Pair(s.Start, s.End)
	case ExactBlock:
		_, err = Block(s.Text)
	default:
		err = fmt.Errorf("unknown anchor kind %s", s.Kind)
	}
	return err
}

func (s Spec) String() string {
	switch s.Kind {
	case MarkerPair:
		return fmt.Sprintf("pair(%s, %s)", abbrev(s.Start), abbrev(s.End))
	default:
		return fmt.Sprintf("%s(%s)", s.Kind, abbrev(s.Text))
	}
}

const abbrevLen = 40

func abbrev(s string) string {
	if len(s) > abbrevLen {
		s = s[:abbrevLen-3] + "..."
	}
	return strconv.Quote(s)
}
