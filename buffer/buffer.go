// Package buffer provides the immutable text value transformed by a patch
// run.
//
// A Buffer is never modified in place. Splice returns a successor Buffer
// whose version is one greater than its predecessor, so offsets computed
// against one version can be checked before they are used against another.
package buffer

import (
	"errors"
	"fmt"
	"strings"
)

var ErrOutOfBounds = errors.New("range out of bounds")

type Buffer struct {
	text    string
	version int
}

func New(text string) Buffer {
	return Buffer{text: text}
}

func (b Buffer) String() string {
	return b.text
}

func (b Buffer) Len() int {
	return len(b.text)
}

// Version counts the splices that produced b from the buffer given to New.
func (b Buffer) Version() int {
	return b.version
}

// Slice returns the text in [start, end).
func (b Buffer) Slice(start, end int) (string, error) {
	if err := b.Check(start, end); err != nil {
		return "", err
	}
	return b.text[start:end], nil
}

// Check reports whether [start, end) is a valid range of b.
func (b Buffer) Check(start, end int) error {
	if start < 0 || start > end || end > len(b.text) {
		return fmt.Errorf("%w: [%d, %d) in buffer of length %d", ErrOutOfBounds, start, end, len(b.text))
	}
	return nil
}

// Splice replaces [start, end) with with.  Bytes outside the range are
// carried over unchanged.
func (b Buffer) Splice(start, end int, with string) (Buffer, error) {
	if err := b.Check(start, end); err != nil {
		return b, err
	}
	var sb strings.Builder
	sb.Grow(len(b.text) - (end - start) + len(with))
	sb.WriteString(b.text[:start])
	sb.WriteString(with)
	sb.WriteString(b.text[end:])
	return Buffer{text: sb.String(), version: b.version + 1}, nil
}

// Equal compares contents only.
func (b Buffer) Equal(o Buffer) bool {
	return b.text == o.text
}
