package spliceop

import (
	"fmt"

	"github.com/signadot/anchorpatch/buffer"
	"github.com/signadot/anchorpatch/region"
)

// Symbol is an operation kind.  Kinds are looked up by name through the
// registry, so patch files and the command line can refer to them.
type Symbol interface {
	String() string
	// Modes lists the modes the kind accepts; the first is the default.
	Modes() []region.Mode
	// Payload reports whether the kind carries a payload.
	Payload() bool
	Splice(b buffer.Buffer, r region.Range, payload string) (buffer.Buffer, error)
}

type name string

func (n name) String() string {
	return string(n)
}

const (
	insertName  name = "insert"
	replaceName name = "replace"
	removeName  name = "remove"
)

var (
	insertSym  = &insertSymbol{name: insertName}
	replaceSym = &replaceSymbol{name: replaceName}
	removeSym  = &removeSymbol{name: removeName}
)

func InsertKind() Symbol {
	return insertSym
}

func ReplaceKind() Symbol {
	return replaceSym
}

func RemoveKind() Symbol {
	return removeSym
}

type insertSymbol struct {
	name
}

func (insertSymbol) Modes() []region.Mode {
	return []region.Mode{region.Before, region.After}
}

func (insertSymbol) Payload() bool { return true }

func (s insertSymbol) Splice(b buffer.Buffer, r region.Range, payload string) (buffer.Buffer, error) {
	if !r.Empty() {
		return b, fmt.Errorf("%s needs an insertion point, got %s", s, r)
	}
	return b.Splice(r.Start, r.Start, payload)
}

type replaceSymbol struct {
	name
}

func (replaceSymbol) Modes() []region.Mode {
	return []region.Mode{region.Replace}
}

func (replaceSymbol) Payload() bool { return true }

func (replaceSymbol) Splice(b buffer.Buffer, r region.Range, payload string) (buffer.Buffer, error) {
	return b.Splice(r.Start, r.End, payload)
}

type removeSymbol struct {
	name
}

func (removeSymbol) Modes() []region.Mode {
	return []region.Mode{region.Replace}
}

func (removeSymbol) Payload() bool { return false }

func (removeSymbol) Splice(b buffer.Buffer, r region.Range, _ string) (buffer.Buffer, error) {
	return b.Splice(r.Start, r.End, "")
}
