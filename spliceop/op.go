package spliceop

import (
	"errors"
	"fmt"
	"slices"

	"github.com/signadot/anchorpatch/anchor"
	"github.com/signadot/anchorpatch/region"
)

var ErrInvalidOp = errors.New("invalid operation")

// Op is one anchored edit.  Ops are built with New and are not modified
// afterwards; the same Op may be applied to any number of buffers.
type Op struct {
	name       string
	sym        Symbol
	anchor     anchor.Spec
	payload    string
	payloadSet bool
	mode       region.Mode
	modeSet    bool
	bounds     region.Bounds
	when       *condition
	whenSrc    string
}

type OpOption func(*Op)

func Named(n string) OpOption {
	return func(o *Op) { o.name = n }
}

func Payload(p string) OpOption {
	return func(o *Op) { o.payload = p; o.payloadSet = true }
}

func At(m region.Mode) OpOption {
	return func(o *Op) { o.mode = m; o.modeSet = true }
}

func WithBounds(b region.Bounds) OpOption {
	return func(o *Op) { o.bounds = b }
}

// When makes the op conditional on an expr-lang boolean expression
// evaluated against the run environment.
func When(expr string) OpOption {
	return func(o *Op) { o.whenSrc = expr }
}

func New(sym Symbol, spec anchor.Spec, opts ...OpOption) (*Op, error) {
	if sym == nil {
		return nil, fmt.Errorf("%w: no kind", ErrInvalidOp)
	}
	o := &Op{sym: sym, anchor: spec}
	for _, opt := range opts {
		opt(o)
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOp, err)
	}
	modes := sym.Modes()
	if !o.modeSet {
		o.mode = modes[0]
	}
	if !slices.Contains(modes, o.mode) {
		return nil, fmt.Errorf("%w: %s does not support mode %s", ErrInvalidOp, sym, o.mode)
	}
	if sym.Payload() && !o.payloadSet {
		return nil, fmt.Errorf("%w: %s requires a payload", ErrInvalidOp, sym)
	}
	if !sym.Payload() && o.payloadSet {
		return nil, fmt.Errorf("%w: %s takes no payload", ErrInvalidOp, sym)
	}
	if o.bounds != region.BoundsExclusive && spec.Kind != anchor.MarkerPair {
		return nil, fmt.Errorf("%w: bounds %s only apply to marker pairs", ErrInvalidOp, o.bounds)
	}
	if o.whenSrc != "" {
		c, err := compileCondition(o.whenSrc)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidOp, err)
		}
		o.when = c
	}
	return o, nil
}

// NewNamed is New with the kind given by its registered name.
func NewNamed(kind string, spec anchor.Spec, opts ...OpOption) (*Op, error) {
	sym, err := Lookup(kind)
	if err != nil {
		return nil, err
	}
	return New(sym, spec, opts...)
}

func Insert(spec anchor.Spec, payload string, mode region.Mode) (*Op, error) {
	return New(InsertKind(), spec, Payload(payload), At(mode))
}

func Replace(spec anchor.Spec, payload string) (*Op, error) {
	return New(ReplaceKind(), spec, Payload(payload))
}

func Remove(spec anchor.Spec, opts ...OpOption) (*Op, error) {
	return New(RemoveKind(), spec, opts...)
}

func (o *Op) Name() string {
	return o.name
}

func (o *Op) Kind() Symbol {
	return o.sym
}

func (o *Op) Anchor() anchor.Spec {
	return o.anchor
}

func (o *Op) Payload() (string, bool) {
	return o.payload, o.payloadSet
}

func (o *Op) Mode() region.Mode {
	return o.mode
}

func (o *Op) Bounds() region.Bounds {
	return o.bounds
}

func (o *Op) Condition() string {
	return o.whenSrc
}

func (o *Op) String() string {
	res := fmt.Sprintf("%s %s %s", o.sym, o.mode, o.anchor)
	if o.name != "" {
		res = o.name + ": " + res
	}
	return res
}
