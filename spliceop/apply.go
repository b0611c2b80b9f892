package spliceop

import (
	"errors"

	"github.com/signadot/anchorpatch/anchor"
	"github.com/signadot/anchorpatch/buffer"
	"github.com/signadot/anchorpatch/debug"
	"github.com/signadot/anchorpatch/region"
	"github.com/signadot/anchorpatch/report"
)

// Apply runs o against b.  It never fails: when o cannot be applied, b is
// returned unchanged and the outcome says why.  The outcome's Index is left
// for the caller to set.
func (o *Op) Apply(b buffer.Buffer, env map[string]any) (buffer.Buffer, report.Outcome) {
	out := report.Outcome{Name: o.name}
	skip := func(st report.Status, msg string) (buffer.Buffer, report.Outcome) {
		out.Status = st
		out.Message = msg
		before := b
		out.Before = &before
		return b, out
	}
	if o.when != nil {
		ok, err := o.when.eval(env)
		if err != nil {
			return skip(report.Skipped, err.Error())
		}
		if !ok {
			return skip(report.Skipped, "condition "+o.whenSrc+" is false")
		}
	}
	m, err := anchor.Locate(b, o.anchor)
	if err != nil {
		var lerr *anchor.LocateError
		if errors.As(err, &lerr) {
			out.Occurrences = len(lerr.Offsets)
		}
		switch {
		case errors.Is(err, anchor.ErrAmbiguous):
			return skip(report.AnchorAmbiguous, err.Error())
		case errors.Is(err, anchor.ErrNotFound):
			return skip(report.AnchorNotFound, err.Error())
		default:
			return skip(report.Skipped, err.Error())
		}
	}
	r, err := region.Resolve(b, m, o.mode, o.bounds)
	if err != nil {
		return skip(report.Skipped, err.Error())
	}
	res, err := o.sym.Splice(b, r, o.payload)
	if err != nil {
		return skip(report.Skipped, err.Error())
	}
	if debug.Splice() {
		debug.Logf("splice %s at %s: v%d -> v%d, %d -> %d bytes\n", o, r, b.Version(), res.Version(), b.Len(), res.Len())
	}
	out.Status = report.Applied
	out.Range = &r
	return res, out
}
