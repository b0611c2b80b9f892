// Package anchorpatch applies ordered, literally anchored text edits to a
// buffer.
//
// Run feeds each operation the buffer produced by all operations before it
// and records one outcome per operation.  A run never stops early: an
// operation whose anchor is missing or ambiguous leaves the buffer as it
// was, and the run continues with the next operation.  Callers inspect the
// report to decide whether to keep the result.
//
// Order matters.  An operation's anchor is searched for in the current
// buffer, so it may be found inside text inserted by an earlier operation,
// and an earlier operation may consume text a later one expects.
package anchorpatch

import (
	"github.com/signadot/anchorpatch/buffer"
	"github.com/signadot/anchorpatch/debug"
	"github.com/signadot/anchorpatch/report"
	"github.com/signadot/anchorpatch/spliceop"
)

type runState struct {
	env   map[string]any
	trace bool
}

type RunOption func(*runState)

// WithEnv sets the variables visible to operation conditions.
func WithEnv(env map[string]any) RunOption {
	return func(rs *runState) { rs.env = env }
}

// WithTrace records the buffer after every operation in Report.Trace.
func WithTrace(v bool) RunOption {
	return func(rs *runState) { rs.trace = v }
}

func Run(initial buffer.Buffer, ops []*spliceop.Op, opts ...RunOption) *report.Report {
	rs := &runState{}
	for _, opt := range opts {
		opt(rs)
	}
	res := &report.Report{
		Initial:  initial,
		Outcomes: make([]report.Outcome, 0, len(ops)),
	}
	cur := initial
	for i, op := range ops {
		next, out := op.Apply(cur, rs.env)
		out.Index = i
		if debug.Run() {
			debug.Logf("run %s\n", &out)
		}
		res.Outcomes = append(res.Outcomes, out)
		if rs.trace {
			res.Trace = append(res.Trace, next)
		}
		cur = next
	}
	res.Final = cur
	return res
}

func RunString(text string, ops []*spliceop.Op, opts ...RunOption) (string, *report.Report) {
	res := Run(buffer.New(text), ops, opts...)
	return res.Final.String(), res
}
