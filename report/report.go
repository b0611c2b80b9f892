// Package report holds the result of a patch run: the final buffer and one
// outcome per operation, in operation order.
package report

import (
	"fmt"
	"strconv"

	"github.com/signadot/anchorpatch/buffer"
	"github.com/signadot/anchorpatch/region"
)

type Status int

const (
	Applied Status = iota
	AnchorNotFound
	AnchorAmbiguous
	Skipped
)

var statusNames = map[Status]string{
	Applied:         "applied",
	AnchorNotFound:  "anchor-not-found",
	AnchorAmbiguous: "anchor-ambiguous",
	Skipped:         "skipped",
}

func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return "Status(" + strconv.Itoa(int(s)) + ")"
}

func (s Status) MarshalText() ([]byte, error) {
	n, ok := statusNames[s]
	if !ok {
		return nil, fmt.Errorf("invalid status %d", int(s))
	}
	return []byte(n), nil
}

func (s *Status) UnmarshalText(d []byte) error {
	for st, n := range statusNames {
		if n == string(d) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("invalid status %q", string(d))
}

// Outcome records what one operation did.
type Outcome struct {
	Index   int    `json:"index" yaml:"index"`
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Status  Status `json:"status" yaml:"status"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`

	// Range is the spliced range in the buffer the operation saw.  Only set
	// when Applied.
	Range *region.Range `json:"range,omitempty" yaml:"range,omitempty"`

	// Occurrences is the number of anchor occurrences when ambiguous.
	Occurrences int `json:"occurrences,omitempty" yaml:"occurrences,omitempty"`

	// Before is the buffer the operation ran against, kept for outcomes
	// other than Applied.
	Before *buffer.Buffer `json:"-" yaml:"-"`
}

func (o *Outcome) Label() string {
	if o.Name != "" {
		return fmt.Sprintf("#%d %s", o.Index, o.Name)
	}
	return fmt.Sprintf("#%d", o.Index)
}

func (o *Outcome) String() string {
	if o.Message == "" {
		return fmt.Sprintf("%s: %s", o.Label(), o.Status)
	}
	return fmt.Sprintf("%s: %s: %s", o.Label(), o.Status, o.Message)
}

type Report struct {
	Initial  buffer.Buffer `json:"-" yaml:"-"`
	Final    buffer.Buffer `json:"-" yaml:"-"`
	Outcomes []Outcome     `json:"outcomes" yaml:"outcomes"`

	// Trace holds the buffer after each operation when tracing is on.
	Trace []buffer.Buffer `json:"-" yaml:"-"`
}

func (r *Report) Applied() int {
	n := 0
	for i := range r.Outcomes {
		if r.Outcomes[i].Status == Applied {
			n++
		}
	}
	return n
}

// OK reports whether every operation was applied.
func (r *Report) OK() bool {
	return r.Applied() == len(r.Outcomes)
}

func (r *Report) Failed() []Outcome {
	var res []Outcome
	for i := range r.Outcomes {
		if r.Outcomes[i].Status != Applied {
			res = append(res, r.Outcomes[i])
		}
	}
	return res
}

// Changed reports whether the final text differs from the initial text.
func (r *Report) Changed() bool {
	return !r.Final.Equal(r.Initial)
}

// Count tallies outcomes by status.
func (r *Report) Count() map[Status]int {
	res := map[Status]int{}
	for i := range r.Outcomes {
		res[r.Outcomes[i].Status]++
	}
	return res
}
