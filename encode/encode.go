// Package encode writes patch run reports as text, JSON or YAML.
package encode

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/signadot/anchorpatch/report"

	"github.com/goccy/go-yaml"
)

type EncState struct {
	format Format
	colors *Colors
	source string
}

type EncodeOption func(*EncState)

func EncodeFormat(f Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.colors = c }
}

// EncodeSource names the buffer the report is about, usually a file path.
func EncodeSource(name string) EncodeOption {
	return func(es *EncState) { es.source = name }
}

// Summary is the serialized form of a report.
type Summary struct {
	Source   string           `json:"source,omitempty" yaml:"source,omitempty"`
	Applied  int              `json:"applied" yaml:"applied"`
	Total    int              `json:"total" yaml:"total"`
	Changed  bool             `json:"changed" yaml:"changed"`
	Outcomes []report.Outcome `json:"outcomes" yaml:"outcomes"`
}

func Summarize(r *report.Report, source string) *Summary {
	outcomes := r.Outcomes
	if outcomes == nil {
		outcomes = []report.Outcome{}
	}
	return &Summary{
		Source:   source,
		Applied:  r.Applied(),
		Total:    len(r.Outcomes),
		Changed:  r.Changed(),
		Outcomes: outcomes,
	}
}

func Encode(r *report.Report, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	sum := Summarize(r, es.source)
	switch es.format {
	case JSONFormat:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(sum)
	case YAMLFormat:
		d, err := yaml.Marshal(sum)
		if err != nil {
			return fmt.Errorf("error encoding yaml: %w", err)
		}
		_, err = w.Write(d)
		return err
	default:
		return encodeText(sum, w, es.colors)
	}
}

func encodeText(sum *Summary, w io.Writer, c *Colors) error {
	head := fmt.Sprintf("%d/%d applied", sum.Applied, sum.Total)
	if sum.Source != "" {
		head = c.label(sum.Source) + ": " + head
	}
	if !sum.Changed {
		head += ", unchanged"
	}
	if _, err := fmt.Fprintln(w, head); err != nil {
		return err
	}
	for i := range sum.Outcomes {
		o := &sum.Outcomes[i]
		st := c.status(o.Status, fmt.Sprintf("%-16s", o.Status))
		detail := o.Message
		if o.Status == report.Applied && o.Range != nil {
			detail = o.Range.String()
		}
		if _, err := fmt.Fprintf(w, "  %-4s %s %s\n", fmt.Sprintf("#%d", o.Index), st, describe(o, detail)); err != nil {
			return err
		}
	}
	return nil
}

func describe(o *report.Outcome, detail string) string {
	switch {
	case o.Name != "" && detail != "":
		return o.Name + ": " + detail
	case o.Name != "":
		return o.Name
	default:
		return detail
	}
}
