package encode

import (
	"fmt"

	"github.com/signadot/anchorpatch/report"

	"github.com/fatih/color"
)

type Colors struct {
	Default func(string, ...any) string
	Status  map[report.Status]func(string, ...any) string
	Label   func(string, ...any) string
}

func NewColors() *Colors {
	return &Colors{
		Default: colorDefault,
		Label:   color.New(color.Bold).SprintfFunc(),
		Status: map[report.Status]func(string, ...any) string{
			report.Applied:         color.GreenString,
			report.AnchorNotFound:  color.YellowString,
			report.AnchorAmbiguous: color.RGB(255, 0, 196).SprintfFunc(),
			report.Skipped:         color.RGB(96, 96, 96).SprintfFunc(),
		},
	}
}

func colorDefault(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}

func (c *Colors) status(s report.Status, v string) string {
	if c == nil {
		return v
	}
	f, ok := c.Status[s]
	if !ok {
		return c.Default("%s", v)
	}
	return f("%s", v)
}

func (c *Colors) label(v string) string {
	if c == nil || c.Label == nil {
		return v
	}
	return c.Label("%s", v)
}
