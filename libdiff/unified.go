package libdiff

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

const DefaultContext = 3

type Colors struct {
	Header func(string, ...any) string
	Hunk   func(string, ...any) string
	Insert func(string, ...any) string
	Delete func(string, ...any) string
}

func NewColors() *Colors {
	return &Colors{
		Header: color.New(color.Bold).SprintfFunc(),
		Hunk:   color.CyanString,
		Insert: color.GreenString,
		Delete: color.RedString,
	}
}

func plain(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}

// Unified renders the change from -> to as a unified diff with the given
// file names.  It returns "" when the texts are equal.  c may be nil.
func Unified(fromName, toName, from, to string, context int, c *Colors) string {
	if from == to {
		return ""
	}
	hunks := Hunks(Lines(from, to), context)
	if len(hunks) == 0 {
		return ""
	}
	hdr, hnk, ins, del := plain, plain, plain, plain
	if c != nil {
		hdr, hnk, ins, del = c.Header, c.Hunk, c.Insert, c.Delete
	}
	var sb strings.Builder
	sb.WriteString(hdr("--- %s", fromName))
	sb.WriteByte('\n')
	sb.WriteString(hdr("+++ %s", toName))
	sb.WriteByte('\n')
	for i := range hunks {
		h := &hunks[i]
		sb.WriteString(hnk("@@ -%s +%s @@", span(h.FromLine, h.FromCount), span(h.ToLine, h.ToCount)))
		sb.WriteByte('\n')
		for _, l := range h.Lines {
			txt := l.Kind.prefix() + l.Text
			switch l.Kind {
			case Insert:
				txt = ins("%s", txt)
			case Delete:
				txt = del("%s", txt)
			}
			sb.WriteString(txt)
			sb.WriteByte('\n')
			if l.NoEOL {
				sb.WriteString("\\ No newline at end of file\n")
			}
		}
	}
	return sb.String()
}

func span(line, count int) string {
	if count == 1 {
		return fmt.Sprintf("%d", line)
	}
	return fmt.Sprintf("%d,%d", line, count)
}
