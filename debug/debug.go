package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Locate  bool
	Resolve bool
	Splice  bool
	Run     bool
}

var d *debug

func init() {
	d = &debug{}
	d.Locate = boolEnv("APATCH_DEBUG_LOCATE")
	d.Resolve = boolEnv("APATCH_DEBUG_RESOLVE")
	d.Splice = boolEnv("APATCH_DEBUG_SPLICE")
	d.Run = boolEnv("APATCH_DEBUG_RUN")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Locate() bool {
	return d.Locate
}
func Resolve() bool {
	return d.Resolve
}
func Splice() bool {
	return d.Splice
}
func Run() bool {
	return d.Run
}

func Logf(msg string, args ...any) {
	for i := range args {
		switch x := args[i].(type) {
		case map[string]any, []any:
			d, err := json.MarshalIndent(x, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", x)
				continue
			}
			args[i] = string(d)
		default:
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(append(d, '\n'))
}
