package encode

import "fmt"

type Format int

const (
	TextFormat Format = iota
	JSONFormat
	YAMLFormat
)

func (f Format) String() string {
	switch f {
	case JSONFormat:
		return "json"
	case YAMLFormat:
		return "yaml"
	default:
		return "text"
	}
}

func ParseFormat(v string) (Format, error) {
	switch v {
	case "text", "t", "":
		return TextFormat, nil
	case "json", "j":
		return JSONFormat, nil
	case "yaml", "y":
		return YAMLFormat, nil
	}
	return TextFormat, fmt.Errorf("unknown format %q, want text/t, json/j or yaml/y", v)
}
