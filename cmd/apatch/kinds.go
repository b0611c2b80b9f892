package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/signadot/anchorpatch/spliceop"

	"github.com/scott-cotton/cli"
)

func kinds(cfg *KindsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Kinds.Parse(cc, args)
	if err != nil {
		cfg.Kinds.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: kinds takes no arguments", cli.ErrUsage)
	}
	return writeKinds(cc.Out)
}

func writeKinds(w io.Writer) error {
	fmt.Fprintf(w, "available operation kinds:\n")
	for _, s := range spliceop.Symbols() {
		modes := make([]string, 0, len(s.Modes()))
		for _, m := range s.Modes() {
			modes = append(modes, m.String())
		}
		payload := ""
		if s.Payload() {
			payload = " (payload)"
		}
		if _, err := fmt.Fprintf(w, "\t- %s: %s%s\n", s, strings.Join(modes, ","), payload); err != nil {
			return err
		}
	}
	return nil
}
