package main

import (
	"fmt"
	"io"

	"github.com/signadot/anchorpatch"
	"github.com/signadot/anchorpatch/libdiff"
	"github.com/signadot/anchorpatch/report"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: diff requires a patch set", cli.ErrUsage)
	}
	files := args[1:]
	if len(files) == 0 {
		files = []string{"-"}
	}
	if err := checkPaths(files, false); err != nil {
		return err
	}
	ps, err := cfg.loadPatchSet(args[0])
	if err != nil {
		return err
	}
	results, err := ps.run(cc.In, files, anchorpatch.WithTrace(cfg.Steps))
	if err != nil {
		return err
	}
	return writeDiffs(cfg, results, cc.Out)
}

func writeDiffs(cfg *DiffConfig, results []result, w io.Writer) error {
	c := cfg.diffColors(w)
	for i := range results {
		res := &results[i]
		rep := res.report
		cfg.logOutcomes(res)
		if !rep.OK() {
			theLog.Warn("not all patches applied", "file", res.path, "failed", len(rep.Failed()))
		}
		if !cfg.Steps {
			d := libdiff.Unified(res.path, res.path, rep.Initial.String(), rep.Final.String(), cfg.context(), c)
			if _, err := io.WriteString(w, d); err != nil {
				return err
			}
			continue
		}
		prev := rep.Initial
		for j, next := range rep.Trace {
			o := &rep.Outcomes[j]
			if o.Status == report.Applied {
				d := libdiff.Unified(res.path, res.path+" "+o.Label(), prev.String(), next.String(), cfg.context(), c)
				if _, err := io.WriteString(w, d); err != nil {
					return err
				}
			}
			prev = next
		}
	}
	return nil
}
