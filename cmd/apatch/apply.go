package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/anchorpatch/encode"
	"github.com/signadot/anchorpatch/libdiff"

	"github.com/scott-cotton/cli"
)

func apply(cfg *ApplyConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Apply.Parse(cc, args)
	if err != nil {
		cfg.Apply.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: apply requires a patch set", cli.ErrUsage)
	}
	files := args[1:]
	if len(files) == 0 {
		files = []string{"-"}
	}
	if len(files) > 1 && !cfg.Write {
		return fmt.Errorf("%w: more than one file requires -w", cli.ErrUsage)
	}
	if err := checkPaths(files, cfg.Write); err != nil {
		return err
	}
	ps, err := cfg.loadPatchSet(args[0])
	if err != nil {
		return err
	}
	results, err := ps.run(cc.In, files)
	if err != nil {
		return err
	}
	ok, err := applyResults(cfg, results, cc.Out, os.Stderr)
	if err != nil {
		return err
	}
	if !ok && cfg.Strict {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// applyResults reports each result to errOut and then either writes the
// patched text to out or rewrites the file.  It returns whether every
// operation of every run applied.
func applyResults(cfg *ApplyConfig, results []result, out, errOut io.Writer) (bool, error) {
	allOK := true
	for i := range results {
		res := &results[i]
		rep := res.report
		cfg.logOutcomes(res)
		if err := encode.Encode(rep, errOut, cfg.encOpts(errOut, res.path)...); err != nil {
			return false, fmt.Errorf("error encoding report: %w", err)
		}
		if cfg.Diff {
			d := libdiff.Unified(res.path, res.path, rep.Initial.String(), rep.Final.String(),
				libdiff.DefaultContext, cfg.diffColors(errOut))
			if _, err := io.WriteString(errOut, d); err != nil {
				return false, err
			}
		}
		if !rep.OK() {
			allOK = false
			if cfg.Strict {
				theLog.Warn("not writing", "file", res.path, "failed", len(rep.Failed()))
				continue
			}
		}
		if !cfg.Write {
			if _, err := io.WriteString(out, rep.Final.String()); err != nil {
				return false, err
			}
			continue
		}
		if !rep.Changed() {
			continue
		}
		if err := writeAtomic(res.path, []byte(rep.Final.String())); err != nil {
			return false, fmt.Errorf("error writing %s: %w", res.path, err)
		}
		theLog.Info("wrote", "file", res.path, "applied", rep.Applied(), "total", len(rep.Outcomes))
	}
	return allOK, nil
}
