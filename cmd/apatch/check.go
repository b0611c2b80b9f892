package main

import (
	"fmt"
	"io"

	"github.com/signadot/anchorpatch/encode"

	"github.com/scott-cotton/cli"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		cfg.Check.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: check requires a patch set", cli.ErrUsage)
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
	results, err := ps.run(cc.In, files)
	if err != nil {
		return err
	}
	ok, err := checkResults(cfg.MainConfig, results, cc.Out)
	if err != nil {
		return err
	}
	if !ok {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func checkResults(cfg *MainConfig, results []result, w io.Writer) (bool, error) {
	allOK := true
	for i := range results {
		res := &results[i]
		cfg.logOutcomes(res)
		if err := encode.Encode(res.report, w, cfg.encOpts(w, res.path)...); err != nil {
			return false, fmt.Errorf("error encoding report: %w", err)
		}
		if !res.report.OK() {
			allOK = false
		}
	}
	return allOK, nil
}
