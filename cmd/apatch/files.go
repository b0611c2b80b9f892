package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/signadot/anchorpatch"
	"github.com/signadot/anchorpatch/buffer"
	"github.com/signadot/anchorpatch/patchfile"
	"github.com/signadot/anchorpatch/report"
	"github.com/signadot/anchorpatch/spliceop"

	"github.com/scott-cotton/cli"
	"golang.org/x/sync/errgroup"
)

type patchSet struct {
	path string
	ops  []*spliceop.Op
	env  map[string]any
}

func (cfg *MainConfig) loadPatchSet(path string) (*patchSet, error) {
	f, err := patchfile.Load(path)
	if err != nil {
		return nil, err
	}
	ops, err := f.Ops()
	if err != nil {
		return nil, fmt.Errorf("error in %s: %w", path, err)
	}
	var overrides [][]byte
	if cfg.Vars != "" {
		overrides = append(overrides, []byte(cfg.Vars))
	}
	env, err := f.Env(overrides...)
	if err != nil {
		return nil, fmt.Errorf("error in vars of %s: %w", path, err)
	}
	return &patchSet{path: path, ops: ops, env: env}, nil
}

type result struct {
	path   string
	report *report.Report
}

// checkPaths validates the file arguments.  "-" is standard input and may
// be given at most once, and never when rewriting.
func checkPaths(paths []string, write bool) error {
	n := 0
	for _, p := range paths {
		if p == "-" {
			n++
		}
	}
	switch {
	case n > 1:
		return fmt.Errorf("%w: standard input given more than once", cli.ErrUsage)
	case n == 1 && write:
		return fmt.Errorf("%w: cannot rewrite standard input", cli.ErrUsage)
	}
	return nil
}

// run runs the patch set against every file concurrently.  Each file gets
// its own run; results are in the order of paths.
func (ps *patchSet) run(in io.Reader, paths []string, opts ...anchorpatch.RunOption) ([]result, error) {
	opts = append([]anchorpatch.RunOption{anchorpatch.WithEnv(ps.env)}, opts...)
	res := make([]result, len(paths))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			text, err := readInput(in, path)
			if err != nil {
				return err
			}
			res[i] = result{
				path:   path,
				report: anchorpatch.Run(buffer.New(text), ps.ops, opts...),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

func readInput(in io.Reader, path string) (string, error) {
	var (
		d   []byte
		err error
	)
	if path == "-" {
		d, err = io.ReadAll(in)
	} else {
		d, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("could not read %q: %w", path, err)
	}
	return string(d), nil
}

// writeAtomic replaces path with data through a temporary file in the same
// directory, keeping the permissions of the file it replaces.
func writeAtomic(path string, data []byte) error {
	perm := os.FileMode(0644)
	if fi, err := os.Stat(path); err == nil {
		perm = fi.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".apatch-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	fail := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		return fail(err)
	}
	if err := tmp.Chmod(perm); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

func (cfg *MainConfig) logOutcomes(res *result) {
	if !cfg.Trace {
		return
	}
	for i := range res.report.Outcomes {
		o := &res.report.Outcomes[i]
		theLog.Info("op", "file", res.path, "outcome", o.String())
	}
}
