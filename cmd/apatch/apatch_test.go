package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/scott-cotton/cli"
	"github.com/signadot/anchorpatch"
)

const patchSetYAML = `
vars:
  greet: true
patches:
- name: hello
  kind: insert
  marker: "// end"
  position: before
  payload: "hello()\n"
  when: greet
- name: rename
  kind: replace
  marker: "oldName"
  payload: "newName"
`

func setup(t *testing.T, files map[string]string) (string, *patchSet) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0600); err != nil {
			t.Fatal(err)
		}
	}
	psPath := filepath.Join(dir, "patches.yaml")
	if err := os.WriteFile(psPath, []byte(patchSetYAML), 0644); err != nil {
		t.Fatal(err)
	}
	ps, err := (&MainConfig{}).loadPatchSet(psPath)
	if err != nil {
		t.Fatal(err)
	}
	return dir, ps
}

func TestApplyStdout(t *testing.T) {
	_, ps := setup(t, nil)
	results, err := ps.run(strings.NewReader("oldName()\n// end\n"), []string{"-"})
	if err != nil {
		t.Fatal(err)
	}
	out, errOut := bytes.NewBuffer(nil), bytes.NewBuffer(nil)
	cfg := &ApplyConfig{MainConfig: &MainConfig{}}
	ok, err := applyResults(cfg, results, out, errOut)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Errorf("expected all applied:\n%s", errOut)
	}
	if diff := cmp.Diff("newName()\nhello()\n// end\n", out.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if !strings.HasPrefix(errOut.String(), "-: 2/2 applied\n") {
		t.Errorf("report %q", errOut.String())
	}
}

func TestApplyWrite(t *testing.T) {
	dir, ps := setup(t, map[string]string{
		"a.go": "oldName()\n// end\n",
		"b.go": "// end\n",
		"c.go": "nothing here\n",
	})
	paths := []string{
		filepath.Join(dir, "a.go"),
		filepath.Join(dir, "b.go"),
		filepath.Join(dir, "c.go"),
	}
	results, err := ps.run(nil, paths)
	if err != nil {
		t.Fatal(err)
	}
	for i, res := range results {
		if res.path != paths[i] {
			t.Fatalf("result %d is for %s", i, res.path)
		}
	}
	out, errOut := bytes.NewBuffer(nil), bytes.NewBuffer(nil)
	cfg := &ApplyConfig{MainConfig: &MainConfig{}, Write: true}
	ok, err := applyResults(cfg, results, out, errOut)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Errorf("b.go and c.go should not fully apply")
	}
	if out.Len() != 0 {
		t.Errorf("wrote to stdout with -w: %q", out)
	}
	want := map[string]string{
		"a.go": "newName()\nhello()\n// end\n",
		"b.go": "hello()\n// end\n",
		"c.go": "nothing here\n",
	}
	for name, content := range want {
		d, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		if string(d) != content {
			t.Errorf("%s: got %q, want %q", name, d, content)
		}
	}
	fi, err := os.Stat(paths[0])
	if err != nil {
		t.Fatal(err)
	}
	if fi.Mode().Perm() != 0600 {
		t.Errorf("mode %v not kept", fi.Mode().Perm())
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range ents {
		if strings.HasPrefix(e.Name(), ".apatch-") {
			t.Errorf("left temp file %s", e.Name())
		}
	}
}

func TestApplyStrict(t *testing.T) {
	dir, ps := setup(t, map[string]string{
		"a.go": "oldName()\n// end\n",
		"b.go": "// end\n",
	})
	a, b := filepath.Join(dir, "a.go"), filepath.Join(dir, "b.go")
	results, err := ps.run(nil, []string{a, b})
	if err != nil {
		t.Fatal(err)
	}
	cfg := &ApplyConfig{MainConfig: &MainConfig{}, Write: true, Strict: true}
	ok, err := applyResults(cfg, results, bytes.NewBuffer(nil), bytes.NewBuffer(nil))
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Errorf("expected failure")
	}
	if d, _ := os.ReadFile(a); string(d) != "newName()\nhello()\n// end\n" {
		t.Errorf("a.go not written: %q", d)
	}
	if d, _ := os.ReadFile(b); string(d) != "// end\n" {
		t.Errorf("b.go written under -strict: %q", d)
	}
}

func TestApplyDiff(t *testing.T) {
	_, ps := setup(t, nil)
	results, err := ps.run(strings.NewReader("oldName()\n// end\n"), []string{"-"})
	if err != nil {
		t.Fatal(err)
	}
	errOut := bytes.NewBuffer(nil)
	cfg := &ApplyConfig{MainConfig: &MainConfig{}, Diff: true}
	if _, err := applyResults(cfg, results, bytes.NewBuffer(nil), errOut); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"--- -\n", "-oldName()\n", "+newName()\n", "+hello()\n"} {
		if !strings.Contains(errOut.String(), want) {
			t.Errorf("missing %q in:\n%s", want, errOut)
		}
	}
}

func TestVarsOverride(t *testing.T) {
	dir := t.TempDir()
	psPath := filepath.Join(dir, "patches.yaml")
	if err := os.WriteFile(psPath, []byte(patchSetYAML), 0644); err != nil {
		t.Fatal(err)
	}
	ps, err := (&MainConfig{Vars: `{"greet": false}`}).loadPatchSet(psPath)
	if err != nil {
		t.Fatal(err)
	}
	results, err := ps.run(strings.NewReader("// end\n"), []string{"-"})
	if err != nil {
		t.Fatal(err)
	}
	if got := results[0].report.Final.String(); got != "// end\n" {
		t.Errorf("conditional insert ran: %q", got)
	}
	if _, err := (&MainConfig{Vars: `{`}).loadPatchSet(psPath); err == nil {
		t.Errorf("expected error for bad vars")
	}
}

func TestCheck(t *testing.T) {
	_, ps := setup(t, nil)
	tests := []struct {
		name string
		in   string
		ok   bool
	}{
		{name: "all", in: "oldName // end", ok: true},
		{name: "missing", in: "// end", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := ps.run(strings.NewReader(tt.in), []string{"-"})
			if err != nil {
				t.Fatal(err)
			}
			w := bytes.NewBuffer(nil)
			ok, err := checkResults(&MainConfig{}, results, w)
			if err != nil {
				t.Fatal(err)
			}
			if ok != tt.ok {
				t.Errorf("ok %t, report:\n%s", ok, w)
			}
			if !strings.Contains(w.String(), "rename:") {
				t.Errorf("report does not name ops:\n%s", w)
			}
		})
	}
}

func TestDiffSteps(t *testing.T) {
	_, ps := setup(t, nil)
	results, err := ps.run(strings.NewReader("oldName()\n// end\n"), []string{"-"}, anchorpatch.WithTrace(true))
	if err != nil {
		t.Fatal(err)
	}
	w := bytes.NewBuffer(nil)
	cfg := &DiffConfig{MainConfig: &MainConfig{}, Context: -1, Steps: true}
	if err := writeDiffs(cfg, results, w); err != nil {
		t.Fatal(err)
	}
	out := w.String()
	if strings.Count(out, "+++ ") != 2 {
		t.Errorf("expected one diff per op:\n%s", out)
	}
	if !strings.Contains(out, "+++ - #0 hello\n") || !strings.Contains(out, "+++ - #1 rename\n") {
		t.Errorf("diff headers:\n%s", out)
	}

	w.Reset()
	cfg.Steps = false
	if err := writeDiffs(cfg, results, w); err != nil {
		t.Fatal(err)
	}
	if strings.Count(w.String(), "+++ ") != 1 {
		t.Errorf("expected one diff:\n%s", w)
	}
}

func TestKinds(t *testing.T) {
	w := bytes.NewBuffer(nil)
	if err := writeKinds(w); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"\t- insert: before,after (payload)\n",
		"\t- remove: replace\n",
		"\t- replace: replace (payload)\n",
	} {
		if !strings.Contains(w.String(), want) {
			t.Errorf("missing %q in:\n%s", want, w)
		}
	}
}

func TestCheckPaths(t *testing.T) {
	tests := []struct {
		paths []string
		write bool
		err   bool
	}{
		{paths: []string{"a", "b"}, write: true},
		{paths: []string{"-"}},
		{paths: []string{"-", "-"}, err: true},
		{paths: []string{"a", "-"}, write: true, err: true},
	}
	for _, tt := range tests {
		err := checkPaths(tt.paths, tt.write)
		if tt.err != (err != nil) {
			t.Errorf("checkPaths(%v, %t) = %v", tt.paths, tt.write, err)
		}
		if err != nil && !errors.Is(err, cli.ErrUsage) {
			t.Errorf("expected usage error, got %v", err)
		}
	}
}

func TestRunMissingFile(t *testing.T) {
	dir, ps := setup(t, nil)
	if _, err := ps.run(nil, []string{filepath.Join(dir, "nope")}); err == nil {
		t.Errorf("expected error")
	}
}

func TestWriteAtomicNewFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "new.txt")
	if err := writeAtomic(p, []byte("x")); err != nil {
		t.Fatal(err)
	}
	d, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if string(d) != "x" {
		t.Errorf("got %q", d)
	}
}
