// Package patchfile reads patch set descriptions.
//
// A patch set is a YAML (or JSON) document with optional vars and an ordered
// list of patches:
//
//	vars:
//	  flavor: oauth
//	patches:
//	- name: add-uris-tab
//	  kind: insert
//	  marker: "// --- Stats Tab ---"
//	  position: before
//	  payloadFile: uris_tab.tsx
//	- kind: remove
//	  start: "// --- Keys Tab ---"
//	  end: "// --- Guide Tab ---"
//	  bounds: include-start
//	  when: flavor == "oauth"
//
// Each patch names exactly one anchor: marker, block, or start and end.
// Insert and replace patches take exactly one of payload and payloadFile;
// payload files are read relative to the patch set file.
package patchfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/signadot/anchorpatch/anchor"
	"github.com/signadot/anchorpatch/region"
	"github.com/signadot/anchorpatch/spliceop"

	"github.com/goccy/go-yaml"
)

type File struct {
	Path    string         `yaml:"-"`
	Dir     string         `yaml:"-"`
	Vars    map[string]any `yaml:"vars,omitempty"`
	Patches []Patch        `yaml:"patches"`
}

type Patch struct {
	Name string `yaml:"name,omitempty"`
	Kind string `yaml:"kind"`

	Marker string `yaml:"marker,omitempty"`
	Block  string `yaml:"block,omitempty"`
	Start  string `yaml:"start,omitempty"`
	End    string `yaml:"end,omitempty"`

	Position string `yaml:"position,omitempty"`
	Bounds   string `yaml:"bounds,omitempty"`

	Payload     *string `yaml:"payload,omitempty"`
	PayloadFile string  `yaml:"payloadFile,omitempty"`

	When string `yaml:"when,omitempty"`
}

func Load(path string) (*File, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", path, err)
	}
	f, err := Parse(d, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", path, err)
	}
	f.Path = path
	return f, nil
}

// Parse decodes a patch set.  dir is where payload files are looked up.
func Parse(d []byte, dir string) (*File, error) {
	f := &File{Dir: dir}
	if err := yaml.UnmarshalWithOptions(d, f, yaml.DisallowUnknownField()); err != nil {
		return nil, err
	}
	if len(f.Patches) == 0 {
		return nil, fmt.Errorf("no patches")
	}
	return f, nil
}

// Ops builds the operations of f in order.
func (f *File) Ops() ([]*spliceop.Op, error) {
	res := make([]*spliceop.Op, 0, len(f.Patches))
	for i := range f.Patches {
		p := &f.Patches[i]
		op, err := p.Op(f.Dir)
		if err != nil {
			if p.Name != "" {
				return nil, fmt.Errorf("patch %d (%s): %w", i, p.Name, err)
			}
			return nil, fmt.Errorf("patch %d: %w", i, err)
		}
		res = append(res, op)
	}
	return res, nil
}

func (p *Patch) Anchor() (anchor.Spec, error) {
	n := 0
	for _, set := range []bool{p.Marker != "", p.Block != "", p.Start != "" || p.End != ""} {
		if set {
			n++
		}
	}
	if n != 1 {
		return anchor.Spec{}, fmt.Errorf("need exactly one of marker, block or start/end, got %d", n)
	}
	switch {
	case p.Marker != "":
		return anchor.Marker(p.Marker)
	case p.Block != "":
		return anchor.Block(p.Block)
	default:
		return anchor.Pair(p.Start, p.End)
	}
}

func (p *Patch) Op(dir string) (*spliceop.Op, error) {
	if p.Kind == "" {
		return nil, fmt.Errorf("missing kind")
	}
	sym, err := spliceop.Lookup(p.Kind)
	if err != nil {
		return nil, err
	}
	spec, err := p.Anchor()
	if err != nil {
		return nil, err
	}
	opts := []spliceop.OpOption{spliceop.Named(p.Name)}
	if p.Position != "" {
		mode, err := region.ParseMode(p.Position)
		if err != nil {
			return nil, err
		}
		opts = append(opts, spliceop.At(mode))
	}
	bounds, err := region.ParseBounds(p.Bounds)
	if err != nil {
		return nil, err
	}
	opts = append(opts, spliceop.WithBounds(bounds))
	if p.When != "" {
		opts = append(opts, spliceop.When(p.When))
	}
	payload, ok, err := p.payload(dir)
	if err != nil {
		return nil, err
	}
	if ok {
		opts = append(opts, spliceop.Payload(payload))
	}
	return spliceop.New(sym, spec, opts...)
}

func (p *Patch) payload(dir string) (string, bool, error) {
	switch {
	case p.Payload != nil && p.PayloadFile != "":
		return "", false, fmt.Errorf("payload and payloadFile are exclusive")
	case p.Payload != nil:
		return *p.Payload, true, nil
	case p.PayloadFile != "":
		path := p.PayloadFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		d, err := os.ReadFile(path)
		if err != nil {
			return "", false, fmt.Errorf("could not read payload: %w", err)
		}
		return string(d), true, nil
	}
	return "", false, nil
}
