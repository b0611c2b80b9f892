package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/anchorpatch/encode"
	"github.com/signadot/anchorpatch/libdiff"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color bool   `cli:"name=color desc='report and diff with color'"`
	Vars  string `cli:"name=vars desc='json merge patch applied to the patch set vars'"`
	Trace bool   `cli:"name=trace desc='log every operation outcome'"`

	Format encode.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc() cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := encode.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		cfg.Format = f
		return f, nil
	})
}

// colorSet reports whether -color was given explicitly, in either sense.
func (cfg *MainConfig) colorSet() bool {
	if cfg.Main == nil {
		return false
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		return opt.Value != nil
	}
	return false
}

func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	if cfg.colorSet() {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) encOpts(w io.Writer, source string) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.Format),
		encode.EncodeSource(source),
	}
	if cfg.Format == encode.TextFormat && cfg.useColor(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

func (cfg *MainConfig) diffColors(w io.Writer) *libdiff.Colors {
	if !cfg.useColor(w) {
		return nil
	}
	return libdiff.NewColors()
}

type ApplyConfig struct {
	*MainConfig

	Write  bool `cli:"name=w desc='rewrite the files in place'"`
	Strict bool `cli:"name=strict desc='do not write a file unless every patch applied'"`
	Diff   bool `cli:"name=diff desc='also print a diff of each file to stderr'"`

	Apply *cli.Command
}

type CheckConfig struct {
	*MainConfig

	Check *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Context int  `cli:"name=U desc='lines of context (default 3)'"`
	Steps   bool `cli:"name=steps desc='one diff per applied operation'"`

	Diff *cli.Command
}

func (cfg *DiffConfig) context() int {
	if cfg.Context < 0 {
		return libdiff.DefaultContext
	}
	return cfg.Context
}

type KindsConfig struct {
	*MainConfig

	Kinds *cli.Command
}
