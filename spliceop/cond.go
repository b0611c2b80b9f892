package spliceop

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

type condition struct {
	src string
	prg *vm.Program
}

func compileCondition(src string) (*condition, error) {
	prg, err := expr.Compile(src, expr.AsBool(), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("condition %q: %w", src, err)
	}
	return &condition{src: src, prg: prg}, nil
}

func (c *condition) eval(env map[string]any) (bool, error) {
	if env == nil {
		env = map[string]any{}
	}
	res, err := expr.Run(c.prg, env)
	if err != nil {
		return false, fmt.Errorf("condition %q: %w", c.src, err)
	}
	b, ok := res.(bool)
	if !ok {
		return false, fmt.Errorf("condition %q: got %T, want bool", c.src, res)
	}
	return b, nil
}
