package listing

import (
	"github.com/google/cel-go/cel"

	"simrs/internal/core/apperror"
)

// program is a compiled record filter expression.
type program interface {
	Eval(vars any) (bool, error)
}

type celProgram struct {
	prg cel.Program
}

func (p celProgram) Eval(vars any) (bool, error) {
	out, _, err := p.prg.Eval(vars)
	if err != nil {
		return false, apperror.NewValidation("filter expression failed").
			WithDetail("error", err.Error())
	}
	b, ok := out.Value().(bool)
	if !ok {
		return false, apperror.NewValidation("filter expression must evaluate to a boolean")
	}
	return b, nil
}

// compileExpr compiles a CEL expression over a single record exposed as
// the map variable "r".
func compileExpr(expr string) (program, error) {
	env, err := cel.NewEnv(
		cel.Variable("r", cel.MapType(cel.StringType, cel.DynType)),
	)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	ast, iss := env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, apperror.NewValidation("invalid filter expression").
			WithDetail("error", iss.Err().Error())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, apperror.NewValidation("invalid filter expression").
			WithDetail("error", err.Error())
	}
	return celProgram{prg: prg}, nil
}

// evalExpr evaluates a compiled expression against record vars.
func evalExpr(prg program, recordVars map[string]any) (bool, error) {
	return prg.Eval(map[string]any{"r": recordVars})
}
