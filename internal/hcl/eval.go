package hcl

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// buildEvalContext creates the evaluation context for project files. It
// exposes the process environment as `env` and a few string helpers, so
// that e.g. `url = lookup(env, "BNB_RENDERER", "http://localhost:3000/")`
// works.
func buildEvalContext(environ []string) *hcl.EvalContext {
	env := make(map[string]cty.Value, len(environ))
	for _, e := range environ {
		name, value, ok := strings.Cut(e, "=")
		if ok && name != "" {
			env[name] = cty.StringVal(value)
		}
	}

	vars := map[string]cty.Value{"env": cty.EmptyObjectVal}
	if len(env) > 0 {
		vars["env"] = cty.ObjectVal(env)
	}

	return &hcl.EvalContext{
		Variables: vars,
		Functions: map[string]function.Function{
			"coalesce":  stdlib.CoalesceFunc,
			"lookup":    stdlib.LookupFunc,
			"lower":     stdlib.LowerFunc,
			"upper":     stdlib.UpperFunc,
			"trimspace": stdlib.TrimSpaceFunc,
		},
	}
}
