package config

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/plus3/ootris/engine"
	"github.com/plus3/ootris/piece"
	"github.com/zclconf/go-cty/cty"
)

// evalContext exposes the named presets a configuration file may refer to,
// e.g. `scoring = scoring.classic` or `policy = policy.uniform`.
func evalContext() *hcl.EvalContext {
	vars := map[string]cty.Value{
		"scoring": cty.ObjectVal(map[string]cty.Value{
			"guideline": scoreTableVal(engine.GuidelineScoring),
			"classic":   scoreTableVal(engine.ClassicScoring),
		}),
		"policy": cty.ObjectVal(map[string]cty.Value{
			"bag":     cty.StringVal(string(piece.PolicyBag)),
			"uniform": cty.StringVal(string(piece.PolicyUniform)),
		}),
	}
	return &hcl.EvalContext{Variables: vars}
}

func scoreTableVal(table engine.ScoreTable) cty.Value {
	vals := make([]cty.Value, len(table))
	for i, v := range table {
		vals[i] = cty.NumberIntVal(int64(v))
	}
	return cty.TupleVal(vals)
}
