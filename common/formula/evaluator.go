// Package formula evaluates user-defined threshold expressions over a
// computed ROI result using CEL (Common Expression Language), e.g.
// "roi.netROI > 1000 && roi.paybackDays < 30" for saved-scenario alerts.
package formula

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/apicus/roi-engine/common/models"
)

// Evaluator compiles and evaluates ROI formulas with program caching.
type Evaluator struct {
	env   *cel.Env
	cache map[string]cel.Program
	mu    sync.RWMutex
}

// NewEvaluator creates an evaluator whose environment exposes the ROI
// metric set under the "roi" variable.
func NewEvaluator() (*Evaluator, error) {
	env, err := cel.NewEnv(
		cel.Variable("roi", cel.MapType(cel.StringType, cel.DoubleType)),
	)
	if err != nil {
		return nil, fmt.Errorf("create CEL environment: %w", err)
	}

	return &Evaluator{
		env:   env,
		cache: make(map[string]cel.Program),
	}, nil
}

// Evaluate runs a boolean formula against a result. An infinite payback
// period flows through as CEL's +Inf double, so "paybackDays < 30" is
// simply false for a workflow that never breaks even.
func (e *Evaluator) Evaluate(expr string, result models.ROIResult) (bool, error) {
	prg, err := e.program(expr)
	if err != nil {
		return false, err
	}

	out, _, err := prg.Eval(map[string]interface{}{
		"roi": resultVars(result),
	})
	if err != nil {
		return false, fmt.Errorf("formula evaluation error: %w", err)
	}

	verdict, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("formula did not return a boolean, got %T", out.Value())
	}

	return verdict, nil
}

// program returns the compiled program for an expression, compiling and
// caching it on first use.
func (e *Evaluator) program(expr string) (cel.Program, error) {
	e.mu.RLock()
	prg, exists := e.cache[expr]
	e.mu.RUnlock()
	if exists {
		return prg, nil
	}

	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile formula: %w", issues.Err())
	}

	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("build formula program: %w", err)
	}

	e.mu.Lock()
	e.cache[expr] = prg
	e.mu.Unlock()

	return prg, nil
}

func resultVars(r models.ROIResult) map[string]float64 {
	return map[string]float64{
		"timeValue":    r.TimeValue,
		"riskValue":    r.RiskValue,
		"revenueValue": r.RevenueValue,
		"totalValue":   r.TotalValue,
		"platformCost": r.PlatformCost,
		"netROI":       r.NetROI,
		"roiRatio":     r.ROIRatio,
		"paybackDays":  r.PaybackPeriodDays,
	}
}
