package math

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/polyprec/internal/orthopoly"
	"github.com/GriffinCanCode/polyprec/internal/types"
)

// Provider implements the math service
type Provider struct {
	polynomial *PolynomialOps
	precision  *PrecisionOps
}

// NewProvider creates the math provider over ev. defaultPrec is the result
// precision used when a call does not name one.
func NewProvider(ev *orthopoly.Evaluator, defaultPrec uint) *Provider {
	if defaultPrec == 0 {
		defaultPrec = 53
	}
	ops := &MathOps{
		DefaultPrecision: defaultPrec,
		MaxPrecision:     ev.MaxPrecision(),
	}

	return &Provider{
		polynomial: &PolynomialOps{MathOps: ops, ev: ev},
		precision:  &PrecisionOps{MathOps: ops},
	}
}

// Definition returns service metadata with all module tools
func (m *Provider) Definition() types.Service {
	tools := []types.Tool{}
	tools = append(tools, m.polynomial.GetTools()...)
	tools = append(tools, m.precision.GetTools()...)

	return types.Service{
		ID:          "math",
		Name:        "Math Service",
		Description: "Correctly rounded Legendre and Hermite polynomials and precise arithmetic",
		Category:    types.CategoryMath,
		Capabilities: []string{
			"orthogonal_polynomials",
			"correct_rounding",
			"precision",
		},
		Tools: tools,
	}
}

// Execute routes to the appropriate module
func (m *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	if params == nil {
		params = map[string]interface{}{}
	}

	switch toolID {
	case "math.legendre":
		return m.polynomial.Legendre(ctx, params, appCtx)
	case "math.hermite":
		return m.polynomial.Hermite(ctx, params, appCtx)

	case "math.precise.add":
		return m.precision.PreciseAdd(ctx, params, appCtx)
	case "math.precise.subtract":
		return m.precision.PreciseSubtract(ctx, params, appCtx)
	case "math.precise.multiply":
		return m.precision.PreciseMultiply(ctx, params, appCtx)
	case "math.precise.divide":
		return m.precision.PreciseDivide(ctx, params, appCtx)
	case "math.precise.fms":
		return m.precision.PreciseFMS(ctx, params, appCtx)

	default:
		return Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}
