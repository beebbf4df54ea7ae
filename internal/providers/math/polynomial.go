package math

import (
	"context"
	"errors"
	"fmt"

	"github.com/GriffinCanCode/polyprec/internal/apfloat"
	"github.com/GriffinCanCode/polyprec/internal/orthopoly"
	"github.com/GriffinCanCode/polyprec/internal/types"
	"github.com/GriffinCanCode/polyprec/internal/ziv"
)

// PolynomialOps evaluates orthogonal polynomials with correct rounding
type PolynomialOps struct {
	*MathOps
	ev *orthopoly.Evaluator
}

var polynomialParams = []types.Parameter{
	{Name: "n", Type: "number", Description: "Degree (non-negative integer)", Required: true},
	{Name: "x", Type: "string", Description: "Argument as a decimal, 0x or 0b string, or a number", Required: true},
	{Name: "precision", Type: "number", Description: "Result precision in bits (default: 53)", Required: false},
	{Name: "x_precision", Type: "number", Description: "Bits used to read x (default: max(precision, 64))", Required: false},
	{Name: "rounding", Type: "string", Description: "RNDN, RNDZ, RNDU, RNDD, RNDA or RNDF (default: RNDN)", Required: false},
	{Name: "format", Type: "string", Description: "decimal, hex or binary (default: decimal)", Required: false},
	{Name: "digits", Type: "number", Description: "Significant decimal digits (default: shortest exact)", Required: false},
}

// GetTools returns polynomial tool definitions
func (p *PolynomialOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "math.legendre",
			Name:        "Legendre Polynomial",
			Description: "Correctly rounded Legendre polynomial P_n(x) for -1 <= x <= 1",
			Parameters:  polynomialParams,
			Returns:     "object",
		},
		{
			ID:          "math.hermite",
			Name:        "Hermite Polynomial",
			Description: "Correctly rounded physicists' Hermite polynomial H_n(x)",
			Parameters:  polynomialParams,
			Returns:     "object",
		},
	}
}

// Legendre evaluates P_n(x)
func (p *PolynomialOps) Legendre(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return p.evaluate(ctx, orthopoly.FamilyLegendre, params)
}

// Hermite evaluates H_n(x)
func (p *PolynomialOps) Hermite(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return p.evaluate(ctx, orthopoly.FamilyHermite, params)
}

func (p *PolynomialOps) evaluate(ctx context.Context, f orthopoly.Family, params map[string]interface{}) (*types.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n, ok, err := GetInt(params, "n")
	if err != nil {
		return Failure(err.Error())
	}
	if !ok {
		return Failure("n parameter required")
	}

	prec, err := p.targetPrecision(params)
	if err != nil {
		return Failure(err.Error())
	}
	xprec, err := p.operandPrecision(params, "x_precision", prec)
	if err != nil {
		return Failure(err.Error())
	}
	rnd, err := rounding(params)
	if err != nil {
		return Failure(err.Error())
	}
	x, err := operand(params, "x", xprec)
	if err != nil {
		return Failure(err.Error())
	}

	res := apfloat.New(prec)
	t, err := p.ev.Evaluate(f, res, n, x, rnd)
	if errors.Is(err, ziv.ErrPrecisionLimit) {
		return Failure(fmt.Sprintf("%s(%d) needs more than %d bits of working precision", f, n, p.ev.MaxPrecision()))
	}
	if err != nil {
		return nil, err
	}

	value, err := formatValue(params, res)
	if err != nil {
		return Failure(err.Error())
	}

	data := resultData(value, res, t, rnd)
	data["family"] = f.String()
	data["n"] = n
	return Success(data)
}
