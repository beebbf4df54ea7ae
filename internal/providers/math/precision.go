package math

import (
	"context"

	"github.com/GriffinCanCode/polyprec/internal/apfloat"
	"github.com/GriffinCanCode/polyprec/internal/types"
)

// PrecisionOps handles correctly rounded single operations on apfloat
type PrecisionOps struct {
	*MathOps
}

func operandParams(names ...string) []types.Parameter {
	params := make([]types.Parameter, 0, len(names)+4)
	for _, n := range names {
		params = append(params, types.Parameter{Name: n, Type: "string", Description: "Operand (decimal, 0x or 0b string, or number)", Required: true})
	}
	return append(params,
		types.Parameter{Name: "precision", Type: "number", Description: "Result precision in bits (default: 53)", Required: false},
		types.Parameter{Name: "operand_precision", Type: "number", Description: "Bits used to read operands (default: max(precision, 64))", Required: false},
		types.Parameter{Name: "rounding", Type: "string", Description: "Rounding mode (default: RNDN)", Required: false},
		types.Parameter{Name: "format", Type: "string", Description: "decimal, hex or binary (default: decimal)", Required: false},
	)
}

// GetTools returns precision arithmetic tool definitions
func (p *PrecisionOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "math.precise.add",
			Name:        "Precise Addition",
			Description: "a + b with one rounding",
			Parameters:  operandParams("a", "b"),
			Returns:     "object",
		},
		{
			ID:          "math.precise.subtract",
			Name:        "Precise Subtraction",
			Description: "a - b with one rounding",
			Parameters:  operandParams("a", "b"),
			Returns:     "object",
		},
		{
			ID:          "math.precise.multiply",
			Name:        "Precise Multiplication",
			Description: "a * b with one rounding",
			Parameters:  operandParams("a", "b"),
			Returns:     "object",
		},
		{
			ID:          "math.precise.divide",
			Name:        "Precise Division",
			Description: "a / b with one rounding; division by zero gives a signed infinity",
			Parameters:  operandParams("a", "b"),
			Returns:     "object",
		},
		{
			ID:          "math.precise.fms",
			Name:        "Fused Multiply-Subtract",
			Description: "a * b - c with one rounding",
			Parameters:  operandParams("a", "b", "c"),
			Returns:     "object",
		},
	}
}

type binaryOp func(z, a, b *apfloat.Float, rnd apfloat.RoundingMode) apfloat.Ternary

// PreciseAdd adds a and b
func (p *PrecisionOps) PreciseAdd(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return p.binary(ctx, params, (*apfloat.Float).Add)
}

// PreciseSubtract subtracts b from a
func (p *PrecisionOps) PreciseSubtract(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return p.binary(ctx, params, (*apfloat.Float).Sub)
}

// PreciseMultiply multiplies a and b
func (p *PrecisionOps) PreciseMultiply(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return p.binary(ctx, params, (*apfloat.Float).Mul)
}

// PreciseDivide divides a by b
func (p *PrecisionOps) PreciseDivide(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return p.binary(ctx, params, (*apfloat.Float).Quo)
}

// PreciseFMS computes a*b - c
func (p *PrecisionOps) PreciseFMS(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	prec, rnd, ops, err := p.operands(params, "a", "b", "c")
	if err != nil {
		return Failure(err.Error())
	}
	z := apfloat.New(prec)
	t := z.FMS(ops[0], ops[1], ops[2], rnd)
	return p.result(params, z, t, rnd)
}

func (p *PrecisionOps) binary(ctx context.Context, params map[string]interface{}, op binaryOp) (*types.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	prec, rnd, ops, err := p.operands(params, "a", "b")
	if err != nil {
		return Failure(err.Error())
	}
	z := apfloat.New(prec)
	t := op(z, ops[0], ops[1], rnd)
	return p.result(params, z, t, rnd)
}

func (p *PrecisionOps) operands(params map[string]interface{}, names ...string) (uint, apfloat.RoundingMode, []*apfloat.Float, error) {
	prec, err := p.targetPrecision(params)
	if err != nil {
		return 0, 0, nil, err
	}
	oprec, err := p.operandPrecision(params, "operand_precision", prec)
	if err != nil {
		return 0, 0, nil, err
	}
	rnd, err := rounding(params)
	if err != nil {
		return 0, 0, nil, err
	}
	ops := make([]*apfloat.Float, len(names))
	for i, name := range names {
		if ops[i], err = operand(params, name, oprec); err != nil {
			return 0, 0, nil, err
		}
	}
	return prec, rnd, ops, nil
}

func (p *PrecisionOps) result(params map[string]interface{}, z *apfloat.Float, t apfloat.Ternary, rnd apfloat.RoundingMode) (*types.Result, error) {
	value, err := formatValue(params, z)
	if err != nil {
		return Failure(err.Error())
	}
	return Success(resultData(value, z, t, rnd))
}
