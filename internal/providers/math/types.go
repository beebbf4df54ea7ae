package math

import (
	"fmt"
	gomath "math"

	"github.com/GriffinCanCode/polyprec/internal/apfloat"
	"github.com/GriffinCanCode/polyprec/internal/types"
)

// MathOps provides the parameter handling shared by every tool
type MathOps struct {
	DefaultPrecision uint
	MaxPrecision     uint
}

// Success creates a successful result
func Success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

// Failure creates a failed result
func Failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}

// GetNumber extracts float64 from params with validation
func GetNumber(params map[string]interface{}, key string) (float64, bool) {
	val, ok := params[key]
	if !ok {
		return 0, false
	}

	switch v := val.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case float32:
		return float64(v), true
	default:
		return 0, false
	}
}

// GetString extracts string from params
func GetString(params map[string]interface{}, key string) (string, bool) {
	val, ok := params[key].(string)
	return val, ok
}

// GetInt extracts an integral number. A present value that is not an
// integer is an error.
func GetInt(params map[string]interface{}, key string) (int, bool, error) {
	if _, ok := params[key]; !ok {
		return 0, false, nil
	}
	v, ok := GetNumber(params, key)
	if !ok || v != gomath.Trunc(v) || gomath.Abs(v) > 1<<53 {
		return 0, true, fmt.Errorf("%s must be an integer", key)
	}
	return int(v), true, nil
}

// precision reads a bit precision parameter, falling back to def.
func (m *MathOps) precision(params map[string]interface{}, key string, def uint) (uint, error) {
	v, ok, err := GetInt(params, key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return def, nil
	}
	if v < 1 || uint(v) > m.MaxPrecision {
		return 0, fmt.Errorf("%s must be between 1 and %d bits", key, m.MaxPrecision)
	}
	return uint(v), nil
}

// targetPrecision reads "precision".
func (m *MathOps) targetPrecision(params map[string]interface{}) (uint, error) {
	return m.precision(params, "precision", m.DefaultPrecision)
}

// operandPrecision reads the precision operands are parsed at, defaulting
// to max(prec, 64).
func (m *MathOps) operandPrecision(params map[string]interface{}, key string, prec uint) (uint, error) {
	return m.precision(params, key, max(prec, 64))
}

// rounding reads "rounding", defaulting to round-to-nearest.
func rounding(params map[string]interface{}) (apfloat.RoundingMode, error) {
	val, ok := params["rounding"]
	if !ok {
		return apfloat.RoundNearest, nil
	}
	s, ok := val.(string)
	if !ok {
		return 0, fmt.Errorf("rounding must be a string")
	}
	return apfloat.ParseRoundingMode(s)
}

// operand reads a number given as a string (decimal, 0x or 0b, nan, inf)
// or as a JSON number, rounded to nearest at prec bits.
func operand(params map[string]interface{}, key string, prec uint) (*apfloat.Float, error) {
	val, ok := params[key]
	if !ok {
		return nil, fmt.Errorf("%s parameter required", key)
	}
	if s, ok := val.(string); ok {
		z, _, err := apfloat.Parse(s, prec, apfloat.RoundNearest)
		if err != nil {
			return nil, fmt.Errorf("invalid number format for %s: %q", key, s)
		}
		return z, nil
	}
	v, ok := GetNumber(params, key)
	if !ok {
		return nil, fmt.Errorf("%s must be a number or a numeric string", key)
	}
	z := apfloat.New(prec)
	z.SetFloat64(v, apfloat.RoundNearest)
	return z, nil
}

// formatValue renders z per the "format" and "digits" params.
func formatValue(params map[string]interface{}, z *apfloat.Float) (string, error) {
	format, _ := GetString(params, "format")
	switch format {
	case "", "decimal":
		digits, ok, err := GetInt(params, "digits")
		if err != nil {
			return "", err
		}
		if !ok || digits <= 0 {
			return z.Text('g', -1), nil
		}
		return z.Text('g', digits), nil
	case "hex":
		return z.Text('x', -1), nil
	case "binary":
		return z.Text('b', 0), nil
	default:
		return "", fmt.Errorf("unknown format %q (want decimal, hex or binary)", format)
	}
}

// resultData is the common shape of a rounded result.
func resultData(value string, z *apfloat.Float, t apfloat.Ternary, rnd apfloat.RoundingMode) map[string]interface{} {
	return map[string]interface{}{
		"value":     value,
		"ternary":   int(t),
		"precision": z.Prec(),
		"rounding":  rnd.String(),
		"nan":       z.IsNaN(),
	}
}
