package client

import (
	"context"
	"fmt"
)

// EvalRequest asks the server for one polynomial value
type EvalRequest struct {
	Family     string
	N          int
	X          string
	Precision  uint
	XPrecision uint
	Rounding   string
}

// Evaluation is a rounded value returned by the server
type Evaluation struct {
	Value     string
	Ternary   int
	Precision uint
	Rounding  string
	NaN       bool
}

// Evaluate calls math.legendre or math.hermite
func (c *Client) Evaluate(ctx context.Context, req EvalRequest) (*Evaluation, error) {
	params := map[string]interface{}{
		"n": req.N,
		"x": req.X,
	}
	if req.Precision > 0 {
		params["precision"] = req.Precision
	}
	if req.XPrecision > 0 {
		params["x_precision"] = req.XPrecision
	}
	if req.Rounding != "" {
		params["rounding"] = req.Rounding
	}

	result, err := c.Execute(ctx, "math."+req.Family, params)
	if err != nil {
		return nil, err
	}
	return decodeEvaluation(result.Data)
}

func decodeEvaluation(data map[string]interface{}) (*Evaluation, error) {
	value, ok := data["value"].(string)
	if !ok {
		return nil, fmt.Errorf("response has no value")
	}
	ternary, _ := data["ternary"].(float64)
	precision, _ := data["precision"].(float64)
	rounding, _ := data["rounding"].(string)
	nan, _ := data["nan"].(bool)

	return &Evaluation{
		Value:     value,
		Ternary:   int(ternary),
		Precision: uint(precision),
		Rounding:  rounding,
		NaN:       nan,
	}, nil
}
