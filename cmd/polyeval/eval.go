package main

import (
	"fmt"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/polyprec/internal/apfloat"
	"github.com/GriffinCanCode/polyprec/internal/orthopoly"
)

type evalOutput struct {
	Family    string `json:"family"`
	N         int    `json:"n"`
	X         string `json:"x"`
	Value     string `json:"value"`
	Ternary   int    `json:"ternary"`
	Precision uint   `json:"precision"`
	Rounding  string `json:"rounding"`
	NaN       bool   `json:"nan"`
}

type evalFlags struct {
	prec   uint
	xprec  uint
	rnd    string
	format string
	digits int
	json   bool
}

func newEvalCmd(a *app, family orthopoly.Family) *cobra.Command {
	var f evalFlags
	symbol := "P"
	if family == orthopoly.FamilyHermite {
		symbol = "H"
	}

	cmd := &cobra.Command{
		Use:   family.String() + " N X",
		Short: fmt.Sprintf("Evaluate %s_N(X) correctly rounded", symbol),
		Long: fmt.Sprintf(`Evaluate the %s polynomial %s_N at X, rounded to --prec bits.

X is read as a decimal, hex (0x1.8p-3) or binary (0b0.11) literal and rounded
to nearest at --xprec bits, which defaults to max(prec, 64). Put "--" before a
negative X.`, family, symbol),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("degree %q is not an integer", args[0])
			}
			out, err := evaluate(a, family, n, args[1], f)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if f.json {
				enc := sonic.ConfigStd.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			t := apfloat.Ternary(out.Ternary)
			_, err = fmt.Fprintf(w, "%s%d(%s) = %s [%s]\n", symbol, n, args[1], out.Value, t)
			return err
		},
	}

	cmd.Flags().UintVarP(&f.prec, "prec", "p", 0, "result precision in bits (default EVAL_DEFAULT_PRECISION)")
	cmd.Flags().UintVar(&f.xprec, "xprec", 0, "precision X is read at (default max(prec, 64))")
	cmd.Flags().StringVarP(&f.rnd, "rnd", "r", "RNDN", "rounding mode: RNDN, RNDZ, RNDU, RNDD, RNDA or RNDF")
	cmd.Flags().StringVarP(&f.format, "format", "f", "decimal", "output format: decimal, hex or binary")
	cmd.Flags().IntVarP(&f.digits, "digits", "d", 0, "significant decimal digits (0 for shortest round-trip)")
	cmd.Flags().BoolVar(&f.json, "json", false, "print JSON")
	return cmd
}

func evaluate(a *app, family orthopoly.Family, n int, xs string, f evalFlags) (*evalOutput, error) {
	ev := a.evaluator()

	rnd, err := apfloat.ParseRoundingMode(f.rnd)
	if err != nil {
		return nil, err
	}
	prec := f.prec
	if prec == 0 {
		prec = a.cfg.Eval.DefaultPrecision
	}
	xprec := f.xprec
	if xprec == 0 {
		xprec = max(prec, 64)
	}
	if prec > ev.MaxPrecision() || xprec > ev.MaxPrecision() {
		return nil, fmt.Errorf("precision exceeds %d bits", ev.MaxPrecision())
	}

	x, _, err := apfloat.Parse(xs, xprec, apfloat.RoundNearest)
	if err != nil {
		return nil, err
	}
	res := apfloat.New(prec)
	t, err := ev.Evaluate(family, res, n, x, rnd)
	if err != nil {
		return nil, err
	}

	value, err := format(res, f.format, f.digits)
	if err != nil {
		return nil, err
	}
	return &evalOutput{
		Family:    family.String(),
		N:         n,
		X:         xs,
		Value:     value,
		Ternary:   int(t),
		Precision: prec,
		Rounding:  rnd.String(),
		NaN:       res.IsNaN(),
	}, nil
}

func format(z *apfloat.Float, name string, digits int) (string, error) {
	switch name {
	case "", "decimal":
		if digits <= 0 {
			digits = -1
		}
		return z.Text('g', digits), nil
	case "hex":
		return z.Text('x', -1), nil
	case "binary":
		return z.Text('b', 0), nil
	default:
		return "", fmt.Errorf("unknown format %q", name)
	}
}
