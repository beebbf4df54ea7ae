package orthopoly

import (
	"github.com/GriffinCanCode/polyprec/internal/apfloat"
	"github.com/GriffinCanCode/polyprec/internal/errbound"
	"github.com/GriffinCanCode/polyprec/internal/ziv"
)

// legendreTask runs Bonnet's recursion
//
//	p_i = [(2i−1)·x·p_{i−1} − (i−1)·p_{i−2}] / i
//
// from p_0 = 1, p_1 = x.
type legendreTask struct {
	recurrence
}

func newLegendreTask(n int, x *apfloat.Float, target uint, rnd apfloat.RoundingMode) *legendreTask {
	return &legendreTask{recurrence: newRecurrence(n, x, target, rnd)}
}

func (t *legendreTask) initial() uint {
	return ziv.Initial(t.target, t.x.Prec(), errbound.LegendreGuard(t.n))
}

// Compute implements ziv.Task.
func (t *legendreTask) Compute(prec uint) ziv.Signal {
	ws := t.ws
	ws.reset(t.x, errbound.Zero())

	for i := 2; i <= t.n; i++ {
		newer, older := ws.slots()
		p1, e1 := ws.win[newer], ws.err[newer]
		p2, e2 := ws.win[older], ws.err[older]
		u := uint64(i)

		// a = (2i−1)·x
		acc := apfloat.MulUint(ws.a, t.x, 2*u-1)
		ea := errbound.Rounding(ws.a, acc)

		// s = a·p_{i−1}, kept exact so the bracket rounds once
		acc = apfloat.ExactMul(ws.s, ws.a, p1)
		es := errbound.MulErr(ws.s, acc, ws.a, ea, p1, e1)

		// c = (i−1)·p_{i−2}
		acc = apfloat.MulUint(ws.c, p2, u-1)
		ec := errbound.MulUintErr(ws.c, acc, e2, u-1)

		if lost, abort := t.cancels(prec, ws.s, es, ws.c, ec); abort {
			return ziv.Signal{Restart: true, Lost: lost}
		}

		acc = ws.d.Sub(ws.s, ws.c).Acc()
		ed := errbound.SubErr(ws.d, acc, es, ec)

		// p_i overwrites p_{i−2}
		acc = apfloat.DivUint(p2, ws.d, u)
		ws.rotate(older, errbound.DivUintErr(p2, acc, ed, u))
	}
	return ziv.Signal{}
}
