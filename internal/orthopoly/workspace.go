package orthopoly

import (
	"math/big"
	"sync"

	"github.com/GriffinCanCode/polyprec/internal/errbound"
)

// Workspaces above this precision are dropped instead of pooled.
const poolMaxPrec = 1 << 14

// workspace is the fixed set of temporaries of one recurrence: a two-slot
// window of terms with their error bounds, and scratch values.
type workspace struct {
	win [2]*big.Float
	err [2]errbound.Bound
	cur int // index of the newest term

	a *big.Float // scaled argument
	c *big.Float // scaled older term
	d *big.Float // bracket
	s *big.Float // exact product, sized by apfloat.ExactMul

	prec uint
}

var workspacePool = sync.Pool{
	New: func() any {
		return &workspace{
			win: [2]*big.Float{new(big.Float), new(big.Float)},
			a:   new(big.Float),
			c:   new(big.Float),
			d:   new(big.Float),
			s:   new(big.Float),
		}
	},
}

func acquireWorkspace() *workspace {
	return workspacePool.Get().(*workspace)
}

// release hands the workspace back, dropping escalated buffers.
func (w *workspace) release() {
	if w == nil || w.prec > poolMaxPrec {
		return
	}
	w.err = [2]errbound.Bound{}
	w.cur = 0
	workspacePool.Put(w)
}

// resize sets every temporary to prec bits. Values are not preserved.
func (w *workspace) resize(prec uint) {
	w.prec = prec
	for _, f := range []*big.Float{w.win[0], w.win[1], w.a, w.c, w.d} {
		f.SetMode(big.ToNearestEven)
		f.SetPrec(prec)
	}
	w.s.SetMode(big.ToNearestEven)
}

// reset loads p0 = 1 and p1 into the window, p1 being the newest term.
// e1 bounds the error p1 already carries.
func (w *workspace) reset(p1 *big.Float, e1 errbound.Bound) {
	w.win[0].SetInt64(1)
	w.err[0] = errbound.Zero()
	acc := w.win[1].Set(p1).Acc()
	w.err[1] = e1.Add(errbound.Rounding(w.win[1], acc))
	w.cur = 1
}

// newest returns the most recent term and its error bound.
func (w *workspace) newest() (*big.Float, errbound.Bound) {
	return w.win[w.cur], w.err[w.cur]
}

// slots returns the indices of the newest and the older term.
func (w *workspace) slots() (newer, older int) {
	return w.cur, 1 - w.cur
}

// rotate makes slot i, just overwritten with the next term, the newest.
func (w *workspace) rotate(i int, e errbound.Bound) {
	w.err[i] = e
	w.cur = i
}
