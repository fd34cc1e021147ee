package rules

import "github.com/nstehr/funnel/funnel-core/model"

// latch holds a cell that is written at most once per match.
type latch struct {
	cell model.Cell
	set  bool
}

func (l *latch) Get() (model.Cell, bool) { return l.cell, l.set }

// Set stores c if the latch is empty and reports whether it did.
func (l *latch) Set(c model.Cell) bool {
	if l.set {
		return false
	}
	l.cell, l.set = c, true
	return true
}

func (l *latch) reset() { *l = latch{} }
