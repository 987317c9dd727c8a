//go:build glpk

// Package glpk is a solver backend on top of the GNU Linear Programming Kit.
// It needs libglpk and cgo and is only compiled with the glpk build tag.
package glpk

import (
	"math"

	"github.com/lukpank/go-glpk/glpk"
	"github.com/pkg/errors"

	"github.com/piwi3910/RollCut/internal/solver"
)

// Solver hands models to GLPK.
type Solver struct {
	presolve bool
}

// Option configures a Solver.
type Option func(*Solver)

// WithPresolve enables the MIP presolver.
func WithPresolve(on bool) Option {
	return func(s *Solver) { s.presolve = on }
}

// New creates a GLPK-backed Solver.
func New(opts ...Option) *Solver {
	s := &Solver{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements solver.Solver.
func (s *Solver) Name() string { return "glpk" }

// Solve implements solver.Solver.
func (s *Solver) Solve(m *solver.Model) (*solver.Solution, error) {
	lp := glpk.New()
	defer lp.Delete()
	lp.SetProbName(m.Name)
	lp.SetObjName("obj")
	if m.Sense == solver.Maximize {
		lp.SetObjDir(glpk.MAX)
	} else {
		lp.SetObjDir(glpk.MIN)
	}
	// constant term of the objective lives at column 0
	lp.SetObjCoef(0, m.Offset)

	n := m.NumVars()
	if n > 0 {
		lp.AddCols(n)
	}
	for j := 0; j < n; j++ {
		v := m.Variable(solver.Var(j))
		col := j + 1
		lp.SetColName(col, v.Name)
		if v.Kind == solver.Integer {
			lp.SetColKind(col, glpk.IV)
		} else {
			lp.SetColKind(col, glpk.CV)
		}
		switch {
		case math.IsInf(v.Lower, -1) && math.IsInf(v.Upper, 1):
			lp.SetColBnds(col, glpk.FR, 0, 0)
		case math.IsInf(v.Upper, 1):
			lp.SetColBnds(col, glpk.LO, v.Lower, 0)
		case math.IsInf(v.Lower, -1):
			lp.SetColBnds(col, glpk.UP, 0, v.Upper)
		case v.Lower == v.Upper:
			lp.SetColBnds(col, glpk.FX, v.Lower, v.Upper)
		default:
			lp.SetColBnds(col, glpk.DB, v.Lower, v.Upper)
		}
		lp.SetObjCoef(col, v.Obj)
	}

	rows := m.NumConstraints()
	if rows > 0 {
		lp.AddRows(rows)
	}
	for i := 0; i < rows; i++ {
		r := m.Row(solver.Constraint(i))
		row := i + 1
		lp.SetRowName(row, r.Name)
		switch r.Relation {
		case solver.GreaterEqual:
			lp.SetRowBnds(row, glpk.LO, r.RHS, 0)
		case solver.LessEqual:
			lp.SetRowBnds(row, glpk.UP, 0, r.RHS)
		default:
			lp.SetRowBnds(row, glpk.FX, r.RHS, r.RHS)
		}
		// index 0 is ignored by glpk
		ind := []int32{0}
		val := []float64{0}
		for _, t := range r.Terms {
			ind = append(ind, int32(t.Var)+1)
			val = append(val, t.Coef)
		}
		lp.SetMatRow(row, ind, val)
	}

	smcp := glpk.NewSmcp()
	smcp.SetMsgLev(glpk.MSG_OFF)
	if err := lp.Simplex(smcp); err != nil {
		return nil, errors.Wrap(err, "glpk: simplex failed")
	}
	if err := statusError(lp.Status()); err != nil {
		return nil, err
	}

	if !m.IsMIP() {
		sol := &solver.Solution{
			Status:    solver.StatusOptimal,
			Objective: lp.ObjVal(),
			Values:    make([]float64, n),
			Duals:     make([]float64, rows),
		}
		for j := range sol.Values {
			sol.Values[j] = lp.ColPrim(j + 1)
		}
		for i := range sol.Duals {
			sol.Duals[i] = lp.RowDual(i + 1)
		}
		return sol, nil
	}

	iocp := glpk.NewIocp()
	iocp.SetMsgLev(glpk.MSG_OFF)
	iocp.SetPresolve(s.presolve)
	if err := lp.Intopt(iocp); err != nil {
		return nil, errors.Wrap(err, "glpk: intopt failed")
	}
	status := lp.MipStatus()
	if err := statusError(status); err != nil {
		return nil, err
	}

	sol := &solver.Solution{
		Status:    solver.StatusOptimal,
		Objective: lp.MipObjVal(),
		Values:    make([]float64, n),
	}
	if status == glpk.FEAS {
		sol.Status = solver.StatusFeasible
	}
	for j := range sol.Values {
		sol.Values[j] = lp.MipColVal(j + 1)
	}
	return sol, nil
}

func statusError(st glpk.SolStat) error {
	switch st {
	case glpk.OPT, glpk.FEAS:
		return nil
	case glpk.NOFEAS, glpk.INFEAS:
		return solver.ErrInfeasible
	case glpk.UNBND:
		return solver.ErrUnbounded
	default:
		return errors.Errorf("glpk: undefined solution status %d", st)
	}
}
