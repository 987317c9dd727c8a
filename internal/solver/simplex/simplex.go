// Package simplex is the pure-Go solver backend. Linear programs are solved
// with gonum's simplex implementation; dual prices are recovered by solving
// the dual program, and integer variables are handled by depth-first
// branch-and-bound over LP relaxations.
package simplex

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/piwi3910/RollCut/internal/solver"
)

const (
	// DefaultTolerance is passed to gonum's simplex as its pivot tolerance.
	DefaultTolerance = 1e-10
	// DefaultIntegralityTolerance is how far from an integer a value may be
	// and still count as integral.
	DefaultIntegralityTolerance = 1e-6
)

// Solver solves solver.Model instances without cgo.
type Solver struct {
	tol       float64
	intTol    float64
	nodeLimit int
}

// Option configures a Solver.
type Option func(*Solver)

// WithTolerance sets the simplex pivot tolerance.
func WithTolerance(tol float64) Option {
	return func(s *Solver) {
		if tol > 0 {
			s.tol = tol
		}
	}
}

// WithIntegralityTolerance sets the integrality tolerance used while branching.
func WithIntegralityTolerance(tol float64) Option {
	return func(s *Solver) {
		if tol > 0 {
			s.intTol = tol
		}
	}
}

// WithNodeLimit bounds the number of branch-and-bound nodes. Zero means no limit.
func WithNodeLimit(n int) Option {
	return func(s *Solver) {
		if n >= 0 {
			s.nodeLimit = n
		}
	}
}

// New creates a Solver.
func New(opts ...Option) *Solver {
	s := &Solver{
		tol:    DefaultTolerance,
		intTol: DefaultIntegralityTolerance,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements solver.Solver.
func (s *Solver) Name() string { return "simplex" }

// Solve implements solver.Solver. Dual prices are only reported for models
// without integer variables.
func (s *Solver) Solve(m *solver.Model) (*solver.Solution, error) {
	lower := make([]float64, m.NumVars())
	upper := make([]float64, m.NumVars())
	for j := range lower {
		v := m.Variable(solver.Var(j))
		if math.IsInf(v.Lower, -1) {
			return nil, errors.Errorf("simplex: variable %s has no finite lower bound", v.Name)
		}
		lower[j], upper[j] = v.Lower, v.Upper
	}

	if m.IsMIP() {
		return s.branchAndBound(m, lower, upper)
	}

	r, err := s.relax(m, lower, upper, true)
	if err != nil {
		return nil, err
	}
	return &solver.Solution{
		Status:    solver.StatusOptimal,
		Objective: r.objective,
		Values:    r.x,
		Duals:     r.duals,
	}, nil
}

type relaxation struct {
	x         []float64
	objective float64 // in the model's own sense, offset included
	duals     []float64
}

// standardForm is min cᵀz s.t. A z = b, z ≥ 0 where z holds the shifted
// structural variables that appear in some row followed by one slack or
// surplus per inequality row.
type standardForm struct {
	c       []float64
	a       *mat.Dense
	b       []float64
	cols    []int  // structural variable -> column of z, -1 when absent
	rowOf   []int  // model constraint -> row of A, -1 when dropped
	flipped []bool // row of A was multiplied by -1
}

func (s *Solver) standardize(m *solver.Model, lower, upper []float64) (*standardForm, error) {
	n := m.NumVars()
	sign := 1.0
	if m.Sense == solver.Maximize {
		sign = -1
	}

	type rawRow struct {
		coef []float64
		rel  solver.Relation
		rhs  float64
	}
	var raw []rawRow

	sf := &standardForm{rowOf: make([]int, m.NumConstraints())}
	used := make([]bool, n)

	for i := 0; i < m.NumConstraints(); i++ {
		row := m.Row(solver.Constraint(i))
		coef := make([]float64, n)
		for _, t := range row.Terms {
			coef[t.Var] += t.Coef
		}
		rhs := row.RHS
		empty := true
		for j, a := range coef {
			if a != 0 {
				empty = false
				used[j] = true
				rhs -= a * lower[j]
			}
		}
		if empty {
			if !satisfied(0, row.Relation, rhs, s.intTol) {
				return nil, errors.Wrapf(solver.ErrInfeasible, "constraint %s has no terms", row.Name)
			}
			sf.rowOf[i] = -1
			continue
		}
		sf.rowOf[i] = len(raw)
		raw = append(raw, rawRow{coef: coef, rel: row.Relation, rhs: rhs})
	}

	for j := 0; j < n; j++ {
		if math.IsInf(upper[j], 1) {
			continue
		}
		span := upper[j] - lower[j]
		if span < -s.intTol {
			return nil, errors.Wrapf(solver.ErrInfeasible, "bounds of %s cross", m.Variable(solver.Var(j)).Name)
		}
		if span < 0 {
			span = 0
		}
		coef := make([]float64, n)
		coef[j] = 1
		used[j] = true
		raw = append(raw, rawRow{coef: coef, rel: solver.LessEqual, rhs: span})
	}

	sf.cols = make([]int, n)
	nz := 0
	for j := 0; j < n; j++ {
		if !used[j] {
			sf.cols[j] = -1
			if sign*m.Variable(solver.Var(j)).Obj < 0 {
				return nil, solver.ErrUnbounded
			}
			continue
		}
		sf.cols[j] = nz
		nz++
	}
	if len(raw) == 0 {
		return sf, nil
	}

	slacks := 0
	for _, r := range raw {
		if r.rel != solver.Equal {
			slacks++
		}
	}
	rows, cols := len(raw), nz+slacks
	if rows > cols {
		return nil, errors.Errorf("simplex: %d equality rows exceed %d columns", rows, cols)
	}

	sf.c = make([]float64, cols)
	for j := 0; j < n; j++ {
		if sf.cols[j] >= 0 {
			sf.c[sf.cols[j]] = sign * m.Variable(solver.Var(j)).Obj
		}
	}
	sf.a = mat.NewDense(rows, cols, nil)
	sf.b = make([]float64, rows)
	sf.flipped = make([]bool, rows)

	next := nz
	for k, r := range raw {
		for j, v := range r.coef {
			if v != 0 && sf.cols[j] >= 0 {
				sf.a.Set(k, sf.cols[j], v)
			}
		}
		switch r.rel {
		case solver.GreaterEqual:
			sf.a.Set(k, next, -1)
			next++
		case solver.LessEqual:
			sf.a.Set(k, next, 1)
			next++
		}
		sf.b[k] = r.rhs
		if r.rhs < 0 {
			for j := 0; j < cols; j++ {
				if v := sf.a.At(k, j); v != 0 {
					sf.a.Set(k, j, -v)
				}
			}
			sf.b[k] = -r.rhs
			sf.flipped[k] = true
		}
	}
	return sf, nil
}

// relax solves the LP relaxation of m under the given bounds.
func (s *Solver) relax(m *solver.Model, lower, upper []float64, withDuals bool) (*relaxation, error) {
	sf, err := s.standardize(m, lower, upper)
	if err != nil {
		return nil, err
	}

	x := append([]float64(nil), lower...)
	var z []float64
	if sf.a != nil {
		_, z, err = lp.Simplex(sf.c, sf.a, sf.b, s.tol, nil)
		if err != nil {
			return nil, mapError(err)
		}
		for j, col := range sf.cols {
			if col >= 0 {
				x[j] += z[col]
			}
		}
	}

	r := &relaxation{x: x, objective: m.Objective(x)}
	if withDuals {
		r.duals = make([]float64, m.NumConstraints())
		if sf.a != nil {
			y, err := s.duals(sf)
			if err != nil {
				return nil, errors.Wrap(err, "simplex: dual solve failed")
			}
			sign := 1.0
			if m.Sense == solver.Maximize {
				sign = -1
			}
			for i, k := range sf.rowOf {
				if k < 0 {
					continue
				}
				pi := y[k]
				if sf.flipped[k] {
					pi = -pi
				}
				r.duals[i] = sign * pi
			}
		}
	}
	return r, nil
}

// duals solves max bᵀy s.t. Aᵀy ≤ c with y free, split as y = p - q, and
// returns y.
func (s *Solver) duals(sf *standardForm) ([]float64, error) {
	rows, cols := sf.a.Dims()
	width := 2*rows + cols

	d := mat.NewDense(cols, width, nil)
	rhs := make([]float64, cols)
	for j := 0; j < cols; j++ {
		sgn := 1.0
		if sf.c[j] < 0 {
			sgn = -1
		}
		for k := 0; k < rows; k++ {
			if v := sf.a.At(k, j); v != 0 {
				d.Set(j, k, sgn*v)
				d.Set(j, rows+k, -sgn*v)
			}
		}
		d.Set(j, 2*rows+j, sgn)
		rhs[j] = sgn * sf.c[j]
	}

	obj := make([]float64, width)
	for k := 0; k < rows; k++ {
		obj[k] = -sf.b[k]
		obj[rows+k] = sf.b[k]
	}

	_, w, err := lp.Simplex(obj, d, rhs, s.tol, nil)
	if err != nil {
		return nil, mapError(err)
	}
	y := make([]float64, rows)
	for k := range y {
		y[k] = w[k] - w[rows+k]
	}
	return y, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, lp.ErrInfeasible):
		return solver.ErrInfeasible
	case errors.Is(err, lp.ErrUnbounded):
		return solver.ErrUnbounded
	default:
		return errors.Wrap(err, "simplex")
	}
}

func satisfied(lhs float64, rel solver.Relation, rhs, tol float64) bool {
	switch rel {
	case solver.GreaterEqual:
		return lhs >= rhs-tol
	case solver.LessEqual:
		return lhs <= rhs+tol
	default:
		return math.Abs(lhs-rhs) <= tol
	}
}
