package simplex

import (
	"math"

	"github.com/pkg/errors"

	"github.com/piwi3910/RollCut/internal/solver"
)

type node struct {
	lower, upper []float64
}

// branchAndBound explores LP relaxations depth-first, branching on the most
// fractional integer variable. The first incumbent comes from rounding the
// root relaxation up.
func (s *Solver) branchAndBound(m *solver.Model, lower, upper []float64) (*solver.Solution, error) {
	n := m.NumVars()
	integer := make([]bool, n)
	integralObj := m.Offset == math.Trunc(m.Offset)
	for j := 0; j < n; j++ {
		v := m.Variable(solver.Var(j))
		integer[j] = v.Kind == solver.Integer
		if !integer[j] || v.Obj != math.Trunc(v.Obj) {
			integralObj = false
		}
	}

	sign := 1.0
	if m.Sense == solver.Maximize {
		sign = -1
	}

	var incumbent []float64
	best := math.Inf(1) // minimisation form

	stack := []node{{lower: lower, upper: upper}}
	nodes := 0
	limitHit := false

	for len(stack) > 0 {
		if s.nodeLimit > 0 && nodes >= s.nodeLimit {
			limitHit = true
			break
		}
		nd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nodes++

		r, err := s.relax(m, nd.lower, nd.upper, false)
		if err != nil {
			if errors.Is(err, solver.ErrInfeasible) {
				continue
			}
			return nil, err
		}

		if nodes == 1 {
			if x := s.roundUp(r.x, integer); m.Feasible(x, s.intTol) {
				incumbent, best = x, sign*m.Objective(x)
			}
		}

		bound := sign * r.objective
		if integralObj {
			bound = math.Ceil(bound - s.intTol)
		}
		if bound >= best-s.intTol {
			continue
		}

		branch := -1
		worst := s.intTol
		for j := 0; j < n; j++ {
			if !integer[j] {
				continue
			}
			f := r.x[j] - math.Floor(r.x[j])
			if d := math.Min(f, 1-f); d > worst {
				branch, worst = j, d
			}
		}
		if branch < 0 {
			incumbent, best = s.snap(r.x, integer), sign*r.objective
			continue
		}

		v := r.x[branch]
		down := node{lower: nd.lower, upper: append([]float64(nil), nd.upper...)}
		down.upper[branch] = math.Floor(v)
		up := node{lower: append([]float64(nil), nd.lower...), upper: nd.upper}
		up.lower[branch] = math.Ceil(v)
		// up is explored first
		stack = append(stack, down, up)
	}

	if incumbent == nil {
		if limitHit {
			return nil, solver.ErrNodeLimit
		}
		return nil, solver.ErrInfeasible
	}

	status := solver.StatusOptimal
	if limitHit {
		status = solver.StatusFeasible
	}
	return &solver.Solution{
		Status:    status,
		Objective: m.Objective(incumbent),
		Values:    incumbent,
		Nodes:     nodes,
	}, nil
}

func (s *Solver) roundUp(x []float64, integer []bool) []float64 {
	out := append([]float64(nil), x...)
	for j := range out {
		if integer[j] {
			out[j] = math.Ceil(out[j] - s.intTol)
		}
	}
	return out
}

func (s *Solver) snap(x []float64, integer []bool) []float64 {
	out := append([]float64(nil), x...)
	for j := range out {
		if integer[j] {
			out[j] = math.Round(out[j])
		}
	}
	return out
}
