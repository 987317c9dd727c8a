//go:build glpk

package glpk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/RollCut/internal/solver"
)

func TestSolve_LPDuals(t *testing.T) {
	m := solver.NewModel("lp", solver.Minimize)
	x := m.AddVariable("x", solver.Continuous, 0, 1)
	y := m.AddVariable("y", solver.Continuous, 0, 1)
	c0 := m.AddConstraint("a", []solver.Term{{Var: x, Coef: 1}, {Var: y, Coef: 2}}, solver.GreaterEqual, 4)
	c1 := m.AddConstraint("b", []solver.Term{{Var: x, Coef: 3}, {Var: y, Coef: 1}}, solver.GreaterEqual, 6)

	sol, err := New().Solve(m)
	require.NoError(t, err)

	assert.InDelta(t, 2.8, sol.Objective, 1e-9)
	duals := sol.DualPrices(c0, c1)
	assert.InDelta(t, 0.4, duals[0], 1e-9)
	assert.InDelta(t, 0.2, duals[1], 1e-9)
}

func TestSolve_MIP(t *testing.T) {
	m := solver.NewModel("mip", solver.Maximize)
	x := m.AddVariable("x", solver.Integer, 0, 5)
	y := m.AddVariable("y", solver.Integer, 0, 4)
	m.AddConstraint("r0", []solver.Term{{Var: x, Coef: 6}, {Var: y, Coef: 4}}, solver.LessEqual, 24)
	m.AddConstraint("r1", []solver.Term{{Var: x, Coef: 1}, {Var: y, Coef: 2}}, solver.LessEqual, 6)

	sol, err := New().Solve(m)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, sol.Objective, 1e-9)
	assert.InDelta(t, 4.0, sol.Value(x), 1e-9)
}

func TestSolve_Infeasible(t *testing.T) {
	m := solver.NewModel("infeasible", solver.Minimize)
	x := m.AddVariable("x", solver.Continuous, 0, 1)
	m.SetUpperBound(x, 3)
	m.AddConstraint("need", []solver.Term{{Var: x, Coef: 1}}, solver.GreaterEqual, 5)

	_, err := New().Solve(m)
	assert.ErrorIs(t, err, solver.ErrInfeasible)
}
