package simplex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/RollCut/internal/solver"
)

const eps = 1e-6

func TestSolve_MinimizeWithDuals(t *testing.T) {
	m := solver.NewModel("lp", solver.Minimize)
	x := m.AddVariable("x", solver.Continuous, 0, 1)
	y := m.AddVariable("y", solver.Continuous, 0, 1)
	c0 := m.AddConstraint("a", []solver.Term{{Var: x, Coef: 1}, {Var: y, Coef: 2}}, solver.GreaterEqual, 4)
	c1 := m.AddConstraint("b", []solver.Term{{Var: x, Coef: 3}, {Var: y, Coef: 1}}, solver.GreaterEqual, 6)

	sol, err := New().Solve(m)
	require.NoError(t, err)

	assert.Equal(t, solver.StatusOptimal, sol.Status)
	assert.InDelta(t, 2.8, sol.Objective, eps)
	assert.InDelta(t, 1.6, sol.Value(x), eps)
	assert.InDelta(t, 1.2, sol.Value(y), eps)
	duals := sol.DualPrices(c0, c1)
	assert.InDelta(t, 0.4, duals[0], eps)
	assert.InDelta(t, 0.2, duals[1], eps)
}

func TestSolve_SeedMasterDuals(t *testing.T) {
	// three single-width seed patterns for widths 6, 11, 17 on a roll of 100
	m := solver.NewModel("MP", solver.Minimize)
	demand := []float64{9, 6, 20}
	perRoll := []float64{16, 9, 5}
	waste := []float64{4, 1, 15}

	var cons []solver.Constraint
	for _, d := range demand {
		cons = append(cons, m.AddConstraint("", nil, solver.GreaterEqual, d))
	}
	for i := range demand {
		coefs := make([]float64, len(demand))
		coefs[i] = perRoll[i]
		m.AddColumn("", solver.Continuous, 0, waste[i], cons, coefs)
	}

	sol, err := New().Solve(m)
	require.NoError(t, err)

	assert.InDelta(t, 4*9.0/16+1*6.0/9+15*4, sol.Objective, eps)
	duals := sol.DualPrices(cons...)
	assert.InDelta(t, 0.25, duals[0], eps)
	assert.InDelta(t, 1.0/9, duals[1], eps)
	assert.InDelta(t, 3.0, duals[2], eps)
}

func TestSolve_MaximizeWithUpperBound(t *testing.T) {
	m := solver.NewModel("max", solver.Maximize)
	x := m.AddVariable("x", solver.Continuous, 0, 3)
	y := m.AddVariable("y", solver.Continuous, 0, 2)
	m.SetUpperBound(x, 3)
	c0 := m.AddConstraint("r0", []solver.Term{{Var: x, Coef: 1}, {Var: y, Coef: 1}}, solver.LessEqual, 4)
	c1 := m.AddConstraint("r1", []solver.Term{{Var: x, Coef: 1}, {Var: y, Coef: 3}}, solver.LessEqual, 9)

	sol, err := New().Solve(m)
	require.NoError(t, err)

	assert.InDelta(t, 11.0, sol.Objective, eps)
	assert.InDelta(t, 3.0, sol.Value(x), eps)
	assert.InDelta(t, 1.0, sol.Value(y), eps)
	duals := sol.DualPrices(c0, c1)
	assert.InDelta(t, 2.0, duals[0], eps)
	assert.InDelta(t, 0.0, duals[1], eps)
}

func TestSolve_LowerBoundShift(t *testing.T) {
	m := solver.NewModel("shift", solver.Minimize)
	x := m.AddVariable("x", solver.Continuous, 2, 1)
	m.AddConstraint("r", []solver.Term{{Var: x, Coef: 1}}, solver.LessEqual, 10)

	sol, err := New().Solve(m)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, sol.Value(x), eps)
	assert.InDelta(t, 2.0, sol.Objective, eps)
}

func TestSolve_Offset(t *testing.T) {
	m := solver.NewModel("offset", solver.Minimize)
	x := m.AddVariable("x", solver.Continuous, 0, 0)
	m.AddConstraint("r", []solver.Term{{Var: x, Coef: 1}}, solver.GreaterEqual, 1)
	m.SetObjective([]solver.Term{{Var: x, Coef: 2}}, solver.Minimize, -5)

	sol, err := New().Solve(m)
	require.NoError(t, err)
	assert.InDelta(t, -3.0, sol.Objective, eps)
}

func TestSolve_Infeasible(t *testing.T) {
	m := solver.NewModel("infeasible", solver.Minimize)
	x := m.AddVariable("x", solver.Continuous, 0, 1)
	y := m.AddVariable("y", solver.Continuous, 0, 1)
	both := []solver.Term{{Var: x, Coef: 1}, {Var: y, Coef: 1}}
	m.AddConstraint("lo", both, solver.LessEqual, 1)
	m.AddConstraint("hi", both, solver.GreaterEqual, 3)

	_, err := New().Solve(m)
	assert.ErrorIs(t, err, solver.ErrInfeasible)
}

func TestSolve_InfeasibleBounds(t *testing.T) {
	m := solver.NewModel("bounds", solver.Minimize)
	x := m.AddVariable("x", solver.Continuous, 0, 1)
	m.SetUpperBound(x, 3)
	m.AddConstraint("need", []solver.Term{{Var: x, Coef: 1}}, solver.GreaterEqual, 5)

	_, err := New().Solve(m)
	assert.ErrorIs(t, err, solver.ErrInfeasible)
}

func TestSolve_EmptyRowInfeasible(t *testing.T) {
	m := solver.NewModel("empty", solver.Minimize)
	m.AddVariable("x", solver.Continuous, 0, 1)
	m.AddConstraint("demand", nil, solver.GreaterEqual, 2)

	_, err := New().Solve(m)
	assert.ErrorIs(t, err, solver.ErrInfeasible)
}

func TestSolve_Unbounded(t *testing.T) {
	m := solver.NewModel("free", solver.Minimize)
	m.AddVariable("x", solver.Continuous, 0, -1)

	_, err := New().Solve(m)
	assert.ErrorIs(t, err, solver.ErrUnbounded)
}

func TestSolve_IntegerProgram(t *testing.T) {
	m := solver.NewModel("mip", solver.Maximize)
	x := m.AddVariable("x", solver.Integer, 0, 5)
	y := m.AddVariable("y", solver.Integer, 0, 4)
	m.AddConstraint("r0", []solver.Term{{Var: x, Coef: 6}, {Var: y, Coef: 4}}, solver.LessEqual, 24)
	m.AddConstraint("r1", []solver.Term{{Var: x, Coef: 1}, {Var: y, Coef: 2}}, solver.LessEqual, 6)

	sol, err := New().Solve(m)
	require.NoError(t, err)

	assert.Equal(t, solver.StatusOptimal, sol.Status)
	assert.InDelta(t, 20.0, sol.Objective, eps)
	assert.Equal(t, 4.0, sol.Value(x))
	assert.Equal(t, 0.0, sol.Value(y))
	assert.Nil(t, sol.Duals)
	assert.Greater(t, sol.Nodes, 1)
}

func seedIntegerMaster() *solver.Model {
	m := solver.NewModel("IP", solver.Minimize)
	demand := []float64{9, 6, 20}
	perRoll := []float64{16, 9, 5}
	waste := []float64{4, 1, 15}
	var cons []solver.Constraint
	for _, d := range demand {
		cons = append(cons, m.AddConstraint("", nil, solver.GreaterEqual, d))
	}
	for i := range demand {
		coefs := make([]float64, len(demand))
		coefs[i] = perRoll[i]
		m.AddColumn("", solver.Integer, 0, waste[i], cons, coefs)
	}
	return m
}

func TestSolve_IntegerMaster(t *testing.T) {
	sol, err := New().Solve(seedIntegerMaster())
	require.NoError(t, err)

	assert.Equal(t, solver.StatusOptimal, sol.Status)
	assert.InDelta(t, 65.0, sol.Objective, eps)
	assert.Equal(t, []float64{1, 1, 4}, sol.Values)
}

func TestSolve_NodeLimitKeepsIncumbent(t *testing.T) {
	sol, err := New(WithNodeLimit(1)).Solve(seedIntegerMaster())
	require.NoError(t, err)

	assert.Equal(t, solver.StatusFeasible, sol.Status)
	assert.InDelta(t, 65.0, sol.Objective, eps)
	assert.Equal(t, 1, sol.Nodes)
}

func TestSolve_NodeLimitWithoutIncumbent(t *testing.T) {
	m := solver.NewModel("mip", solver.Maximize)
	x := m.AddVariable("x", solver.Integer, 0, 5)
	y := m.AddVariable("y", solver.Integer, 0, 4)
	m.AddConstraint("r0", []solver.Term{{Var: x, Coef: 6}, {Var: y, Coef: 4}}, solver.LessEqual, 24)
	m.AddConstraint("r1", []solver.Term{{Var: x, Coef: 1}, {Var: y, Coef: 2}}, solver.LessEqual, 6)

	_, err := New(WithNodeLimit(1)).Solve(m)
	assert.ErrorIs(t, err, solver.ErrNodeLimit)
}

func TestSolve_KnapsackPricing(t *testing.T) {
	// min d - Σ y_i a_i  s.t.  6a0 + 11a1 + 17a2 + d = 100
	m := solver.NewModel("AP", solver.Minimize)
	widths := []float64{6, 11, 17}
	duals := []float64{0.25, 1.0 / 9, 3}
	terms := make([]solver.Term, 0, 4)
	obj := make([]solver.Term, 0, 4)
	for i, w := range widths {
		a := m.AddVariable("", solver.Integer, 0, 0)
		terms = append(terms, solver.Term{Var: a, Coef: w})
		obj = append(obj, solver.Term{Var: a, Coef: -duals[i]})
	}
	d := m.AddVariable("d", solver.Continuous, 0, 0)
	terms = append(terms, solver.Term{Var: d, Coef: 1})
	obj = append(obj, solver.Term{Var: d, Coef: 1})
	m.AddConstraint("width", terms, solver.Equal, 100)
	m.SetObjective(obj, solver.Minimize, 0)

	sol, err := New().Solve(m)
	require.NoError(t, err)

	assert.InDelta(t, -12.5, sol.Objective, eps)
	assert.Equal(t, []float64{2, 0, 5}, sol.Values[:3])
	assert.InDelta(t, 3.0, sol.Value(d), eps)
}

func TestNew_Options(t *testing.T) {
	s := New(WithTolerance(1e-8), WithIntegralityTolerance(1e-4), WithNodeLimit(50))
	assert.Equal(t, 1e-8, s.tol)
	assert.Equal(t, 1e-4, s.intTol)
	assert.Equal(t, 50, s.nodeLimit)
	assert.Equal(t, "simplex", s.Name())

	s = New(WithTolerance(-1), WithNodeLimit(-3))
	assert.Equal(t, DefaultTolerance, s.tol)
	assert.Equal(t, 0, s.nodeLimit)
}
