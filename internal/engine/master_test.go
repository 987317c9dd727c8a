package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/RollCut/internal/model"
	"github.com/piwi3910/RollCut/internal/solver"
	"github.com/piwi3910/RollCut/internal/solver/simplex"
)

const tol = 1e-6

func seededMaster(order model.Order) *Master {
	return NewMaster(simplex.New(), order, SeedPatterns(order.Pieces, order.RollWidth))
}

func TestMaster_SeededIsFeasible(t *testing.T) {
	m := seededMaster(exampleOrder())

	sol, err := m.Solve()
	require.NoError(t, err)

	assert.InDelta(t, 4*9.0/16+6.0/9+15*4, sol.Objective, tol)
	require.Len(t, sol.Values, 3)
	assert.InDelta(t, 9.0/16, sol.Values[0], tol)
	assert.InDelta(t, 2.0/3, sol.Values[1], tol)
	assert.InDelta(t, 4.0, sol.Values[2], tol)
	require.Len(t, sol.Duals, 3)
	assert.InDelta(t, 0.25, sol.Duals[0], tol)
	assert.InDelta(t, 1.0/9, sol.Duals[1], tol)
	assert.InDelta(t, 3.0, sol.Duals[2], tol)
}

func TestMaster_ModelLayout(t *testing.T) {
	order := exampleOrder()
	order.AvailableRolls = 10
	m := seededMaster(order)

	mod := m.Model()
	require.Equal(t, 4, mod.NumConstraints())
	assert.Equal(t, "Demand[6]", mod.Row(0).Name)
	assert.Equal(t, solver.GreaterEqual, mod.Row(0).Relation)
	assert.Equal(t, "AvailableRolls", mod.Row(3).Name)
	assert.Equal(t, solver.LessEqual, mod.Row(3).Relation)
	assert.Equal(t, 10.0, mod.Row(3).RHS)
	assert.Len(t, mod.Row(3).Terms, 3)
	assert.Equal(t, "x[2]", mod.Variable(2).Name)
	assert.Equal(t, 15.0, mod.Variable(2).Obj)
}

func TestMaster_CapacityDualIsLast(t *testing.T) {
	order := exampleOrder()
	order.AvailableRolls = 10
	m := seededMaster(order)

	sol, err := m.Solve()
	require.NoError(t, err)
	require.Len(t, sol.Duals, 4)
	assert.InDelta(t, 0.0, sol.Duals[3], tol, "cap is not binding")
}

func TestMaster_AddColumnImprovesObjective(t *testing.T) {
	order := exampleOrder()
	m := seededMaster(order)
	before, err := m.Solve()
	require.NoError(t, err)

	p := model.NewPattern(3, []int{2, 0, 5}, order.Pieces, order.RollWidth)
	v := m.AddColumn(p, 3)
	assert.Equal(t, "x[3]", m.Model().Variable(v).Name)
	assert.Equal(t, 4, m.Columns())

	after, err := m.Solve()
	require.NoError(t, err)
	assert.Less(t, after.Objective, before.Objective-tol)
	assert.Len(t, after.Values, 4)
}

func TestMaster_InfeasibleCapacity(t *testing.T) {
	order := exampleOrder()
	order.AvailableRolls = 1
	m := seededMaster(order)

	_, err := m.Solve()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInfeasibleMaster)
	assert.ErrorIs(t, err, solver.ErrInfeasible)

	var ime *InfeasibleMasterError
	require.ErrorAs(t, err, &ime)
	assert.Equal(t, []string{"Demand[6]", "Demand[11]", "Demand[17]", "AvailableRolls"}, ime.Rows)
	assert.Contains(t, err.Error(), "AvailableRolls")
}

func TestMaster_InfeasibleOnlyForKnownPatterns(t *testing.T) {
	// 460 mm of pieces fit on 5 rolls, but the seeds alone need 5.23 rolls
	order := exampleOrder()
	order.AvailableRolls = 5
	m := seededMaster(order)

	_, err := m.Solve()
	var ime *InfeasibleMasterError
	require.ErrorAs(t, err, &ime)
	assert.Equal(t, 3, ime.Patterns)
	assert.Contains(t, err.Error(), "no combination of the 3 known patterns")
	assert.NotContains(t, err.Error(), "cannot be satisfied")
}

func TestMaster_Integerize(t *testing.T) {
	m := seededMaster(exampleOrder())
	relaxed, err := m.Solve()
	require.NoError(t, err)

	final, err := m.Integerize()
	require.NoError(t, err)
	assert.True(t, m.Integral())
	assert.True(t, m.Model().IsMIP())
	assert.InDelta(t, 65.0, final.Objective, tol)
	assert.GreaterOrEqual(t, final.Objective, relaxed.Objective)
	assert.Equal(t, []float64{1, 1, 4}, final.Values)
	assert.Nil(t, final.Duals)

	_, err = m.Integerize()
	assert.ErrorIs(t, err, ErrAlreadyIntegral)
}
