package engine

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/RollCut/internal/model"
	"github.com/piwi3910/RollCut/internal/solver"
)

type recordingSnapshotter struct {
	names []string
}

func (r *recordingSnapshotter) Snapshot(name string, m *solver.Model, sol *solver.Solution) error {
	r.names = append(r.names, name)
	return nil
}

func quietLogger() *logrus.Logger {
	l, _ := test.NewNullLogger()
	return l
}

func runExample(t *testing.T, order model.Order, settings model.Settings, opts ...Option) (*Controller, *model.Plan) {
	t.Helper()
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	c, err := NewController(order, settings, opts...)
	require.NoError(t, err)
	plan, err := c.Run()
	require.NoError(t, err)
	return c, plan
}

func TestController_ExampleScenario(t *testing.T) {
	order := exampleOrder()
	c, plan := runExample(t, order, model.DefaultSettings())

	assert.Equal(t, StateDone, c.State())
	assert.True(t, plan.Converged)
	assert.GreaterOrEqual(t, plan.GeneratedPatterns(), 1, "at least one mixed pattern")

	noGeneration := float64(9*4 + 6*1 + 20*15)
	assert.Less(t, plan.Waste, noGeneration)
	assert.GreaterOrEqual(t, plan.Waste, plan.RelaxedWaste-tol, "integer is bounded by the relaxation")

	produced := plan.Produced()
	for i, p := range order.Pieces {
		assert.GreaterOrEqual(t, produced[i], p.Demand, "demand of %s", p.Label)
	}
	assert.Len(t, plan.Patterns, c.Catalog().Len())
	assert.Equal(t, model.BackendSimplex, plan.Backend)
	assert.Equal(t, model.PricingDP, plan.Pricing)
}

func TestController_ObjectiveNonIncreasing(t *testing.T) {
	_, plan := runExample(t, exampleOrder(), model.DefaultSettings())

	require.NotEmpty(t, plan.Iterations)
	for i := 1; i < len(plan.Iterations); i++ {
		assert.LessOrEqual(t, plan.Iterations[i].Objective, plan.Iterations[i-1].Objective+tol,
			"iteration %d", i)
	}
}

func TestController_TerminatesOnNonNegativeReducedCost(t *testing.T) {
	_, plan := runExample(t, exampleOrder(), model.DefaultSettings())

	last := plan.Iterations[len(plan.Iterations)-1]
	assert.Equal(t, -1, last.PatternID)
	assert.GreaterOrEqual(t, last.ReducedCost, -1e-9)
	for _, it := range plan.Iterations[:len(plan.Iterations)-1] {
		assert.Less(t, it.ReducedCost, -1e-9)
		assert.GreaterOrEqual(t, it.PatternID, 3)
	}
}

func TestController_MIPPricingMatchesDP(t *testing.T) {
	settings := model.DefaultSettings()
	_, dp := runExample(t, exampleOrder(), settings)

	settings.Pricing = model.PricingMIP
	_, mip := runExample(t, exampleOrder(), settings)

	assert.True(t, mip.Converged)
	assert.Equal(t, model.PricingMIP, mip.Pricing)
	assert.InDelta(t, dp.RelaxedWaste, mip.RelaxedWaste, tol)
}

func TestController_ZeroDemand(t *testing.T) {
	order := model.NewOrder("nothing", 100, []int{6, 11, 17}, []int{0, 0, 0})
	c, plan := runExample(t, order, model.DefaultSettings())

	assert.Equal(t, StateDone, c.State())
	assert.InDelta(t, 0.0, plan.RelaxedWaste, tol)
	assert.InDelta(t, 0.0, plan.Waste, tol)
	assert.Equal(t, 0, plan.RollsUsed())
}

func TestController_CapacityRespected(t *testing.T) {
	order := exampleOrder()
	order.AvailableRolls = 10
	_, plan := runExample(t, order, model.DefaultSettings())

	assert.LessOrEqual(t, plan.RelaxedRolls(), 10.0+tol)
	assert.LessOrEqual(t, plan.RollsUsed(), 10)
	assert.Less(t, plan.Waste, float64(9*4+6*1+20*15))
}

func TestController_CapacityTooSmall(t *testing.T) {
	order := exampleOrder()
	order.AvailableRolls = 1

	c, err := NewController(order, model.DefaultSettings(), WithLogger(quietLogger()))
	require.NoError(t, err)

	plan, err := c.Run()
	assert.Nil(t, plan)
	assert.ErrorIs(t, err, ErrInfeasibleMaster)
	assert.Equal(t, StateFailed, c.State())
}

func TestController_SeedOnly(t *testing.T) {
	settings := model.DefaultSettings()
	settings.SeedOnly = true
	_, plan := runExample(t, exampleOrder(), settings)

	assert.False(t, plan.Converged)
	assert.Empty(t, plan.Iterations)
	assert.Equal(t, 0, plan.GeneratedPatterns())
	assert.InDelta(t, 65.0, plan.Waste, tol)
	assert.Equal(t, 6, plan.RollsUsed())
}

func TestController_MaxIterations(t *testing.T) {
	logger, hook := test.NewNullLogger()
	settings := model.DefaultSettings()
	settings.MaxIterations = 1

	_, plan := runExample(t, exampleOrder(), settings, WithLogger(logger))

	assert.False(t, plan.Converged)
	assert.Len(t, plan.Iterations, 1)

	warned := false
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Message == "iteration limit reached before convergence" {
			warned = true
		}
	}
	assert.True(t, warned)
}

type repeatingPricer struct {
	counts []int
}

func (p repeatingPricer) Price(duals []float64) (Candidate, error) {
	return Candidate{ReducedCost: -1, Counts: p.counts, Slack: 4}, nil
}

func TestController_DuplicateGuard(t *testing.T) {
	settings := model.DefaultSettings()
	settings.MaxDuplicates = 2
	pricer := WithPricer(func(model.Order, solver.Solver, float64) Pricer {
		return repeatingPricer{counts: []int{16, 0, 0}}
	})

	_, plan := runExample(t, exampleOrder(), settings, pricer)

	assert.False(t, plan.Converged)
	require.Len(t, plan.Iterations, 3)
	for _, it := range plan.Iterations {
		assert.True(t, it.Duplicate)
	}
}

func TestController_Snapshots(t *testing.T) {
	rec := &recordingSnapshotter{}
	_, plan := runExample(t, exampleOrder(), model.DefaultSettings(), WithSnapshotter(rec))

	require.NotEmpty(t, rec.names)
	assert.Equal(t, "MP_Cutting_Stock_2", rec.names[0])
	assert.Equal(t, "master_CuttingStock_IP", rec.names[len(rec.names)-1])
	assert.Len(t, rec.names, len(plan.Iterations)+1)
	assert.NotContains(t, rec.names, "AP_Cutting_Stock_2")
}

func TestController_SnapshotsWithMIPPricing(t *testing.T) {
	rec := &recordingSnapshotter{}
	settings := model.DefaultSettings()
	settings.Pricing = model.PricingMIP
	runExample(t, exampleOrder(), settings, WithSnapshotter(rec))

	assert.Contains(t, rec.names, "AP_Cutting_Stock_2")
	assert.Contains(t, rec.names, "MP_Cutting_Stock_3")
}

func TestController_RunTwice(t *testing.T) {
	c, _ := runExample(t, exampleOrder(), model.DefaultSettings())
	_, err := c.Run()
	assert.Error(t, err)
}

func TestNewController_InvalidOrder(t *testing.T) {
	order := model.NewOrder("too wide", 100, []int{120}, []int{1})
	_, err := NewController(order, model.DefaultSettings())
	assert.ErrorIs(t, err, model.ErrInvalidOrder)
}

func TestNewController_UnknownBackend(t *testing.T) {
	settings := model.DefaultSettings()
	settings.Backend = "cplex"
	_, err := NewController(exampleOrder(), settings)
	assert.Error(t, err)
}

func TestNewController_UnknownPricing(t *testing.T) {
	settings := model.DefaultSettings()
	settings.Pricing = "knapsack-mpi"
	c, err := NewController(exampleOrder(), settings, WithLogger(quietLogger()))
	assert.ErrorIs(t, err, model.ErrInvalidSettings)
	assert.Nil(t, c)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "Seeding", StateSeeding.String())
	assert.Equal(t, "Integerizing", StateIntegerizing.String())
	assert.Equal(t, "Failed", StateFailed.String())
	assert.Equal(t, "State(42)", State(42).String())
}

func TestBackends_IncludesSimplex(t *testing.T) {
	assert.Contains(t, Backends(), model.BackendSimplex)
	s, err := NewBackend(model.Settings{})
	require.NoError(t, err)
	assert.Equal(t, "simplex", s.Name())
}
