package engine

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/piwi3910/RollCut/internal/model"
	"github.com/piwi3910/RollCut/internal/solver"
)

var (
	// ErrInfeasibleMaster is matched by errors returned when the master
	// problem has no feasible solution. Runs do not recover from it.
	ErrInfeasibleMaster = errors.New("infeasible master problem")
	// ErrAlreadyIntegral is returned by a second call to Master.Integerize.
	ErrAlreadyIntegral = errors.New("master problem is already integral")
)

// InfeasibleMasterError reports the rows of an infeasible master problem.
// It matches both ErrInfeasibleMaster and the solver error it wraps.
//
// Infeasibility is relative to the Patterns columns known at the time: with
// a roll cap between the true minimum and the seed-only minimum the seeded
// master is infeasible although a plan with generated patterns exists.
type InfeasibleMasterError struct {
	Rows     []string
	Patterns int
	Err      error
}

func (e *InfeasibleMasterError) Error() string {
	return fmt.Sprintf("%v: no combination of the %d known patterns satisfies [%s]: %v",
		ErrInfeasibleMaster, e.Patterns, strings.Join(e.Rows, ", "), e.Err)
}

func (e *InfeasibleMasterError) Unwrap() error { return e.Err }

func (e *InfeasibleMasterError) Is(target error) bool { return target == ErrInfeasibleMaster }

// MasterSolution is the result of one master solve. Values is indexed by
// pattern ID. Duals holds one price per row, demand rows first and the
// capacity row last when present; it is nil once the master is integral.
type MasterSolution struct {
	Objective float64
	Duals     []float64
	Values    []float64
}

// Master is the restricted master problem: one variable per pattern
// counting the rolls cut with it, minimising total waste.
type Master struct {
	backend  solver.Solver
	order    model.Order
	model    *solver.Model
	rows     []solver.Constraint
	vars     []solver.Var
	last     *solver.Solution
	integral bool
}

// NewMaster builds the master over the given patterns: a demand row per
// piece width and, when the order caps the number of rolls, a capacity row.
func NewMaster(backend solver.Solver, order model.Order, patterns []model.Pattern) *Master {
	m := &Master{
		backend: backend,
		order:   order,
		model:   solver.NewModel("MasterProblem", solver.Minimize),
	}
	for _, p := range order.Pieces {
		m.rows = append(m.rows, m.model.AddConstraint(
			fmt.Sprintf("Demand[%d]", p.Width), nil, solver.GreaterEqual, float64(p.Demand)))
	}
	if order.HasCapacity() {
		m.rows = append(m.rows, m.model.AddConstraint(
			"AvailableRolls", nil, solver.LessEqual, float64(order.AvailableRolls)))
	}
	for _, p := range patterns {
		m.AddColumn(p, float64(p.Waste))
	}
	return m
}

// AddColumn appends a continuous variable for p with objective coefficient
// cost: the pattern's count on each demand row and 1 on the capacity row.
func (m *Master) AddColumn(p model.Pattern, cost float64) solver.Var {
	coefs := make([]float64, len(m.rows))
	for i := range m.order.Pieces {
		if i < len(p.Counts) {
			coefs[i] = float64(p.Counts[i])
		}
	}
	if m.order.HasCapacity() {
		coefs[len(coefs)-1] = 1
	}
	kind := solver.Continuous
	if m.integral {
		kind = solver.Integer
	}
	v := m.model.AddColumn(fmt.Sprintf("x[%d]", p.ID), kind, 0, cost, m.rows, coefs)
	m.vars = append(m.vars, v)
	return v
}

// Solve optimises the current master.
func (m *Master) Solve() (MasterSolution, error) {
	sol, err := m.backend.Solve(m.model)
	if err != nil {
		if errors.Is(err, solver.ErrInfeasible) {
			return MasterSolution{}, &InfeasibleMasterError{Rows: m.rowNames(), Patterns: len(m.vars), Err: err}
		}
		return MasterSolution{}, errors.Wrap(err, "solving master problem")
	}
	m.last = sol

	out := MasterSolution{
		Objective: sol.Objective,
		Values:    make([]float64, len(m.vars)),
	}
	for k, v := range m.vars {
		out.Values[k] = sol.Value(v)
	}
	if !m.integral {
		out.Duals = sol.DualPrices(m.rows...)
	}
	return out, nil
}

// Integerize switches every variable to the integer domain and solves once
// more. It may only be called once.
func (m *Master) Integerize() (MasterSolution, error) {
	if m.integral {
		return MasterSolution{}, ErrAlreadyIntegral
	}
	m.integral = true
	for _, v := range m.vars {
		m.model.SetVariableKind(v, solver.Integer)
	}
	return m.Solve()
}

// Integral reports whether Integerize has been called.
func (m *Master) Integral() bool {
	return m.integral
}

// Model returns the underlying solver model.
func (m *Master) Model() *solver.Model {
	return m.model
}

// Solution returns the raw result of the last successful solve.
func (m *Master) Solution() *solver.Solution {
	return m.last
}

// Columns returns the number of pattern variables.
func (m *Master) Columns() int {
	return len(m.vars)
}

func (m *Master) rowNames() []string {
	names := make([]string, len(m.rows))
	for k, c := range m.rows {
		names[k] = m.model.Row(c).Name
	}
	return names
}
